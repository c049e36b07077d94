package grammar

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/ava12/earley/lexer"
)

// Table is a flat compiled rule table, it is what compiler produces and code emission backends serialize.
type Table struct {
	// Lexer contains lexer name or empty string for StreamLexer.
	Lexer string `json:"lexer,omitempty" yaml:"lexer,omitempty"`

	Rules []TableRule `json:"rules" yaml:"rules"`
	Start string      `json:"start" yaml:"start"`
}

// TableRule is a rule with postprocess referenced by action name.
type TableRule struct {
	Name        string        `json:"name" yaml:"name"`
	Symbols     []TableSymbol `json:"symbols" yaml:"symbols,flow"`
	Postprocess string        `json:"postprocess,omitempty" yaml:"postprocess,omitempty"`
}

type TableSymbol struct {
	Kind  SymbolKind `json:"kind" yaml:"kind"`
	Value string     `json:"value" yaml:"value"`
}

func (s TableSymbol) String() string {
	switch s.Kind {
	case LiteralSymbol:
		return Literal(s.Value).String()
	case TokenSymbol:
		return Token(s.Value).String()
	case PatternSymbol:
		return "/" + s.Value + "/"
	default:
		return s.Value
	}
}

// ParseTableJSON decodes table serialized by JSON backend.
func ParseTableJSON(data []byte) (*Table, error) {
	t := &Table{}
	e := json.Unmarshal(data, t)
	if e != nil {
		return nil, badTableError("JSON", e)
	}
	return t, nil
}

// ParseTableYAML decodes table serialized by YAML backend.
func ParseTableYAML(data []byte) (*Table, error) {
	t := &Table{}
	e := yaml.Unmarshal(data, t)
	if e != nil {
		return nil, badTableError("YAML", e)
	}
	return t, nil
}

// Options configure conversion of compiled table into Grammar.
type Options struct {
	// Start overrides start symbol of the table if not empty.
	Start string

	// Actions contains named semantic actions, they take precedence over Builtins.
	Actions map[string]Action

	// Predicates contains named token predicates used by predicate symbols and by typed tokens unknown to lexer.
	Predicates map[string]Predicate

	// Lexers contains named lexer factories, they take precedence over lexer registry.
	Lexers map[string]lexer.Factory

	// NoActions drops all semantic actions, rule results are lists of children.
	NoActions bool
}

// FromCompiled converts compiled table into Grammar. opts may be nil.
// Typed tokens become type matches if table lexer has tokens of this type, predicates with the same name otherwise.
func FromCompiled(t *Table, opts *Options) (*Grammar, error) {
	if opts == nil {
		opts = &Options{}
	}

	var factory lexer.Factory
	if t.Lexer != "" {
		found := false
		factory, found = opts.Lexers[t.Lexer]
		if !found {
			factory, found = lexer.Lookup(t.Lexer)
		}
		if !found {
			return nil, unknownLexerError(t.Lexer)
		}
	}

	var checker lexer.TypeChecker
	if factory != nil {
		checker, _ = factory().(lexer.TypeChecker)
	}

	rules := make([]*Rule, len(t.Rules))
	for i, tr := range t.Rules {
		symbols := make([]Symbol, len(tr.Symbols))
		for j, ts := range tr.Symbols {
			s, e := resolveSymbol(ts, checker, opts)
			if e != nil {
				return nil, e
			}
			symbols[j] = s
		}

		var action Action
		if tr.Postprocess != "" && !opts.NoActions {
			found := false
			action, found = opts.Actions[tr.Postprocess]
			if !found {
				action, found = Builtins[tr.Postprocess]
			}
			if !found {
				return nil, unknownActionError(tr.Postprocess, tr.Name)
			}
		}
		rules[i] = NewRule(tr.Name, symbols, action)
	}

	start := t.Start
	if opts.Start != "" {
		start = opts.Start
	}
	g, e := New(rules, start)
	if e != nil {
		return nil, e
	}

	g.Lexer = factory
	return g, nil
}

func resolveSymbol(ts TableSymbol, checker lexer.TypeChecker, opts *Options) (Symbol, error) {
	switch ts.Kind {
	case NonterminalSymbol:
		return Nonterminal(ts.Value), nil
	case LiteralSymbol:
		return Literal(ts.Value), nil
	case PatternSymbol:
		return Pattern(ts.Value)
	case PredicateSymbol:
		test, found := opts.Predicates[ts.Value]
		if !found {
			return Symbol{}, unknownPredicateError(ts.Value)
		}
		return PredicateOf(ts.Value, test), nil
	case TokenSymbol:
		if checker != nil && checker.Has(ts.Value) {
			return Token(ts.Value), nil
		}
		if test, found := opts.Predicates[ts.Value]; found {
			return PredicateOf(ts.Value, test), nil
		}
		if checker != nil {
			return Symbol{}, unresolvedTokenError(ts.Value)
		}
		return Token(ts.Value), nil
	default:
		_, e := ts.Kind.MarshalText()
		return Symbol{}, badTableError("in-memory", e)
	}
}
