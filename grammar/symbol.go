package grammar

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ava12/earley/lexer"
)

// SymbolKind selects the way a symbol matches input.
type SymbolKind int

const (
	// NonterminalSymbol refers to rules by name.
	NonterminalSymbol SymbolKind = iota
	// LiteralSymbol matches token text.
	LiteralSymbol
	// TokenSymbol matches token type.
	TokenSymbol
	// PatternSymbol matches token value against anchored regular expression.
	PatternSymbol
	// PredicateSymbol matches tokens accepted by named predicate.
	PredicateSymbol
)

var kindNames = []string{"rule", "literal", "token", "pattern", "predicate"}

func (k SymbolKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

func (k SymbolKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown symbol kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *SymbolKind) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range kindNames {
		if n == name {
			*k = SymbolKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown symbol kind %q", name)
}

// Predicate reports whether token is acceptable.
type Predicate func(t *lexer.Token) bool

// Symbol is an element of rule body. Exactly one matching method is used depending on Kind.
type Symbol struct {
	kind  SymbolKind
	value string
	re    *regexp.Regexp
	test  Predicate
}

// Nonterminal creates a symbol referring to rules named name.
func Nonterminal(name string) Symbol {
	return Symbol{kind: NonterminalSymbol, value: name}
}

// Literal creates a symbol matching token text.
func Literal(text string) Symbol {
	return Symbol{kind: LiteralSymbol, value: text}
}

// Token creates a symbol matching token type.
func Token(typeName string) Symbol {
	return Symbol{kind: TokenSymbol, value: typeName}
}

// Pattern creates a symbol matching whole token value against regular expression.
func Pattern(re string) (Symbol, error) {
	compiled, e := regexp.Compile("^(?:" + re + ")$")
	if e != nil {
		return Symbol{}, badPatternError(re, e)
	}
	return Symbol{kind: PatternSymbol, value: re, re: compiled}, nil
}

// MustPattern is like Pattern but panics on invalid regular expression.
func MustPattern(re string) Symbol {
	s, e := Pattern(re)
	if e != nil {
		panic(e)
	}
	return s
}

// PredicateOf creates a symbol matching tokens accepted by test, name is used for diagnostics.
func PredicateOf(name string, test Predicate) Symbol {
	return Symbol{kind: PredicateSymbol, value: name, test: test}
}

func (s Symbol) Kind() SymbolKind {
	return s.kind
}

// Value returns nonterminal name, literal text, token type, pattern source, or predicate name.
func (s Symbol) Value() string {
	return s.value
}

// IsTerminal reports whether symbol is matched against tokens.
func (s Symbol) IsTerminal() bool {
	return s.kind != NonterminalSymbol
}

// Match reports whether terminal symbol accepts token. Nonterminals never match.
func (s Symbol) Match(t *lexer.Token) bool {
	switch s.kind {
	case LiteralSymbol:
		return t.Literal() == s.value
	case TokenSymbol:
		return t.Type() == s.value
	case PatternSymbol:
		return s.re.MatchString(t.Value())
	case PredicateSymbol:
		return s.test(t)
	default:
		return false
	}
}

// String renders symbol as it appears in rule strings.
func (s Symbol) String() string {
	switch s.kind {
	case LiteralSymbol:
		return strconv.Quote(s.value)
	case TokenSymbol:
		return "%" + s.value
	case PatternSymbol:
		return "/" + s.value + "/"
	default:
		return s.value
	}
}

// Display renders symbol for syntax error messages.
func (s Symbol) Display() string {
	switch s.kind {
	case LiteralSymbol:
		return strconv.Quote(s.value)
	case TokenSymbol:
		return s.value + " token"
	case PatternSymbol:
		return "character matching /" + s.value + "/"
	case PredicateSymbol:
		return "token matching " + s.value
	default:
		return s.value
	}
}
