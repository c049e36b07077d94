// Package grammar defines rules, symbols, and semantic actions used by parser
// along with compiled rule tables produced by compiler.
package grammar

import (
	"github.com/ava12/earley/lexer"
)

// Grammar maps nonterminal names to ordered rule alternatives.
// Grammar is read-only after construction and may be shared by parsers.
type Grammar struct {
	// Start contains start symbol name.
	Start string

	// Lexer creates lexer attached to grammar, nil means StreamLexer.
	Lexer lexer.Factory

	rules  []*Rule
	byName map[string][]*Rule
}

// New builds a grammar. Empty start means the name of the first rule.
func New(rules []*Rule, start string) (*Grammar, error) {
	if start == "" {
		if len(rules) == 0 {
			return nil, emptyGrammarError()
		}
		start = rules[0].Name
	}

	g := &Grammar{Start: start, rules: make([]*Rule, len(rules)), byName: make(map[string][]*Rule)}
	copy(g.rules, rules)
	for _, r := range rules {
		g.byName[r.Name] = append(g.byName[r.Name], r)
	}
	return g, nil
}

// Rules returns all rules in definition order.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// ByName returns alternatives for nonterminal, nil for unknown names.
func (g *Grammar) ByName(name string) []*Rule {
	return g.byName[name]
}

// NewLexer creates lexer instance for this grammar.
func (g *Grammar) NewLexer() lexer.Lexer {
	if g.Lexer == nil {
		return lexer.NewStreamLexer()
	}
	return g.Lexer()
}
