// Package parser defines incremental Earley parser.
//
// Parser consumes input chunks through a lexer, keeps a chart of columns (one per consumed token
// plus the initial one), and after each chunk recomputes the parse forest: the list of values of all
// derivations of the start symbol spanning the whole input consumed so far.
// Empty or multiple results are not errors.
package parser

import (
	"github.com/ava12/earley/grammar"
	"github.com/ava12/earley/lexer"
)

// Options configure parser, zero value is the default.
type Options struct {
	// KeepHistory retains all columns, it is required for Rewind.
	// By default only the current and the previous columns are kept.
	KeepHistory bool

	// Lexer overrides the lexer attached to grammar.
	Lexer lexer.Lexer
}

// Parser is single-threaded, each parse needs its own Parser.
type Parser struct {
	grammar     *grammar.Grammar
	keepHistory bool
	lexer       lexer.Lexer
	rawValues   bool
	lexerState  *lexer.State
	table       []*Column
	current     int
	results     []any
	err         error
}

// New creates parser and seeds the first column with start symbol predictions. opts may be nil.
func New(g *grammar.Grammar, opts *Options) *Parser {
	if opts == nil {
		opts = &Options{}
	}

	p := &Parser{grammar: g, keepHistory: opts.KeepHistory, lexer: opts.Lexer}
	if p.lexer == nil {
		p.lexer = g.NewLexer()
	}
	_, p.rawValues = p.lexer.(*lexer.StreamLexer)

	column := newColumn(g, 0)
	column.wants[g.Start] = &wantList{}
	column.predict(g.Start)
	column.process()
	p.table = []*Column{column}
	p.results = p.finish()
	return p
}

// Grammar returns parsed grammar.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Current returns index of the current column, i.e. number of consumed tokens.
func (p *Parser) Current() int {
	return p.current
}

// Table returns the chart. Discarded columns are nil unless history is kept.
func (p *Parser) Table() []*Column {
	return p.table
}

// Results returns parse forest computed after the last Feed or Restore.
func (p *Parser) Results() []any {
	return p.results
}

// Feed consumes input chunk. Lexer position is carried between chunks.
// Lexer errors are returned as is, unconsumable tokens cause *SyntaxError.
// After a syntax error the parser returns it on every Feed until Restore is called.
func (p *Parser) Feed(chunk string) error {
	if p.err != nil {
		return p.err
	}

	p.lexer.Reset(chunk, p.lexerState)
	for {
		token, e := p.lexer.Next()
		if e != nil {
			return e
		}
		if token == nil {
			break
		}

		column := p.table[p.current]
		if !p.keepHistory && p.current > 0 {
			p.table[p.current-1] = nil
		}

		n := p.current + 1
		nextColumn := newColumn(p.grammar, n)

		var value any = token
		if p.rawValues {
			value = token.Value()
		}
		scannable := column.scannable
		for w := len(scannable) - 1; w >= 0; w-- {
			state := scannable[w]
			if state.rule.Symbols[state.dot].Match(token) {
				nextColumn.states = append(nextColumn.states, state.nextState(tokenState(token, value, n-1)))
			}
		}

		nextColumn.process()
		if len(nextColumn.states) == 0 {
			p.err = p.reportError(token, column)
			return p.err
		}

		if p.keepHistory {
			nextColumn.lexerState = p.lexer.Save()
		}
		p.table = append(p.table, nextColumn)
		p.current = n
	}

	p.lexerState = p.lexer.Save()
	p.results = p.finish()
	return nil
}

// Finish returns values of all complete start symbol derivations spanning consumed input.
func (p *Parser) Finish() []any {
	return p.finish()
}

func (p *Parser) finish() []any {
	var res []any
	start := p.grammar.Start
	column := p.table[len(p.table)-1]
	for _, s := range column.states {
		if s.rule.Name == start && s.complete && s.origin == 0 && !grammar.IsFail(s.data) {
			res = append(res, s.data)
		}
	}
	return res
}

// Save returns checkpoint for the current column.
func (p *Parser) Save() *Column {
	column := p.table[p.current]
	column.lexerState = p.lexerState
	return column
}

// Restore resumes parsing at checkpoint returned by Save, discarding columns after it.
// It also clears syntax error.
func (p *Parser) Restore(c *Column) {
	index := c.index
	for len(p.table) <= index {
		p.table = append(p.table, nil)
	}
	p.table[index] = c
	p.table = p.table[:index+1]
	p.current = index
	p.lexerState = c.lexerState
	p.err = nil
	p.results = p.finish()
}

// Rewind restores column with specified index, requires KeepHistory option.
//
// Deprecated: use Save and Restore.
func (p *Parser) Rewind(index int) error {
	if !p.keepHistory {
		return noHistoryError()
	}
	if index < 0 || index > p.current {
		return badRewindError(index, p.current)
	}

	p.Restore(p.table[index])
	return nil
}
