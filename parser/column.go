package parser

import (
	"github.com/ava12/earley/grammar"
	"github.com/ava12/earley/lexer"
)

// Column contains all states positioned at one input offset.
type Column struct {
	grammar    *grammar.Grammar
	index      int
	states     []*State
	wants      map[string]*wantList
	scannable  []*State
	completed  map[string][]*State
	lexerState *lexer.State
}

func newColumn(g *grammar.Grammar, index int) *Column {
	return &Column{
		grammar:   g,
		index:     index,
		wants:     make(map[string]*wantList),
		completed: make(map[string][]*State),
	}
}

func (c *Column) Index() int {
	return c.index
}

// States returns all states in processing order.
func (c *Column) States() []*State {
	return c.states
}

// Scannable returns states awaiting a terminal.
func (c *Column) Scannable() []*State {
	return c.scannable
}

// LexerState returns saved lexer position, nil for the first column or if history is not kept.
func (c *Column) LexerState() *lexer.State {
	return c.lexerState
}

// process runs scan/predict/complete closure, the worklist grows while it is iterated.
func (c *Column) process() {
	for w := 0; w < len(c.states); w++ {
		state := c.states[w]

		if state.complete {
			state.finish()
			if grammar.IsFail(state.data) {
				continue
			}

			wantedBy := state.wantedBy.states
			for i := len(wantedBy) - 1; i >= 0; i-- {
				c.complete(wantedBy[i], state)
			}

			// nullable match: predictors of this name appearing later in this column must be completed too
			if state.origin == c.index {
				name := state.rule.Name
				c.completed[name] = append(c.completed[name], state)
			}
			continue
		}

		symbol := state.rule.Symbols[state.dot]
		if symbol.IsTerminal() {
			c.scannable = append(c.scannable, state)
			continue
		}

		name := symbol.Value()
		if wants, found := c.wants[name]; found {
			wants.states = append(wants.states, state)
			for _, right := range c.completed[name] {
				c.complete(state, right)
			}
		} else {
			c.wants[name] = &wantList{[]*State{state}}
			c.predict(name)
		}
	}
}

func (c *Column) predict(name string) {
	wants := c.wants[name]
	for _, rule := range c.grammar.ByName(name) {
		c.states = append(c.states, newState(rule, 0, c.index, wants))
	}
}

func (c *Column) complete(left, right *State) {
	c.states = append(c.states, left.nextState(right))
}
