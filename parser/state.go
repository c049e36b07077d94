package parser

import (
	"strconv"

	"github.com/ava12/earley/grammar"
	"github.com/ava12/earley/lexer"
)

// wantList is shared by all states predicted for the same nonterminal in the same column,
// predictors appended later must be visible to states predicted earlier.
type wantList struct {
	states []*State
}

// State is a dotted rule with derivation links. States are never mutated after processing,
// advancing the dot creates a new state.
type State struct {
	rule     *grammar.Rule
	dot      int
	origin   int
	wantedBy *wantList
	left     *State
	right    *State
	token    *lexer.Token
	data     any
	complete bool
}

func newState(rule *grammar.Rule, dot, origin int, wantedBy *wantList) *State {
	s := &State{rule: rule, dot: dot, origin: origin, wantedBy: wantedBy, complete: dot == rule.Len()}
	if s.complete {
		s.data = []any{}
	}
	return s
}

// tokenState creates a leaf holding scanned token value.
func tokenState(t *lexer.Token, value any, origin int) *State {
	return &State{origin: origin, token: t, data: value, complete: true}
}

// Rule returns nil for token leaves.
func (s *State) Rule() *grammar.Rule {
	return s.rule
}

func (s *State) Dot() int {
	return s.dot
}

// Origin returns index of the column where the match starts.
func (s *State) Origin() int {
	return s.origin
}

func (s *State) IsComplete() bool {
	return s.complete
}

// Data returns the value of a completed state: children list or semantic action result.
func (s *State) Data() any {
	return s.data
}

// Token returns scanned token for token leaves, nil otherwise.
func (s *State) Token() *lexer.Token {
	return s.token
}

func (s *State) Left() *State {
	return s.left
}

func (s *State) Right() *State {
	return s.right
}

// WantedBy returns states that predicted this one.
func (s *State) WantedBy() []*State {
	if s.wantedBy == nil {
		return nil
	}
	return s.wantedBy.states
}

// Next returns the symbol after the dot, false if state is complete.
func (s *State) Next() (grammar.Symbol, bool) {
	if s.rule == nil || s.dot >= s.rule.Len() {
		return grammar.Symbol{}, false
	}
	return s.rule.Symbols[s.dot], true
}

func (s *State) String() string {
	if s.rule == nil {
		return "{" + s.token.Text() + "}, from: " + strconv.Itoa(s.origin)
	}
	return "{" + s.rule.StringAt(s.dot) + "}, from: " + strconv.Itoa(s.origin)
}

func (s *State) nextState(child *State) *State {
	next := newState(s.rule, s.dot+1, s.origin, s.wantedBy)
	next.left = s
	next.right = child
	if next.complete {
		next.data = next.build()
	}
	return next
}

func (s *State) build() []any {
	children := make([]any, 0, s.dot)
	node := s
	for {
		children = append(children, node.right.data)
		node = node.left
		if node.left == nil {
			break
		}
	}
	for i, j := 0, len(children)-1; i < j; i, j = i+1, j-1 {
		children[i], children[j] = children[j], children[i]
	}
	return children
}

func (s *State) finish() {
	if s.rule.Postprocess != nil {
		children, _ := s.data.([]any)
		s.data = s.rule.Postprocess(children, s.origin)
	}
}
