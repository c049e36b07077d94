package parser

import (
	"strconv"
	"strings"

	"github.com/ava12/earley"
	"github.com/ava12/earley/lexer"
)

func tokenDisplay(t *lexer.Token) string {
	res := ""
	if t.Type() != "" {
		res = t.Type() + " token: "
	}
	return res + strconv.Quote(t.Value())
}

func (p *Parser) reportError(t *lexer.Token, column *Column) *SyntaxError {
	lines := []string{p.lexer.FormatError(t, "Syntax error")}
	var expected []Expectation

	for _, state := range column.states {
		symbol, found := state.Next()
		if !found || !symbol.IsTerminal() {
			continue
		}

		stack := firstStack(state, map[*State]bool{})
		if stack == nil {
			continue
		}

		frames := make([]string, len(stack))
		for i, s := range stack {
			frames[i] = s.rule.StringAt(s.dot)
		}
		expected = append(expected, Expectation{symbol, frames})
	}

	if len(expected) == 0 {
		lines = append(lines, "Unexpected "+tokenDisplay(t)+". I did not expect any more input. Here is the state of my parse table:\n")
		frames := make([]string, len(column.states))
		for i, s := range column.states {
			frames[i] = s.rule.StringAt(s.dot)
		}
		lines = appendFrames(lines, frames)
	} else {
		lines = append(lines, "Unexpected "+tokenDisplay(t)+". Instead, I was expecting to see one of the following:\n")
		for _, exp := range expected {
			lines = append(lines, "A "+exp.Symbol.Display()+" based on:")
			lines = appendFrames(lines, exp.Stack)
		}
	}
	lines = append(lines, "")

	return &SyntaxError{
		Err: &earley.Error{
			Code:       UnexpectedTokenError,
			Message:    strings.Join(lines, "\n"),
			SourceName: t.SourceName(),
			Line:       t.Line(),
			Col:        t.Col(),
		},
		Offset:   p.current,
		Token:    t,
		Expected: expected,
	}
}

// firstStack returns the first derivation path from state back to a state with no predictors.
// Paths running into a cycle are dropped.
func firstStack(s *State, visited map[*State]bool) []*State {
	if visited[s] {
		return nil
	}
	predictors := s.WantedBy()
	if len(predictors) == 0 {
		return []*State{s}
	}

	visited[s] = true
	defer delete(visited, s)
	for _, prev := range predictors {
		if stack := firstStack(prev, visited); stack != nil {
			return append([]*State{s}, stack...)
		}
	}
	return nil
}

// appendFrames renders state stack collapsing runs of identical frames.
func appendFrames(lines, frames []string) []string {
	last := ""
	same := 0
	flush := func() {
		if same > 0 {
			lines = append(lines, "    ⬆ ︎"+strconv.Itoa(same)+" more lines identical to this")
		}
		same = 0
	}

	for i, frame := range frames {
		if i > 0 && frame == last {
			same++
			continue
		}

		flush()
		lines = append(lines, "    "+frame)
		last = frame
	}
	flush()
	return lines
}
