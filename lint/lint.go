// Package lint reports suspicious constructs of compiled grammars.
package lint

import (
	"fmt"
	"io"

	"github.com/ava12/earley/grammar"
	"github.com/ava12/earley/internal/ints"
	"github.com/ava12/earley/internal/queue"
)

// Warning is a single lint message related to a rule.
type Warning struct {
	Rule    string
	Message string
}

func (w Warning) String() string {
	return w.Message
}

// Check returns warnings about undefined nonterminals and rules unreachable from start symbol.
func Check(t *grammar.Table) []Warning {
	var res []Warning
	defined := make(map[string]bool, len(t.Rules))
	for _, r := range t.Rules {
		defined[r.Name] = true
	}

	if t.Start != "" && !defined[t.Start] {
		res = append(res, Warning{t.Start, fmt.Sprintf("Start symbol `%s` is not defined.", t.Start)})
	}

	for _, r := range t.Rules {
		for _, s := range r.Symbols {
			if s.Kind == grammar.NonterminalSymbol && !defined[s.Value] {
				res = append(res, Warning{r.Name, fmt.Sprintf("Undefined symbol `%s` used.", s.Value)})
			}
		}
	}

	reachable := Reachable(t)
	reported := map[string]bool{}
	for _, r := range t.Rules {
		if !reachable[r.Name] && !reported[r.Name] {
			reported[r.Name] = true
			res = append(res, Warning{r.Name, fmt.Sprintf("Rule `%s` is unreachable from start symbol `%s`.", r.Name, t.Start)})
		}
	}

	return res
}

// Reachable returns names of nonterminals reachable from start symbol, start included.
func Reachable(t *grammar.Table) map[string]bool {
	byName := make(map[string][]int, len(t.Rules))
	for i, r := range t.Rules {
		byName[r.Name] = append(byName[r.Name], i)
	}

	res := map[string]bool{t.Start: true}
	visited := ints.NewSet()
	q := queue.New(byName[t.Start]...)
	for !q.IsEmpty() {
		index, _ := q.First()
		if visited.Contains(index) {
			continue
		}

		visited.Add(index)
		for _, s := range t.Rules[index].Symbols {
			if s.Kind == grammar.NonterminalSymbol && !res[s.Value] {
				res[s.Value] = true
				q.Append(byName[s.Value]...)
			}
		}
	}
	return res
}

// Write outputs warnings one per line prefixed with "WARN\t".
func Write(w io.Writer, warnings []Warning) error {
	for _, warning := range warnings {
		_, e := fmt.Fprintf(w, "WARN\t%s\n", warning.Message)
		if e != nil {
			return e
		}
	}
	return nil
}
