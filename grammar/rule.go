package grammar

import (
	"strings"
	"sync/atomic"
)

var highestRuleID int64

func nextRuleID() int {
	return int(atomic.AddInt64(&highestRuleID, 1))
}

// Rule is an immutable production. Rules are shared by all parser states.
type Rule struct {
	// ID is strictly increasing across all rules created by the process, used for ordering and diagnostics only.
	ID int

	Name        string
	Symbols     []Symbol
	Postprocess Action
}

// NewRule creates a rule, action may be nil.
func NewRule(name string, symbols []Symbol, action Action) *Rule {
	ss := make([]Symbol, len(symbols))
	copy(ss, symbols)
	return &Rule{nextRuleID(), name, ss, action}
}

// Len returns number of symbols in rule body.
func (r *Rule) Len() int {
	return len(r.Symbols)
}

func (r *Rule) String() string {
	return r.Name + " → " + joinSymbols(r.Symbols)
}

// StringAt renders rule with a cursor before dot-th symbol.
func (r *Rule) StringAt(dot int) string {
	return r.Name + " → " + joinSymbols(r.Symbols[:dot]) + " ● " + joinSymbols(r.Symbols[dot:])
}

func joinSymbols(ss []Symbol) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
