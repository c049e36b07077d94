// Package unparse generates random sentences of a grammar.
package unparse

import (
	"math/rand"
	"regexp/syntax"
	"strings"
	"time"

	"github.com/ava12/earley"
	"github.com/ava12/earley/grammar"
)

// Error codes used by unparse:
const (
	// UndefinedSymbolError indicates a reference to undefined nonterminal.
	UndefinedSymbolError = earley.UnparseErrors + iota

	// DepthError indicates that no derivation fits into depth bound.
	DepthError

	// UnsupportedSymbolError indicates a symbol that cannot be rendered as text (typed token or predicate).
	UnsupportedSymbolError
)

const unbounded = -1

type generator struct {
	rules    map[string][]grammar.TableRule
	minDepth map[string]int
	rand     *rand.Rand
	sb       strings.Builder
}

// Generate returns random sentence derived from start symbol (table start symbol if empty).
// depth bounds nesting of nonterminals, negative depth means no bound.
// r may be nil.
func Generate(t *grammar.Table, start string, depth int, r *rand.Rand) (string, error) {
	if start == "" {
		start = t.Start
	}
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if depth < 0 {
		depth = unbounded
	}

	g := &generator{rules: map[string][]grammar.TableRule{}, rand: r}
	for _, rule := range t.Rules {
		g.rules[rule.Name] = append(g.rules[rule.Name], rule)
	}
	g.computeDepths()

	e := g.expand(start, depth)
	if e != nil {
		return "", e
	}
	return g.sb.String(), nil
}

// computeDepths finds minimal derivation depth of every nonterminal, unproductive ones are left out.
func (g *generator) computeDepths() {
	g.minDepth = map[string]int{}
	for changed := true; changed; {
		changed = false
		for name, rules := range g.rules {
			for _, rule := range rules {
				d, ok := g.ruleDepth(rule)
				if ok {
					old, found := g.minDepth[name]
					if !found || d < old {
						g.minDepth[name] = d
						changed = true
					}
				}
			}
		}
	}
}

func (g *generator) ruleDepth(rule grammar.TableRule) (int, bool) {
	res := 1
	for _, s := range rule.Symbols {
		if s.Kind != grammar.NonterminalSymbol {
			continue
		}

		d, found := g.minDepth[s.Value]
		if !found {
			return 0, false
		}
		if d+1 > res {
			res = d + 1
		}
	}
	return res, true
}

func (g *generator) expand(name string, depth int) error {
	rules := g.rules[name]
	if len(rules) == 0 {
		return earley.FormatError(UndefinedSymbolError, "undefined symbol %s", name)
	}

	candidates := rules
	if depth != unbounded {
		candidates = make([]grammar.TableRule, 0, len(rules))
		for _, rule := range rules {
			if d, ok := g.ruleDepth(rule); ok && d <= depth {
				candidates = append(candidates, rule)
			}
		}
		if len(candidates) == 0 {
			return earley.FormatError(DepthError, "no derivation of %s fits into depth %d", name, depth)
		}
	}

	rule := candidates[g.rand.Intn(len(candidates))]
	next := depth
	if depth != unbounded {
		next = depth - 1
	}

	for _, s := range rule.Symbols {
		var e error
		switch s.Kind {
		case grammar.NonterminalSymbol:
			e = g.expand(s.Value, next)
		case grammar.LiteralSymbol:
			g.sb.WriteString(s.Value)
		case grammar.PatternSymbol:
			e = g.writePattern(s.Value)
		default:
			e = earley.FormatError(UnsupportedSymbolError, "cannot generate text for %s symbol %s", s.Kind, s.String())
		}
		if e != nil {
			return e
		}
	}
	return nil
}

// writePattern writes a random character matching single-character pattern,
// printable ASCII characters are preferred.
func (g *generator) writePattern(pattern string) error {
	re, e := syntax.Parse(pattern, syntax.Perl)
	if e != nil {
		return earley.FormatError(UnsupportedSymbolError, "bad pattern /%s/: %s", pattern, e.Error())
	}

	var ranges []rune
	switch re.Op {
	case syntax.OpCharClass:
		ranges = re.Rune
	case syntax.OpLiteral:
		g.sb.WriteString(string(re.Rune))
		return nil
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		ranges = []rune{' ', '~'}
	default:
		return earley.FormatError(UnsupportedSymbolError, "cannot generate text for pattern /%s/", pattern)
	}

	printable := clip(ranges, ' ', '~')
	if len(printable) > 0 {
		ranges = printable
	}
	if len(ranges) == 0 {
		return earley.FormatError(UnsupportedSymbolError, "pattern /%s/ matches nothing", pattern)
	}

	total := 0
	for i := 0; i < len(ranges); i += 2 {
		total += int(ranges[i+1]-ranges[i]) + 1
	}
	n := g.rand.Intn(total)
	for i := 0; i < len(ranges); i += 2 {
		size := int(ranges[i+1]-ranges[i]) + 1
		if n < size {
			g.sb.WriteRune(ranges[i] + rune(n))
			break
		}
		n -= size
	}
	return nil
}

// clip intersects list of rune ranges (lo, hi pairs) with [lo, hi].
func clip(ranges []rune, lo, hi rune) []rune {
	var res []rune
	for i := 0; i+1 < len(ranges); i += 2 {
		l, h := ranges[i], ranges[i+1]
		if l < lo {
			l = lo
		}
		if h > hi {
			h = hi
		}
		if l <= h {
			res = append(res, l, h)
		}
	}
	return res
}
