package generate

import (
	"bytes"
	"fmt"
	"regexp/syntax"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/ebnf"

	"github.com/ava12/earley/compiler"
	"github.com/ava12/earley/grammar"
	"github.com/ava12/earley/lint"
)

// maxRanges limits the number of character ranges rendered for a pattern,
// larger classes are rendered as empty lexical productions.
const maxRanges = 16

// EBNF renders rules reachable from start symbol in Go EBNF notation (golang.org/x/exp/ebnf).
// Nonterminals become capitalized productions, patterns and typed tokens become lexical ones.
// The listing is verified before it is returned.
type EBNF struct{}

type ebnfWriter struct {
	names    map[string]string
	taken    map[string]bool
	lexical  []string
	lexicals map[string]string
	bodies   map[string]string
}

func (EBNF) Render(c *compiler.Compiler, exportName string) ([]byte, error) {
	table := c.Table()
	reachable := lint.Reachable(table)
	w := &ebnfWriter{
		names:    map[string]string{},
		taken:    map[string]bool{},
		lexicals: map[string]string{},
		bodies:   map[string]string{},
	}

	var order []string
	alternatives := map[string][]grammar.TableRule{}
	for _, r := range table.Rules {
		if !reachable[r.Name] {
			continue
		}
		if _, found := alternatives[r.Name]; !found {
			order = append(order, r.Name)
		}
		alternatives[r.Name] = append(alternatives[r.Name], r)
	}

	var buffer bytes.Buffer
	fmt.Fprintf(&buffer, "// %s: generated with earley %s\n\n", exportName, c.Version)
	for _, name := range order {
		fmt.Fprintf(&buffer, "%s = %s .\n", w.name(name), w.expression(alternatives[name]))
	}
	for _, name := range w.lexical {
		fmt.Fprintf(&buffer, "%s = %s.\n", name, w.bodies[name])
	}

	res := buffer.Bytes()
	g, e := ebnf.Parse(exportName, bytes.NewReader(res))
	if e == nil {
		e = ebnf.Verify(g, w.name(table.Start))
	}
	if e != nil {
		return nil, invalidEBNFError(e)
	}
	return res, nil
}

// name returns production name for a nonterminal, it starts with capital letter.
func (w *ebnfWriter) name(nonterminal string) string {
	if res, found := w.names[nonterminal]; found {
		return res
	}

	base := strings.ReplaceAll(nonterminal, "$", "_")
	first := []rune(base)
	if len(first) == 0 || !unicode.IsLetter(first[0]) {
		base = "R" + base
	} else {
		first[0] = unicode.ToUpper(first[0])
		base = string(first)
	}

	res := w.unique(base)
	w.names[nonterminal] = res
	return res
}

func (w *ebnfWriter) unique(base string) string {
	res := base
	for i := 2; w.taken[res]; i++ {
		res = base + "_" + strconv.Itoa(i)
	}
	w.taken[res] = true
	return res
}

func (w *ebnfWriter) expression(rules []grammar.TableRule) string {
	var alts []string
	hasEmpty := false
	for _, r := range rules {
		if len(r.Symbols) == 0 {
			hasEmpty = true
			continue
		}

		terms := make([]string, len(r.Symbols))
		for i, s := range r.Symbols {
			terms[i] = w.term(s)
		}
		alts = append(alts, strings.Join(terms, " "))
	}

	res := strings.Join(alts, " | ")
	if hasEmpty && res != "" {
		res = "[ " + res + " ]"
	}
	return res
}

func (w *ebnfWriter) term(s grammar.TableSymbol) string {
	switch s.Kind {
	case grammar.NonterminalSymbol:
		return w.name(s.Value)
	case grammar.LiteralSymbol:
		return strconv.Quote(s.Value)
	default:
		return w.lexicalName(s)
	}
}

// lexicalName returns lowercase production name for a terminal that is not a literal.
func (w *ebnfWriter) lexicalName(s grammar.TableSymbol) string {
	key := s.Kind.String() + ":" + s.Value
	if res, found := w.lexicals[key]; found {
		return res
	}

	var res, body string
	if s.Kind == grammar.PatternSymbol {
		res = w.unique("pattern_" + strconv.Itoa(len(w.lexical)+1))
		body = patternBody(s.Value)
	} else {
		res = w.unique(s.Kind.String() + "_" + mangleLexical(s.Value))
		body = "/* " + s.String() + " */ "
	}

	w.lexicals[key] = res
	w.lexical = append(w.lexical, res)
	w.bodies[res] = body
	return res
}

func mangleLexical(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, value)
}

// patternBody renders single-character pattern as character ranges if possible.
func patternBody(pattern string) string {
	comment := "/* " + strings.ReplaceAll(pattern, "*/", "*\\/") + " */ "
	re, e := syntax.Parse(pattern, syntax.Perl)
	if e != nil {
		return comment
	}

	var ranges []rune
	switch re.Op {
	case syntax.OpLiteral:
		if len(re.Rune) != 1 {
			return comment
		}
		ranges = []rune{re.Rune[0], re.Rune[0]}
	case syntax.OpCharClass:
		ranges = re.Rune
	case syntax.OpAnyCharNotNL:
		ranges = []rune{0, '\n' - 1, '\n' + 1, unicode.MaxRune}
	case syntax.OpAnyChar:
		ranges = []rune{0, unicode.MaxRune}
	default:
		return comment
	}

	if len(ranges) == 0 || len(ranges) > maxRanges*2 {
		return comment
	}

	parts := make([]string, 0, len(ranges)/2)
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if lo == hi {
			parts = append(parts, strconv.Quote(string(lo)))
		} else {
			parts = append(parts, strconv.Quote(string(lo))+" … "+strconv.Quote(string(hi)))
		}
	}
	return strings.Join(parts, " | ") + " "
}
