package grammar

import (
	"regexp"
	"testing"

	"github.com/ava12/earley/internal/test"
	"github.com/ava12/earley/lexer"
)

func TestRuleIDsIncrease(t *testing.T) {
	prev := NewRule("a", nil, nil)
	for i := 0; i < 10; i++ {
		r := NewRule("a", nil, nil)
		test.Assert(t, r.ID > prev.ID, "rule id %d is not greater than %d", r.ID, prev.ID)
		prev = r
	}
}

func TestRuleString(t *testing.T) {
	r := NewRule("expr", []Symbol{Nonterminal("expr"), Literal("+"), Token("num"), MustPattern("[0-9]")}, nil)
	test.ExpectString(t, `expr → expr "+" %num /[0-9]/`, r.String())
	test.ExpectString(t, `expr → expr "+" ● %num /[0-9]/`, r.StringAt(2))
	test.ExpectString(t, `expr →  ● expr "+" %num /[0-9]/`, r.StringAt(0))
	test.ExpectString(t, `expr → expr "+" %num /[0-9]/ ● `, r.StringAt(4))
}

func TestSymbolMatch(t *testing.T) {
	tok := lexer.NewToken("num", "12", "0x0c", 0, 1, 1)
	samples := []struct {
		s        Symbol
		expected bool
	}{
		{Nonterminal("num"), false},
		{Literal("0x0c"), true},
		{Literal("12"), false},
		{Token("num"), true},
		{Token("name"), false},
		{MustPattern("[0-9]+"), true},
		{MustPattern("[0-9]"), false},
		{PredicateOf("even", func(t *lexer.Token) bool { return t.Value() == "12" }), true},
	}
	for i, s := range samples {
		if s.s.Match(tok) != s.expected {
			t.Errorf("sample #%d (%s): expecting %v", i, s.s.Display(), s.expected)
		}
	}
}

func TestBadPattern(t *testing.T) {
	_, e := Pattern("[a-")
	test.ExpectErrorCode(t, BadPatternError, e)
}

func TestNew(t *testing.T) {
	_, e := New(nil, "")
	test.ExpectErrorCode(t, EmptyGrammarError, e)

	g, e := New(nil, "s")
	test.ExpectNoError(t, e)
	test.ExpectString(t, "s", g.Start)
	test.ExpectInt(t, 0, len(g.ByName("s")))

	a1 := NewRule("a", nil, nil)
	b := NewRule("b", nil, nil)
	a2 := NewRule("a", []Symbol{Literal("x")}, nil)
	g, e = New([]*Rule{a1, b, a2}, "")
	test.ExpectNoError(t, e)
	test.ExpectString(t, "a", g.Start)
	as := g.ByName("a")
	test.Assert(t, len(as) == 2 && as[0] == a1 && as[1] == a2, "unexpected alternatives: %v", as)
	test.ExpectInt(t, 3, len(g.Rules()))
	_, isStream := g.NewLexer().(*lexer.StreamLexer)
	test.Assert(t, isStream, "expecting stream lexer")
}

func TestBuiltins(t *testing.T) {
	test.ExpectDeep(t, "abc", Joiner([]any{"a", "b", "c"}, 0))
	test.ExpectDeep(t, "-12.5", Joiner([]any{"-", []any{"1", "2"}, []any{".", []any{"5"}}, nil}, 0))
	test.ExpectDeep(t, []any{1, 2, 3}, ArrConcat([]any{1, []any{2, 3}}, 0))
	head := []any{1, 2}
	test.ExpectDeep(t, []any{1, 2, 3}, ArrPush([]any{head, 3}, 0))
	test.ExpectDeep(t, []any{1, 2, 4}, ArrPush([]any{head, 4}, 0))
	test.Assert(t, Nuller([]any{1}, 0) == nil, "nuller returned non-nil")
	test.ExpectDeep(t, "x", ID([]any{"x", "y"}, 0))
}

var tableJSON = `{
	"lexer": "words",
	"rules": [
		{"name": "s", "symbols": [{"kind": "token", "value": "word"}, {"kind": "rule", "value": "s$ebnf$1"}], "postprocess": "pair"},
		{"name": "s$ebnf$1", "symbols": []},
		{"name": "s$ebnf$1", "symbols": [{"kind": "rule", "value": "s$ebnf$1"}, {"kind": "token", "value": "upper"}], "postprocess": "arrpush"}
	],
	"start": "s"
}`

var tableYAML = `
lexer: words
rules:
  - name: s
    symbols: [{kind: token, value: word}, {kind: rule, value: s$ebnf$1}]
    postprocess: pair
  - name: s$ebnf$1
    symbols: []
  - name: s$ebnf$1
    symbols: [{kind: rule, value: s$ebnf$1}, {kind: token, value: upper}]
    postprocess: arrpush
start: s
`

func wordsLexer() lexer.Lexer {
	return lexer.NewRegexpLexer(regexp.MustCompile(`(\w+)|\s+`), []lexer.TokenType{{Name: "word"}})
}

func pair(d []any, _ int) any {
	return d
}

func isUpper(t *lexer.Token) bool {
	return t.Value() != "" && t.Value()[0] >= 'A' && t.Value()[0] <= 'Z'
}

func checkTable(t *testing.T, table *Table) {
	test.ExpectString(t, "words", table.Lexer)
	test.ExpectString(t, "s", table.Start)
	test.ExpectInt(t, 3, len(table.Rules))
	test.ExpectInt(t, int(TokenSymbol), int(table.Rules[0].Symbols[0].Kind))

	opts := &Options{
		Actions:    map[string]Action{"pair": pair},
		Predicates: map[string]Predicate{"upper": isUpper},
		Lexers:     map[string]lexer.Factory{"words": wordsLexer},
	}
	g, e := FromCompiled(table, opts)
	test.ExpectNoError(t, e)
	test.ExpectString(t, "s", g.Start)
	rs := g.ByName("s$ebnf$1")
	test.ExpectInt(t, 2, len(rs))
	test.ExpectInt(t, int(PredicateSymbol), int(rs[1].Symbols[1].Kind()))
	test.ExpectInt(t, int(TokenSymbol), int(g.ByName("s")[0].Symbols[0].Kind()))
	test.Assert(t, rs[1].Postprocess != nil, "arrpush is not resolved")
	test.Assert(t, rs[0].Postprocess == nil, "unexpected action")
	_, isRegexp := g.NewLexer().(*lexer.RegexpLexer)
	test.Assert(t, isRegexp, "expecting regexp lexer")
}

func TestFromCompiledJSON(t *testing.T) {
	table, e := ParseTableJSON([]byte(tableJSON))
	test.ExpectNoError(t, e)
	checkTable(t, table)
}

func TestFromCompiledYAML(t *testing.T) {
	table, e := ParseTableYAML([]byte(tableYAML))
	test.ExpectNoError(t, e)
	checkTable(t, table)
}

func TestBadTable(t *testing.T) {
	_, e := ParseTableJSON([]byte(`{"rules": [{"name": "s", "symbols": [{"kind": "bogus", "value": "x"}]}]}`))
	test.ExpectErrorCode(t, BadTableError, e)
	_, e = ParseTableYAML([]byte("rules: {"))
	test.ExpectErrorCode(t, BadTableError, e)
}

func TestFromCompiledErrors(t *testing.T) {
	table := func(lexerName, kind, value, action string) *Table {
		var k SymbolKind
		k.UnmarshalText([]byte(kind))
		return &Table{
			Lexer: lexerName,
			Rules: []TableRule{{Name: "s", Symbols: []TableSymbol{{k, value}}, Postprocess: action}},
			Start: "s",
		}
	}
	lexers := map[string]lexer.Factory{"words": wordsLexer}
	samples := []struct {
		t    *Table
		code int
	}{
		{table("nope", "literal", "a", ""), UnknownLexerError},
		{table("", "literal", "a", "nope"), UnknownActionError},
		{table("", "predicate", "nope", ""), UnknownPredicateError},
		{table("", "pattern", "(", ""), BadPatternError},
		{table("words", "token", "number", ""), UnresolvedTokenError},
	}
	for _, s := range samples {
		_, e := FromCompiled(s.t, &Options{Lexers: lexers})
		test.ExpectErrorCode(t, s.code, e)
	}

	g, e := FromCompiled(table("", "literal", "a", "nope"), &Options{NoActions: true})
	test.ExpectNoError(t, e)
	test.Assert(t, g.ByName("s")[0].Postprocess == nil, "action is not cleared")

	g, e = FromCompiled(table("", "token", "number", ""), nil)
	test.ExpectNoError(t, e)
	test.ExpectInt(t, int(TokenSymbol), int(g.ByName("s")[0].Symbols[0].Kind()))

	g, e = FromCompiled(table("", "literal", "a", ""), &Options{Start: "t"})
	test.ExpectNoError(t, e)
	test.ExpectString(t, "t", g.Start)
}
