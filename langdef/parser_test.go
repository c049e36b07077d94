package langdef

import (
	"strings"
	"testing"

	"github.com/ava12/earley/ast"
	"github.com/ava12/earley/internal/test"
	"github.com/ava12/earley/lexer"
)

func render(g ast.Grammar) string {
	lines := make([]string, 0, len(g))
	for _, item := range g {
		switch v := item.(type) {
		case ast.Body:
			lines = append(lines, "@{% "+v.Code+" %}")
		case ast.Include:
			dir := "@include "
			if v.Builtin {
				dir = "@builtin "
			}
			lines = append(lines, dir+v.Path)
		case ast.Config:
			lines = append(lines, "@"+v.Key+" "+v.Value)
		case ast.Macro:
			lines = append(lines, v.Name+"["+strings.Join(v.Params, ", ")+"] -> "+joinExprs(v.Exprs))
		case ast.Production:
			lines = append(lines, v.Name+" -> "+joinExprs(v.Exprs))
		}
	}
	return strings.Join(lines, "\n")
}

func joinExprs(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, " | ")
}

func checkParse(t *testing.T, src, expected string) {
	t.Helper()
	g, e := ParseString("", src)
	test.ExpectNoError(t, e)
	test.ExpectString(t, expected, render(g))
}

func checkErrorCode(t *testing.T, samples []string, code int) {
	t.Helper()
	for _, src := range samples {
		_, e := ParseString("", src)
		test.ExpectErrorCode(t, code, e)
	}
}

func TestEmptyDescription(t *testing.T) {
	for _, src := range []string{"", " ", "\n", "# comment only\n"} {
		g, e := ParseString("", src)
		test.ExpectNoError(t, e)
		test.ExpectInt(t, 0, len(g))
	}
}

func TestUnexpectedEof(t *testing.T) {
	samples := []string{
		"foo",
		"@include",
		"@lexer",
		"m[X",
		"m[X,",
		"m[X]",
		"foo -> (\"a\"",
		"foo -> m[\"a\"",
	}
	checkErrorCode(t, samples, UnexpectedEofError)
}

func TestUnexpectedToken(t *testing.T) {
	samples := []string{
		"-> foo",
		"foo bar",
		"foo -> )",
		"foo -> \"a\" ]",
		"@include foo",
		"m[\"x\"] -> \"a\"",
		"m[X Y] -> $X",
		"foo -> (\"a\" ]",
		"%tok -> \"a\"",
	}
	checkErrorCode(t, samples, UnexpectedTokenError)
}

func TestUnknownDirective(t *testing.T) {
	checkErrorCode(t, []string{"@import \"foo.ne\""}, UnknownDirectiveError)
}

func TestInvalidEscape(t *testing.T) {
	checkErrorCode(t, []string{`foo -> "\q"`}, InvalidEscapeError)
}

func TestLexicalErrors(t *testing.T) {
	checkErrorCode(t, []string{"foo -> \"abc", "foo -> {% id", "foo -> %"}, lexer.BadTokenError)
	checkErrorCode(t, []string{"foo -> ^"}, lexer.WrongCharError)
}

func TestErrorPosition(t *testing.T) {
	_, e := ParseString("", "foo ->\n  \"a\" )")
	test.ExpectErrorCode(t, UnexpectedTokenError, e)
	test.ExpectString(t, "unexpected operator \")\", expecting directive or definition at line 2 col 7", e.Error())

	_, e = ParseString("test.ne", "foo \"a\"")
	test.ExpectString(t, "unexpected string \"\\\"a\\\"\", expecting arrow in test.ne at line 1 col 5", e.Error())
}

func TestProductions(t *testing.T) {
	src := `
# arithmetic
main -> sum {% id %}
sum  => sum "+" int {% add %}
      | int
int  → [0-9]:+ {% joiner %}
      | null
`
	expected := `main -> sum {% id %}
sum -> sum "+" int {% add %} | int
int -> [0-9]:+ {% joiner %} | null`
	checkParse(t, src, expected)
}

func TestEmptyAlternatives(t *testing.T) {
	checkParse(t, "a ->\nb -> | \"x\"", "a -> \nb ->  | \"x\"")
}

func TestTokens(t *testing.T) {
	src := `s -> %number "a\tb" [^"\\] ("x" | "y"):* s:? ""`
	expected := `s -> %number "a\tb" [^"\\] ("x" | "y"):* s:? ""`
	checkParse(t, src, expected)
}

func TestDirectives(t *testing.T) {
	src := `
@{%
const x = 1;
%}
@builtin "whitespace.ne"
@include "lib/num.ne"
@lexer words
@preprocessor "yaml"
main -> _ word _
`
	expected := `@{% const x = 1; %}
@builtin whitespace.ne
@include lib/num.ne
@lexer words
@preprocessor yaml
main -> _ word _`
	checkParse(t, src, expected)
}

func TestQuotedDirectiveValues(t *testing.T) {
	checkParse(t, "@lexer \"my-words\"\n@preprocessor \"go-table\"\nmain -> %word", "@lexer my-words\n@preprocessor go-table\nmain -> %word")
	checkErrorCode(t, []string{"@lexer my-words\nmain -> %word"}, lexer.WrongCharError)
}

func TestMacros(t *testing.T) {
	src := `
list[X, SEP] -> $X ($SEP $X):*
main -> list["a", ","] {% id %} | list[b:+, list[c, "|"]]
pair[X] -> $X $X
`
	expected := `list[X, SEP] -> $X ($SEP $X):*
main -> list["a", ","] {% id %} | list[b:+, list[c, "|"]]
pair[X] -> $X $X`
	checkParse(t, src, expected)
}

func TestMacroCallBeforeDefinition(t *testing.T) {
	checkParse(t, "a -> m[x]\nm[X] -> $X", "a -> m[x]\nm[X] -> $X")
	checkParse(t, "a -> m[x]:?\nb -> \"b\"", "a -> m[x]:?\nb -> \"b\"")
}

func TestParseBytes(t *testing.T) {
	g, e := ParseBytes("bytes.ne", []byte("a -> \"a\""))
	test.ExpectNoError(t, e)
	p, ok := g[0].(ast.Production)
	test.Assert(t, ok, "production expected, got %T", g[0])
	test.ExpectString(t, "a", p.Name)
	test.ExpectDeep(t, []ast.Token{ast.Literal{Value: "a"}}, p.Exprs[0].Tokens)
}
