package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/ava12/earley/grammar"
	"github.com/ava12/earley/internal/test"
	"github.com/ava12/earley/langdef"
	"github.com/ava12/earley/lexer"
	"github.com/ava12/earley/parser"
)

func compileString(t *testing.T, src string, opts *Options) *Compiler {
	t.Helper()
	g, e := langdef.ParseString("", src)
	test.ExpectNoError(t, e)
	c, e := Compile(g, opts)
	test.ExpectNoError(t, e)
	return c
}

func compileError(t *testing.T, src string, code int) {
	t.Helper()
	g, e := langdef.ParseString("", src)
	test.ExpectNoError(t, e)
	_, e = Compile(g, nil)
	test.ExpectErrorCode(t, code, e)
}

func renderRules(rules []grammar.TableRule) string {
	lines := make([]string, len(rules))
	for i, r := range rules {
		parts := make([]string, 0, len(r.Symbols)+2)
		parts = append(parts, r.Name, "->")
		for _, s := range r.Symbols {
			parts = append(parts, s.String())
		}
		if r.Postprocess != "" {
			parts = append(parts, "{"+r.Postprocess+"}")
		}
		lines[i] = strings.Join(parts, " ")
	}
	return strings.Join(lines, "\n")
}

func newParser(t *testing.T, c *Compiler) *parser.Parser {
	t.Helper()
	g, e := grammar.FromCompiled(c.Table(), nil)
	test.ExpectNoError(t, e)
	return parser.New(g, nil)
}

func parse(t *testing.T, c *Compiler, input string) []any {
	t.Helper()
	p := newParser(t, c)
	test.ExpectNoError(t, p.Feed(input))
	return p.Results()
}

func TestEBNFPlus(t *testing.T) {
	c := compileString(t, `S -> "a":+ {% id %}`, nil)
	expected := `S$ebnf$1 -> "a"
S$ebnf$1 -> S$ebnf$1 "a" {arrpush}
S -> S$ebnf$1 {id}`
	test.ExpectString(t, expected, renderRules(c.Rules))
	test.ExpectDeep(t, []any{[]any{"a", "a", "a"}}, parse(t, c, "aaa"))
	test.ExpectInt(t, 0, len(parse(t, c, "")))
}

func TestEBNFOptional(t *testing.T) {
	c := compileString(t, `S -> "a":? {% id %}`, nil)
	test.ExpectDeep(t, []any{nil}, parse(t, c, ""))
	test.ExpectDeep(t, []any{"a"}, parse(t, c, "a"))
}

func TestEBNFStar(t *testing.T) {
	c := compileString(t, `S -> "a":* {% id %}`, nil)
	test.ExpectDeep(t, []any{[]any{}}, parse(t, c, ""))
	test.ExpectDeep(t, []any{[]any{"a", "a"}}, parse(t, c, "aa"))
}

func TestStringLiteral(t *testing.T) {
	c := compileString(t, `S -> "abc" {% id %}`, nil)
	expected := `S$string$1 -> "a" "b" "c" {joiner}
S -> S$string$1 {id}`
	test.ExpectString(t, expected, renderRules(c.Rules))
	test.ExpectDeep(t, []any{"abc"}, parse(t, c, "abc"))

	p := newParser(t, c)
	e := p.Feed("abd")
	var se *parser.SyntaxError
	test.Assert(t, errors.As(e, &se), "syntax error expected, got %v", e)
	test.ExpectInt(t, 2, se.Offset)
	test.Assert(t, len(se.Expected) > 0, "no expected symbols")
}

func TestDroppedTokens(t *testing.T) {
	c := compileString(t, `S -> null "a" "" null`, nil)
	test.ExpectString(t, `S -> "a"`, renderRules(c.Rules))
}

func TestSubExpressions(t *testing.T) {
	c := compileString(t, `S -> ("a" | "b") ("c") [0-9]`, nil)
	expected := `S$subexpression$1 -> "a"
S$subexpression$1 -> "b"
S$subexpression$2 -> "c"
S -> S$subexpression$1 S$subexpression$2 /[0-9]/`
	test.ExpectString(t, expected, renderRules(c.Rules))
	test.ExpectInt(t, 1, len(parse(t, c, "bc7")))
}

func TestEBNFSubExpression(t *testing.T) {
	c := compileString(t, `S -> ("a" | "b"):+`, nil)
	expected := `S$subexpression$1 -> "a"
S$subexpression$1 -> "b"
S$ebnf$1 -> S$subexpression$1
S$ebnf$1 -> S$ebnf$1 S$subexpression$1 {arrpush}
S -> S$ebnf$1`
	test.ExpectString(t, expected, renderRules(c.Rules))
	test.ExpectInt(t, 1, len(parse(t, c, "abba")))
}

func TestMacroCall(t *testing.T) {
	c := compileString(t, "m[X] -> $X $X\nS -> m[\"a\"]", nil)
	expected := `S$macrocall$2 -> "a"
S$macrocall$1 -> S$macrocall$2 S$macrocall$2
S -> S$macrocall$1`
	test.ExpectString(t, expected, renderRules(c.Rules))
	test.ExpectInt(t, 1, len(parse(t, c, "aa")))
}

func TestNestedMacroEnvironment(t *testing.T) {
	src := `
inner[Y] -> $Y $X {% joiner %}
outer[X] -> inner["!"] {% id %}
S -> outer["a"] {% id %}
`
	c := compileString(t, src, nil)
	test.ExpectDeep(t, []any{"!a"}, parse(t, c, "!a"))
}

func TestMacroErrors(t *testing.T) {
	compileError(t, "m[X] -> $X\nS -> m[\"a\", \"b\"]", ArgumentCountError)
	compileError(t, "m[X, Y] -> $X $Y\nS -> m[\"a\"]", ArgumentCountError)
	compileError(t, "S -> m[\"a\"]", UnknownMacroError)
	compileError(t, "S -> $X", UnboundVariableError)
	compileError(t, "m[X] -> $Y\nS -> m[\"a\"]", UnboundVariableError)
}

func TestStartSymbol(t *testing.T) {
	c := compileString(t, "m[X] -> $X\nA -> \"a\"\nB -> A", nil)
	test.ExpectString(t, "A", c.Start)
	test.ExpectString(t, "A", c.Table().Start)
}

func TestNoActions(t *testing.T) {
	c := compileString(t, "@{% code %}\nS -> \"ab\":? {% id %}", &Options{NoActions: true})
	test.ExpectInt(t, 0, len(c.Body))
	for _, r := range c.Rules {
		test.ExpectString(t, "", r.Postprocess)
	}

	c = compileString(t, "@{% code %}\nS -> \"a\"", &Options{Version: "1.2.3"})
	test.ExpectDeep(t, []string{"code"}, c.Body)
	test.ExpectString(t, "1.2.3", c.Version)
}

func TestCustomLexer(t *testing.T) {
	re := regexp.MustCompile(`^(?:\s+|(\w+))`)
	lexer.Register("test-words", func() lexer.Lexer {
		return lexer.NewRegexpLexer(re, []lexer.TokenType{{Name: "word"}})
	})

	c := compileString(t, "@lexer \"test-words\"\nS -> %word \"and\" %word", nil)
	test.ExpectString(t, `S -> %word "and" %word`, renderRules(c.Rules))
	test.ExpectDeep(t, []string{"word"}, c.CustomTokens)
	test.ExpectString(t, "test-words", c.Table().Lexer)

	results := parse(t, c, "cats and dogs")
	test.ExpectInt(t, 1, len(results))
	children := results[0].([]any)
	test.ExpectString(t, "dogs", children[2].(*lexer.Token).Value())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	test.ExpectNoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.ne", "@include \"main.ne\"\n@lexer \"lib-lexer\"\nnum -> [0-9]:+ {% joiner %}\n")
	mainPath := writeFile(t, dir, "main.ne", "@include \"lib.ne\"\n@include \"lib.ne\"\nmain -> num \"+\" num {% joiner %}\n")

	src, e := os.ReadFile(mainPath)
	test.ExpectNoError(t, e)
	g, e := langdef.ParseBytes(mainPath, src)
	test.ExpectNoError(t, e)
	c, e := Compile(g, &Options{Path: mainPath})
	test.ExpectNoError(t, e)

	test.ExpectString(t, "main", c.Start)
	test.ExpectString(t, "lib-lexer", c.Config.Lexer)
	test.ExpectInt(t, 4, len(c.Rules))

	c.Config.Lexer = ""
	test.ExpectDeep(t, []any{"12+3"}, parse(t, c, "12+3"))
}

func TestIncludeReader(t *testing.T) {
	files := map[string]string{
		"/grammars/main.ne": "@include \"lib/a.ne\"\nS -> A",
		"/grammars/lib/a.ne": "A -> \"a\"",
	}
	var read []string
	readFile := func(name string) ([]byte, error) {
		read = append(read, filepath.ToSlash(name))
		content, found := files[filepath.ToSlash(name)]
		if !found {
			return nil, os.ErrNotExist
		}
		return []byte(content), nil
	}

	g, e := langdef.ParseString("main.ne", files["/grammars/main.ne"])
	test.ExpectNoError(t, e)
	c, e := Compile(g, &Options{Path: "/grammars/main.ne", ReadFile: readFile})
	test.ExpectNoError(t, e)
	test.ExpectDeep(t, []string{"/grammars/lib/a.ne"}, read)
	test.ExpectString(t, "A -> \"a\"\nS -> A", renderRules(c.Rules))

	g, e = langdef.ParseString("main.ne", "@include \"missing.ne\"")
	test.ExpectNoError(t, e)
	_, e = Compile(g, &Options{Path: "/grammars/main.ne", ReadFile: readFile})
	test.ExpectErrorCode(t, IncludeError, e)
}

func TestBuiltinWhitespace(t *testing.T) {
	c := compileString(t, "@builtin \"whitespace.ne\"\nmain -> _ \"a\" __ \"b\" _ {% joiner %}", nil)
	test.ExpectString(t, "main", c.Start)
	test.ExpectDeep(t, []any{"ab"}, parse(t, c, " a \t\nb"))

	p := newParser(t, c)
	test.Assert(t, p.Feed("ab") != nil, "mandatory whitespace expected")
}

func TestBuiltinNumber(t *testing.T) {
	c := compileString(t, "@builtin \"number.ne\"\nmain -> decimal {% id %}", nil)
	test.ExpectDeep(t, []any{"-12.5"}, parse(t, c, "-12.5"))
	test.ExpectDeep(t, []any{"7"}, parse(t, c, "7"))
}

func TestBuiltinString(t *testing.T) {
	c := compileString(t, "@builtin \"string.ne\"\nmain -> dqstring {% id %}", nil)
	test.ExpectDeep(t, []any{`"a\"b"`}, parse(t, c, `"a\"b"`))
}

type fakeBackend struct{}

func (fakeBackend) Render(c *Compiler, exportName string) ([]byte, error) {
	return []byte(exportName + ":" + c.Start + ":" + c.Config.Preprocessor), nil
}

func TestGenerate(t *testing.T) {
	RegisterBackend("test-fake", fakeBackend{})
	b, found := LookupBackend("test-fake")
	test.Assert(t, found && b != nil, "registered backend not found")

	c := compileString(t, "@preprocessor \"test-fake\"\nS -> \"a\"", nil)
	content, e := c.Generate("grammar", nil)
	test.ExpectNoError(t, e)
	test.ExpectString(t, "grammar:S:test-fake", string(content))

	c = compileString(t, "@preprocessor \"unknown-backend\"\nS -> \"a\"", nil)
	_, e = c.Generate("grammar", nil)
	test.ExpectErrorCode(t, UnknownBackendError, e)

	c = compileString(t, "S -> \"a\"", nil)
	content, e = c.Generate("g", fakeBackend{})
	test.ExpectNoError(t, e)
	test.ExpectString(t, "g:S:"+DefaultBackend, string(content))
}
