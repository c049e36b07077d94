package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ava12/earley/grammar"
	"github.com/ava12/earley/internal/test"
)

const sumGrammar = `
# sums of single digits
sum -> sum "+" digit {% add %} | digit {% id %}
digit -> [0-9] {% id %}
`

type result struct {
	code           int
	stdout, stderr string
}

func runArgs(stdin string, args ...string) result {
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code, stdout.String(), stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	test.ExpectNoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompileJSON(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "sum.ne", sumGrammar)
	out := filepath.Join(dir, "sum.json")

	r := runArgs("", "compile", "-b", "json", "-o", out, src)
	test.ExpectInt(t, exitOK, r.code)
	test.ExpectString(t, "", r.stderr)

	content, e := os.ReadFile(out)
	test.ExpectNoError(t, e)
	table, e := grammar.ParseTableJSON(content)
	test.ExpectNoError(t, e)
	test.ExpectString(t, "sum", table.Start)
	test.ExpectInt(t, 3, len(table.Rules))
}

func TestCompileGo(t *testing.T) {
	r := runArgs(sumGrammar, "compile", "-p", "sums", "-e", "Sum", "-")
	test.ExpectInt(t, exitOK, r.code)
	test.Assert(t, strings.Contains(r.stdout, "package sums\n"), "package expected in:\n%s", r.stdout)
	test.Assert(t, strings.Contains(r.stdout, "var Sum = &grammar.Table{"), "variable expected in:\n%s", r.stdout)
}

func TestCompileLint(t *testing.T) {
	r := runArgs("main -> item\nlost -> \"x\"", "compile", "-b", "yaml", "-")
	test.ExpectInt(t, exitOK, r.code)
	expected := "WARN\tUndefined symbol `item` used.\nWARN\tRule `lost` is unreachable from start symbol `main`.\n"
	test.ExpectString(t, expected, r.stderr)

	r = runArgs("main -> item", "compile", "-q", "-b", "yaml", "-")
	test.ExpectInt(t, exitOK, r.code)
	test.ExpectString(t, "", r.stderr)
}

func TestTest(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "sum.ne", sumGrammar)

	r := runArgs("", "test", "-i", "1+2", src)
	test.ExpectInt(t, exitOK, r.code)
	for _, part := range []string{
		"Table length: 4\n",
		"Number of parses: 1\n",
		"Parse Charts\nChart: 0\n0: {sum →  ● sum \"+\" digit}, from: 0\n",
		"\nChart: 3\n",
		"\n\nParse results: \n",
	} {
		test.Assert(t, strings.Contains(r.stdout, part), "%q not found in:\n%s", part, r.stdout)
	}

	r = runArgs("3", "test", "-q", src)
	test.ExpectInt(t, exitOK, r.code)
	test.ExpectString(t, "- \"3\"\n", r.stdout)

	r = runArgs("", "test", "-q", "-i", "1+", src)
	test.ExpectInt(t, exitOK, r.code)
	test.ExpectString(t, "[]\n", r.stdout)

	r = runArgs("", "test", "-i", "1-2", src)
	test.ExpectInt(t, exitFailure, r.code)
	test.Assert(t, strings.Contains(r.stderr, "Syntax error at line 1 col 2"), "syntax error expected, got %s", r.stderr)
}

func TestUnparse(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "sum.ne", sumGrammar)
	table := filepath.Join(dir, "sum.yaml")
	r := runArgs("", "compile", "-q", "-b", "yaml", "-o", table, src)
	test.ExpectInt(t, exitOK, r.code)

	r = runArgs("", "unparse", "-c", "5", "-d", "4", "--seed", "7", table)
	test.ExpectInt(t, exitOK, r.code)
	lines := strings.Split(strings.TrimSuffix(r.stdout, "\n"), "\n")
	test.ExpectInt(t, 5, len(lines))
	for _, line := range lines {
		test.Assert(t, len(line) > 0 && len(line) <= 5, "unexpected sentence %q", line)
	}

	r2 := runArgs("", "unparse", "-c", "5", "-d", "4", "--seed", "7", table)
	test.ExpectString(t, r.stdout, r2.stdout)
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "sum.ne", sumGrammar+"lost -> \"x\"\n")
	config := writeFile(t, dir, "earley.yaml", "compile:\n  backend: ebnf\n  export: sums\n  quiet: true\n")

	r := runArgs("", "--config", config, "compile", src)
	test.ExpectInt(t, exitOK, r.code)
	test.ExpectString(t, "", r.stderr)
	test.Assert(t, strings.HasPrefix(r.stdout, "// sums: generated with earley "), "EBNF expected, got:\n%s", r.stdout)

	r = runArgs("", "--config", config, "compile", "-b", "json", src)
	test.ExpectInt(t, exitOK, r.code)
	test.Assert(t, strings.HasPrefix(r.stdout, "{"), "JSON expected, got:\n%s", r.stdout)
}

func TestStdio(t *testing.T) {
	r := runArgs(sumGrammar, "compile", "-q", "-b", "json", "-o", "-", "-")
	test.ExpectInt(t, exitOK, r.code)
	test.ExpectString(t, "", r.stderr)
	table, e := grammar.ParseTableJSON([]byte(r.stdout))
	test.ExpectNoError(t, e)
	test.ExpectString(t, "sum", table.Start)

	dir := t.TempDir()
	src := writeFile(t, dir, "sum.ne", sumGrammar)
	r = runArgs("7", "test", "-q", "-i", "-", "-o", "-", src)
	test.ExpectInt(t, exitOK, r.code)
	test.ExpectString(t, "- \"7\"\n", r.stdout)
}

func TestExitCodes(t *testing.T) {
	test.ExpectInt(t, exitUsage, runArgs("", "frobnicate").code)
	test.ExpectInt(t, exitUsage, runArgs("", "compile").code)
	test.ExpectInt(t, exitUsage, runArgs("", "--config", "/nonexistent/earley.yaml", "compile", "-").code)
	test.ExpectInt(t, exitFailure, runArgs("main -> (", "compile", "-").code)
	test.ExpectInt(t, exitFailure, runArgs("main -> \"a\"", "compile", "-b", "nope", "-").code)
	test.ExpectInt(t, exitFailure, runArgs("", "test", "-i", "a", "/nonexistent/file.ne").code)
}
