/*
earley is a console utility compiling grammar descriptions, testing compiled grammars,
and generating random sentences. Usage is

	earley [--config <file>] compile [-o <file>] [-e <name>] [-b <key>] [-p <name>] [-n] [-q] <file>
	earley [--config <file>] test [-i <input>] [-s <name>] [-o <file>] [-n] [-q] <file>
	earley [--config <file>] unparse [-s <name>] [-c <n>] [-d <n>] [--seed <n>] [-o <file>] <file>

compile translates grammar description to Go source (default), JSON, YAML, or EBNF listing,
backend is selected with -b flag or @preprocessor directive; lint warnings are written to stderr unless -q is set.

test parses input (-i flag or stdin) and prints the parse chart (unless -q is set) and parse results.

unparse prints random sentences, -d limits derivation depth.

Grammar file for test and unparse is either a grammar description or a table generated with JSON or YAML backend
(.json, .yaml, or .yml suffix). --config names YAML file with flag defaults for each command.

Exit code is 2 for usage errors and 3 for processing errors.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/ava12/earley"
)

const (
	exitOK      = 0
	exitUsage   = 2
	exitFailure = 3
)

// stdioArg replaces lone "-" arguments before parsing, kingpin reads them as short flags.
const stdioArg = "\x00stdio"

func stdioArgs(args []string) []string {
	res := make([]string, len(args))
	for i, arg := range args {
		if arg == "-" {
			arg = stdioArg
		}
		res[i] = arg
	}
	return res
}

func isStdio(name string) bool {
	return name == "" || name == "-" || name == stdioArg
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	s, e := loadSettings(configPath(args))
	if e != nil {
		fmt.Fprintln(stderr, e.Error())
		return exitUsage
	}

	terminated := -1
	ka := kingpin.New("earley", "Earley parser toolkit: grammar compiler, tester, and sentence generator.")
	ka.Version(earley.Version)
	ka.UsageWriter(stderr)
	ka.ErrorWriter(stderr)
	ka.Terminate(func(status int) { terminated = status })
	ka.Flag("config", "YAML file containing flag defaults.").String()

	co := &compileOptions{}
	compileCmd := ka.Command("compile", "Compile grammar description.")
	compileCmd.Arg("file", "Grammar description file, - for stdin.").Required().StringVar(&co.file)
	compileCmd.Flag("out", "Output file, default is stdout.").Short('o').Default(orDefault(s.Compile.Out, "-")).StringVar(&co.out)
	compileCmd.Flag("export", "Exported variable name.").Short('e').Default(orDefault(s.Compile.Export, "grammar")).StringVar(&co.export)
	compileCmd.Flag("backend", "Code emission backend, overrides @preprocessor directive.").Short('b').Default(s.Compile.Backend).StringVar(&co.backend)
	compileCmd.Flag("package", "Go package name.").Short('p').Default(s.Compile.Package).StringVar(&co.pkg)
	compileCmd.Flag("no-actions", "Drop body code and postprocess names.").Short('n').Default(boolDefault(s.Compile.NoActions)).BoolVar(&co.noActions)
	compileCmd.Flag("quiet", "Suppress lint warnings.").Short('q').Default(boolDefault(s.Compile.Quiet)).BoolVar(&co.quiet)

	to := &testOptions{}
	testCmd := ka.Command("test", "Parse input and print the chart and results.")
	testCmd.Arg("file", "Grammar description or compiled table file.").Required().StringVar(&to.file)
	testCmd.Flag("input", "Input string, - or no flag means stdin.").Short('i').StringVar(&to.input)
	testCmd.Flag("start", "Start symbol, default is the grammar start symbol.").Short('s').Default(s.Test.Start).StringVar(&to.start)
	testCmd.Flag("out", "Output file, default is stdout.").Short('o').Default("-").StringVar(&to.out)
	testCmd.Flag("no-actions", "Ignore postprocess actions.").Short('n').Default(boolDefault(s.Test.NoActions)).BoolVar(&to.noActions)
	testCmd.Flag("quiet", "Print parse results only.").Short('q').Default(boolDefault(s.Test.Quiet)).BoolVar(&to.quiet)

	uo := &unparseOptions{}
	depth := -1
	if s.Unparse.Depth != nil {
		depth = *s.Unparse.Depth
	}
	unparseCmd := ka.Command("unparse", "Generate random sentences.")
	unparseCmd.Arg("file", "Grammar description or compiled table file.").Required().StringVar(&uo.file)
	unparseCmd.Flag("start", "Start symbol, default is the grammar start symbol.").Short('s').Default(s.Unparse.Start).StringVar(&uo.start)
	unparseCmd.Flag("count", "Number of sentences, separated with line feeds.").Short('c').Default(intDefault(s.Unparse.Count, 1)).IntVar(&uo.count)
	unparseCmd.Flag("depth", "Derivation depth bound, -1 means unbounded.").Short('d').Default(fmt.Sprint(depth)).IntVar(&uo.depth)
	unparseCmd.Flag("seed", "Random seed, 0 means current time.").Default(fmt.Sprint(s.Unparse.Seed)).Int64Var(&uo.seed)
	unparseCmd.Flag("out", "Output file, default is stdout.").Short('o').Default("-").StringVar(&uo.out)

	command, e := ka.Parse(stdioArgs(args))
	if terminated >= 0 {
		return terminated
	}
	if e != nil {
		fmt.Fprintln(stderr, e.Error())
		return exitUsage
	}

	a := &app{stdin, stdout, stderr}
	switch command {
	case compileCmd.FullCommand():
		e = a.compile(co)
	case testCmd.FullCommand():
		e = a.test(to)
	case unparseCmd.FullCommand():
		e = a.unparse(uo)
	}

	if e != nil {
		fmt.Fprintln(stderr, e.Error())
		return exitFailure
	}
	return exitOK
}

func (a *app) readFile(name string) ([]byte, error) {
	if isStdio(name) {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(name)
}

func (a *app) writeFile(name string, content []byte) error {
	if isStdio(name) {
		_, e := a.stdout.Write(content)
		return e
	}
	return os.WriteFile(name, content, 0o666)
}
