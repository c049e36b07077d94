package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ava12/earley"
	"github.com/ava12/earley/compiler"
	"github.com/ava12/earley/generate"
	"github.com/ava12/earley/grammar"
	"github.com/ava12/earley/langdef"
	"github.com/ava12/earley/lint"
	"github.com/ava12/earley/parser"
	"github.com/ava12/earley/unparse"
)

type compileOptions struct {
	file, out, export, backend, pkg string
	noActions, quiet                bool
}

type testOptions struct {
	file, input, start, out string
	noActions, quiet        bool
}

type unparseOptions struct {
	file, start, out string
	count, depth     int
	seed             int64
}

func (a *app) compileFile(name string, noActions bool) (*compiler.Compiler, error) {
	path := name
	if isStdio(name) {
		name, path = "-", ""
	}

	content, e := a.readFile(name)
	if e != nil {
		return nil, e
	}

	g, e := langdef.ParseBytes(name, content)
	if e != nil {
		return nil, e
	}

	return compiler.Compile(g, &compiler.Options{NoActions: noActions, Path: path, Version: earley.Version})
}

func (a *app) compile(o *compileOptions) error {
	c, e := a.compileFile(o.file, o.noActions)
	if e != nil {
		return e
	}

	if !o.quiet {
		e = lint.Write(a.stderr, lint.Check(c.Table()))
		if e != nil {
			return e
		}
	}

	if o.backend != "" {
		c.Config.Preprocessor = o.backend
	}
	if c.Config.Preprocessor == "" {
		c.Config.Preprocessor = compiler.DefaultBackend
	}

	var b compiler.Backend
	if registered, found := compiler.LookupBackend(c.Config.Preprocessor); found && o.pkg != "" {
		if _, isGo := registered.(generate.Go); isGo {
			b = generate.Go{Package: o.pkg}
		}
	}

	content, e := c.Generate(o.export, b)
	if e != nil {
		return e
	}
	return a.writeFile(o.out, content)
}

// loadTable reads compiled table, files other than JSON or YAML are compiled as grammar descriptions.
func (a *app) loadTable(name string) (*grammar.Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
	default:
		c, e := a.compileFile(name, false)
		if e != nil {
			return nil, e
		}
		return c.Table(), nil
	}

	content, e := a.readFile(name)
	if e != nil {
		return nil, e
	}
	if strings.ToLower(filepath.Ext(name)) == ".json" {
		return grammar.ParseTableJSON(content)
	}
	return grammar.ParseTableYAML(content)
}

// childActions returns actions for all non-builtin postprocess names, they return children as is.
func childActions(t *grammar.Table) map[string]grammar.Action {
	res := map[string]grammar.Action{}
	for _, r := range t.Rules {
		if _, found := grammar.Builtins[r.Postprocess]; r.Postprocess != "" && !found {
			res[r.Postprocess] = func(d []any, _ int) any { return d }
		}
	}
	return res
}

func (a *app) test(o *testOptions) error {
	table, e := a.loadTable(o.file)
	if e != nil {
		return e
	}

	g, e := grammar.FromCompiled(table, &grammar.Options{
		Start:     o.start,
		Actions:   childActions(table),
		NoActions: o.noActions,
	})
	if e != nil {
		return e
	}

	input := o.input
	if isStdio(input) {
		content, e := io.ReadAll(a.stdin)
		if e != nil {
			return e
		}
		input = string(content)
	}

	p := parser.New(g, &parser.Options{KeepHistory: true})
	e = p.Feed(input)
	if e != nil {
		return e
	}

	var buffer bytes.Buffer
	if !o.quiet {
		writeTable(&buffer, p)
	}
	e = writeResults(&buffer, p.Results())
	if e != nil {
		return e
	}
	return a.writeFile(o.out, buffer.Bytes())
}

func writeTable(w io.Writer, p *parser.Parser) {
	table := p.Table()
	fmt.Fprintf(w, "Table length: %d\n", len(table))
	fmt.Fprintf(w, "Number of parses: %d\n", len(p.Results()))
	fmt.Fprint(w, "Parse Charts")
	for i, column := range table {
		fmt.Fprintf(w, "\nChart: %d\n", i)
		for j, s := range column.States() {
			fmt.Fprintf(w, "%d: %s\n", j, s.String())
		}
	}
	fmt.Fprint(w, "\n\nParse results: \n")
}

func writeResults(w io.Writer, results []any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if results == nil {
		results = []any{}
	}
	e := encoder.Encode(results)
	if e == nil {
		e = encoder.Close()
	}
	return e
}

func (a *app) unparse(o *unparseOptions) error {
	table, e := a.loadTable(o.file)
	if e != nil {
		return e
	}

	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	var buffer bytes.Buffer
	for i := 0; i < o.count; i++ {
		s, e := unparse.Generate(table, o.start, o.depth, r)
		if e != nil {
			return e
		}
		buffer.WriteString(s)
		if o.count > 1 {
			buffer.WriteString("\n")
		}
	}
	return a.writeFile(o.out, buffer.Bytes())
}
