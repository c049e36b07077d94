package generate

import (
	"bytes"
	"fmt"
	"go/format"

	"github.com/ava12/earley/compiler"
	"github.com/ava12/earley/grammar"
)

// DefaultPackage is the package name used by Go backend if none specified.
const DefaultPackage = "grammar"

var kindConsts = map[grammar.SymbolKind]string{
	grammar.NonterminalSymbol: "grammar.NonterminalSymbol",
	grammar.LiteralSymbol:     "grammar.LiteralSymbol",
	grammar.TokenSymbol:       "grammar.TokenSymbol",
	grammar.PatternSymbol:     "grammar.PatternSymbol",
	grammar.PredicateSymbol:   "grammar.PredicateSymbol",
}

// Go renders compiled grammar as Go source declaring a *grammar.Table variable named after export name.
// Body code is copied after import declaration, so it must not contain imports.
type Go struct {
	// Package is the name of generated package, DefaultPackage if empty.
	Package string
}

func (g Go) Render(c *compiler.Compiler, exportName string) ([]byte, error) {
	packageName := g.Package
	if packageName == "" {
		packageName = DefaultPackage
	}
	if !identRe.MatchString(packageName) {
		return nil, invalidNameError("package", packageName)
	}
	if !identRe.MatchString(exportName) {
		return nil, invalidNameError("variable", exportName)
	}

	var buffer bytes.Buffer
	fmt.Fprintf(&buffer, "// Code generated with earley %s. DO NOT EDIT.\n\n", c.Version)
	buffer.WriteString("package " + packageName + "\n\n" +
		"import \"github.com/ava12/earley/grammar\"\n\n")

	for _, body := range c.Body {
		buffer.WriteString(body)
		buffer.WriteString("\n\n")
	}

	table := c.Table()
	buffer.WriteString("var " + exportName + " = &grammar.Table{\n")
	if table.Lexer != "" {
		fmt.Fprintf(&buffer, "\tLexer: %q,\n", table.Lexer)
	}
	fmt.Fprintf(&buffer, "\tStart: %q,\n", table.Start)
	buffer.WriteString("\tRules: []grammar.TableRule{\n")
	for _, r := range table.Rules {
		fmt.Fprintf(&buffer, "\t\t{Name: %q, Symbols: []grammar.TableSymbol{", r.Name)
		for i, s := range r.Symbols {
			if i > 0 {
				buffer.WriteString(", ")
			}
			fmt.Fprintf(&buffer, "{Kind: %s, Value: %q}", kindConsts[s.Kind], s.Value)
		}
		buffer.WriteString("}")
		if r.Postprocess != "" {
			fmt.Fprintf(&buffer, ", Postprocess: %q", r.Postprocess)
		}
		buffer.WriteString("},\n")
	}
	buffer.WriteString("\t},\n}\n")

	res, e := format.Source(buffer.Bytes())
	if e != nil {
		return nil, formatError(e)
	}
	return res, nil
}
