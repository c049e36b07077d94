// Package generate contains code emission backends for compiled grammars.
//
// Importing the package registers backends under the keys accepted by @preprocessor directive:
// "_default", "go", and "golang" for Go source, "json", "yaml" and "yml" for serialized rule tables,
// "ebnf" for a grammar listing in Go EBNF notation.
package generate

import (
	"regexp"

	"github.com/ava12/earley"
	"github.com/ava12/earley/compiler"
)

// Error codes used by generate:
const (
	// InvalidNameError indicates that package or variable name is not a valid Go identifier.
	InvalidNameError = earley.GenerateErrors + iota

	// FormatError indicates that generated Go source cannot be formatted, usually because of broken body code.
	FormatError

	// EncodeError indicates serialization failure.
	EncodeError

	// InvalidEBNFError indicates that generated EBNF listing does not pass verification.
	InvalidEBNFError
)

var identRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

func init() {
	goBackend := Go{}
	compiler.RegisterBackend(compiler.DefaultBackend, goBackend)
	compiler.RegisterBackend("go", goBackend)
	compiler.RegisterBackend("golang", goBackend)
	compiler.RegisterBackend("json", JSON{})
	compiler.RegisterBackend("yaml", YAML{})
	compiler.RegisterBackend("yml", YAML{})
	compiler.RegisterBackend("ebnf", EBNF{})
}

func invalidNameError(kind, name string) *earley.Error {
	return earley.FormatError(InvalidNameError, "invalid %s name: %q", kind, name)
}

func formatError(e error) *earley.Error {
	return earley.FormatError(FormatError, "cannot format generated source: %s", e.Error())
}

func encodeError(format string, e error) *earley.Error {
	return earley.FormatError(EncodeError, "cannot encode %s: %s", format, e.Error())
}

func invalidEBNFError(e error) *earley.Error {
	return earley.FormatError(InvalidEBNFError, "invalid EBNF: %s", e.Error())
}
