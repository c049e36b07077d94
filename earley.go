/*
Package earley is a general-purpose Earley parser toolkit for ambiguous context-free grammars.

Consists of subpackages:
  - cmd/earley: console utility compiling grammar descriptions, testing compiled tables, and generating random samples;
  - ast: syntax tree of a grammar description consumed by the compiler;
  - compiler: lowers macros, EBNF modifiers, sub-expressions, string literals, and includes into a flat rule table;
  - generate: code emission backends (Go, JSON, YAML, EBNF) for compiled tables;
  - grammar: rules, symbols, semantic actions, and compiled rule tables;
  - langdef: reads grammar descriptions written in a nearley-like language;
  - lexer: character stream lexer and regexp-driven lexer;
  - lint: warnings about undefined and unreachable nonterminals;
  - parser: incremental Earley chart parser with checkpoint and restore;
  - source: defines source text with line and column lookup;
  - unparse: random sentence generation from a rule table.

Typical usage is:

1. Describe grammar in a nearley-like language, semantic actions are referenced by name.

2. Compile grammar description either "on the fly" using langdef and compiler subpackages
or using earley utility to generate Go, JSON, or YAML file.

3. Build grammar.Grammar from compiled table, supplying semantic actions and lexer.

4. Create new parser and feed it input chunks, then check the parse forest.
*/
package earley

import (
	"fmt"
)

// Version is recorded in generated files.
const Version = "1.0.0"

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	DefinitionErrors = 1   // used by langdef
	CompileErrors    = 101 // used by compiler
	GrammarErrors    = 201 // used by grammar
	LexicalErrors    = 301 // used by lexer
	SyntaxErrors     = 401 // used by parser
	ParserErrors     = 501 // used by parser
	GenerateErrors   = 601 // used by generate
	UnparseErrors    = 701 // used by unparse
)

// Error is the error type used by earley subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source or 0.
	Line int

	// Col contains column number in source or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
