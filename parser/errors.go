package parser

import (
	"github.com/ava12/earley"
	"github.com/ava12/earley/grammar"
	"github.com/ava12/earley/lexer"
)

// Error codes used by parser:
const (
	// UnexpectedTokenError indicates that no state can consume the token, returned wrapped in SyntaxError.
	UnexpectedTokenError = earley.SyntaxErrors + iota
)

const (
	// NoHistoryError indicates that Rewind is called on a parser created without KeepHistory option.
	NoHistoryError = earley.ParserErrors + iota

	// BadRewindError indicates that Rewind index is out of parsed range.
	BadRewindError
)

// Expectation describes one frontier state of the last successful column.
type Expectation struct {
	// Symbol is the terminal the state is waiting for.
	Symbol grammar.Symbol

	// Stack contains rendered states from the frontier state back to a start state, first derivation only.
	Stack []string
}

// SyntaxError is returned by Feed when a token cannot be consumed.
type SyntaxError struct {
	// Err contains UnexpectedTokenError with the full diagnostic message.
	Err *earley.Error

	// Offset contains 0-based index of the offending token.
	Offset int

	Token    *lexer.Token
	Expected []Expectation
}

func (e *SyntaxError) Error() string {
	return e.Err.Message
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func noHistoryError() *earley.Error {
	return earley.FormatError(NoHistoryError, "set KeepHistory option to enable rewinding")
}

func badRewindError(index, current int) *earley.Error {
	return earley.FormatError(BadRewindError, "cannot rewind to column %d, parsed columns: 0..%d", index, current)
}
