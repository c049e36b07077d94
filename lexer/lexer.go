// Package lexer defines lexical analyzers used by parser.
package lexer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ava12/earley"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current position.
	WrongCharError = earley.LexicalErrors + iota

	// BadTokenError indicates that lexer has fetched a token of error type.
	BadTokenError
)

// State contains lexer position carried between input chunks.
// Line is 1-based, Col is the number of runes already consumed in current line.
type State struct {
	Line, Col int
	Offset    int
}

// Lexer splits input chunks into tokens.
// Lexer is stateful: each parser needs its own instance.
type Lexer interface {
	// Reset starts lexing new chunk, state is either nil (start of input) or the value returned by Save.
	Reset(chunk string, state *State)

	// Next returns next token or nil, nil at the end of chunk.
	Next() (*Token, error)

	// Save returns current position to be passed to Reset along with next chunk.
	Save() *State

	// FormatError appends position information and source context of the most recently fetched token to message.
	FormatError(t *Token, message string) string
}

// TypeChecker is implemented by lexers that produce typed tokens.
type TypeChecker interface {
	// Has reports whether lexer may produce tokens of specified type.
	Has(typeName string) bool
}

// Factory creates new lexer instance.
type Factory func() Lexer

// DefaultName is the registry name of StreamLexer factory.
const DefaultName = "stream"

var registry = map[string]Factory{
	DefaultName: func() Lexer { return NewStreamLexer() },
}

// Register adds named lexer factory to the registry used to resolve @lexer directives of compiled tables.
// Existing entry with the same name is replaced.
func Register(name string, f Factory) {
	registry[name] = f
}

// Lookup returns registered lexer factory.
func Lookup(name string) (Factory, bool) {
	f, found := registry[name]
	return f, found
}

// Registered returns sorted list of registered lexer names.
func Registered() []string {
	res := make([]string, 0, len(registry))
	for name := range registry {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func wrongCharError(content string, sourceName string, line, col int) *earley.Error {
	r, _ := utf8.DecodeRuneInString(content)
	msg := fmt.Sprintf("wrong char %q (u+%x)", r, r)
	return earley.NewError(WrongCharError, msg, sourceName, line, col)
}

func badTokenError(t *Token) *earley.Error {
	return earley.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text())
}

// formatLine renders error message with the offending line and a caret under column caret (1-based).
// line and col give the position in the whole input, lineText may lack the part of line fed in earlier chunks.
func formatLine(message, lineText string, line, col, caret int) string {
	sb := &strings.Builder{}
	sb.WriteString(message)
	fmt.Fprintf(sb, " at line %d col %d:\n\n", line, col)
	sb.WriteString("  ")
	sb.WriteString(lineText)
	sb.WriteString("\n  ")
	if caret > 1 {
		sb.WriteString(strings.Repeat(" ", caret-1))
	}
	sb.WriteString("^")
	return sb.String()
}
