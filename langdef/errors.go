package langdef

import (
	"github.com/ava12/earley"
	"github.com/ava12/earley/lexer"
)

// Error codes used by langdef, lexical errors are reported with lexer error codes:
const (
	UnexpectedEofError = earley.DefinitionErrors + iota
	UnexpectedTokenError
	UnknownDirectiveError
	InvalidEscapeError
)

func eofError(token *lexer.Token, expected string) *earley.Error {
	if token == nil {
		return earley.FormatError(UnexpectedEofError, "unexpected end of description, expecting %s", expected)
	}
	return earley.FormatErrorPos(token, UnexpectedEofError, "unexpected end of description after %q, expecting %s", token.Text(), expected)
}

func unexpectedTokenError(token *lexer.Token, expected string) *earley.Error {
	return earley.FormatErrorPos(token, UnexpectedTokenError, "unexpected %s %q, expecting %s", token.Type(), token.Text(), expected)
}

func unknownDirectiveError(token *lexer.Token) *earley.Error {
	return earley.FormatErrorPos(token, UnknownDirectiveError, "unknown directive %s", token.Text())
}

func invalidEscapeError(token *lexer.Token) *earley.Error {
	return earley.FormatErrorPos(token, InvalidEscapeError, "invalid escape sequence in %s", token.Text())
}
