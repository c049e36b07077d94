package grammar

import (
	"github.com/ava12/earley"
)

// Error codes used by grammar:
const (
	// EmptyGrammarError indicates that grammar has no rules and no start symbol.
	EmptyGrammarError = earley.GrammarErrors + iota

	// UnknownActionError indicates that compiled table refers to a semantic action not supplied in Options.
	UnknownActionError

	// UnknownPredicateError indicates that predicate symbol refers to a predicate not supplied in Options.
	UnknownPredicateError

	// UnknownLexerError indicates that compiled table refers to unregistered lexer.
	UnknownLexerError

	// BadPatternError indicates that pattern symbol contains invalid regular expression.
	BadPatternError

	// UnresolvedTokenError indicates that typed token is neither known to lexer nor defined as a predicate.
	UnresolvedTokenError

	// BadTableError indicates that serialized table cannot be decoded.
	BadTableError
)

func emptyGrammarError() *earley.Error {
	return earley.FormatError(EmptyGrammarError, "grammar has no rules and no start symbol")
}

func unknownActionError(name, rule string) *earley.Error {
	return earley.FormatError(UnknownActionError, "unknown action %q in rule %s", name, rule)
}

func unknownPredicateError(name string) *earley.Error {
	return earley.FormatError(UnknownPredicateError, "unknown predicate %q", name)
}

func unknownLexerError(name string) *earley.Error {
	return earley.FormatError(UnknownLexerError, "unknown lexer %q", name)
}

func badPatternError(pattern string, e error) *earley.Error {
	return earley.FormatError(BadPatternError, "bad pattern %q: %s", pattern, e.Error())
}

func unresolvedTokenError(name string) *earley.Error {
	return earley.FormatError(UnresolvedTokenError, "lexer has no %q tokens and no such predicate defined", name)
}

func badTableError(format string, e error) *earley.Error {
	return earley.FormatError(BadTableError, "cannot decode %s table: %s", format, e.Error())
}
