package compiler

import (
	"github.com/ava12/earley"
)

// Error codes used by compiler:
const (
	// UnknownMacroError indicates a call of undefined macro.
	UnknownMacroError = earley.CompileErrors + iota

	// ArgumentCountError indicates that macro call has wrong number of arguments.
	ArgumentCountError

	// UnboundVariableError indicates a mixin referring to a name not bound by any enclosing macro call.
	UnboundVariableError

	// UnrecognizedTokenError indicates malformed AST node.
	UnrecognizedTokenError

	// UnknownBackendError indicates that code emission backend is not registered.
	UnknownBackendError

	// IncludeError indicates that included file cannot be read.
	IncludeError
)

func unknownMacroError(name string) *earley.Error {
	return earley.FormatError(UnknownMacroError, "unknown macro: %s", name)
}

func argumentCountError(name string, expected, got int) *earley.Error {
	return earley.FormatError(ArgumentCountError, "argument count mismatch in call of %s: expecting %d, got %d", name, expected, got)
}

func unboundVariableError(name string) *earley.Error {
	return earley.FormatError(UnboundVariableError, "unbound variable: %s", name)
}

func unrecognizedTokenError(token any) *earley.Error {
	return earley.FormatError(UnrecognizedTokenError, "unrecognized token: %#v", token)
}

func unknownBackendError(key string) *earley.Error {
	return earley.FormatError(UnknownBackendError, "no such preprocessor: %s", key)
}

func includeError(path string, e error) *earley.Error {
	return earley.FormatError(IncludeError, "cannot include %s: %s", path, e.Error())
}
