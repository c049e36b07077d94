/*
Package langdef converts textual grammar description to ast.Grammar structure.

Grammar is described using nearley-compatible language. Self-definition of this language is:
*/
//  @{% body text is copied verbatim %}
//  @builtin "whitespace.ne"
//
//  grammar    -> _ (item _):*
//  item       -> "@" name _ string             # @include, @builtin
//              | "@" name _ (name | string)    # @lexer, @preprocessor
//              | "@{%" code "%}"
//              | name _ arrow alternatives
//              | name "[" params "]" _ arrow alternatives
//  arrow      -> "->" | "=>" | "→"
//  params     -> name (_ "," _ name):*
//  alternatives -> expr (_ "|" _ expr):*
//  expr       -> (token _):* ("{%" code "%}"):?
//  token      -> base (":+" | ":*" | ":?"):?
//  base       -> name | string | "%" name | charclass | "$" name
//              | "(" alternatives ")"
//              | name "[" expr (_ "," _ expr):* "]"
/*
Description must be a valid UTF-8 text. Whitespace and line breaks are insignificant
except that a name followed by an arrow always starts a new definition.
Description may contain line comments starting with # and ending with line feed.

String literal is a double quoted sequence using Go escape rules, e.g. "foo\n".
An empty literal matches nothing and is dropped from the expression.

Name is a sequence of latin letters, digits, and underscores, starting with letter or underscore.
Names are case-sensitive. The name null denotes an empty symbol and is dropped.

Character class is a regular expression class, e.g. [a-z] or [^"\\].
It matches a single character token.

Token reference %name matches a token of given type produced by custom lexer,
or a token accepted by a predicate with given name.

Mixin $name refers to a macro parameter inside macro body.

Expression may be followed by a postprocessor {% name %}, name is resolved against
registered actions when the grammar is loaded.

Modifiers :+, :*, and :? mean one or more, zero or more, and zero or one repetition of preceding item.

Directives:

	@include "path"        includes grammar file relative to the including one
	@builtin "name"        includes grammar shipped with the compiler
	@lexer name            selects lexer registered under given name
	@preprocessor name     selects code generator backend

Directive value is either a name or a string, names containing other characters
(e.g. "my-lexer") must be quoted.
*/
package langdef
