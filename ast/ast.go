// Package ast defines syntax tree of a grammar description.
// It is produced by langdef and consumed by compiler.
package ast

import (
	"strconv"
	"strings"
)

// Grammar is a sequence of top-level items in definition order.
type Grammar []Item

// Item is one of Body, Include, Macro, Config, or Production.
type Item interface {
	item()
}

// Body contains verbatim code block.
type Body struct {
	Code string
}

// Include refers to another grammar file. Builtin includes are looked up in compiler builtin directory.
type Include struct {
	Path    string
	Builtin bool
}

// Macro is a parametrized rule template.
type Macro struct {
	Name   string
	Params []string
	Exprs  []Expr
}

// Config is a configuration directive, Key is either "lexer" or "preprocessor".
type Config struct {
	Key, Value string
}

// Production contains alternatives for one nonterminal.
type Production struct {
	Name  string
	Exprs []Expr
}

func (Body) item()       {}
func (Include) item()    {}
func (Macro) item()      {}
func (Config) item()     {}
func (Production) item() {}

// Expr is one alternative: a token sequence with optional postprocess action name.
type Expr struct {
	Tokens      []Token
	Postprocess string
}

func (e Expr) String() string {
	parts := make([]string, len(e.Tokens))
	for i, t := range e.Tokens {
		parts[i] = TokenString(t)
	}
	res := strings.Join(parts, " ")
	if e.Postprocess != "" {
		res += " {% " + e.Postprocess + " %}"
	}
	return res
}

// Token is one of Name, Literal, TokenRef, CharClass, SubExpr, EBNF, MacroCall, or Mixin.
type Token interface {
	token()
}

// Name refers to nonterminal. "null" means nothing.
type Name struct {
	Name string
}

// Literal matches exact text.
type Literal struct {
	Value string
}

// TokenRef refers to a typed token (%name).
type TokenRef struct {
	Name string
}

// CharClass contains regular expression character class, brackets included.
type CharClass struct {
	Class string
}

// SubExpr is a parenthesized alternation.
type SubExpr struct {
	Exprs []Expr
}

// Modifier is an EBNF repetition modifier.
type Modifier string

const (
	OneOrMore  Modifier = ":+"
	ZeroOrMore Modifier = ":*"
	Optional   Modifier = ":?"
)

// EBNF is a token with repetition modifier.
type EBNF struct {
	Base     Token
	Modifier Modifier
}

// MacroCall instantiates a macro, each argument is a single alternative.
type MacroCall struct {
	Name string
	Args []Expr
}

// Mixin refers to macro parameter ($name).
type Mixin struct {
	Name string
}

func (Name) token()      {}
func (Literal) token()   {}
func (TokenRef) token()  {}
func (CharClass) token() {}
func (SubExpr) token()   {}
func (EBNF) token()      {}
func (MacroCall) token() {}
func (Mixin) token()     {}

// TokenString renders token in grammar description syntax.
func TokenString(t Token) string {
	switch v := t.(type) {
	case Name:
		return v.Name
	case Literal:
		return strconv.Quote(v.Value)
	case TokenRef:
		return "%" + v.Name
	case CharClass:
		return v.Class
	case SubExpr:
		return "(" + joinExprs(v.Exprs, " | ") + ")"
	case EBNF:
		return TokenString(v.Base) + string(v.Modifier)
	case MacroCall:
		return v.Name + "[" + joinExprs(v.Args, ", ") + "]"
	case Mixin:
		return "$" + v.Name
	default:
		return "<nil>"
	}
}

func joinExprs(es []Expr, sep string) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}
