package langdef

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ava12/earley/ast"
	"github.com/ava12/earley/lexer"
	"github.com/ava12/earley/source"
)

// ParseString parses grammar description.
// Returns nil and earley.Error on error.
func ParseString(name, content string) (ast.Grammar, error) {
	return Parse(source.New(name, []byte(content)))
}

// ParseBytes parses grammar description.
// Returns nil and earley.Error on error.
func ParseBytes(name string, content []byte) (ast.Grammar, error) {
	return Parse(source.New(name, content))
}

// Parse parses grammar description.
// Returns nil and earley.Error on error.
func Parse(s *source.Source) (ast.Grammar, error) {
	c := newParseContext(s)
	return c.parse()
}

const (
	bodyTok      = "body"
	actionTok    = "action"
	stringTok    = "string"
	macroOpenTok = "macro"
	classTok     = "class"
	dirTok       = "directive"
	tokenTok     = "token"
	mixinTok     = "mixin"
	ebnfTok      = "modifier"
	nameTok      = "name"
	arrowTok     = "arrow"
	opTok        = "operator"
)

const (
	pipeOp     = "|"
	commaOp    = ","
	lBraceOp   = "("
	rBraceOp   = ")"
	rSquareOp  = "]"
	lexerKey   = "lexer"
	preprocKey = "preprocessor"
)

var (
	langRe     *regexp.Regexp
	tokenTypes []lexer.TokenType
)

func init() {
	tokenTypes = []lexer.TokenType{
		{Name: bodyTok, Value: func(text string) string { return strings.TrimSpace(text[3 : len(text)-2]) }},
		{Name: actionTok, Value: func(text string) string { return strings.TrimSpace(text[2 : len(text)-2]) }},
		{Name: stringTok},
		{Name: macroOpenTok, Value: func(text string) string { return text[:len(text)-1] }},
		{Name: classTok},
		{Name: dirTok, Value: func(text string) string { return text[1:] }},
		{Name: tokenTok, Value: func(text string) string { return text[1:] }},
		{Name: mixinTok, Value: func(text string) string { return text[1:] }},
		{Name: ebnfTok},
		{Name: nameTok},
		{Name: arrowTok},
		{Name: opTok},
		{Name: lexer.ErrorTokenName},
	}

	langRe = regexp.MustCompile(
		`^(?:\s+|#[^\n]*|` +
			`(@\{%(?s:.*?)%\})|` +
			`(\{%(?s:.*?)%\})|` +
			`("(?:[^\\"\n]|\\.)*")|` +
			`([a-zA-Z_][a-zA-Z_0-9]*\[)|` +
			`(\[(?:[^\\\]\n]|\\.)+\])|` +
			`(@[a-z]+)|` +
			`(%[a-zA-Z_][a-zA-Z_0-9]*)|` +
			`(\$[a-zA-Z_][a-zA-Z_0-9]*)|` +
			`(:[+*?])|` +
			`([a-zA-Z_][a-zA-Z_0-9]*)|` +
			`(->|=>|→)|` +
			`([|(),\]])|` +
			`((?s:["\[@%{$:].{0,10})))`)
}

type parseContext struct {
	l      *lexer.RegexpLexer
	saved  []*lexer.Token
	last   *lexer.Token
	result ast.Grammar
}

func newParseContext(s *source.Source) *parseContext {
	l := lexer.NewRegexpLexer(langRe, tokenTypes)
	l.Name = s.Name()
	l.Reset(string(s.Content()), nil)
	return &parseContext{l: l, result: ast.Grammar{}}
}

func (c *parseContext) parse() (ast.Grammar, error) {
	for {
		t, e := c.next()
		if e != nil {
			return nil, e
		}
		if t == nil {
			break
		}

		switch t.Type() {
		case bodyTok:
			c.result = append(c.result, ast.Body{Code: t.Value()})

		case dirTok:
			e = c.parseDir(t)

		case macroOpenTok:
			e = c.parseMacroDef(t.Value())

		case nameTok:
			e = c.skipOne(arrowTok)
			if e == nil {
				var exprs []ast.Expr
				exprs, e = c.parseAlternatives()
				c.result = append(c.result, ast.Production{Name: t.Text(), Exprs: exprs})
			}

		default:
			e = unexpectedTokenError(t, "directive or definition")
		}

		if e != nil {
			return nil, e
		}
	}

	return c.result, nil
}

// next returns put back token or fetches new one, nil at the end of description.
func (c *parseContext) next() (*lexer.Token, error) {
	if len(c.saved) > 0 {
		t := c.saved[len(c.saved)-1]
		c.saved = c.saved[:len(c.saved)-1]
		return t, nil
	}

	t, e := c.l.Next()
	if e != nil {
		return nil, e
	}
	if t != nil {
		c.last = t
		if t.Type() == stringTok {
			value, e := strconv.Unquote(t.Text())
			if e != nil {
				return nil, invalidEscapeError(t)
			}
			t = t.WithValue(value)
		}
	}
	return t, nil
}

// put returns token back, tokens are fetched in reverse order of putting.
func (c *parseContext) put(t *lexer.Token) {
	if t != nil {
		c.saved = append(c.saved, t)
	}
}

func matches(t *lexer.Token, types []string) bool {
	for _, typ := range types {
		if t.Type() == typ || (t.Type() == opTok && t.Text() == typ) {
			return true
		}
	}
	return false
}

// fetch returns next token of one of specified types (or operator texts).
// If strict is false non-matching token is put back and nil is returned.
func (c *parseContext) fetch(types []string, strict bool) (*lexer.Token, error) {
	t, e := c.next()
	if e != nil {
		return nil, e
	}

	expected := strings.Join(types, " or ")
	if t == nil {
		if strict {
			return nil, eofError(c.last, expected)
		}
		return nil, nil
	}

	if matches(t, types) {
		return t, nil
	}

	if strict {
		return nil, unexpectedTokenError(t, expected)
	}

	c.put(t)
	return nil, nil
}

func (c *parseContext) fetchOne(typ string, strict bool) (*lexer.Token, error) {
	return c.fetch([]string{typ}, strict)
}

func (c *parseContext) skipOne(typ string) error {
	_, e := c.fetch([]string{typ}, true)
	return e
}

func (c *parseContext) parseDir(t *lexer.Token) error {
	switch t.Value() {
	case "include", "builtin":
		path, e := c.fetchOne(stringTok, true)
		if e != nil {
			return e
		}
		c.result = append(c.result, ast.Include{Path: path.Value(), Builtin: t.Value() == "builtin"})

	case lexerKey, preprocKey:
		value, e := c.fetch([]string{nameTok, stringTok}, true)
		if e != nil {
			return e
		}
		c.result = append(c.result, ast.Config{Key: t.Value(), Value: value.Value()})

	default:
		return unknownDirectiveError(t)
	}

	return nil
}

func (c *parseContext) parseMacroDef(name string) error {
	var params []string
	for {
		t, e := c.fetchOne(nameTok, true)
		if e != nil {
			return e
		}

		params = append(params, t.Text())
		t, e = c.fetch([]string{commaOp, rSquareOp}, true)
		if e != nil {
			return e
		}
		if t.Text() == rSquareOp {
			break
		}
	}

	e := c.skipOne(arrowTok)
	if e != nil {
		return e
	}

	exprs, e := c.parseAlternatives()
	if e != nil {
		return e
	}

	c.result = append(c.result, ast.Macro{Name: name, Params: params, Exprs: exprs})
	return nil
}

func (c *parseContext) parseAlternatives() ([]ast.Expr, error) {
	var res []ast.Expr
	for {
		expr, e := c.parseExpr()
		if e != nil {
			return nil, e
		}

		res = append(res, expr)
		t, e := c.fetchOne(pipeOp, false)
		if e != nil {
			return nil, e
		}
		if t == nil {
			return res, nil
		}
	}
}

// parseExpr reads tokens up to action, operator, or the start of the next definition.
func (c *parseContext) parseExpr() (ast.Expr, error) {
	expr := ast.Expr{Tokens: []ast.Token{}}
	for {
		t, e := c.next()
		if e != nil || t == nil {
			return expr, e
		}

		var token ast.Token
		switch t.Type() {
		case nameTok:
			ahead, e := c.next()
			if e != nil {
				return expr, e
			}
			c.put(ahead)
			if ahead != nil && ahead.Type() == arrowTok {
				c.put(t)
				return expr, nil
			}
			token = ast.Name{Name: t.Text()}

		case macroOpenTok:
			isDef, e := c.definitionAhead(t)
			if e != nil {
				return expr, e
			}
			if isDef {
				return expr, nil
			}
			token, e = c.parseMacroCall(t.Value())
			if e != nil {
				return expr, e
			}

		case stringTok:
			token = ast.Literal{Value: t.Value()}

		case tokenTok:
			token = ast.TokenRef{Name: t.Value()}

		case classTok:
			token = ast.CharClass{Class: t.Text()}

		case mixinTok:
			token = ast.Mixin{Name: t.Value()}

		case actionTok:
			expr.Postprocess = t.Value()
			return expr, nil

		case opTok:
			if t.Text() != lBraceOp {
				c.put(t)
				return expr, nil
			}

			exprs, e := c.parseAlternatives()
			if e == nil {
				e = c.skipOne(rBraceOp)
			}
			if e != nil {
				return expr, e
			}
			token = ast.SubExpr{Exprs: exprs}

		default:
			c.put(t)
			return expr, nil
		}

		mod, e := c.fetchOne(ebnfTok, false)
		if e != nil {
			return expr, e
		}
		if mod != nil {
			token = ast.EBNF{Base: token, Modifier: ast.Modifier(mod.Text())}
		}
		expr.Tokens = append(expr.Tokens, token)
	}
}

// definitionAhead reports whether macro bracket starting with first is followed by arrow.
// All fetched tokens including first are put back if the bracket starts a definition.
func (c *parseContext) definitionAhead(first *lexer.Token) (bool, error) {
	fetched := []*lexer.Token{first}
	depth := 1
	for depth > 0 {
		t, e := c.next()
		if e != nil {
			return false, e
		}
		if t == nil {
			break
		}

		fetched = append(fetched, t)
		if t.Type() == macroOpenTok {
			depth++
		} else if t.Type() == opTok && t.Text() == rSquareOp {
			depth--
		}
	}

	if depth == 0 {
		t, e := c.next()
		if e != nil {
			return false, e
		}
		if t != nil {
			fetched = append(fetched, t)
		}
	}

	last := fetched[len(fetched)-1]
	isDef := depth == 0 && last.Type() == arrowTok
	start := 0
	if !isDef {
		start = 1
	}
	for i := len(fetched) - 1; i >= start; i-- {
		c.put(fetched[i])
	}
	return isDef, nil
}

func (c *parseContext) parseMacroCall(name string) (ast.Token, error) {
	call := ast.MacroCall{Name: name}
	for {
		arg, e := c.parseExpr()
		if e != nil {
			return nil, e
		}

		call.Args = append(call.Args, arg)
		t, e := c.fetch([]string{commaOp, rSquareOp}, true)
		if e != nil {
			return nil, e
		}
		if t.Text() == rSquareOp {
			return call, nil
		}
	}
}
