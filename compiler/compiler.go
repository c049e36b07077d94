// Package compiler lowers grammar AST into a flat rule table.
//
// Sub-expressions, EBNF modifiers, multi-character literals, and macro calls are replaced
// with helper nonterminals named "<rule>$<kind>$<n>". Included files are parsed with langdef
// and merged into the including grammar.
package compiler

import (
	"embed"
	"io/fs"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/ava12/earley/ast"
	"github.com/ava12/earley/grammar"
)

//go:embed builtin/*.ne
var builtinFiles embed.FS

// Options configure compilation. nil means defaults.
type Options struct {
	// NoActions drops body code and postprocess names, the table describes structure only.
	NoActions bool

	// Path is the name of compiled file, relative includes are resolved against its directory.
	// Empty Path means current working directory.
	Path string

	// ReadFile reads included files, os.ReadFile is used if nil.
	ReadFile func(name string) ([]byte, error)

	// Builtins contains files for @builtin directive, embedded builtin directory is used if nil.
	Builtins fs.FS

	// Version is recorded by code emission backends.
	Version string
}

// Config holds grammar-level directives.
type Config struct {
	// Lexer is the name of lexer from lexer registry, empty means StreamLexer.
	Lexer string

	// Preprocessor is the code emission backend key.
	Preprocessor string
}

// Macro is a stored macro definition.
type Macro struct {
	Params []string
	Exprs  []ast.Expr
}

// Compiler holds the result of compilation.
type Compiler struct {
	Rules        []grammar.TableRule
	Body         []string
	CustomTokens []string
	Config       Config
	Macros       map[string]Macro
	Start        string
	Version      string

	opts    Options
	session *session
}

// session is shared by a compiler and compilers of its included files.
type session struct {
	compiled map[string]bool
	counters map[string]int
}

// Compile converts grammar AST into a rule table.
// Returns nil and earley.Error on error.
func Compile(g ast.Grammar, opts *Options) (*Compiler, error) {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.ReadFile == nil {
		o.ReadFile = os.ReadFile
	}
	if o.Builtins == nil {
		o.Builtins, _ = fs.Sub(builtinFiles, "builtin")
	}
	if o.Version == "" {
		o.Version = "unknown"
	}

	s := &session{compiled: map[string]bool{}, counters: map[string]int{}}
	if o.Path != "" {
		key, e := filePath("", o.Path)
		if e == nil {
			s.compiled[key] = true
		}
	}
	return compile(g, o, s)
}

func compile(g ast.Grammar, opts Options, s *session) (*Compiler, error) {
	c := &Compiler{
		Macros:  map[string]Macro{},
		Version: opts.Version,
		opts:    opts,
		session: s,
	}

	for _, item := range g {
		var e error
		switch it := item.(type) {
		case ast.Body:
			if !opts.NoActions {
				c.Body = append(c.Body, it.Code)
			}

		case ast.Include:
			e = c.include(it)

		case ast.Macro:
			c.Macros[it.Name] = Macro{it.Params, it.Exprs}

		case ast.Config:
			switch it.Key {
			case "lexer":
				c.Config.Lexer = it.Value
			case "preprocessor":
				c.Config.Preprocessor = it.Value
			}

		case ast.Production:
			e = c.produceRules(it.Name, it.Exprs, nil)
			if c.Start == "" {
				c.Start = it.Name
			}

		default:
			e = unrecognizedTokenError(item)
		}

		if e != nil {
			return nil, e
		}
	}

	return c, nil
}

// Table returns compiled rule table.
func (c *Compiler) Table() *grammar.Table {
	rules := make([]grammar.TableRule, len(c.Rules))
	copy(rules, c.Rules)
	return &grammar.Table{Lexer: c.Config.Lexer, Rules: rules, Start: c.Start}
}

func (c *Compiler) merge(ic *Compiler) {
	c.Body = append(c.Body, ic.Body...)
	c.Rules = append(c.Rules, ic.Rules...)
	for _, name := range ic.CustomTokens {
		c.addCustomToken(name)
	}
	if ic.Config.Lexer != "" {
		c.Config.Lexer = ic.Config.Lexer
	}
	if ic.Config.Preprocessor != "" {
		c.Config.Preprocessor = ic.Config.Preprocessor
	}
	for name, m := range ic.Macros {
		c.Macros[name] = m
	}
}

func (c *Compiler) addCustomToken(name string) {
	for _, t := range c.CustomTokens {
		if t == name {
			return
		}
	}
	c.CustomTokens = append(c.CustomTokens, name)
}

func (c *Compiler) unique(name string) string {
	c.session.counters[name]++
	return name + "$" + strconv.Itoa(c.session.counters[name])
}

func (c *Compiler) produceRules(name string, exprs []ast.Expr, en *env) error {
	for _, expr := range exprs {
		e := c.buildRule(name, expr, en)
		if e != nil {
			return e
		}
	}
	return nil
}

func (c *Compiler) addRule(name string, symbols []grammar.TableSymbol, postprocess string) {
	if c.opts.NoActions {
		postprocess = ""
	}
	if symbols == nil {
		symbols = []grammar.TableSymbol{}
	}
	c.Rules = append(c.Rules, grammar.TableRule{Name: name, Symbols: symbols, Postprocess: postprocess})
}

func (c *Compiler) buildRule(name string, expr ast.Expr, en *env) error {
	var symbols []grammar.TableSymbol
	for _, token := range expr.Tokens {
		s, ok, e := c.buildToken(name, token, en)
		if e != nil {
			return e
		}
		if ok {
			symbols = append(symbols, s)
		}
	}

	c.addRule(name, symbols, expr.Postprocess)
	return nil
}

func nonterminal(name string) grammar.TableSymbol {
	return grammar.TableSymbol{Kind: grammar.NonterminalSymbol, Value: name}
}

// buildToken converts AST token to a symbol, ok is false for dropped tokens.
func (c *Compiler) buildToken(ruleName string, token ast.Token, en *env) (s grammar.TableSymbol, ok bool, e error) {
	switch t := token.(type) {
	case ast.Name:
		if t.Name == "null" {
			return
		}
		return nonterminal(t.Name), true, nil

	case ast.Literal:
		n := utf8.RuneCountInString(t.Value)
		if n == 0 {
			return
		}
		if n == 1 || c.Config.Lexer != "" {
			return grammar.TableSymbol{Kind: grammar.LiteralSymbol, Value: t.Value}, true, nil
		}
		return nonterminal(c.buildStringToken(ruleName, t.Value)), true, nil

	case ast.TokenRef:
		if c.Config.Lexer != "" {
			c.addCustomToken(t.Name)
		}
		return grammar.TableSymbol{Kind: grammar.TokenSymbol, Value: t.Name}, true, nil

	case ast.CharClass:
		return grammar.TableSymbol{Kind: grammar.PatternSymbol, Value: t.Class}, true, nil

	case ast.SubExpr:
		name := c.unique(ruleName + "$subexpression")
		e = c.produceRules(name, t.Exprs, en)
		return nonterminal(name), e == nil, e

	case ast.EBNF:
		var name string
		name, e = c.buildEBNFToken(ruleName, t, en)
		return nonterminal(name), e == nil, e

	case ast.MacroCall:
		var name string
		name, e = c.buildMacroCallToken(ruleName, t, en)
		return nonterminal(name), e == nil, e

	case ast.Mixin:
		name, found := en.lookup(t.Name)
		if !found {
			return s, false, unboundVariableError(t.Name)
		}
		return nonterminal(name), true, nil

	default:
		return s, false, unrecognizedTokenError(token)
	}
}

func (c *Compiler) buildStringToken(ruleName, literal string) string {
	name := c.unique(ruleName + "$string")
	symbols := make([]grammar.TableSymbol, 0, len(literal))
	for _, r := range literal {
		symbols = append(symbols, grammar.TableSymbol{Kind: grammar.LiteralSymbol, Value: string(r)})
	}
	c.addRule(name, symbols, "joiner")
	return name
}

func (c *Compiler) buildEBNFToken(ruleName string, t ast.EBNF, en *env) (string, error) {
	name := c.unique(ruleName + "$ebnf")
	base, ok, e := c.buildToken(ruleName, t.Base, en)
	if e != nil {
		return "", e
	}

	var baseSymbols []grammar.TableSymbol
	if ok {
		baseSymbols = []grammar.TableSymbol{base}
	}
	withSelf := append([]grammar.TableSymbol{nonterminal(name)}, baseSymbols...)

	switch t.Modifier {
	case ast.OneOrMore:
		c.addRule(name, baseSymbols, "")
		c.addRule(name, withSelf, "arrpush")
	case ast.ZeroOrMore:
		c.addRule(name, nil, "")
		c.addRule(name, withSelf, "arrpush")
	case ast.Optional:
		c.addRule(name, baseSymbols, "id")
		c.addRule(name, nil, "nuller")
	default:
		return "", unrecognizedTokenError(t)
	}
	return name, nil
}

func (c *Compiler) buildMacroCallToken(ruleName string, t ast.MacroCall, en *env) (string, error) {
	name := c.unique(ruleName + "$macrocall")
	m, found := c.Macros[t.Name]
	if !found {
		return "", unknownMacroError(t.Name)
	}
	if len(m.Params) != len(t.Args) {
		return "", argumentCountError(t.Name, len(m.Params), len(t.Args))
	}

	inner := en
	for i, param := range m.Params {
		argName := c.unique(ruleName + "$macrocall")
		inner = inner.bind(param, argName)
		e := c.buildRule(argName, t.Args[i], en)
		if e != nil {
			return "", e
		}
	}

	return name, c.produceRules(name, m.Exprs, inner)
}
