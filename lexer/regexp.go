package lexer

import (
	"regexp"

	"github.com/ava12/earley/source"
)

// ErrorTokenName is the type name for fake tokens capturing broken lexemes (e.g. incorrect string literals).
// The purpose of these tokens is to generate more informative error messages.
// RegexpLexer never returns a token of this type, an error with message containing token text is returned instead.
const ErrorTokenName = "-error-"

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	// Name contains token type name, ErrorTokenName is treated specially.
	Name string

	// Value converts token text to token value, nil means value equals text.
	Value func(text string) string
}

// RegexpLexer splits input using regexp.Regexp.
// Each token type that may be returned by lexer maps to its own regexp capturing group index.
// A match containing no captured groups is treated as insignificant lexeme (e.g. whitespace),
// in this case lexer tries to fetch a token again at new position.
// Every byte of input must belong to some lexeme.
type RegexpLexer struct {
	// Name is used as token source name in error messages.
	Name string

	types []TokenType
	re    *regexp.Regexp
	src   *source.Source
	pos   int
	state State
	last  int
}

// NewRegexpLexer creates new lexer.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// A group that has no description is treated as error token type.
func NewRegexpLexer(re *regexp.Regexp, types []TokenType) *RegexpLexer {
	ts := make([]TokenType, len(types))
	copy(ts, types)
	l := &RegexpLexer{types: ts, re: re}
	l.Reset("", nil)
	return l
}

// Has reports whether some capturing group produces tokens of specified type.
func (l *RegexpLexer) Has(typeName string) bool {
	if typeName == ErrorTokenName {
		return false
	}

	for _, t := range l.types {
		if t.Name == typeName {
			return true
		}
	}
	return false
}

func (l *RegexpLexer) Reset(chunk string, state *State) {
	l.src = source.New(l.Name, []byte(chunk))
	l.pos = 0
	l.last = 0
	if state == nil {
		l.state = State{Line: 1}
	} else {
		l.state = *state
	}
}

// lineCol converts chunk offset to input line and column.
func (l *RegexpLexer) lineCol(pos int) (line, col int) {
	line, col = l.src.LineCol(pos)
	if line == 1 {
		col += l.state.Col
	}
	line += l.state.Line - 1
	return
}

func (l *RegexpLexer) Next() (*Token, error) {
	content := l.src.Content()
	for l.pos < len(content) {
		rest := content[l.pos:]
		match := l.re.FindSubmatchIndex(rest)
		if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
			line, col := l.lineCol(l.pos)
			return nil, wrongCharError(string(rest), l.Name, line, col)
		}

		for i := 2; i < len(match); i += 2 {
			if match[i] < 0 || match[i+1] < 0 {
				continue
			}

			start := l.pos + match[i]
			text := string(rest[match[i]:match[i+1]])
			typeName := ErrorTokenName
			var valueFunc func(string) string
			if len(l.types) >= (i >> 1) {
				typeName = l.types[(i>>1)-1].Name
				valueFunc = l.types[(i>>1)-1].Value
			}
			value := text
			if valueFunc != nil {
				value = valueFunc(text)
			}
			line, col := l.lineCol(start)
			token := &Token{typeName, value, text, l.Name, l.state.Offset + start, line, col}
			if typeName == ErrorTokenName {
				return nil, badTokenError(token)
			}

			l.last = start
			l.pos += match[1]
			return token, nil
		}

		l.pos += match[1]
	}

	return nil, nil
}

func (l *RegexpLexer) Save() *State {
	line, col := l.lineCol(l.pos)
	return &State{Line: line, Col: col - 1, Offset: l.state.Offset + l.pos}
}

// FormatError reports position of the last fetched token.
func (l *RegexpLexer) FormatError(t *Token, message string) string {
	pos := l.last
	if t != nil && t.offset >= l.state.Offset && t.offset-l.state.Offset <= l.src.Len() {
		pos = t.offset - l.state.Offset
	}
	line, col := l.src.LineCol(pos)
	absLine, absCol := l.lineCol(pos)
	return formatLine(message, string(l.src.Line(line)), absLine, absCol, col)
}
