package lexer

// Token is a lexeme produced by a Lexer.
// Implements earley.SourcePos.
type Token struct {
	typeName   string
	value      string
	text       string
	sourceName string
	offset     int
	line, col  int
}

// NewToken creates a token. Empty text means the token text equals its value.
// line and col are 1-based, 0 means unknown position.
func NewToken(typeName, value, text string, offset, line, col int) *Token {
	if text == "" {
		text = value
	}
	return &Token{typeName, value, text, "", offset, line, col}
}

// Type returns token type name, empty for tokens produced by StreamLexer.
func (t *Token) Type() string {
	return t.typeName
}

// Value returns token value, it may differ from source text (e.g. unquoted string literal).
func (t *Token) Value() string {
	return t.value
}

// Text returns source text of the token.
func (t *Token) Text() string {
	return t.text
}

// Literal returns the string compared against literal symbols.
func (t *Token) Literal() string {
	return t.text
}

// Offset returns 0-based offset of the token in the whole input, in runes for StreamLexer and in bytes otherwise.
func (t *Token) Offset() int {
	return t.offset
}

func (t *Token) SourceName() string {
	return t.sourceName
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Col() int {
	return t.col
}

func (t *Token) String() string {
	return t.value
}

// WithValue returns a copy of the token having different value.
func (t *Token) WithValue(value string) *Token {
	res := *t
	res.value = value
	return &res
}
