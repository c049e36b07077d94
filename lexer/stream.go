package lexer

// StreamLexer is the default lexer producing one token per input rune.
// Token values are single-rune strings, tokens have no type.
type StreamLexer struct {
	buffer        []rune
	index         int
	line          int
	lastLineBreak int
	offset        int
}

func NewStreamLexer() *StreamLexer {
	l := &StreamLexer{}
	l.Reset("", nil)
	return l
}

func (l *StreamLexer) Reset(chunk string, state *State) {
	l.buffer = []rune(chunk)
	l.index = 0
	if state == nil {
		l.line = 1
		l.lastLineBreak = 0
		l.offset = 0
	} else {
		l.line = state.Line
		l.lastLineBreak = -state.Col
		l.offset = state.Offset
	}
}

func (l *StreamLexer) Next() (*Token, error) {
	if l.index >= len(l.buffer) {
		return nil, nil
	}

	ch := l.buffer[l.index]
	line, col := l.line, l.index-l.lastLineBreak+1
	l.index++
	if ch == '\n' {
		l.line++
		l.lastLineBreak = l.index
	}
	return NewToken("", string(ch), "", l.offset+l.index-1, line, col), nil
}

func (l *StreamLexer) Save() *State {
	return &State{Line: l.line, Col: l.index - l.lastLineBreak, Offset: l.offset + l.index}
}

// FormatError reports position of the last fetched rune, the lexer must not be advanced after the offending token.
func (l *StreamLexer) FormatError(t *Token, message string) string {
	nextLineBreak := len(l.buffer)
	for i := l.index; i < len(l.buffer); i++ {
		if l.buffer[i] == '\n' {
			nextLineBreak = i
			break
		}
	}
	lineStart := l.lastLineBreak
	if lineStart < 0 {
		lineStart = 0
	}
	lineText := string(l.buffer[lineStart:nextLineBreak])
	return formatLine(message, lineText, l.line, l.index-l.lastLineBreak, l.index-lineStart)
}
