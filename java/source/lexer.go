package source

import "unicode"

// Lexer splits Java source into the tokens needed to locate
// documentation comments and the type declarations around them.
type Lexer struct {
	input    []rune
	pos      int
	line     int
	column   int
	markdown bool
}

func NewLexer(input []rune, markdown bool) *Lexer {
	return &Lexer{
		input:    input,
		pos:      0,
		line:     1,
		column:   1,
		markdown: markdown,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.atEOF() {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		if l.markdown && l.peekN(2) == '/' {
			return l.scanMarkdownComment(startPos)
		}
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if isSpace(ch) {
		return l.scanWhitespace(startPos)
	}

	if isJavaLetter(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' {
		return l.scanCharLiteral(startPos)
	}

	if ch == '"' {
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(startPos)
		}
		return l.scanStringLiteral(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for !l.atEOF() && isSpace(l.peek()) {
		l.advance()
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for !l.atEOF() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

// scanMarkdownComment reads a run of consecutive /// lines as one
// comment. The token includes the terminator of its last line.
func (l *Lexer) scanMarkdownComment(start Position) Token {
	for {
		for !l.atEOF() && l.peek() != '\n' {
			l.advance()
		}
		if l.atEOF() {
			break
		}
		l.advance()

		i := l.pos
		for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t') {
			i++
		}
		if i+2 >= len(l.input) || l.input[i] != '/' || l.input[i+1] != '/' || l.input[i+2] != '/' {
			break
		}
		l.advanceN(i - l.pos)
	}
	return l.token(TokenMarkdownComment, start)
}

// scanBlockComment reads /* ... */. A comment running into the end of
// the input comes back as TokenError.
func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	doc := l.peek() == '*' && l.peekN(1) != '/'
	for {
		if l.atEOF() {
			return l.token(TokenError, start)
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	if doc {
		return l.token(TokenDocComment, start)
	}
	return l.token(TokenComment, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for !l.atEOF() && isJavaLetterOrDigit(l.peek()) {
		l.advance()
	}
	tok := l.token(TokenIdent, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	for !l.atEOF() {
		ch := l.peek()
		switch {
		case isJavaLetterOrDigit(ch):
		case ch == '.' && isDigit(l.peekN(1)):
		case (ch == '+' || ch == '-') && l.pos > start.Offset && isExponent(l.input[l.pos-1]):
		default:
			return l.token(TokenNumber, start)
		}
		l.advance()
	}
	return l.token(TokenNumber, start)
}

func isExponent(ch rune) bool {
	return ch == 'e' || ch == 'E' || ch == 'p' || ch == 'P'
}

func (l *Lexer) scanCharLiteral(start Position) Token {
	l.advance()
	for !l.atEOF() && l.peek() != '\'' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '\'' {
		l.advance()
	}
	return l.token(TokenCharLiteral, start)
}

func (l *Lexer) scanStringLiteral(start Position) Token {
	l.advance()
	for !l.atEOF() && l.peek() != '"' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '"' {
		l.advance()
	}
	return l.token(TokenStringLiteral, start)
}

func (l *Lexer) scanTextBlock(start Position) Token {
	l.advanceN(3)
	for !l.atEOF() {
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			break
		}
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	return l.token(TokenTextBlock, start)
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.advance()
	switch ch {
	case '(':
		return l.token(TokenLParen, start)
	case ')':
		return l.token(TokenRParen, start)
	case '{':
		return l.token(TokenLBrace, start)
	case '}':
		return l.token(TokenRBrace, start)
	case ';':
		return l.token(TokenSemicolon, start)
	case '.':
		if l.peek() == '.' && l.peekN(1) == '.' {
			l.advanceN(2)
			return l.token(TokenOperator, start)
		}
		return l.token(TokenDot, start)
	case '@':
		return l.token(TokenAt, start)
	}
	return l.token(TokenOperator, start)
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isJavaLetter(ch rune) bool {
	if ch >= 128 {
		return unicode.IsLetter(ch) || unicode.Is(unicode.Sc, ch) || unicode.Is(unicode.Pc, ch)
	}
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isJavaLetterOrDigit(ch rune) bool {
	if ch >= 128 {
		return isJavaLetter(ch) || unicode.IsDigit(ch) || unicode.Is(unicode.Mn, ch) || unicode.Is(unicode.Mc, ch)
	}
	return isJavaLetter(ch) || isDigit(ch)
}
