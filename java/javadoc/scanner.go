package javadoc

import "strings"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokError
	tokWhitespace
	tokIdentifier
	tokKeyword
	tokString
	tokChar
	tokNumber
	tokDot
	tokEllipsis
	tokLParen
	tokRParen
	tokComma
	tokLBracket
	tokRBracket
	tokLess
	tokGreater
	tokDivide
	tokMultiply
	tokLBrace
	tokRBrace
	tokEqual
	tokColon
	tokHash
	tokAt
	tokCommentLine
	tokOther
)

var keywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "continue": true,
	"default": true, "do": true, "double": true, "else": true, "extends": true,
	"false": true, "final": true, "finally": true, "float": true, "for": true,
	"if": true, "implements": true, "import": true, "instanceof": true, "int": true,
	"interface": true, "long": true, "native": true, "new": true, "null": true,
	"package": true, "private": true, "protected": true, "public": true, "short": true,
	"static": true, "strictfp": true, "super": true, "switch": true, "synchronized": true,
	"this": true, "throw": true, "transient": true, "true": true, "try": true,
	"void": true, "volatile": true, "while": true,
}

// tokenScanner splits a window of the comment into Java-like tokens.
// It never fails: malformed input comes back as tokError or tokOther.
type tokenScanner struct {
	src []rune
	pos int
	eof int // exclusive

	start int
	end   int // inclusive
	text  string

	whitespace bool
	comments   bool
}

func (s *tokenScanner) resetTo(start, eof int) {
	s.pos = start
	if eof > len(s.src) {
		eof = len(s.src)
	}
	s.eof = eof
	s.start = start
	s.end = start - 1
	s.text = ""
}

func (s *tokenScanner) peek() (rune, int) {
	if s.pos >= s.eof {
		return 0, s.pos
	}
	return decodeAt(s.src, s.pos)
}

func (s *tokenScanner) next() tokenKind {
	for {
		s.start = s.pos
		s.text = ""
		if s.pos >= s.eof {
			s.end = s.pos - 1
			return tokEOF
		}
		c, n := s.peek()
		if isWhitespace(c) {
			for s.pos < s.eof {
				c, n = s.peek()
				if !isWhitespace(c) {
					break
				}
				s.pos = n
			}
			if s.whitespace {
				return s.finish(tokWhitespace)
			}
			continue
		}
		s.pos = n

		switch {
		case isJavaIdentifierStart(c):
			var b strings.Builder
			b.WriteRune(c)
			for s.pos < s.eof {
				c, n = s.peek()
				if !isJavaIdentifierPart(c) {
					break
				}
				b.WriteRune(c)
				s.pos = n
			}
			kind := s.finish(tokIdentifier)
			s.text = b.String()
			if keywords[s.text] {
				kind = tokKeyword
			}
			return kind
		case c >= '0' && c <= '9':
			for s.pos < s.eof {
				c, n = s.peek()
				if !isJavaIdentifierPart(c) {
					break
				}
				s.pos = n
			}
			return s.finish(tokNumber)
		}

		switch c {
		case '"', '\'':
			return s.quoted(c)
		case '.':
			if s.pos+1 < s.eof && s.src[s.pos] == '.' && s.src[s.pos+1] == '.' {
				s.pos += 2
				return s.finish(tokEllipsis)
			}
			return s.finish(tokDot)
		case '/':
			if s.comments && s.pos < s.eof && s.src[s.pos] == '/' {
				for s.pos < s.eof && !isLineTerminator(s.src[s.pos]) {
					s.pos++
				}
				return s.finish(tokCommentLine)
			}
			return s.finish(tokDivide)
		}
		return s.finish(punctuation(c))
	}
}

func punctuation(c rune) tokenKind {
	switch c {
	case '(':
		return tokLParen
	case ')':
		return tokRParen
	case ',':
		return tokComma
	case '[':
		return tokLBracket
	case ']':
		return tokRBracket
	case '<':
		return tokLess
	case '>':
		return tokGreater
	case '*':
		return tokMultiply
	case '{':
		return tokLBrace
	case '}':
		return tokRBrace
	case '=':
		return tokEqual
	case ':':
		return tokColon
	case '#':
		return tokHash
	case '@':
		return tokAt
	}
	return tokOther
}

// quoted reads a string or character literal. An unterminated literal
// stops at the line end and is returned as tokError.
func (s *tokenScanner) quoted(quote rune) tokenKind {
	for s.pos < s.eof {
		c, n := s.peek()
		if isLineTerminator(c) {
			return s.finish(tokError)
		}
		s.pos = n
		if c == '\\' && s.pos < s.eof {
			_, s.pos = decodeAt(s.src, s.pos)
			continue
		}
		if c == quote {
			if quote == '"' {
				return s.finish(tokString)
			}
			return s.finish(tokChar)
		}
	}
	return s.finish(tokError)
}

func (s *tokenScanner) finish(kind tokenKind) tokenKind {
	s.end = s.pos - 1
	s.text = string(s.src[s.start:s.pos])
	return kind
}

// isPrimitive reports whether a keyword names a primitive type.
func isPrimitive(name string) bool {
	switch name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double", "void":
		return true
	}
	return false
}
