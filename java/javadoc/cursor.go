package javadoc

import "unicode"

// decodeAt reads the logical character at i, resolving a \uXXXX escape
// (any number of 'u's is allowed). It returns the character and the
// index following it. A malformed escape yields the backslash alone.
// Offsets at or past the end yield 0.
func decodeAt(src []rune, i int) (rune, int) {
	if i < 0 || i >= len(src) {
		return 0, i + 1
	}
	c := src[i]
	if c != '\\' || i+1 >= len(src) || src[i+1] != 'u' {
		return c, i + 1
	}
	j := i + 1
	for j < len(src) && src[j] == 'u' {
		j++
	}
	if j+4 > len(src) {
		return c, i + 1
	}
	var v rune
	for k := 0; k < 4; k++ {
		h := hexValue(src[j+k])
		if h < 0 {
			return c, i + 1
		}
		v = v*16 + h
	}
	return v, j + 4
}

func hexValue(c rune) rune {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return -1
}

// cursor is the parser's character position in the source buffer.
type cursor struct {
	src   []rune
	index int
}

// readChar returns the character at index and advances past it.
func (c *cursor) readChar() rune {
	ch, next := decodeAt(c.src, c.index)
	c.index = next
	return ch
}

// peekChar returns the character at index without moving.
func (c *cursor) peekChar() rune {
	ch, _ := decodeAt(c.src, c.index)
	return ch
}

// charAt decodes the character starting at i.
func (c *cursor) charAt(i int) rune {
	ch, _ := decodeAt(c.src, i)
	return ch
}

// text returns the raw source between start and end inclusive.
func (c *cursor) text(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end >= len(c.src) {
		end = len(c.src) - 1
	}
	if start > end {
		return ""
	}
	return string(c.src[start : end+1])
}

func isWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v', 0x1c, 0x1d, 0x1e, 0x1f:
		return true
	}
	return c > 0x7f && unicode.IsSpace(c) && c != 0xa0 && c != 0x2007 && c != 0x202f
}

func isLineTerminator(c rune) bool {
	return c == '\n' || c == '\r'
}

func isJavaIdentifierStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_' || c == '$' ||
		unicode.Is(unicode.Sc, c) || unicode.Is(unicode.Pc, c) || unicode.Is(unicode.Nl, c)
}

func isJavaIdentifierPart(c rune) bool {
	return isJavaIdentifierStart(c) || unicode.IsDigit(c) ||
		unicode.Is(unicode.Mn, c) || unicode.Is(unicode.Mc, c)
}
