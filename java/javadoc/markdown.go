package javadoc

import "strings"

// parseMarkdownLink recognizes the reference links [ref] and
// [text][ref] of markdown comments and reads ref as a {@link} target.
// open is the offset of the '[' that was just read.
func (p *Parser) parseMarkdownLink(open int) (bool, error) {
	limit := p.end + 1
	start := p.index
	closeAt := -1
brackets:
	for i := start; i < limit; {
		c, next := decodeAt(p.src, i)
		switch {
		case c == '\\':
			if e, n := decodeAt(p.src, next); next < limit && (e == '[' || e == ']') {
				i = n
				continue
			}
		case isLineTerminator(c):
			if !p.completion {
				return false, nil
			}
		case c == ']':
			// [text][ref] links to ref
			if n, after := decodeAt(p.src, next); next < limit && n == '[' {
				open, start = next, after
				i = after
				continue
			}
			closeAt = i
			break brackets
		}
		i = next
	}
	if closeAt < 0 || !looksLikeReference(p.text(start, closeAt-1)) {
		return false, nil
	}
	if c := p.charAt(closeAt + 1); closeAt+1 < limit && (c == '(' || c == ':') {
		// inline link or link definition
		return false, nil
	}

	ok, err := p.withinWindow(start, closeAt, func() (bool, error) {
		p.tagValue = TagLink
		p.tagStart, p.tagEnd = open, closeAt
		return p.parseReference(true)
	})
	if err != nil {
		return false, err
	}
	p.tags = append(p.tags, Tag{
		Kind:   TagLink,
		Name:   TagLink.String(),
		Span:   Span{Start: open, End: closeAt},
		Inline: true,
		Valid:  ok,
	})
	p.seek(closeAt + 1)
	p.updateLineEnd()
	return ok, nil
}

// looksLikeReference accepts program element names such as
// java.util.List, #field or Map#get(Object). Blanks are only allowed
// between parentheses.
func looksLikeReference(s string) bool {
	if s == "" {
		return false
	}
	first := []rune(s)[0]
	if first != '#' && !isJavaIdentifierStart(first) {
		return false
	}
	depth := 0
	for _, c := range s {
		switch {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case isWhitespace(c) && depth == 0:
			return false
		}
	}
	return depth == 0 && !strings.Contains(s, "://")
}
