package javadoc

// scanDeprecation looks for a @deprecated block tag without building a
// document. Lines are read from the one holding the first tag; the scan
// stops at the first match.
func (p *Parser) scanDeprecation() bool {
	if p.in.FirstTag == 0 {
		return false
	}
	// the closing */ is not part of the body
	limit := p.end - 1
	if p.markdown {
		limit = p.end + 1
	}
	firstLine := p.lines.LineNumber(p.in.FirstTag)
	lastLine := p.lines.LineNumber(p.end)
	for line := firstLine; line <= lastLine; line++ {
		p.index = max(p.lines.LineStart(line), p.start+3)
		end := min(p.lines.LineEnd(line, limit), limit)
	chars:
		for p.index < end {
			switch p.readChar() {
			case '*', '\f', ' ', '\t', '\r', '\n':
			case '/':
				if !p.markdown {
					break chars
				}
			case '@':
				if p.matchDeprecated(limit) {
					p.deprecated = true
					return true
				}
				break chars
			default:
				break chars
			}
		}
	}
	return false
}

// matchDeprecated reads "deprecated" after an '@' and checks that it
// is followed by whitespace, a star or the end of the comment.
func (p *Parser) matchDeprecated(limit int) bool {
	for _, want := range "deprecated" {
		if p.index >= limit || p.readChar() != want {
			return false
		}
	}
	if p.index >= limit {
		return true
	}
	c := p.peekChar()
	return isWhitespace(c) || c == '*'
}
