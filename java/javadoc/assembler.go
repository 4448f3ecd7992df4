package javadoc

import "errors"

// commentParse walks the comment character by character from the line
// holding the first tag, dispatching tags as they appear.
func (p *Parser) commentParse() error {
	p.lastLinePtr = p.lines.LineNumber(p.end)
	first := p.in.FirstTag
	if p.markdown || first <= p.start {
		first = p.start
	}
	p.linePtr = p.lines.LineNumber(first)
	realStart := p.start
	if p.linePtr > 1 {
		realStart = p.lines.LineStart(p.linePtr)
	}
	if realStart < p.start {
		realStart = p.start
	}
	p.scan.resetTo(realStart, p.end+1)
	p.index = realStart

	var nextCharacter, previousChar rune
	if realStart == p.start {
		p.readChar()
		p.readChar()
		nextCharacter = p.readChar()
		if !p.markdown {
			for p.peekChar() == '*' {
				nextCharacter = p.readChar()
			}
		}
	}
	if p.linePtr == p.lastLinePtr {
		p.lineEnd = p.end
	} else {
		p.lineEnd = p.lines.LineEnd(p.linePtr, p.end) - 1
	}

	var (
		plainText               bool // inside {@code} or {@literal}
		openingBraces           int
		textEndPosition         = -1
		invalidTagLineEnd       = -1
		invalidInlineTagLineEnd = -1
		lastStarPosition        = -1
		codeSpan, fenced        bool
	)

	// markdown comments have no closing delimiter
	limit := p.end
	if p.markdown {
		limit = p.end + 1
	}
	for p.index < limit {
		previousPosition := p.index
		previousChar = nextCharacter

		if p.index > p.lineEnd+1 {
			p.updateLineEnd()
		}

		if p.currentToken == tokNone {
			nextCharacter = p.readChar()
		} else {
			previousPosition = p.scan.start
			switch p.currentToken {
			case tokRBrace:
				nextCharacter = '}'
			case tokMultiply:
				nextCharacter = '*'
			default:
				nextCharacter = p.lastChar()
			}
			p.consumeToken()
		}

		switch nextCharacter {
		case '@':
			if plainText {
				if !p.lineStarted {
					if openingBraces > 0 {
						p.report(UnterminatedInlineTag, Span{Start: p.inlineTagStart, End: invalidInlineTagLineEnd})
					}
					plainText = false
					p.inlineTagStarted = false
					openingBraces = 0
				}
			} else if !p.lineStarted || previousChar == '{' {
				if p.inlineTagStarted {
					p.inlineTagStarted = false
					p.report(UnterminatedInlineTag, Span{Start: p.inlineTagStart, End: min(previousPosition, invalidInlineTagLineEnd)})
					p.validComment = false
					if p.textStart != -1 && p.textStart < textEndPosition {
						p.pushText()
					}
				}
				if previousChar == '{' {
					if p.textStart != -1 && p.textStart < textEndPosition {
						p.pushText()
					}
					p.inlineTagStarted = true
					invalidInlineTagLineEnd = p.lineEnd
				} else if p.textStart != -1 && p.textStart < invalidTagLineEnd {
					p.pushText()
				}
				p.scan.resetTo(p.index, p.end+1)
				p.currentToken = tokNone
				valid, err := p.parseTag(previousPosition)
				switch {
				case errors.Is(err, ErrMalformedInput):
					return err
				case err != nil:
					p.consumeToken()
				default:
					if !valid {
						p.validComment = false
						p.textStart = p.tagEnd + 1
						invalidTagLineEnd = p.lineEnd
						textEndPosition = p.index
					}
					if p.tagValue == TagLiteral || p.tagValue == TagCode {
						plainText = true
						openingBraces++
					}
				}
			} else {
				textEndPosition = p.index
				p.refreshReturnStatement()
			}
			p.lineStarted = true

		case '\r', '\n':
			if p.lineStarted && p.textStart != -1 && p.textStart < textEndPosition {
				p.pushText()
			}
			p.lineStarted = false
			p.textStart = -1
			codeSpan = false

		case '}':
			p.refreshReturnStatement()
			if plainText {
				invalidInlineTagLineEnd = p.lineEnd
				openingBraces--
				if openingBraces == 0 {
					plainText = false
				}
			}
			if p.inlineTagStarted {
				textEndPosition = p.index - 1
				if !plainText {
					if p.lineStarted && p.textStart != -1 && p.textStart < textEndPosition {
						p.pushText()
					}
					p.refreshInlineTagPosition()
					p.textStart = p.index
				}
				p.inlineTagStarted = false
			} else if !p.lineStarted {
				p.textStart = previousPosition
			}
			p.lineStarted = true
			textEndPosition = p.index

		case '{':
			p.refreshReturnStatement()
			switch {
			case plainText:
				openingBraces++
			case p.inlineTagStarted:
				p.inlineTagStarted = false
				p.report(UnterminatedInlineTag, Span{Start: p.inlineTagStart, End: min(previousPosition, invalidInlineTagLineEnd)})
				if p.lineStarted && p.textStart != -1 && p.textStart < textEndPosition {
					p.pushText()
				}
				p.refreshInlineTagPosition()
				textEndPosition = p.index
			case p.peekChar() != '@':
				if p.textStart == -1 {
					p.textStart = previousPosition
				}
				textEndPosition = p.index
			}
			if !p.lineStarted {
				p.textStart = previousPosition
			}
			p.lineStarted = true
			if !plainText {
				p.inlineTagStart = previousPosition
			}

		case '*':
			lastStarPosition = previousPosition
			if previousChar != '*' {
				p.starPosition = previousPosition
			}

		case '\f', ' ', '\t':

		case '/':
			if previousChar == '*' {
				break
			}
			if p.markdown && !p.lineStarted {
				break
			}
			p.textChar(previousPosition, &textEndPosition)

		case '`':
			if p.markdown {
				ticks := 1
				for p.peekChar() == '`' {
					p.readChar()
					ticks++
				}
				if ticks >= 3 && !p.lineStarted {
					fenced = !fenced
				} else if !fenced {
					codeSpan = !codeSpan
				}
			}
			p.textChar(previousPosition, &textEndPosition)

		case '[':
			p.textChar(previousPosition, &textEndPosition)
			if p.markdown && !codeSpan && !fenced && !plainText {
				if _, err := p.parseMarkdownLink(previousPosition); err != nil {
					if errors.Is(err, ErrMalformedInput) {
						return err
					}
					p.consumeToken()
				}
				textEndPosition = p.index
			}

		default:
			p.textChar(previousPosition, &textEndPosition)
		}
	}

	if p.inlineTagStarted || plainText {
		end := min(p.starPosition-1, invalidInlineTagLineEnd)
		if p.index >= p.end || end < p.inlineTagStart {
			end = invalidInlineTagLineEnd
		}
		p.report(UnterminatedInlineTag, Span{Start: p.inlineTagStart, End: end})
		if p.lineStarted && p.textStart != -1 && p.textStart < textEndPosition {
			p.pushText()
		}
		p.refreshInlineTagPosition()
		p.inlineTagStarted = false
	} else if p.lineStarted && p.textStart != -1 && p.textStart < textEndPosition &&
		(p.textStart < p.starPosition || p.starPosition == lastStarPosition) {
		p.pushText()
	}
	return nil
}

// textChar handles an ordinary description character.
func (p *Parser) textChar(previousPosition int, textEndPosition *int) {
	p.refreshReturnStatement()
	if !p.lineStarted || p.textStart == -1 {
		p.textStart = previousPosition
	}
	p.lineStarted = true
	*textEndPosition = p.index
}

// finish reports what is still pending and moves the collected nodes
// into doc.
func (p *Parser) finish(doc *Document) {
	p.reportMissingDescription()
	if p.validValue == nil && p.badValue != nil {
		p.report(UnexpectedTag, *p.badValue)
	}

	doc.Deprecated = p.deprecated
	doc.InheritedPositions = p.inherited
	switch {
	case p.validValue != nil:
		doc.ValuePosition = p.validValue
	case p.badValue != nil:
		doc.ValuePosition = p.badValue
	}
	doc.Return = p.returnStmt
	doc.UsesReferences = p.uses
	doc.ProvidesReferences = p.provides
	doc.Tags = p.tags
	doc.Valid = p.validComment
	p.ordered.finish(doc)
}
