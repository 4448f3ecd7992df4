package javadoc

import (
	"errors"
	"strings"
	"unicode"
)

// parseReference reads the target of @see, {@link}, {@linkplain} and
// {@value}. A recognized target is pushed to the see lane.
func (p *Parser) parseReference(allowModule bool) (bool, error) {
	currentPosition := p.scan.pos
	ws := p.scan.whitespace
	p.scan.whitespace = false
	defer func() { p.scan.whitespace = ws }()

	ok, err := p.parseReferenceTarget(allowModule)
	if err == nil {
		return ok, nil
	}
	if errors.Is(err, ErrMalformedInput) {
		return false, err
	}
	p.report(InvalidReference, Span{Start: currentPosition, End: p.tokenEnd()})
	p.rescan()
	return false, nil
}

func (p *Parser) parseReferenceTarget(allowModule bool) (bool, error) {
	var typeRef Expression
	typeRefStart := -1

loop:
	for p.index < p.scan.eof {
		previousPosition := p.index
		tok := p.readToken()
		p.scan.whitespace = true
		switch tok {
		case tokString:
			// @see "The Java Language Specification"
			if typeRef != nil {
				break loop
			}
			p.consumeToken()
			start := p.scan.start
			if p.tagValue == TagValue {
				p.report(InvalidValueReference, Span{Start: start, End: p.tokenEnd()})
				return false, nil
			}
			ref := &FakeReference{Text: p.scan.text, Span: Span{Start: start, End: p.scan.end}}
			if p.verifyEndLine(previousPosition) {
				p.pushSee(ref)
				return true, nil
			}
			p.report(UnexpectedText, Span{Start: p.scan.pos, End: p.lineEnd})
			return false, nil

		case tokLess:
			// @see <a href="...">label</a>
			if typeRef != nil {
				break loop
			}
			p.consumeToken()
			start := p.scan.start
			if !p.parseHref() {
				if p.tagValue == TagValue {
					p.report(InvalidValueReference, Span{Start: start, End: p.indexPosition()})
				}
				return false, nil
			}
			p.consumeToken()
			if p.tagValue == TagValue {
				p.report(InvalidValueReference, Span{Start: start, End: p.indexPosition()})
				return false, nil
			}
			ref := &FakeReference{Text: p.text(start, p.index-1), Span: Span{Start: start, End: p.index - 1}}
			if p.verifyEndLine(previousPosition) {
				p.pushSee(ref)
				return true, nil
			}
			p.report(UnexpectedText, Span{Start: p.scan.pos, End: p.lineEnd})
			return false, nil

		case tokHash:
			p.consumeToken()
			ref, err := p.parseMember(typeRef)
			if err != nil {
				return false, err
			}
			if ref == nil {
				return false, nil
			}
			p.pushSee(ref)
			return true, nil

		case tokError:
			p.consumeToken()
			if !strings.HasPrefix(p.scan.text, `"`) {
				break loop
			}
			kind := InvalidReference
			if p.tagValue == TagSee && looksLikeURL(p.scan.text[1:]) {
				kind = InvalidSeeURLReference
			}
			p.report(kind, Span{Start: p.scan.start, End: p.tokenEnd()})
			return false, nil

		case tokIdentifier:
			if typeRef != nil {
				break loop
			}
			typeRefStart = p.scan.start
			ref, err := p.parseQualifiedName(true, allowModule)
			if err != nil {
				return false, err
			}
			typeRef = ref

		default:
			break loop
		}
	}

	if typeRef == nil {
		p.rescan()
		if p.tagValue == TagValue {
			// {@value} alone documents the field it is attached to
			return true, nil
		}
		p.report(MissingReference, p.tagSpan())
		return false, nil
	}

	if p.lastIdentifierEnd > p.start {
		p.index = p.lastIdentifierEnd + 1
		p.scan.pos = p.index
	}
	p.currentToken = tokNone

	if p.tagValue == TagValue {
		// only Type#FIELD is meaningful for {@value}
		p.report(InvalidReference, Span{Start: typeRefStart, End: p.lineEnd})
		return false, nil
	}

	currentIndex := p.index
	switch p.readChar() {
	case '(':
		p.report(MissingHashCharacter, Span{Start: typeRefStart, End: p.lineEnd}, p.text(typeRefStart, p.lineEnd))
		return false, nil
	case ':':
		if p.readChar() == '/' && p.readChar() == '/' {
			p.report(InvalidSeeURLReference, Span{Start: typeRefStart, End: p.lineEnd})
			return false, nil
		}
	}
	p.index = currentIndex

	if !p.verifySpaceOrEndComment() {
		p.rescan()
		p.report(MalformedSeeReference, Span{Start: typeRefStart, End: p.malformedEnd()})
		return false, nil
	}
	p.pushSee(typeRef)
	return true, nil
}

// looksLikeURL reports whether s starts with scheme://.
func looksLikeURL(s string) bool {
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	return i > 0 && strings.HasPrefix(s[i:], "://")
}

// malformedEnd is the end offset reported for a reference not followed
// by a separator.
func (p *Parser) malformedEnd() int {
	end := p.lineEnd
	if p.starPosition != -1 {
		end = p.starPosition
	}
	if p.charAt(end) == '\n' {
		end--
	}
	return end
}

// parseQualifiedName reads a.b.C, a primitive keyword or, at Java 15
// and later, a module prefix such as java.base/java.lang.String. It
// returns nil when the first token is not a name.
func (p *Parser) parseQualifiedName(reset, allowModule bool) (Expression, error) {
	if reset {
		p.resetIdentifiers()
	}

	java15 := p.level >= Java15
	primitive := false
	moduleCount := 0
	lookForModule := false
	stop := false
	var prev, cur tokenKind = tokNone, tokNone

loop:
	for i := 0; ; i++ {
		if i == 0 {
			lookForModule = false
			prev = tokNone
		} else {
			prev = cur
		}
		if stop && !p.completion {
			break
		}
		tok := p.readToken()
		cur = tok
		switch {
		case tok == tokIdentifier:
			if i&1 != 0 {
				break loop
			}
			p.pushIdentifier(i == 0)
			p.consumeToken()
			if allowModule && java15 && p.peekChar() == '/' {
				lookForModule = true
			}

		case tok == tokDot:
			if i&1 == 0 {
				return nil, errInvalidInput
			}
			p.consumeToken()

		case tok == tokKeyword && i == 0:
			p.pushIdentifier(true)
			primitive = true
			p.consumeToken()
			break loop

		case tok == tokDivide && java15 && lookForModule:
			if i&1 == 0 || moduleCount > 0 {
				return nil, errInvalidInput
			}
			moduleCount = (i + 1) / 2
			p.consumeToken()
			lookForModule = false
			if !p.considerNextChar() {
				stop = true
			}

		default:
			if i == 0 {
				if n := len(p.identPos); n > 0 {
					p.lastIdentifierEnd = p.identPos[n-1].End
				}
				return nil, nil
			}
			if i&1 == 0 && !(prev == tokDivide && moduleCount > 0) {
				// the name ends on a dot
				if !p.completion {
					return nil, errInvalidInput
				}
			}
			break loop
		}
	}

	if !p.completion && p.currentToken != tokNone {
		p.rescan()
	}
	if n := len(p.identPos); n > 0 {
		p.lastIdentifierEnd = p.identPos[n-1].End
	}
	if moduleCount > 0 {
		return p.createModuleTypeReference(moduleCount), nil
	}
	if t := p.createTypeReference(primitive); t != nil {
		return t, nil
	}
	return nil, nil
}

// considerNextChar reports whether the character after a module '/'
// may continue the reference.
func (p *Parser) considerNextChar() bool {
	c := p.peekChar()
	return c != ' ' && c != '\n' && c != '\r'
}

// parseMember reads the part after '#': a field name or a method or
// constructor name with its argument list.
func (p *Parser) parseMember(receiver Expression) (Expression, error) {
	p.resetIdentifiers()
	start := p.scan.start
	p.memberStart = start

	if p.readToken() != tokIdentifier {
		end := max(p.tokenEnd()-1, start)
		p.report(InvalidReference, Span{Start: start, End: end})
		p.rescan()
		return nil, nil
	}
	if p.nextChar() == '.' {
		// qualified member name, as in #Outer.Inner()
		if _, err := p.parseQualifiedName(true, false); err != nil {
			return nil, err
		}
	} else {
		p.consumeToken()
		p.pushIdentifier(true)
	}

	ws := p.scan.whitespace
	p.scan.whitespace = false
	defer func() { p.scan.whitespace = ws }()

	previousPosition := p.index
	if p.readToken() == tokLParen {
		p.consumeToken()
		start = p.scan.start
		ref, err := p.parseArguments(receiver)
		if err == nil || errors.Is(err, ErrMalformedInput) {
			return ref, err
		}
		end := p.scan.start
		if p.scan.end < p.lineEnd {
			end = p.scan.end
		}
		end = min(end, p.lineEnd)
		p.report(InvalidSeeArgs, Span{Start: start, End: end})
		return nil, nil
	}

	p.index = previousPosition
	p.scan.pos = previousPosition
	p.currentToken = tokNone

	if !p.verifySpaceOrEndComment() {
		p.report(MalformedSeeReference, Span{Start: start, End: p.malformedEnd()})
		return nil, nil
	}
	return p.createFieldReference(receiver)
}

// nextChar is the character right after the current token.
func (p *Parser) nextChar() rune {
	if p.scan.pos >= p.scan.eof {
		return 0
	}
	return p.charAt(p.scan.pos)
}

// parseArguments reads a method reference parameter list after '('.
// Either every argument is named or none is.
func (p *Parser) parseArguments(receiver Expression) (Expression, error) {
	modulo := 0 // 2 for (Type,Type), 3 for (Type a,Type b)
	iToken := 0
	argName := ""
	named := false
	var args []*ArgumentExpression
	start := p.scan.start

	ws := p.scan.whitespace
	p.scan.whitespace = false
	defer func() { p.scan.whitespace = ws }()

next:
	for p.index < p.scan.eof {
		typeRef, err := p.parseQualifiedName(false, false)
		if err != nil {
			break next
		}
		firstArg := modulo == 0
		if firstArg {
			if iToken != 0 {
				break next
			}
		} else if iToken%modulo != 0 {
			break next
		}
		if typeRef == nil {
			if firstArg && p.currentToken == tokRParen {
				if !p.verifySpaceOrEndComment() {
					p.report(MalformedSeeReference, Span{Start: start, End: p.malformedEnd()})
					return nil, nil
				}
				p.lineStarted = true
				ref, err := p.createMethodReference(receiver, nil)
				p.consumeToken()
				return ref, err
			}
			break next
		}
		iToken++

		dims := 0
		varargs := false
		dimEnd := -1
		switch p.readToken() {
		case tokLBracket:
			for p.readToken() == tokLBracket {
				p.consumeToken()
				if p.readToken() != tokRBracket {
					break next
				}
				p.consumeToken()
				dims++
				dimEnd = p.scan.end
			}
		case tokEllipsis:
			dimEnd = p.scan.end
			dims++
			p.consumeToken()
			varargs = true
		}

		var nameSpan *Span
		if p.readToken() == tokIdentifier {
			p.consumeToken()
			if firstArg {
				if iToken != 1 {
					break next
				}
			} else if iToken%modulo != 1 {
				break next
			}
			if !named && !firstArg {
				break next
			}
			argName = p.scan.text
			named = true
			nameSpan = &Span{Start: p.scan.start, End: p.scan.end}
			iToken++
		} else if named {
			break next
		}

		if firstArg {
			modulo = iToken + 1
		} else if iToken%modulo != modulo-1 {
			break next
		}

		name := ""
		if named {
			name = argName
		}
		switch p.readToken() {
		case tokComma:
			arg, err := p.createArgumentReference(name, dims, varargs, typeRef, dimEnd, nameSpan)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.consumeToken()
			iToken++
		case tokRParen:
			if !p.verifySpaceOrEndComment() {
				p.report(MalformedSeeReference, Span{Start: start, End: p.malformedEnd()})
				return nil, nil
			}
			arg, err := p.createArgumentReference(name, dims, varargs, typeRef, dimEnd, nameSpan)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			ref, err := p.createMethodReference(receiver, args)
			p.consumeToken()
			return ref, err
		default:
			break next
		}
	}
	return nil, errInvalidInput
}

// parseHref reads <a href="...">label</a> after the '<' token.
func (p *Parser) parseHref() bool {
	comments, ws := p.scan.comments, p.scan.whitespace
	p.scan.comments, p.scan.whitespace = false, false
	defer func() { p.scan.comments, p.scan.whitespace = comments, ws }()

	start := p.scan.start
	if c := p.readChar(); c == 'a' || c == 'A' {
		p.scan.pos = p.index
		if p.readToken() == tokIdentifier {
			p.consumeToken()
			if strings.EqualFold(p.scan.text, "href") && p.readToken() == tokEqual {
				p.consumeToken()
				if p.readToken() == tokString {
					p.consumeToken()
					for p.index < p.end {
						for p.readToken() != tokGreater {
							if p.hrefInterrupted() {
								p.rescan()
								p.reportHref(start)
								return false
							}
							p.currentToken = tokNone
						}
						p.consumeToken()
						for p.readToken() != tokLess {
							if p.hrefInterrupted() {
								p.rescan()
								p.reportHref(start)
								return false
							}
							p.consumeToken()
						}
						p.consumeToken()
						start = p.scan.start
						c := p.readChar()
						if c == '/' {
							if c = p.readChar(); c == 'a' || c == 'A' {
								if c = p.readChar(); c == '>' {
									return true
								}
							}
						}
						if c == '\r' || c == '\n' || c == '\t' || c == ' ' {
							break
						}
					}
				}
			}
		}
	}
	p.rescan()
	p.reportHref(start)
	return false
}

// hrefInterrupted reports whether the anchor runs into a new tag, the
// end of an inline tag or the end of the comment.
func (p *Parser) hrefInterrupted() bool {
	if p.scan.pos >= p.scan.eof {
		return true
	}
	c := p.lastChar()
	return c == '@' || (p.inlineTagStarted && c == '}')
}

func (p *Parser) reportHref(start int) {
	if p.tagValue != TagValue {
		p.report(InvalidSeeHref, Span{Start: start, End: p.lineEnd})
	}
}

// verifySpaceOrEndComment checks that a reference is followed by
// whitespace, the closing brace of the inline tag or the comment end.
func (p *Parser) verifySpaceOrEndComment() bool {
	p.starPosition = -1
	startPosition := p.index
	if p.index >= p.scan.eof {
		return true
	}
	c := p.peekChar()
	if c == '}' {
		return p.inlineTagStarted
	}
	if isWhitespace(c) {
		return true
	}
	for i := startPosition; i < len(p.src); {
		c, next := decodeAt(p.src, i)
		switch c {
		case '*':
			p.starPosition = i
		case '/':
			return p.starPosition >= startPosition
		default:
			return false
		}
		i = next
	}
	return false
}

// verifyEndLine checks that only blanks remain on the line, or the
// closing brace when inside an inline tag.
func (p *Parser) verifyEndLine(textPosition int) bool {
	if p.index >= p.scan.eof {
		return true
	}
	if p.inlineTagStarted {
		return p.peekChar() == '}'
	}

	startPosition := p.index
	previousPosition := p.index
	p.starPosition = -1
	for p.index < p.scan.eof {
		switch c := p.readChar(); c {
		case '\r', '\n':
			p.index = previousPosition
			return true
		case '\f', ' ', '\t':
			if p.starPosition >= 0 {
				p.index = startPosition
				return false
			}
		case '*':
			p.starPosition = previousPosition
		case '/':
			if p.starPosition >= textPosition {
				return true
			}
			p.index = startPosition
			return false
		default:
			p.index = startPosition
			return false
		}
		previousPosition = p.index
	}
	p.index = startPosition
	return true
}
