package javadoc

import "strings"

// parseTag reads the tag name following '@' at previousPosition and
// dispatches on it. It returns false when the tag body is malformed or
// the tag is not allowed where it appears.
func (p *Parser) parseTag(previousPosition int) (bool, error) {
	p.reportMissingDescription()

	p.tagStart = previousPosition
	p.tagEnd = previousPosition
	p.tagNameStart = p.index
	p.tagTerminator = 0

	currentPosition := p.index
	first := p.readChar()
	switch {
	case first == ' ', first == '*', first == '}', first == '#', isWhitespace(first):
		p.report(InvalidTag, Span{Start: previousPosition, End: currentPosition})
		if p.textStart == -1 {
			p.textStart = currentPosition
		}
		p.index = currentPosition
		return false, nil
	}

	var name strings.Builder
	name.WriteRune(first)
	validName := true
	for {
		currentPosition = p.index
		if p.index > p.end {
			break
		}
		c := p.readChar()
		if c == ' ' || c == '*' || c == '}' || isWhitespace(c) {
			p.tagTerminator = c
			break
		}
		if c == '#' {
			validName = false
		}
		name.WriteRune(c)
	}

	p.tagEnd = currentPosition - 1
	p.seek(currentPosition)

	if !validName {
		p.report(InvalidTag, p.tagSpan())
		if p.textStart == -1 {
			p.textStart = p.index
		}
		return false, nil
	}

	tagName := name.String()
	inline := p.inlineTagStarted
	kind := LookupTag(tagName)

	p.tagValue = TagOthers
	ok := true
	legacyValue := false
	var err error

	switch kind {
	case TagAuthor, TagAPINote, TagImplSpec, TagImplNote, TagSerial, TagSerialData,
		TagSerialField, TagSince, TagSystemProperty, TagSummary, TagVersion:
		p.tagValue = kind
		p.wait(kind)

	case TagCategory:
		p.tagValue = kind
		if !inline {
			ok = p.parseIdentifierTag(true)
		}

	case TagCode, TagLiteral:
		if inline {
			p.tagValue = kind
			p.wait(kind)
		}

	case TagDeprecated:
		p.deprecated = true
		p.tagValue = kind
		p.wait(kind)

	case TagDocRoot, TagHidden:
		p.tagValue = kind

	case TagIndex:
		p.tagValue = kind
		p.wait(kind)

	case TagException, TagThrows:
		p.tagValue = kind
		if !inline {
			ok = p.parseThrows()
			if ok {
				p.wait(kind)
			}
		}

	case TagInheritDoc:
		p.tagValue = kind
		switch p.lastBlockTag {
		case TagNone, TagReturn, TagThrows, TagException, TagParam:
			p.inherited = append(p.inherited, p.tagSpan())
		default:
			ok = false
			p.report(UnexpectedTag, p.tagSpan())
		}

	case TagLink:
		p.tagValue = kind
		if inline || p.completion {
			ok, err = p.parseReference(true)
		}

	case TagLinkplain:
		p.tagValue = kind
		if inline {
			ok, err = p.parseReference(true)
		}

	case TagParam:
		p.tagValue = kind
		if !inline {
			ok, err = p.parseParam()
			if ok {
				p.wait(kind)
			}
		}

	case TagProvides:
		p.tagValue = kind
		if !inline {
			ok = p.parseProvides()
		}

	case TagUses:
		p.tagValue = kind
		if !inline {
			ok = p.parseUses()
		}

	case TagReturn:
		p.tagValue = kind
		if p.level >= Java16 || !inline {
			ok = p.parseReturn()
		}

	case TagSee:
		p.tagValue = kind
		if !inline {
			ok, err = p.parseReference(true)
		}

	case TagSnippet:
		p.tagValue = kind
		p.wait(kind)
		if inline {
			ok, err = p.parseSnippet()
		}

	case TagValue:
		p.tagValue = kind
		if p.level >= Java5 {
			if inline {
				ok, err = p.parseReference(false)
			}
			break
		}
		legacyValue = true
		span := p.tagSpan()
		if p.validValue != nil {
			ok = false
			p.report(UnexpectedTag, span)
			break
		}
		if p.badValue != nil {
			p.report(UnexpectedTag, *p.badValue)
			p.badValue = nil
		}
		if inline {
			p.validValue = &span
		} else {
			p.badValue = &span
		}

	default:
		if len(tagName) > len("snippet") && strings.HasPrefix(tagName, "snippet") {
			ok = false
			p.report(InvalidSnippet, p.tagSpan())
		}
	}

	tag := Tag{Kind: kind, Name: tagName, Span: p.tagSpan(), Inline: inline, Valid: ok && err == nil}
	if err != nil {
		p.tags = append(p.tags, tag)
		return false, err
	}

	p.textStart = p.index
	if p.tagValue == TagOthers {
		if kind != TagOthers {
			// a known name used where it has no meaning, e.g. @code as a block tag
			tag.Kind = TagOthers
		}
		p.tags = append(p.tags, tag)
		return ok, nil
	}

	if !inline {
		p.lastBlockTag = p.tagValue
	}
	valid := legalPlacement(p.tagValue, inline, p.level)
	if !valid {
		if !legacyValue {
			p.report(UnexpectedTag, p.tagSpan())
		}
		p.tagValue = TagOthers
		p.tagWaiting = TagNone
		tag.Valid = false
	}
	p.tags = append(p.tags, tag)
	return ok && valid, nil
}

// seek moves both the cursor and the token scanner to pos and drops the
// cached token.
func (p *Parser) seek(pos int) {
	p.index = pos
	p.scan.pos = pos
	p.currentToken = tokNone
	p.tokenPreviousPosition = pos
}

// resetTarget clamps a recovery position so that the tag name is never
// read again as a tag.
func (p *Parser) resetTarget(pos int) int {
	return max(pos, p.tagNameStart)
}

func (p *Parser) parseReturn() bool {
	if p.returnStmt == nil {
		p.returnStmt = &ReturnStatement{Span: p.tagSpan(), Empty: true}
		return true
	}
	p.report(DuplicateReturn, p.tagSpan())
	return false
}

// parseIdentifierTag reads the single identifier argument of @category.
func (p *Parser) parseIdentifierTag(report bool) bool {
	if p.readToken() == tokIdentifier {
		p.pushIdentifier(true)
		return true
	}
	if report {
		p.report(MissingIdentifier, p.tagSpan())
	}
	return false
}

// parseParam reads the name following @param, either a parameter name
// or a type parameter written <T>.
func (p *Parser) parseParam() (bool, error) {
	start, end := p.tagStart, p.tagEnd
	ws := p.scan.whitespace
	p.scan.whitespace = true
	defer func() { p.scan.whitespace = ws }()

	if p.tagTerminator != 0 && p.tagTerminator != ' ' && !isWhitespace(p.tagTerminator) {
		p.report(InvalidTag, p.tagSpan())
		if !p.completion {
			p.seek(p.tagNameStart)
		}
		p.currentToken = tokNone
		return false, nil
	}

	p.resetIdentifiers()
	hasMultiLines := p.scan.pos > p.lineEnd+1
	isTypeParam := false
	valid, empty := true, true
	mayBeGeneric := p.level >= Java5
	paramEnd := func() int {
		if hasMultiLines {
			return p.lineEnd
		}
		return p.scan.end
	}
	fail := func(kind ProblemKind) (bool, error) {
		p.report(kind, Span{Start: start, End: end})
		if !p.completion {
			p.seek(p.resetTarget(start))
		}
		p.currentToken = tokNone
		return false, nil
	}

	var tok tokenKind
name:
	for {
		p.currentToken = tokNone
		tok = p.readToken()
		if tok == tokIdentifier && valid {
			p.pushIdentifier(true)
			start, end = p.scan.start, paramEnd()
			break name
		}
		if tok == tokLess && valid && mayBeGeneric {
			p.pushIdentifier(true)
			start, end = p.scan.start, paramEnd()
			isTypeParam = true
			break name
		}
		switch tok {
		case tokEOF:
		case tokWhitespace:
			if p.scan.pos > p.lineEnd+1 {
				hasMultiLines = true
			}
			if valid {
				continue
			}
		default:
			if tok == tokLess {
				isTypeParam = true
			}
			if valid && !hasMultiLines {
				start = p.scan.start
			}
			valid = false
			if !hasMultiLines {
				empty = false
				end = p.scan.end
				continue
			}
			end = p.lineEnd
		}
		switch {
		case empty:
			return fail(MissingParamName)
		case mayBeGeneric && isTypeParam:
			return fail(InvalidParamTypeParameter)
		}
		return fail(InvalidParamTagName)
	}

	if isTypeParam && mayBeGeneric {
	typeName:
		for {
			p.currentToken = tokNone
			tok = p.readToken()
			switch tok {
			case tokWhitespace:
				if valid && p.scan.pos <= p.lineEnd+1 {
					continue
				}
				return fail(InvalidParamTypeParameter)
			case tokEOF:
				return fail(InvalidParamTypeParameter)
			case tokIdentifier:
				end = paramEnd()
				if valid {
					p.pushIdentifier(false)
					break typeName
				}
			default:
				end = paramEnd()
				valid = false
			}
		}

		spaces := false
	closing:
		for {
			p.currentToken = tokNone
			tok = p.readToken()
			switch tok {
			case tokWhitespace:
				if p.scan.pos > p.lineEnd+1 {
					// a type parameter may not span lines
					hasMultiLines = true
					valid = false
				}
				spaces = true
				if valid {
					continue
				}
				return fail(InvalidParamTypeParameter)
			case tokEOF:
				return fail(InvalidParamTypeParameter)
			case tokGreater:
				end = paramEnd()
				if valid {
					p.pushIdentifier(false)
					break closing
				}
			default:
				if !spaces {
					end = paramEnd()
				}
				valid = false
			}
		}
	}

	if valid {
		p.currentToken = tokNone
		restart := p.scan.pos
		tok = p.readTokenAndConsume()
		if tok == tokWhitespace || tok == tokEOF {
			p.scan.resetTo(restart, p.scan.eof)
			p.index = restart
			return p.pushParamName(isTypeParam), nil
		}
	}

	p.currentToken = tokNone
	if p.completion {
		return false, nil
	}
	end = paramEnd()
	for {
		tok = p.readToken()
		if tok == tokWhitespace || tok == tokEOF {
			break
		}
		p.currentToken = tokNone
		end = paramEnd()
	}
	kind := InvalidParamTagName
	if mayBeGeneric && isTypeParam {
		kind = InvalidParamTypeParameter
	}
	p.report(kind, Span{Start: start, End: end})
	p.seek(p.resetTarget(start))
	return false, nil
}

func (p *Parser) pushParamName(isTypeParam bool) bool {
	var ref Expression
	if isTypeParam {
		ref = &SingleTypeReference{Name: p.idents[1], Span: p.identPos[1], TagSpan: p.tagSpan()}
	} else {
		ref = &SingleNameReference{Name: p.idents[0], Span: p.identPos[0], TagSpan: p.tagSpan()}
	}
	if p.ordered.pushParam(ref) {
		return true
	}
	p.report(UnexpectedTag, p.tagSpan())
	return false
}

// parseThrows reads the exception type of @throws and @exception.
func (p *Parser) parseThrows() bool {
	start := p.scan.pos
	ref, err := p.parseQualifiedName(true, false)
	switch {
	case err != nil:
		p.report(InvalidThrowsClass, Span{Start: start, End: p.tokenEnd()})
	case ref == nil:
		p.report(MissingThrowsClassName, p.tagSpan())
	default:
		if t, ok := ref.(*TypeReference); ok {
			p.ordered.pushThrows(t)
			return true
		}
		p.report(InvalidThrowsClass, Span{Start: start, End: p.tokenEnd()})
	}
	if !p.completion {
		p.seek(p.resetTarget(start))
	}
	p.currentToken = tokNone
	return false
}

func (p *Parser) parseUses() bool {
	t, ok := p.parseServiceType(MissingUsesClassName, InvalidUsesClass)
	if ok {
		p.uses = append(p.uses, t)
	}
	return ok
}

func (p *Parser) parseProvides() bool {
	t, ok := p.parseServiceType(MissingProvidesClassName, InvalidProvidesClass)
	if ok {
		p.provides = append(p.provides, t)
	}
	return ok
}

// parseServiceType reads the type argument of @uses and @provides.
func (p *Parser) parseServiceType(missing, invalid ProblemKind) (*TypeReference, bool) {
	start := p.scan.pos
	ref, err := p.parseQualifiedName(true, false)
	if err != nil {
		p.report(invalid, Span{Start: start, End: p.tokenEnd()})
		return nil, false
	}
	if ref == nil {
		p.report(missing, p.tagSpan())
		return nil, false
	}
	t, ok := ref.(*TypeReference)
	if !ok {
		p.report(invalid, Span{Start: start, End: p.tokenEnd()})
	}
	return t, ok
}
