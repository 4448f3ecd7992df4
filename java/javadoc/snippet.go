package javadoc

import "strings"

// parseSnippet reads the attributes and body of {@snippet ...}. On
// success the cursor is left on the closing brace so the caller closes
// the inline tag.
func (p *Parser) parseSnippet() (bool, error) {
	if p.level < Java18 {
		p.tagWaiting = TagNone
		return false, errInvalidInput
	}
	ws, comments := p.scan.whitespace, p.scan.comments
	p.scan.whitespace, p.scan.comments = true, true
	defer func() { p.scan.whitespace, p.scan.comments = ws, comments }()
	p.regions = regionSet{}

	valid := true
	colon, external := p.parseSnippetAttributes()
	switch {
	case colon:
		if !p.snippetBodyOnNewLine() {
			p.report(SnippetContentNewLine, p.lineSpan(p.index))
			valid = false
		}
	case external:
		// file= and class= snippets live outside the comment
		valid = false
		p.tagWaiting = TagNone
	default:
		p.report(SnippetMissingColon, p.lineSpan(p.index))
		valid = false
	}

	open := 1
	closing := -1
	content := false
body:
	for p.index < p.scan.eof {
		switch p.readToken() {
		case tokEOF:
			break body
		case tokWhitespace:
			if strings.ContainsAny(p.scan.text, "\r\n") {
				p.consumeToken()
				p.skipDecoration()
				continue
			}
		case tokError:
			// a lone quote is ordinary text
			p.seek(p.scan.start + 1)
			content = true
			continue
		case tokLBrace:
			open++
			content = true
		case tokRBrace:
			open--
			if open == 0 {
				closing = p.scan.start
				break body
			}
			content = true
		case tokCommentLine:
			ok, err := p.parseSnippetMarkup(p.scan.start, p.scan.text)
			if err != nil {
				return false, err
			}
			if !ok {
				valid = false
			}
			content = true
		default:
			content = true
		}
		p.consumeToken()
	}

	if left := p.regions.closeAll(); len(left) > 0 {
		p.report(RegionNotClosed, p.lineSpan(p.index))
		valid = false
	}
	if content {
		p.tagWaiting = TagNone
	}
	if closing < 0 {
		return false, nil
	}
	p.seek(closing)
	p.updateLineEnd()
	return valid, nil
}

// lineSpan covers pos through the last character of its line. The
// cached lineEnd may lag behind a scanner that crossed a line break.
func (p *Parser) lineSpan(pos int) Span {
	pos = min(pos, p.end)
	end := p.lines.LineEnd(p.lines.LineNumber(pos), p.end+1) - 1
	return Span{Start: pos, End: max(pos, min(end, p.end))}
}

// parseSnippetAttributes reads name=value pairs up to the colon that
// opens the body. external is set for file= and class= snippets.
func (p *Parser) parseSnippetAttributes() (colon, external bool) {
	inValue := false
	for p.index < p.scan.eof {
		switch p.readToken() {
		case tokWhitespace:
			inValue = false
			if strings.ContainsAny(p.scan.text, "\r\n") {
				p.consumeToken()
				p.skipDecoration()
				continue
			}
		case tokColon:
			p.consumeToken()
			return true, external
		case tokIdentifier, tokKeyword:
			if !inValue && (p.scan.text == "file" || p.scan.text == "class") {
				external = true
			}
		case tokEqual:
			inValue = true
		case tokString, tokChar, tokNumber:
		case tokDot, tokDivide, tokOther:
			if !inValue {
				return false, external
			}
		default:
			return false, external
		}
		p.consumeToken()
	}
	return false, external
}

// snippetBodyOnNewLine checks that only blanks follow the colon on its
// line. An empty body closed on the same line is accepted.
func (p *Parser) snippetBodyOnNewLine() bool {
	tok := p.readToken()
	if tok == tokWhitespace {
		if strings.ContainsAny(p.scan.text, "\r\n") {
			p.consumeToken()
			p.skipDecoration()
			return true
		}
		p.consumeToken()
		tok = p.readToken()
	}
	return tok == tokEOF || tok == tokRBrace
}

// skipDecoration moves the scanner past the leading stars, or the ///
// of a markdown comment, at the start of a continuation line.
func (p *Parser) skipDecoration() {
	i := p.scan.pos
	for i < p.scan.eof {
		c, next := decodeAt(p.src, i)
		if c != ' ' && c != '\t' && c != '\f' {
			break
		}
		i = next
	}
	if p.markdown {
		if i+2 < p.scan.eof && p.src[i] == '/' && p.src[i+1] == '/' && p.src[i+2] == '/' {
			i += 3
		}
	} else {
		j := i
		for j < p.scan.eof {
			c, next := decodeAt(p.src, j)
			if c != '*' {
				if c != '/' {
					i = j
				}
				break
			}
			j = next
		}
	}
	p.seek(i)
}

type markupAttr struct {
	name    string
	value   string
	span    Span
	valueAt Span
}

// parseSnippetMarkup interprets a "// @tag name=value ..." comment in a
// snippet body. It returns false when the markup makes the snippet
// invalid.
func (p *Parser) parseSnippetMarkup(base int, text string) (bool, error) {
	r := []rune(text)
	i := skipMarkupBlanks(r, 2)
	valid := true
	for i < len(r) && r[i] == '@' {
		j := i + 1
		for j < len(r) && isJavaIdentifierPart(r[j]) {
			j++
		}
		name := string(r[i+1 : j])
		attrs, next := scanMarkupAttributes(r, j, base)
		end := next - 1
		for end > i && isWhitespace(r[end]) {
			end--
		}
		ok, err := p.applyMarkup(name, Span{Start: base + i, End: base + end}, attrs)
		if err != nil {
			return false, err
		}
		if !ok {
			valid = false
		}
		i = next
	}
	return valid, nil
}

func skipMarkupBlanks(r []rune, i int) int {
	for i < len(r) && (r[i] == ' ' || r[i] == '\t' || r[i] == '\f') {
		i++
	}
	return i
}

// scanMarkupAttributes reads attributes from r[i:] until the next
// markup tag or the end of the comment. Offsets in the result are
// shifted by base.
func scanMarkupAttributes(r []rune, i, base int) ([]markupAttr, int) {
	var attrs []markupAttr
	for {
		i = skipMarkupBlanks(r, i)
		if i >= len(r) || r[i] == '@' {
			return attrs, i
		}
		if r[i] == ':' && skipMarkupBlanks(r, i+1) >= len(r) {
			return attrs, len(r)
		}
		start := i
		for i < len(r) && (isJavaIdentifierPart(r[i]) || r[i] == '-') {
			i++
		}
		if i == start {
			i++
			continue
		}
		attr := markupAttr{name: string(r[start:i])}
		end := i - 1
		if k := skipMarkupBlanks(r, i); k < len(r) && r[k] == '=' {
			i = skipMarkupBlanks(r, k+1)
			valueStart := i
			if i < len(r) && (r[i] == '"' || r[i] == '\'') {
				quote := r[i]
				i++
				valueStart = i
				for i < len(r) && r[i] != quote {
					i++
				}
				attr.value = string(r[valueStart:i])
				attr.valueAt = Span{Start: base + valueStart, End: base + i - 1}
				end = i - 1
				if i < len(r) {
					end = i
					i++
				}
			} else {
				for i < len(r) && !isWhitespace(r[i]) {
					i++
				}
				attr.value = string(r[valueStart:i])
				attr.valueAt = Span{Start: base + valueStart, End: base + i - 1}
				end = i - 1
			}
		}
		attr.span = Span{Start: base + start, End: base + end}
		attrs = append(attrs, attr)
	}
}

func findAttr(attrs []markupAttr, name string) (markupAttr, bool) {
	for _, a := range attrs {
		if a.name == name {
			return a, true
		}
	}
	return markupAttr{}, false
}

// applyMarkup checks one markup tag and updates the open regions.
// Unknown markup tags are ignored.
func (p *Parser) applyMarkup(name string, at Span, attrs []markupAttr) (bool, error) {
	switch name {
	case "highlight", "replace", "link", "start", "end":
	default:
		return true, nil
	}
	valid := true
	_, regex := findAttr(attrs, "regex")
	_, substring := findAttr(attrs, "substring")
	if regex && substring {
		p.report(SnippetAttributeConflict, at)
		valid = false
	}

	region, hasRegion := findAttr(attrs, "region")
	switch name {
	case "end":
		p.regions.close(region.value)
		return valid, nil
	case "start":
		if !hasRegion || region.value == "" {
			p.report(InvalidSnippet, at)
			return false, nil
		}
	case "replace":
		if _, ok := findAttr(attrs, "replacement"); !ok {
			p.report(InvalidSnippet, at)
			valid = false
		}
	case "link":
		target, ok := findAttr(attrs, "target")
		if !ok || target.value == "" {
			p.report(InvalidSnippet, at)
			valid = false
			break
		}
		linked, err := p.withinWindow(target.valueAt.Start, target.valueAt.End+1, func() (bool, error) {
			p.suppressPushes = true
			defer func() { p.suppressPushes = false }()
			p.tagValue = TagLink
			p.tagStart, p.tagEnd = at.Start, at.End
			return p.parseReference(true)
		})
		if err != nil {
			return false, err
		}
		if !linked {
			valid = false
		}
	}

	if hasRegion && !p.regions.open(region.value, region.span) {
		p.report(DuplicateRegion, region.span, region.value)
		valid = false
	}
	return valid, nil
}

// withinWindow runs fn with the scanner narrowed to src[start:end] and
// restores the scanning state afterward.
func (p *Parser) withinWindow(start, end int, fn func() (bool, error)) (bool, error) {
	scan, index := p.scan, p.index
	tok, prev := p.currentToken, p.tokenPreviousPosition
	lineEnd, linePtr, lineStarted, star := p.lineEnd, p.linePtr, p.lineStarted, p.starPosition
	tagValue, tagStart, tagEnd := p.tagValue, p.tagStart, p.tagEnd
	defer func() {
		p.scan, p.index = scan, index
		p.currentToken, p.tokenPreviousPosition = tok, prev
		p.lineEnd, p.linePtr, p.lineStarted, p.starPosition = lineEnd, linePtr, lineStarted, star
		p.tagValue, p.tagStart, p.tagEnd = tagValue, tagStart, tagEnd
	}()

	p.scan.resetTo(start, end)
	p.scan.whitespace, p.scan.comments = false, false
	p.index = start
	p.currentToken = tokNone
	p.tokenPreviousPosition = start
	return fn()
}
