package javadoc

import (
	"errors"
	"fmt"
)

// ErrMalformedInput reports a comment span or internal state that the
// parser cannot work with. The document for that comment is abandoned.
var ErrMalformedInput = errors.New("javadoc: malformed input")

// errInvalidInput signals a syntax error inside a tag body. It never
// leaves the package.
var errInvalidInput = errors.New("invalid input")

// TypeDeclaration is a type whose body is still being parsed when the
// comment is reached.
type TypeDeclaration struct {
	Name  string
	Start int
}

// Declarations answers questions about the declarations surrounding a
// comment.
type Declarations interface {
	// MainTypeName is the name of the compilation unit's primary type.
	MainTypeName() string
	// OpenType returns the innermost type declaration whose body has
	// not been closed yet, or nil.
	OpenType() *TypeDeclaration
}

// Input describes one comment inside a source buffer.
type Input struct {
	Source []rune
	Lines  LineTable
	// Start is the offset of the leading '/', End is one past the last
	// character of the comment.
	Start, End int
	// FirstTag is the offset of the first '@' starting a tag, or 0.
	FirstTag int
}

// Markdown reports whether the comment uses /// lines.
func (in Input) Markdown() bool {
	return in.Start+1 < len(in.Source) && in.Source[in.Start+1] == '/'
}

// NewInput describes the comment occupying src[start:end], computing
// the line table and the first tag offset.
func NewInput(src []rune, start, end int) Input {
	in := Input{Source: src, Lines: ComputeLines(src), Start: start, End: end}
	in.FirstTag = FindFirstTag(src, start, end)
	return in
}

// FindFirstTag returns the offset of the first '@' that starts a tag,
// either at the beginning of a line or directly after '{'. It returns 0
// when the comment holds no tag.
func FindFirstTag(src []rune, start, end int) int {
	if end > len(src) {
		end = len(src)
	}
	markdown := start+1 < end && src[start+1] == '/'
	i := start + 3
	lineStarted := false
	var prev rune
	for i < end {
		c, next := decodeAt(src, i)
		switch {
		case c == '@':
			if !lineStarted || prev == '{' {
				return i
			}
		case isLineTerminator(c):
			lineStarted = false
		case c == '*' || c == ' ' || c == '\t' || c == '\f':
		case c == '/' && markdown && !lineStarted:
		default:
			lineStarted = true
		}
		prev = c
		i = next
	}
	return 0
}

type Option func(*Parser)

// WithLevel sets the Java language level. The default is LatestLevel.
func WithLevel(l Level) Option {
	return func(p *Parser) {
		p.level = l
	}
}

func WithReporter(r Reporter) Option {
	return func(p *Parser) {
		p.reporter = r
	}
}

func WithDeclarations(d Declarations) Option {
	return func(p *Parser) {
		p.decls = d
	}
}

// WithDocComments turns full document construction on or off. When
// off, Parse only runs the deprecation scan.
func WithDocComments(on bool) Option {
	return func(p *Parser) {
		p.docComments = on
	}
}

// WithCompletion makes the parser tolerant of incomplete input, as
// needed while the user is typing.
func WithCompletion(on bool) Option {
	return func(p *Parser) {
		p.completion = on
	}
}

// WithMissingDescriptions controls the reports for tags lacking prose.
func WithMissingDescriptions(on bool) Option {
	return func(p *Parser) {
		p.missingDescriptions = on
	}
}

const tokNone tokenKind = -1

// Parser turns documentation comments into Documents. A Parser handles
// one comment at a time and must not be shared between goroutines.
type Parser struct {
	level               Level
	reporter            Reporter
	decls               Declarations
	docComments         bool
	completion          bool
	missingDescriptions bool

	cursor
	in       Input
	lines    LineTable
	scan     tokenScanner
	markdown bool
	start    int
	end      int // offset of the last comment character

	lineEnd     int
	linePtr     int
	lastLinePtr int

	lineStarted           bool
	inlineTagStarted      bool
	inlineTagStart        int
	textStart             int
	starPosition          int
	tokenPreviousPosition int
	currentToken          tokenKind

	tagValue       TagKind
	lastBlockTag   TagKind
	tagWaiting     TagKind
	tagStart       int
	tagEnd         int
	tagNameStart   int
	tagTerminator  rune
	deprecated     bool
	validComment   bool
	suppressPushes bool

	idents            []string
	identPos          []Span
	identLengths      []int
	lastIdentifierEnd int
	memberStart       int

	ordered    orderedTags
	regions    regionSet
	returnStmt *ReturnStatement
	inherited  []Span
	validValue *Span
	badValue   *Span
	uses       []*TypeReference
	provides   []*TypeReference
	tags       []Tag
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		level:               LatestLevel,
		docComments:         true,
		missingDescriptions: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseComment parses a standalone comment such as "/** @since 1.2 */".
func ParseComment(text string, opts ...Option) (*Document, error) {
	src := []rune(text)
	return NewParser(opts...).Parse(NewInput(src, 0, len(src)))
}

// Parse builds the document for one comment. Problems in the comment
// text go to the reporter; an error is returned only for malformed
// input.
func (p *Parser) Parse(in Input) (*Document, error) {
	if err := p.reset(in); err != nil {
		return nil, err
	}
	defer p.release()

	doc := &Document{
		Start:    in.Start,
		End:      in.End,
		Markdown: p.markdown,
		Valid:    true,
	}
	if !p.docComments {
		doc.Deprecated = p.scanDeprecation()
		return doc, nil
	}
	if in.FirstTag == 0 && !p.markdown {
		p.finish(doc)
		return doc, nil
	}
	if err := p.commentParse(); err != nil {
		return nil, fmt.Errorf("parse comment at %d: %w", in.Start, err)
	}
	p.finish(doc)
	return doc, nil
}

// CheckDeprecation reports whether the comment carries a @deprecated
// block tag without building a document.
func (p *Parser) CheckDeprecation(in Input) (bool, error) {
	if err := p.reset(in); err != nil {
		return false, err
	}
	defer p.release()
	return p.scanDeprecation(), nil
}

// IsDeprecated returns the deprecation flag of the last parsed comment.
func (p *Parser) IsDeprecated() bool {
	return p.deprecated
}

func (p *Parser) reset(in Input) error {
	if in.Start < 0 || in.End > len(in.Source) || in.End-in.Start < 3 {
		return fmt.Errorf("comment span [%d,%d) in %d runes: %w", in.Start, in.End, len(in.Source), ErrMalformedInput)
	}
	src := in.Source
	markdown := in.Markdown()
	if src[in.Start] != '/' || (!markdown && (src[in.Start+1] != '*' || in.End-in.Start < 4)) {
		return fmt.Errorf("text at %d is not a documentation comment: %w", in.Start, ErrMalformedInput)
	}
	if (markdown && src[in.Start+2] != '/') || (!markdown && src[in.Start+2] != '*') {
		return fmt.Errorf("text at %d is not a documentation comment: %w", in.Start, ErrMalformedInput)
	}

	lines := in.Lines
	if lines == nil {
		lines = ComputeLines(src)
	}
	*p = Parser{
		level:               p.level,
		reporter:            p.reporter,
		decls:               p.decls,
		docComments:         p.docComments,
		completion:          p.completion,
		missingDescriptions: p.missingDescriptions,

		cursor:   cursor{src: src, index: in.Start},
		in:       in,
		lines:    lines,
		scan:     tokenScanner{src: src},
		markdown: markdown,
		start:    in.Start,
		end:      in.End - 1,

		inlineTagStart: -1,
		textStart:      -1,
		starPosition:   -1,
		currentToken:   tokNone,
		tagValue:       TagNone,
		lastBlockTag:   TagNone,
		tagWaiting:     TagNone,
		validComment:   true,

		idents:       p.idents[:0],
		identPos:     p.identPos[:0],
		identLengths: p.identLengths[:0],
	}
	return nil
}

// release drops every reference to the source buffer.
func (p *Parser) release() {
	p.in = Input{}
	p.src = nil
	p.lines = nil
	p.scan = tokenScanner{}
	p.ordered = orderedTags{}
	p.regions = regionSet{}
	p.returnStmt = nil
	p.inherited = nil
	p.uses = nil
	p.provides = nil
	p.tags = nil
}

func (p *Parser) report(kind ProblemKind, at Span, args ...string) {
	if p.reporter == nil {
		return
	}
	p.reporter.Report(Problem{
		Kind:     kind,
		Severity: kind.DefaultSeverity(),
		Span:     at,
		Args:     args,
	})
}

func (p *Parser) tagSpan() Span {
	return Span{Start: p.tagStart, End: p.tagEnd}
}

func (p *Parser) mainTypeName() string {
	if p.decls == nil {
		return ""
	}
	return p.decls.MainTypeName()
}

func (p *Parser) openType() *TypeDeclaration {
	if p.decls == nil {
		return nil
	}
	return p.decls.OpenType()
}

// wait records that kind expects a description.
func (p *Parser) wait(kind TagKind) {
	if p.missingDescriptions && expectsDescription(kind) {
		p.tagWaiting = kind
	}
}

func (p *Parser) pushText() {
	p.tagWaiting = TagNone
}

func (p *Parser) pushSee(ref Expression) {
	if p.suppressPushes {
		return
	}
	p.ordered.pushSee(ref)
}

// reportMissingDescription flags the tag still waiting for prose. It is
// quiet while an inline tag is being read: the inline tag is the
// description.
func (p *Parser) reportMissingDescription() {
	waiting := p.tagWaiting
	p.tagWaiting = TagNone
	if waiting == TagNone || p.inlineTagStarted {
		return
	}
	switch waiting {
	case TagParam, TagThrows, TagException:
		if n := len(p.identPos); n > 0 {
			p.report(MissingDescriptionAfterReference, Span{Start: p.identPos[0].Start, End: p.identPos[n-1].End})
		}
	default:
		p.report(MissingTagDescription, p.tagSpan(), waiting.String())
	}
}

// refreshInlineTagPosition runs when an inline tag closes.
func (p *Parser) refreshInlineTagPosition() {
	if p.tagWaiting != TagNone {
		p.report(MissingTagDescription, p.tagSpan(), p.tagWaiting.String())
		p.tagWaiting = TagNone
	}
}

func (p *Parser) refreshReturnStatement() {
	if p.tagValue == TagReturn && p.returnStmt != nil {
		p.returnStmt.Empty = false
	}
}

func (p *Parser) updateLineEnd() {
	for p.index > p.lineEnd+1 {
		if p.linePtr < p.lastLinePtr {
			p.linePtr++
			p.lineEnd = p.lines.LineEnd(p.linePtr, p.end) - 1
		} else {
			p.lineEnd = p.end
			return
		}
	}
}

// readToken returns the cached token or scans the next one. Leading
// '*' decorations of a new line are skipped.
func (p *Parser) readToken() tokenKind {
	if p.currentToken == tokNone {
		p.tokenPreviousPosition = p.scan.pos
		p.currentToken = p.scan.next()
		if p.scan.pos > p.lineEnd+1 {
			p.lineStarted = false
			for p.currentToken == tokMultiply || (p.markdown && p.currentToken == tokDivide) {
				p.currentToken = p.scan.next()
			}
		}
		p.index = p.scan.pos
		p.lineStarted = true
	}
	return p.currentToken
}

func (p *Parser) consumeToken() {
	p.currentToken = tokNone
	p.updateLineEnd()
}

func (p *Parser) readTokenAndConsume() tokenKind {
	tok := p.readToken()
	p.consumeToken()
	return tok
}

// rescan moves back before the last scanned token.
func (p *Parser) rescan() {
	p.index = p.tokenPreviousPosition
	p.scan.pos = p.tokenPreviousPosition
	p.currentToken = tokNone
}

// tokenEnd clips the current token end to the line.
func (p *Parser) tokenEnd() int {
	if p.scan.end > p.lineEnd {
		return p.lineEnd
	}
	return p.scan.end
}

func (p *Parser) indexPosition() int {
	if p.index > p.lineEnd {
		return p.lineEnd
	}
	return p.index - 1
}

// lastChar is the final character of the current token.
func (p *Parser) lastChar() rune {
	if p.scan.end < 0 || p.scan.end >= len(p.src) {
		return 0
	}
	return p.src[p.scan.end]
}

func (p *Parser) pushIdentifier(newLength bool) {
	p.idents = append(p.idents, p.scan.text)
	p.identPos = append(p.identPos, Span{Start: p.scan.start, End: p.scan.pos - 1})
	if newLength || len(p.identLengths) == 0 {
		p.identLengths = append(p.identLengths, 1)
		return
	}
	p.identLengths[len(p.identLengths)-1]++
}

func (p *Parser) resetIdentifiers() {
	p.idents = p.idents[:0]
	p.identPos = p.identPos[:0]
	p.identLengths = p.identLengths[:0]
}
