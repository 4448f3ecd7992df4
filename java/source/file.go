// Package source locates documentation comments in Java source files
// and records the type declarations surrounding each of them.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dhamidi/jdoc/java/javadoc"
)

// ErrUnterminatedComment reports a block comment that runs into the
// end of the file.
var ErrUnterminatedComment = errors.New("unterminated comment")

var log = commonlog.GetLogger("jdoc.source")

// Comment is one documentation comment of a File.
type Comment struct {
	// Start is the offset of the leading '/', End is one past the last
	// character.
	Start, End int
	Markdown   bool
	FirstTag   int
	Pos        Position
	// Open is the innermost type whose body encloses the comment.
	Open *javadoc.TypeDeclaration
}

// File is a decoded source file and its documentation comments.
type File struct {
	Path     string
	Source   []rune
	Lines    javadoc.LineTable
	Comments []Comment
	// MainType is the primary type name: the file name without .java,
	// or the first top-level type when the path says nothing.
	MainType string
}

// Input describes c for the javadoc parser.
func (f *File) Input(c Comment) javadoc.Input {
	return javadoc.Input{
		Source:   f.Source,
		Lines:    f.Lines,
		Start:    c.Start,
		End:      c.End,
		FirstTag: c.FirstTag,
	}
}

// Declarations answers the parser's questions about the types around c.
func (f *File) Declarations(c Comment) javadoc.Declarations {
	return declarations{main: f.MainType, open: c.Open}
}

type declarations struct {
	main string
	open *javadoc.TypeDeclaration
}

func (d declarations) MainTypeName() string               { return d.main }
func (d declarations) OpenType() *javadoc.TypeDeclaration { return d.open }

type options struct {
	markdown bool
}

type Option func(*options)

// WithMarkdown controls whether runs of /// lines are documentation
// comments. It is on by default.
func WithMarkdown(on bool) Option {
	return func(o *options) {
		o.markdown = on
	}
}

// Decode converts file contents to runes. A byte order mark selects
// UTF-8 or UTF-16; without one the data is read as UTF-8.
func Decode(data []byte) ([]rune, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return []rune(string(out)), nil
}

// ReadFile reads, decodes and scans the file at path.
func ReadFile(path string, opts ...Option) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	src, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Scan(path, src, opts...)
}

type openType struct {
	decl  *javadoc.TypeDeclaration
	depth int
}

// Scan finds the documentation comments of src. When the file ends in
// an unterminated comment the returned error wraps
// ErrUnterminatedComment; the File still holds every comment before it.
func Scan(path string, src []rune, opts ...Option) (*File, error) {
	o := options{markdown: true}
	for _, opt := range opts {
		opt(&o)
	}

	f := &File{
		Path:   path,
		Source: src,
		Lines:  javadoc.ComputeLines(src),
	}
	if strings.HasSuffix(path, ".java") {
		f.MainType = strings.TrimSuffix(filepath.Base(path), ".java")
	}

	var (
		lexer      = NewLexer(src, o.markdown)
		stack      []openType
		pending    *javadoc.TypeDeclaration
		expectName bool
		declStart  int
		depth      int
		prev       = TokenEOF
		scanErr    error
	)

loop:
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenEOF:
			break loop
		case TokenError:
			scanErr = fmt.Errorf("%s:%d:%d: %w", path, tok.Span.Start.Line, tok.Span.Start.Column, ErrUnterminatedComment)
			break loop
		case TokenWhitespace, TokenComment, TokenLineComment:
			continue
		case TokenDocComment, TokenMarkdownComment:
			c := Comment{
				Start:    tok.Span.Start.Offset,
				End:      tok.Span.End.Offset,
				Markdown: tok.Kind == TokenMarkdownComment,
				Pos:      tok.Span.Start,
			}
			c.FirstTag = javadoc.FindFirstTag(src, c.Start, c.End)
			if n := len(stack); n > 0 {
				c.Open = stack[n-1].decl
			}
			f.Comments = append(f.Comments, c)
			continue
		case TokenClass, TokenInterface, TokenEnum:
			// Foo.class is a literal, not a declaration
			expectName = prev != TokenDot
			declStart = tok.Span.Start.Offset
		case TokenIdent:
			switch {
			case expectName:
				pending = &javadoc.TypeDeclaration{Name: tok.Literal, Start: declStart}
				expectName = false
			case tok.Literal == "record" && prev != TokenDot:
				expectName = true
				declStart = tok.Span.Start.Offset
			}
		case TokenLBrace:
			expectName = false
			depth++
			if pending != nil {
				stack = append(stack, openType{decl: pending, depth: depth})
				if f.MainType == "" && len(stack) == 1 {
					f.MainType = pending.Name
				}
				pending = nil
			}
		case TokenRBrace:
			expectName = false
			if n := len(stack); n > 0 && stack[n-1].depth == depth {
				stack = stack[:n-1]
			}
			depth--
		case TokenSemicolon:
			expectName = false
			pending = nil
		default:
			expectName = false
		}
		prev = tok.Kind
	}

	log.Debugf("%s: %d doc comments", path, len(f.Comments))
	return f, scanErr
}
