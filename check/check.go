// Package check runs the javadoc parser over Java source trees and
// collects the problems as positioned diagnostics.
package check

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/jdoc/config"
	"github.com/dhamidi/jdoc/java/javadoc"
	"github.com/dhamidi/jdoc/java/source"
)

var log = commonlog.GetLogger("jdoc.check")

// ErrUnsupportedFile is returned for a root that is neither a .java file
// nor a zip or jar archive.
var ErrUnsupportedFile = errors.New("not a .java file or source archive")

// Diagnostic is a problem located by line and column.
type Diagnostic struct {
	Path     string           `json:"path" yaml:"path"`
	Kind     string           `json:"kind" yaml:"kind"`
	Severity javadoc.Severity `json:"-" yaml:"-"`
	Message  string           `json:"message" yaml:"message"`
	Start    source.Position  `json:"start" yaml:"start"`
	End      source.Position  `json:"end" yaml:"end"`
}

// Commented is a parsed comment and where it starts.
type Commented struct {
	Pos      source.Position
	Document *javadoc.Document
}

// Result holds the outcome of checking one file.
type Result struct {
	Path        string
	Documents   []Commented
	Diagnostics []Diagnostic
}

func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity >= javadoc.SevError {
			return true
		}
	}
	return false
}

// Checker holds the settings shared by every checked file.
type Checker struct {
	cfg        config.Config
	level      javadoc.Level
	severities map[javadoc.ProblemKind]javadoc.Severity
}

func New(cfg config.Config) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	level, _ := cfg.JavaLevel()
	severities, _ := cfg.Severities()
	return &Checker{cfg: cfg, level: level, severities: severities}, nil
}

// commentDecls lets one parser serve every comment of a file.
type commentDecls struct {
	javadoc.Declarations
}

func (c *Checker) scanOptions() []source.Option {
	return []source.Option{source.WithMarkdown(c.cfg.Markdown && c.level >= javadoc.Java23)}
}

// CheckFile reads and checks the file at path.
func (c *Checker) CheckFile(path string) (*Result, error) {
	f, err := source.ReadFile(path, c.scanOptions()...)
	if err != nil && !errors.Is(err, source.ErrUnterminatedComment) {
		return nil, err
	}
	return c.check(f, err), nil
}

// CheckSource checks already decoded source text. An unterminated
// comment becomes a diagnostic of its own.
func (c *Checker) CheckSource(path string, src []rune) *Result {
	f, err := source.Scan(path, src, c.scanOptions()...)
	return c.check(f, err)
}

func (c *Checker) check(f *source.File, scanErr error) *Result {
	path := f.Path
	res := &Result{Path: path}
	if scanErr != nil {
		log.Warningf("%s", scanErr)
		end := Position(f.Lines, len(f.Source))
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Path:     path,
			Kind:     "unterminated_comment",
			Severity: javadoc.SevError,
			Message:  "unterminated comment",
			Start:    end,
			End:      end,
		})
	}

	problems := &javadoc.ProblemList{}
	decls := &commentDecls{}
	p := javadoc.NewParser(
		javadoc.WithLevel(c.level),
		javadoc.WithReporter(problems),
		javadoc.WithDeclarations(decls),
		javadoc.WithMissingDescriptions(c.cfg.MissingDescriptions),
	)
	for _, comment := range f.Comments {
		decls.Declarations = f.Declarations(comment)
		doc, err := p.Parse(f.Input(comment))
		if err != nil {
			log.Warningf("%s:%d: skipping comment: %s", path, comment.Pos.Line, err)
			continue
		}
		res.Documents = append(res.Documents, Commented{Pos: comment.Pos, Document: doc})
	}

	problems.Sort()
	for _, prob := range problems.Items() {
		res.Diagnostics = append(res.Diagnostics, c.diagnostic(path, f.Lines, prob))
	}
	sort.SliceStable(res.Diagnostics, func(i, j int) bool {
		a, b := res.Diagnostics[i].Start, res.Diagnostics[j].Start
		return a.Offset < b.Offset
	})
	log.Debugf("%s: %d comments, %d diagnostics", path, len(res.Documents), len(res.Diagnostics))
	return res
}

func (c *Checker) diagnostic(path string, lines javadoc.LineTable, p javadoc.Problem) Diagnostic {
	if sev, ok := c.severities[p.Kind]; ok {
		p.Severity = sev
	}
	return Diagnostic{
		Path:     path,
		Kind:     p.Kind.ID(),
		Severity: p.Severity,
		Message:  p.Message(),
		Start:    Position(lines, p.Span.Start),
		End:      Position(lines, p.Span.End),
	}
}

// Position converts an offset to a 1-based line and column.
func Position(lines javadoc.LineTable, offset int) source.Position {
	line := lines.LineNumber(offset)
	return source.Position{
		Offset: offset,
		Line:   line,
		Column: offset - lines.LineStart(line) + 1,
	}
}

// Collect expands roots into the .java files to check, in lexical
// order. Directories are walked; excluded paths are skipped. A root
// naming a file must be a .java file or a zip or jar archive.
func (c *Checker) Collect(roots []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				rel = p
			}
			if d.IsDir() {
				if p != root && c.cfg.Excluded(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if p == root {
				if !strings.HasSuffix(p, ".java") && !isArchive(p) {
					return ErrUnsupportedFile
				}
			} else if !strings.HasSuffix(p, ".java") || c.cfg.Excluded(rel) {
				return nil
			}
			files = append(files, p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return files, nil
}

// Run checks every file below roots concurrently. Results keep the
// order of Collect, with archive entries expanded in place.
func (c *Checker) Run(ctx context.Context, roots []string) ([]*Result, error) {
	files, err := c.Collect(roots)
	if err != nil {
		return nil, err
	}
	perFile := make([][]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(c.cfg.Jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if isArchive(path) {
				res, err := c.CheckArchive(path)
				if err != nil {
					return err
				}
				perFile[i] = res
				return nil
			}
			res, err := c.CheckFile(path)
			if err != nil {
				return err
			}
			perFile[i] = []*Result{res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []*Result
	for _, res := range perFile {
		results = append(results, res...)
	}
	log.Infof("checked %d files", len(results))
	return results, nil
}
