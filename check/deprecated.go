package check

import (
	"errors"

	"github.com/dhamidi/jdoc/java/javadoc"
	"github.com/dhamidi/jdoc/java/source"
)

// Deprecation is the fast scan outcome for one comment.
type Deprecation struct {
	Path       string          `json:"path" yaml:"path"`
	Start      source.Position `json:"start" yaml:"start"`
	Deprecated bool            `json:"deprecated" yaml:"deprecated"`
}

// Deprecations runs the deprecation scan over every comment of the
// file at path without building documents.
func (c *Checker) Deprecations(path string) ([]Deprecation, error) {
	f, err := source.ReadFile(path, c.scanOptions()...)
	if err != nil {
		if !errors.Is(err, source.ErrUnterminatedComment) {
			return nil, err
		}
		log.Warningf("%s", err)
	}

	p := javadoc.NewParser(javadoc.WithLevel(c.level))
	out := make([]Deprecation, 0, len(f.Comments))
	for _, comment := range f.Comments {
		deprecated, err := p.CheckDeprecation(f.Input(comment))
		if err != nil {
			log.Warningf("%s:%d: skipping comment: %s", path, comment.Pos.Line, err)
			continue
		}
		out = append(out, Deprecation{Path: path, Start: comment.Pos, Deprecated: deprecated})
	}
	return out, nil
}
