package check

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/dhamidi/jdoc/java/source"
)

func isArchive(path string) bool {
	switch filepath.Ext(path) {
	case ".zip", ".jar":
		return true
	}
	return false
}

// CheckArchive checks the .java entries of a zip or jar file such as a
// JDK src.zip. Results are named archive!entry.
func (c *Checker) CheckArchive(path string) ([]*Result, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	var out []*Result
	for _, f := range r.File {
		if f.FileInfo().IsDir() || filepath.Ext(f.Name) != ".java" || c.cfg.Excluded(f.Name) {
			continue
		}
		src, err := readEntry(f)
		if err != nil {
			return nil, fmt.Errorf("%s!%s: %w", path, f.Name, err)
		}
		out = append(out, c.CheckSource(path+"!"+f.Name, src))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	log.Debugf("%s: %d entries", path, len(out))
	return out, nil
}

func readEntry(f *zip.File) ([]rune, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return source.Decode(data)
}
