// Package config loads .jdoc.toml project files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/dhamidi/jdoc/java/javadoc"
)

// FileName is the name Find looks for.
const FileName = ".jdoc.toml"

// ErrUnknownLevel reports a level setting that is not a Java version.
var ErrUnknownLevel = errors.New("unknown java level")

// Config is the checker configuration. Fields absent from the file keep
// their Default values.
type Config struct {
	// Path is the file the configuration was read from, or empty.
	Path string `toml:"-"`

	Level               string            `toml:"level"`
	Markdown            bool              `toml:"markdown"`
	MissingDescriptions bool              `toml:"missing_descriptions"`
	Jobs                int               `toml:"jobs"`
	Exclude             []string          `toml:"exclude"`
	Severity            map[string]string `toml:"severity"`
}

func Default() Config {
	return Config{
		Level:               javadoc.LatestLevel.String(),
		Markdown:            true,
		MissingDescriptions: true,
		Jobs:                runtime.NumCPU(),
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadNearest loads the closest configuration file above startDir, or
// the defaults when there is none.
func LoadNearest(startDir string) (Config, error) {
	p, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(p)
}

func (c Config) Validate() error {
	if _, err := c.JavaLevel(); err != nil {
		return err
	}
	if _, err := c.Severities(); err != nil {
		return err
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}

func (c Config) JavaLevel() (javadoc.Level, error) {
	l, err := javadoc.ParseLevel(c.Level)
	if err != nil {
		return 0, fmt.Errorf("level %q: %w", c.Level, ErrUnknownLevel)
	}
	return l, nil
}

// Severities maps the [severity] table onto problem kinds.
func (c Config) Severities() (map[javadoc.ProblemKind]javadoc.Severity, error) {
	out := make(map[javadoc.ProblemKind]javadoc.Severity, len(c.Severity))
	for id, value := range c.Severity {
		kind, ok := javadoc.LookupProblem(id)
		if !ok {
			return nil, fmt.Errorf("severity: unknown problem %q", id)
		}
		sev, err := javadoc.ParseSeverity(value)
		if err != nil {
			return nil, fmt.Errorf("severity.%s: %w", id, err)
		}
		out[kind] = sev
	}
	return out, nil
}

// Excluded reports whether the slash separated path rel matches one of
// the exclude patterns. A ** segment matches any number of directories.
func (c Config) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
