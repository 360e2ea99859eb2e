package rename

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type (
	Config struct {
		// Path to the compilation database.
		Manifest string
		// Directory manifest paths are resolved against. Empty means the current working directory.
		Root string
		From string
		To   string
		// Doublestar patterns. A resolved path matching any of them is left alone.
		Exclude  []string
		Strict   bool
		FailFast bool
		DryRun   bool
	}
)

const (
	DefaultManifest = "builddir/compile_commands.json"
	DefaultFrom     = ".c"
	DefaultTo       = ".cpp"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

func DefaultConfig() Config {
	return Config{
		Manifest: DefaultManifest,
		From:     DefaultFrom,
		To:       DefaultTo,
	}
}

// Non-nil returned error wraps [ErrInvalidConfig].
func (c *Config) Validate() error {
	if c.Manifest == "" {
		return fmt.Errorf("%w: manifest path is empty", ErrInvalidConfig)
	}

	if c.From == "" || c.To == "" {
		return fmt.Errorf("%w: source and target suffixes must not be empty", ErrInvalidConfig)
	}

	if c.From == c.To {
		return fmt.Errorf("%w: source and target suffixes are both %q", ErrInvalidConfig, c.From)
	}

	for _, suffix := range []string{c.From, c.To} {
		if strings.ContainsRune(suffix, '/') || strings.ContainsRune(suffix, filepath.Separator) {
			return fmt.Errorf("%w: suffix %q contains a path separator", ErrInvalidConfig, suffix)
		}
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: %q is not a valid exclude pattern", ErrInvalidConfig, pattern)
		}
	}

	return nil
}

// excluded reports whether the resolved path matches an exclude pattern, either as an absolute
// path or relative to root.
func (c *Config) excluded(root, path string) bool {
	if len(c.Exclude) == 0 {
		return false
	}

	candidates := []string{filepath.ToSlash(path)}

	if rel, err := filepath.Rel(root, path); err == nil && !outside(rel) {
		candidates = append(candidates, filepath.ToSlash(rel))
	}

	for _, pattern := range c.Exclude {
		for _, candidate := range candidates {
			if ok, err := doublestar.Match(pattern, candidate); err == nil && ok {
				return true
			}
		}
	}

	return false
}

func outside(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
