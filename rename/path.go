package rename

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ParentPrefix is stripped once from the start of manifest paths.
// Build systems such as Meson write paths relative to the build directory, which sits one level
// below the project root.
const ParentPrefix = "../"

// ResolvePath turns a manifest path into an absolute path.
// At most one leading [ParentPrefix] is removed, then the rest is joined to root and cleaned.
// Symbolic links are not evaluated.
func ResolvePath(root, file string) (string, error) {
	file = strings.TrimPrefix(file, ParentPrefix)

	if filepath.IsAbs(file) {
		return filepath.Clean(file), nil
	}

	// an empty root means the current working directory
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to make root directory %q absolute: %w", root, err)
	}

	return filepath.Join(abs, file), nil
}

// StripSuffix returns s without suffix and true if s ends with suffix.
// Otherwise it returns s unchanged and false.
func StripSuffix(s, suffix string) (string, bool) {
	if suffix == "" || !strings.HasSuffix(s, suffix) {
		return s, false
	}

	return s[:len(s)-len(suffix)], true
}

// TargetPath is path with the from suffix replaced by to.
// A path that does not end with from gets to appended as-is, e.g. "foo.txt" becomes "foo.txt.cpp".
func TargetPath(path, from, to string) string {
	stem, _ := StripSuffix(path, from)

	return stem + to
}
