// Package compdb loads compilation databases, i.e. the compile_commands.json manifest written by
// build systems such as Meson and CMake.
// Only the "file" field of each record is interpreted; every other field is ignored.
package compdb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type (
	// Entry is one record of the manifest.
	// Err is non-nil when the record is unusable, in which case File is empty.
	Entry struct {
		Err   error
		File  string
		Index int
	}

	Manifest []Entry
)

var (
	ErrManifestUnavailable = errors.New("manifest unavailable")
	ErrManifestMalformed   = errors.New("manifest malformed")
	ErrEntryInvalid        = errors.New("invalid manifest entry")
)

// Load reads the whole manifest at path before returning.
// With strict set, the first invalid entry fails the load.
//
// Non-nil returned error wraps [ErrManifestUnavailable], [ErrManifestMalformed] or [ErrEntryInvalid].
func Load(path string, strict bool) (Manifest, error) {
	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %q: %w", ErrManifestUnavailable, path, err)
	}

	defer func() { _ = fd.Close() }()

	m, err := Decode(fd, strict)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}

	return m, nil
}

// Invalid returns the entries that carry a non-nil [Entry.Err], in manifest order.
func (m Manifest) Invalid() Manifest {
	var invalid Manifest

	for i := range m {
		if m[i].Err != nil {
			invalid = append(invalid, m[i])
		}
	}

	return invalid
}
