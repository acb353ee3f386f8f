// Package cas provides a flat content-addressed file store.
// Every object is named after the BLAKE3 digest of the input it was derived
// from, so equal inputs always map to the same file and an existing file
// means the work was already done.
package cas

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// osRename is a variable to allow testing of rename errors.
var osRename = os.Rename

// ErrInvalidKey is returned when a key is not a valid hex digest prefix.
var ErrInvalidKey = errors.New("invalid key format")

// Store keeps objects directly inside one directory as
// <prefix><key><ext>, e.g. music_0123...cdef.svg.
type Store struct {
	dir    string
	prefix string
	ext    string
}

// NewStore creates a store rooted at dir. The directory is created if it
// does not exist.
func NewStore(dir, prefix, ext string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{dir: dir, prefix: prefix, ext: ext}, nil
}

// Dir returns the directory holding the objects.
func (s *Store) Dir() string {
	return s.dir
}

// Name returns the file name for key.
func (s *Store) Name(key string) string {
	return s.prefix + key + s.ext
}

// Path returns the full path for key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, s.Name(key))
}

// Exists checks if an object with the given key exists.
func (s *Store) Exists(key string) bool {
	if !isValidKey(key) {
		return false
	}
	_, err := os.Stat(s.Path(key))
	return err == nil
}

// Adopt moves a file produced elsewhere in the same directory into place
// under key. The source is removed when the rename fails.
func (s *Store) Adopt(key, srcPath string) error {
	if !isValidKey(key) {
		return ErrInvalidKey
	}
	// Rename to final path (atomic on POSIX)
	if err := osRename(srcPath, s.Path(key)); err != nil {
		os.Remove(srcPath)
		return fmt.Errorf("failed to rename object: %w", err)
	}
	return nil
}

// CreateTemp creates a scratch file inside the store directory so that a
// later Adopt is a same-filesystem rename.
func (s *Store) CreateTemp(pattern string) (*os.File, error) {
	f, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	return f, nil
}
