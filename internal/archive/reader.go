// Package archive writes and reads the zip packages produced by the
// converter.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
)

// Reader wraps a zip.ReadCloser with lookups by entry name.
type Reader struct {
	*zip.ReadCloser
}

// EntryInfo describes one archive member.
type EntryInfo struct {
	Name   string
	Size   uint64
	Stored bool
}

// NewReader opens the zip archive at path.
func NewReader(path string) (*Reader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return &Reader{ReadCloser: zr}, nil
}

// Entries lists the archive members in archive order.
func (r *Reader) Entries() []EntryInfo {
	infos := make([]EntryInfo, len(r.File))
	for i, f := range r.File {
		infos[i] = EntryInfo{
			Name:   f.Name,
			Size:   f.UncompressedSize64,
			Stored: f.Method == zip.Store,
		}
	}
	return infos
}

// Visitor is a callback function for iterating archive entries.
// Return true to stop iteration, false to continue.
type Visitor func(file *zip.File, content io.Reader) (stop bool, err error)

// Iterate walks through all entries in the archive, calling the visitor for each.
func (r *Reader) Iterate(visitor Visitor) error {
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open entry %s: %w", f.Name, err)
		}
		stop, err := visitor(f, rc)
		rc.Close()
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return nil
}

// ReadFile reads the entry named name.
func (r *Reader) ReadFile(name string) ([]byte, error) {
	var content []byte
	found := false
	err := r.Iterate(func(f *zip.File, rc io.Reader) (bool, error) {
		if f.Name != name {
			return false, nil
		}
		found = true
		var err error
		content, err = io.ReadAll(rc)
		return true, err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	return content, nil
}

// Contains reports whether an entry named name exists.
func (r *Reader) Contains(name string) bool {
	for _, f := range r.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

// NamesWithPrefix returns entry names under prefix, in archive order.
func (r *Reader) NamesWithPrefix(prefix string) []string {
	var names []string
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, prefix) {
			names = append(names, f.Name)
		}
	}
	return names
}

// ReadFile opens archivePath and reads a single entry.
func ReadFile(archivePath, name string) ([]byte, error) {
	r, err := NewReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.ReadFile(name)
}
