package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// osRename is a variable to allow testing of rename errors.
var osRename = os.Rename

// entryTime is stamped on every entry so equal inputs give equal archives.
var entryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Entry is one file placed in an archive.
type Entry struct {
	// Name is the slash-separated path inside the archive.
	Name string
	// Data is the entry content. When nil, the file at Path is copied.
	Data []byte
	Path string
}

// WriteZip writes entries, in order and uncompressed, to a zip archive at
// dstPath. The archive is assembled in a temporary file next to dstPath and
// renamed into place only after it was completely written; on any error the
// temporary file is removed and dstPath is left as it was.
func WriteZip(dstPath string, entries []Entry) (err error) {
	dir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dstPath)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	zw := zip.NewWriter(tmp)
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Name] {
			return fmt.Errorf("duplicate archive entry: %s", e.Name)
		}
		seen[e.Name] = true
		if err := writeEntry(zw, e); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}
	if err := osRename(tmpPath, dstPath); err != nil {
		return fmt.Errorf("failed to move archive into place: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, e Entry) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     e.Name,
		Method:   zip.Store,
		Modified: entryTime,
	})
	if err != nil {
		return err
	}

	if e.Data != nil {
		_, err = w.Write(e.Data)
		return err
	}

	f, err := os.Open(e.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
