package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qerrors "github.com/FocuswithJustin/quizpack/core/errors"
	"github.com/FocuswithJustin/quizpack/core/qti"
	"github.com/FocuswithJustin/quizpack/internal/archive"
)

const sample = `---
title: Quiz1
---
:::{.question type=true_false}
Water is $H_2O$.
- [x] True
- [ ] False
:::
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "quiz.md", sample)

	res, err := File(context.Background(), src, Options{})
	if err != nil {
		t.Fatalf("File() error: %v", err)
	}
	if res.ArchivePath != filepath.Join(dir, "quiz.zip") {
		t.Errorf("ArchivePath = %s", res.ArchivePath)
	}
	data, err := archive.ReadFile(res.ArchivePath, qti.AssessmentFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `identifier="q1"`) {
		t.Errorf("assessment missing item: %s", data)
	}
}

func TestFileErrors(t *testing.T) {
	dir := t.TempDir()
	noFrontMatter := writeFile(t, dir, "bad.md", "no front matter")
	unbalanced := writeFile(t, dir, "open.md", "---\ntitle: T\n---\n:::{.question}\nQ\n")

	tests := []struct {
		name   string
		src    string
		opts   Options
		target error
		check  func(t *testing.T, err error)
	}{
		{
			name:   "empty path",
			src:    "",
			target: qerrors.ErrInvalidInput,
		},
		{
			name: "missing file",
			src:  filepath.Join(dir, "missing.md"),
			check: func(t *testing.T, err error) {
				var ioe *qerrors.IOError
				if !errors.As(err, &ioe) || ioe.Operation != "read" {
					t.Errorf("error = %v, want read IOError", err)
				}
			},
		},
		{
			name:   "format error carries path",
			src:    noFrontMatter,
			target: qerrors.ErrFormat,
			check: func(t *testing.T, err error) {
				want := noFrontMatter + ": invalid file format: missing YAML front matter"
				if err.Error() != want {
					t.Errorf("error = %q, want %q", err, want)
				}
			},
		},
		{
			name:   "strict unterminated block",
			src:    unbalanced,
			opts:   Options{Strict: true},
			target: qerrors.ErrFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := File(context.Background(), tt.src, tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "open.zip")); !os.IsNotExist(err) {
		t.Error("strict failure left an archive behind")
	}
}

// TestFileLenientRecovers verifies the default mode packages an
// unterminated block.
func TestFileLenientRecovers(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "open.md", "---\ntitle: T\n---\n:::{.question}\nQ\n- [x] A\n")
	out := filepath.Join(dir, "out", "pkg.zip")

	res, err := File(context.Background(), src, Options{OutputPath: out})
	if err != nil {
		t.Fatalf("File() error: %v", err)
	}
	if res.ArchivePath != out {
		t.Errorf("ArchivePath = %s", res.ArchivePath)
	}
}
