package music

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	qerrors "github.com/FocuswithJustin/quizpack/core/errors"
)

// fakeEngine writes a fixed SVG and counts invocations.
type fakeEngine struct {
	available bool
	fail      error
	noOutput  bool
	calls     int
}

func (f *fakeEngine) Available(ctx context.Context) bool { return f.available }

func (f *fakeEngine) Render(ctx context.Context, inputPath, outputPath string) error {
	f.calls++
	if f.fail != nil {
		return f.fail
	}
	if f.noOutput {
		return nil
	}
	payload, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte("<svg><!-- "+string(payload)+" --></svg>"), 0644)
}

const payload = "<score-partwise version=\"3.1\"></score-partwise>\n"

func TestFileName(t *testing.T) {
	name := FileName(payload)
	if !strings.HasPrefix(name, "music_") || !strings.HasSuffix(name, ".svg") {
		t.Errorf("FileName() = %s", name)
	}
	if len(name) != len("music_")+32+len(".svg") {
		t.Errorf("FileName() has unexpected length: %s", name)
	}
	if FileName(payload) != name {
		t.Error("FileName is not deterministic")
	}
	if FileName(payload+" ") == name {
		t.Error("different payloads share a file name")
	}
}

// TestCachedRendererRendersOnce verifies the engine runs once per payload
// within a process and not at all when the file already exists.
func TestCachedRendererRendersOnce(t *testing.T) {
	dir := t.TempDir()
	engine := &fakeEngine{available: true}
	r := NewCachedRenderer(engine)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		name, err := r.Render(ctx, dir, payload)
		if err != nil {
			t.Fatalf("Render() error: %v", err)
		}
		if name != FileName(payload) {
			t.Errorf("Render() = %s, want %s", name, FileName(payload))
		}
	}
	if engine.calls != 1 {
		t.Errorf("engine invoked %d times, want 1", engine.calls)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName(payload)))
	if err != nil {
		t.Fatalf("rendered file missing: %v", err)
	}
	if !strings.Contains(string(data), "score-partwise") {
		t.Errorf("unexpected rendered content %q", data)
	}

	// A fresh renderer (next run) finds the file on disk.
	again := NewCachedRenderer(engine)
	if _, err := again.Render(ctx, dir, payload); err != nil {
		t.Fatal(err)
	}
	if engine.calls != 1 {
		t.Errorf("engine invoked %d times across runs, want 1", engine.calls)
	}

	assertOnlyFile(t, dir, FileName(payload))
}

func TestCachedRendererDistinctPayloads(t *testing.T) {
	dir := t.TempDir()
	engine := &fakeEngine{available: true}
	r := NewCachedRenderer(engine)

	a, _ := r.Render(context.Background(), dir, "a")
	b, _ := r.Render(context.Background(), dir, "b")
	if a == b {
		t.Error("distinct payloads rendered to the same file")
	}
	if engine.calls != 2 {
		t.Errorf("engine invoked %d times, want 2", engine.calls)
	}
}

func TestCachedRendererUnavailable(t *testing.T) {
	dir := t.TempDir()
	engine := &fakeEngine{available: false}
	r := NewCachedRenderer(engine)

	if _, err := r.Render(context.Background(), dir, payload); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if _, err := NewCachedRenderer(nil).Render(context.Background(), dir, payload); !errors.Is(err, ErrUnavailable) {
		t.Errorf("nil engine: expected ErrUnavailable, got %v", err)
	}
	if engine.calls != 0 {
		t.Errorf("unavailable engine invoked %d times", engine.calls)
	}
}

// TestCachedRendererFailure verifies a failing payload is attempted once,
// reported as a render error and leaves no files behind.
func TestCachedRendererFailure(t *testing.T) {
	dir := t.TempDir()
	engine := &fakeEngine{available: true, fail: errors.New("exit status 1")}
	r := NewCachedRenderer(engine)

	for i := 0; i < 2; i++ {
		_, err := r.Render(context.Background(), dir, payload)
		if !errors.Is(err, qerrors.ErrRender) {
			t.Fatalf("expected render error, got %v", err)
		}
	}
	if engine.calls != 1 {
		t.Errorf("failing engine invoked %d times, want 1", engine.calls)
	}
	assertOnlyFile(t, dir, "")
}

func TestCachedRendererEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	r := NewCachedRenderer(&fakeEngine{available: true, noOutput: true})

	if _, err := r.Render(context.Background(), dir, payload); err == nil {
		t.Fatal("expected error for empty output")
	}
	assertOnlyFile(t, dir, "")
}

func TestNewVerovioDefaults(t *testing.T) {
	v := NewVerovio("", 0)
	if v.Tool != DefaultTool || v.Timeout != DefaultTimeout {
		t.Errorf("defaults = %s/%s", v.Tool, v.Timeout)
	}
	v = NewVerovio("mytool", time.Second)
	if v.Tool != "mytool" || v.Timeout != time.Second {
		t.Errorf("overrides = %s/%s", v.Tool, v.Timeout)
	}
}

func TestVerovioMissingTool(t *testing.T) {
	v := NewVerovio("quizpack-no-such-engraver", time.Second)
	if v.Available(context.Background()) {
		t.Error("missing tool reported available")
	}
	if err := v.Render(context.Background(), "in", "out"); err == nil {
		t.Error("expected error running a missing tool")
	}
}

// TestVerovioTimeout verifies a hung tool is cut off by the timeout, also
// when the tool is a script whose child outlives it.
func TestVerovioTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	tests := []struct {
		name   string
		script string
	}{
		{"exec", "#!/bin/sh\nexec sleep 5\n"},
		{"child process", "#!/bin/sh\nsleep 5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := filepath.Join(t.TempDir(), "hang.sh")
			if err := os.WriteFile(script, []byte(tt.script), 0755); err != nil {
				t.Fatal(err)
			}

			v := NewVerovio(script, 50*time.Millisecond)
			start := time.Now()
			err := v.Render(context.Background(), "in", "out")
			if err == nil || !strings.Contains(err.Error(), "timed out") {
				t.Fatalf("expected timeout error, got %v", err)
			}
			if elapsed := time.Since(start); elapsed > 3*time.Second {
				t.Errorf("Render returned after %s", elapsed)
			}
		})
	}
}

func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if name == "" {
		if len(names) != 0 {
			t.Errorf("expected empty directory, found %v", names)
		}
		return
	}
	if len(names) != 1 || names[0] != name {
		t.Errorf("directory contains %v, want only %s", names, name)
	}
}
