// Package music renders MusicXML payloads to SVG through an external
// engraving tool and caches the results by content.
package music

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/FocuswithJustin/quizpack/internal/logging"
)

// DefaultTool is the engraving command used when none is configured.
const DefaultTool = "verovio"

// DefaultTimeout bounds a single tool invocation.
const DefaultTimeout = 30 * time.Second

// waitDelay is how long a killed tool's output pipes may stay open.
const waitDelay = 500 * time.Millisecond

// ErrUnavailable is returned when no engine can render music.
var ErrUnavailable = errors.New("music renderer not available")

// Engine is a process that converts a MusicXML file into an SVG file.
type Engine interface {
	// Render reads inputPath and writes outputPath.
	Render(ctx context.Context, inputPath, outputPath string) error
	// Available reports whether the engine can be invoked at all.
	Available(ctx context.Context) bool
}

// Verovio runs a verovio-compatible command line tool as
// `tool -o <output> <input>`.
type Verovio struct {
	Tool    string
	Timeout time.Duration

	once      sync.Once
	available bool
}

// NewVerovio returns an engine for tool. Empty values take the defaults.
func NewVerovio(tool string, timeout time.Duration) *Verovio {
	if tool == "" {
		tool = DefaultTool
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Verovio{Tool: tool, Timeout: timeout}
}

// Available checks once per engine that the tool is on PATH and answers
// --version successfully.
func (v *Verovio) Available(ctx context.Context) bool {
	v.once.Do(func() {
		if _, err := exec.LookPath(v.Tool); err != nil {
			logging.DebugContext(ctx, "music tool not found", "tool", v.Tool)
			return
		}
		v.available = v.run(ctx, "--version") == nil
	})
	return v.available
}

// Render invokes the tool. A non-zero exit, a launch failure or a timeout
// is returned as an error together with the tool's stderr.
func (v *Verovio) Render(ctx context.Context, inputPath, outputPath string) error {
	start := time.Now()
	err := v.run(ctx, "-o", outputPath, inputPath)
	logging.RendererInvoked(ctx, v.Tool, outputPath, time.Since(start), err)
	return err
}

func (v *Verovio) run(ctx context.Context, args ...string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, v.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctxWithTimeout, v.Tool, args...)
	// Killing a wrapper script leaves its children holding stderr open.
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctxWithTimeout.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s timed out after %s", v.Tool, v.Timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", v.Tool, err, msg)
		}
		return fmt.Errorf("%s: %w", v.Tool, err)
	}
	return nil
}
