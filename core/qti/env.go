package qti

import (
	"context"

	"github.com/FocuswithJustin/quizpack/core/errors"
	"github.com/FocuswithJustin/quizpack/core/highlight"
	"github.com/FocuswithJustin/quizpack/core/mathml"
	"github.com/FocuswithJustin/quizpack/core/music"
	"github.com/FocuswithJustin/quizpack/internal/logging"
)

// Env holds the renderers shared by every conversion. A nil Music renderer
// disables music notation; the remaining fields are filled by NewGenerator
// when left nil.
type Env struct {
	Math      mathml.Renderer
	Highlight highlight.Highlighter
	Music     music.Renderer
}

// DefaultEnv returns an Env with the built-in math engine, the default
// highlight style and no music renderer.
func DefaultEnv() Env {
	return Env{
		Math:      mathml.NewEngine(mathml.DefaultCacheSize),
		Highlight: highlight.NewChroma(highlight.DefaultStyle),
	}
}

func (e Env) withDefaults() Env {
	d := DefaultEnv()
	if e.Math == nil {
		e.Math = d.Math
	}
	if e.Highlight == nil {
		e.Highlight = d.Highlight
	}
	return e
}

// Report collects the warnings of one conversion. Identical warnings are
// recorded once.
type Report struct {
	warnings []errors.Warning
	seen     map[string]bool
}

func newReport() *Report {
	return &Report{seen: make(map[string]bool)}
}

// Warn logs and records a warning.
func (r *Report) Warn(ctx context.Context, kind errors.WarningKind, message string, err error) {
	w := errors.Warning{Kind: kind, Message: message, Err: err}
	key := w.String()
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.warnings = append(r.warnings, w)
	logging.ContentWarning(ctx, string(kind), message, err)
}

// Warnings returns the recorded warnings in the order they occurred.
func (r *Report) Warnings() []errors.Warning {
	return r.warnings
}
