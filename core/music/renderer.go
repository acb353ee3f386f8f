package music

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/FocuswithJustin/quizpack/core/cas"
	"github.com/FocuswithJustin/quizpack/core/errors"
)

// Renderer produces a rendered image for a payload inside dir and returns
// its file name.
type Renderer interface {
	Render(ctx context.Context, dir, payload string) (string, error)
}

// FilePrefix and FileExt frame the content key in rendered file names.
const (
	FilePrefix = "music_"
	FileExt    = ".svg"
)

// FileName returns the rendered file name for payload.
func FileName(payload string) string {
	return FilePrefix + cas.Key([]byte(payload)) + FileExt
}

type outcome struct {
	name string
	err  error
}

// CachedRenderer renders through an Engine at most once per distinct
// payload and directory. Results live on disk as content-addressed files
// (a file already present is reused without invoking the engine) and every
// outcome, failures included, is remembered for the process lifetime.
//
// Renders are serialized; the engine is a blocking child process and a
// single conversion is sequential anyway.
type CachedRenderer struct {
	engine Engine

	mu   sync.Mutex
	memo map[string]outcome
}

// NewCachedRenderer wraps engine.
func NewCachedRenderer(engine Engine) *CachedRenderer {
	return &CachedRenderer{engine: engine, memo: make(map[string]outcome)}
}

// Render returns the file name of the rendering of payload in dir.
func (r *CachedRenderer) Render(ctx context.Context, dir, payload string) (string, error) {
	key := cas.Key([]byte(payload))
	memoKey := filepath.Join(dir, key)

	r.mu.Lock()
	defer r.mu.Unlock()

	if o, ok := r.memo[memoKey]; ok {
		return o.name, o.err
	}
	name, err := r.render(ctx, dir, key, payload)
	r.memo[memoKey] = outcome{name: name, err: err}
	return name, err
}

func (r *CachedRenderer) render(ctx context.Context, dir, key, payload string) (string, error) {
	store, err := cas.NewStore(dir, FilePrefix, FileExt)
	if err != nil {
		return "", errors.NewRender("music", payload, err)
	}
	if store.Exists(key) {
		return store.Name(key), nil
	}
	if r.engine == nil || !r.engine.Available(ctx) {
		return "", ErrUnavailable
	}

	input, err := store.CreateTemp(".music-*.musicxml")
	if err != nil {
		return "", errors.NewRender("music", payload, err)
	}
	inputPath := input.Name()
	defer os.Remove(inputPath)

	if _, err := input.WriteString(payload); err != nil {
		input.Close()
		return "", errors.NewRender("music", payload, err)
	}
	if err := input.Close(); err != nil {
		return "", errors.NewRender("music", payload, err)
	}

	output, err := store.CreateTemp(".music-*.svg")
	if err != nil {
		return "", errors.NewRender("music", payload, err)
	}
	outputPath := output.Name()
	output.Close()

	if err := r.engine.Render(ctx, inputPath, outputPath); err != nil {
		os.Remove(outputPath)
		return "", errors.NewRender("music", payload, err)
	}
	if info, err := os.Stat(outputPath); err != nil || info.Size() == 0 {
		os.Remove(outputPath)
		return "", errors.NewRender("music", payload, errors.NewValidation("output", "renderer produced no output"))
	}
	if err := store.Adopt(key, outputPath); err != nil {
		return "", errors.NewRender("music", payload, err)
	}
	return store.Name(key), nil
}
