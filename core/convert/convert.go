// Package convert is the single entry point turning a quiz source file
// into a QTI package.
package convert

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/quizpack/core/errors"
	"github.com/FocuswithJustin/quizpack/core/parser"
	"github.com/FocuswithJustin/quizpack/core/qti"
	"github.com/FocuswithJustin/quizpack/internal/logging"
	"github.com/FocuswithJustin/quizpack/internal/validation"
)

// Options configures File.
type Options struct {
	// Strict rejects unbalanced question blocks instead of recovering.
	Strict bool
	// OutputPath overrides the default <source dir>/<source stem>.zip.
	OutputPath string
	// Env supplies the renderers; zero fields fall back to defaults.
	Env qti.Env
}

// File converts the quiz at sourcePath and returns the written package.
func File(ctx context.Context, sourcePath string, opts Options) (*qti.Result, error) {
	if err := validation.ValidatePath(sourcePath); err != nil {
		return nil, errors.NewValidation("source", err.Error())
	}
	if opts.OutputPath != "" {
		if err := validation.ValidatePath(opts.OutputPath); err != nil {
			return nil, errors.NewValidation("output", err.Error())
		}
	}

	ctx = logging.WithConversionID(ctx, uuid.New().String())
	start := time.Now()
	logging.ConversionStarted(ctx, sourcePath, "strict", opts.Strict)

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, errors.NewIO("read", sourcePath, err)
	}

	q, err := parser.Parse(string(data), parser.WithStrict(opts.Strict))
	if err != nil {
		var fe *errors.FormatError
		if errors.As(err, &fe) && fe.Path == "" {
			fe.Path = sourcePath
		}
		logging.ErrorContext(ctx, "conversion_failed", "stage", "parse", "error", err.Error())
		return nil, err
	}

	res, err := qti.NewGenerator(opts.Env, qti.Options{OutputPath: opts.OutputPath}).Generate(ctx, q, sourcePath)
	if err != nil {
		logging.ErrorContext(ctx, "conversion_failed", "stage", "generate", "error", err.Error())
		return nil, err
	}

	logging.ConversionFinished(ctx, res.ArchivePath, len(q.Questions), len(res.Resources), len(res.Warnings), time.Since(start))
	return res, nil
}
