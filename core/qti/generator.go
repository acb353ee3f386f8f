// Package qti generates QTI 2.1 content packages from parsed quizzes.
//
// A package is a zip archive holding imsmanifest.xml, assessment.xml and
// every referenced image or music rendering under images/. Resources are
// collected once before any XML is built; the archive is assembled in a
// temporary file and only renamed onto the output path when complete.
package qti

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/quizpack/core/errors"
	"github.com/FocuswithJustin/quizpack/core/quiz"
	"github.com/FocuswithJustin/quizpack/core/xml"
	"github.com/FocuswithJustin/quizpack/internal/archive"
)

// ArchiveExt is appended to the source stem to name the package.
const ArchiveExt = ".zip"

// Options configures a Generator.
type Options struct {
	// OutputPath overrides the default <source dir>/<source stem>.zip.
	OutputPath string
}

// Result describes a written package.
type Result struct {
	ArchivePath string
	Resources   []Resource
	Warnings    []errors.Warning
}

// Generator writes QTI packages.
type Generator struct {
	env  Env
	opts Options
}

// NewGenerator returns a Generator using env for rendering.
func NewGenerator(env Env, opts Options) *Generator {
	return &Generator{env: env.withDefaults(), opts: opts}
}

// ArchivePath returns where the package for sourcePath is written.
func (g *Generator) ArchivePath(sourcePath string) string {
	if g.opts.OutputPath != "" {
		return g.opts.OutputPath
	}
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(sourcePath), stem+ArchiveExt)
}

// Generate writes the package for q, whose source file is sourcePath.
// Relative image references resolve against the source directory.
func (g *Generator) Generate(ctx context.Context, q *quiz.Quiz, sourcePath string) (*Result, error) {
	dir := filepath.Dir(sourcePath)
	dst := g.ArchivePath(sourcePath)
	report := newReport()

	resources := CollectResources(ctx, q, dir, g.env, report)

	manifest := BuildManifest(resources).Serialize()
	assessmentDoc, err := BuildAssessment(ctx, q, NewContentRenderer(g.env, dir, report))
	if err != nil {
		return nil, err
	}
	assessment := assessmentDoc.Serialize()

	if err := checkWellFormed(ManifestFile, manifest); err != nil {
		return nil, err
	}
	if err := checkWellFormed(AssessmentFile, assessment); err != nil {
		return nil, err
	}

	entries := []archive.Entry{
		{Name: ManifestFile, Data: manifest},
		{Name: AssessmentFile, Data: assessment},
	}
	for _, r := range resources {
		entries = append(entries, archive.Entry{Name: r.ArchiveName(), Path: r.Path})
	}
	if err := archive.WriteZip(dst, entries); err != nil {
		return nil, errors.NewIO("write", dst, err)
	}

	return &Result{
		ArchivePath: dst,
		Resources:   resources,
		Warnings:    report.Warnings(),
	}, nil
}

func checkWellFormed(name string, data []byte) error {
	result := xml.Validate(data, nil)
	if result.Valid {
		return nil
	}
	msg := "not well-formed"
	if len(result.Errors) > 0 {
		msg = result.Errors[0].String()
	}
	return errors.NewSplice(name, fmt.Errorf("generated document is invalid: %s", msg))
}
