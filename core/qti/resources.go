package qti

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/FocuswithJustin/quizpack/core/errors"
	"github.com/FocuswithJustin/quizpack/core/lexer"
	"github.com/FocuswithJustin/quizpack/core/quiz"
	"github.com/FocuswithJustin/quizpack/internal/validation"
)

// ResourceKind tells images from rendered music notation.
type ResourceKind int

const (
	ImageResource ResourceKind = iota
	MusicResource
)

func (k ResourceKind) String() string {
	if k == MusicResource {
		return "music"
	}
	return "image"
}

// Resource is a file copied into the archive under ImageDir.
type Resource struct {
	Name string // archive basename
	Path string // file on disk
	Kind ResourceKind
}

// ArchiveName is the entry name of r inside the package.
func (r Resource) ArchiveName() string {
	return ImageDir + r.Name
}

// CollectResources scans every prompt and answer of q for images and music
// notation. Relative image paths resolve against dir, which also receives
// music renderings. Missing images, failed renderings and basename clashes
// are reported and left out. The result is sorted by Name.
func CollectResources(ctx context.Context, q *quiz.Quiz, dir string, env Env, report *Report) []Resource {
	if report == nil {
		report = newReport()
	}
	c := collector{dir: dir, env: env, report: report, byName: make(map[string]Resource)}
	for _, text := range q.Texts() {
		for _, tok := range lexer.Tokenize(text) {
			switch t := tok.(type) {
			case lexer.Image:
				c.image(ctx, t.Src)
			case lexer.Music:
				c.music(ctx, t.Content)
			}
		}
	}

	resources := make([]Resource, 0, len(c.byName))
	for _, r := range c.byName {
		resources = append(resources, r)
	}
	sort.Slice(resources, func(i, j int) bool {
		return resources[i].Name < resources[j].Name
	})
	return resources
}

type collector struct {
	dir    string
	env    Env
	report *Report
	byName map[string]Resource
}

func (c *collector) image(ctx context.Context, src string) {
	path := filepath.Clean(filepath.FromSlash(src))
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, path)
	}
	name := filepath.Base(path)

	if err := validation.ValidatePath(path); err != nil {
		c.report.Warn(ctx, errors.WarnMissingResource, fmt.Sprintf("image %s skipped", src), err)
		return
	}
	if err := validation.ValidateFilename(name); err != nil {
		c.report.Warn(ctx, errors.WarnMissingResource, fmt.Sprintf("image %s skipped", src), err)
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		c.report.Warn(ctx, errors.WarnMissingResource, fmt.Sprintf("image not found: %s", path), nil)
		return
	}
	if info.IsDir() {
		c.report.Warn(ctx, errors.WarnMissingResource, fmt.Sprintf("image %s is a directory", path), nil)
		return
	}
	if err := checkFileType(path); err != nil {
		c.report.Warn(ctx, errors.WarnMissingResource, fmt.Sprintf("image %s skipped", src), err)
		return
	}
	c.add(ctx, Resource{Name: name, Path: path, Kind: ImageResource})
}

// checkFileType rejects files whose content contradicts their extension.
func checkFileType(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = validation.ValidateFileType(f, path)
	return err
}

func (c *collector) music(ctx context.Context, payload string) {
	if c.env.Music == nil {
		return
	}
	name, err := c.env.Music.Render(ctx, c.dir, payload)
	if err != nil {
		c.report.Warn(ctx, musicWarningKind(err), "music notation kept as text", err)
		return
	}
	c.add(ctx, Resource{Name: name, Path: filepath.Join(c.dir, name), Kind: MusicResource})
}

// add keeps the first resource registered under a name.
func (c *collector) add(ctx context.Context, r Resource) {
	prev, ok := c.byName[r.Name]
	if !ok {
		c.byName[r.Name] = r
		return
	}
	if prev.Path != r.Path {
		c.report.Warn(ctx, errors.WarnDuplicateResource,
			fmt.Sprintf("%s and %s share the archive name %s; keeping the first", prev.Path, r.Path, r.Name), nil)
	}
}
