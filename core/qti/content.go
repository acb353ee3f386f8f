package qti

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/quizpack/core/chem"
	"github.com/FocuswithJustin/quizpack/core/encoding"
	"github.com/FocuswithJustin/quizpack/core/errors"
	"github.com/FocuswithJustin/quizpack/core/lexer"
	"github.com/FocuswithJustin/quizpack/core/music"
	"github.com/FocuswithJustin/quizpack/core/xml"
)

// ImageDir is the archive directory holding every resource.
const ImageDir = "images/"

// MusicAlt is the alt text of rendered music notation.
const MusicAlt = "Music Notation"

// ContentRenderer turns quiz markup into document nodes.
type ContentRenderer struct {
	env    Env
	dir    string
	report *Report
}

// NewContentRenderer returns a renderer resolving music renderings in dir
// and recording warnings in report.
func NewContentRenderer(env Env, dir string, report *Report) *ContentRenderer {
	if report == nil {
		report = newReport()
	}
	return &ContentRenderer{env: env.withDefaults(), dir: dir, report: report}
}

// Render appends the nodes for text to parent. Math, music and image
// problems are recorded as warnings; only a code fragment that cannot be
// spliced is returned as an error.
func (c *ContentRenderer) Render(ctx context.Context, parent *xmlquery.Node, text string) error {
	for _, tok := range lexer.Tokenize(text) {
		switch t := tok.(type) {
		case lexer.Text:
			xml.AppendText(parent, t.Value)
		case lexer.LatexMath:
			c.math(ctx, parent, t.Source, t.Display)
		case lexer.Chemistry:
			c.math(ctx, parent, chem.ToLaTeX(t.Formula), false)
		case lexer.Image:
			c.image(ctx, parent, t)
		case lexer.Music:
			c.music(ctx, parent, t.Content)
		case lexer.Code:
			if err := c.code(parent, t); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *ContentRenderer) math(ctx context.Context, parent *xmlquery.Node, src string, display bool) {
	markup, err := c.env.Math.Render(src, display)
	if err == nil {
		err = xml.SpliceFragment(parent, markup)
	}
	if err != nil {
		var re *errors.RenderError
		if !errors.As(err, &re) {
			err = errors.NewRender("math", src, err)
		}
		c.report.Warn(ctx, errors.WarnRenderFallback, fmt.Sprintf("math %q kept as text", src), err)
		xml.AppendText(parent, "$"+src+"$")
	}
}

func (c *ContentRenderer) image(ctx context.Context, parent *xmlquery.Node, img lexer.Image) {
	if strings.TrimSpace(img.Alt) == "" {
		c.report.Warn(ctx, errors.WarnAccessibility,
			fmt.Sprintf("image %s has missing or empty alt text", img.Src), nil)
	}
	xml.AppendElement(parent, "img",
		"src", ImageDir+imageName(img.Src),
		"alt", img.Alt,
	)
}

func (c *ContentRenderer) music(ctx context.Context, parent *xmlquery.Node, payload string) {
	name, err := c.renderMusic(ctx, payload)
	if err != nil {
		c.report.Warn(ctx, musicWarningKind(err), "music notation kept as text", err)
		pre := xml.AppendElement(parent, "pre")
		xml.AppendText(pre, payload)
		return
	}
	xml.AppendElement(parent, "img",
		"src", ImageDir+name,
		"alt", MusicAlt,
	)
}

func (c *ContentRenderer) renderMusic(ctx context.Context, payload string) (string, error) {
	if c.env.Music == nil {
		return "", music.ErrUnavailable
	}
	return c.env.Music.Render(ctx, c.dir, payload)
}

func (c *ContentRenderer) code(parent *xmlquery.Node, code lexer.Code) error {
	source := "highlight"
	if code.Lang != "" {
		source += ":" + code.Lang
	}
	fragment, err := c.env.Highlight.Highlight(code.Lang, encoding.SanitizeXML(code.Content))
	if err != nil {
		return errors.NewSplice(source, err)
	}
	if err := xml.SpliceFragment(parent, fragment); err != nil {
		return errors.NewSplice(source, err)
	}
	return nil
}

func musicWarningKind(err error) errors.WarningKind {
	if errors.Is(err, music.ErrUnavailable) {
		return errors.WarnRendererUnavailable
	}
	return errors.WarnRenderFallback
}

// imageName is the archive basename of an image reference.
func imageName(src string) string {
	return filepath.Base(filepath.FromSlash(src))
}
