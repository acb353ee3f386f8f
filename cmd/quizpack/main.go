// Command quizpack compiles quiz markup files into QTI 2.1 content
// packages and inspects the packages it produced.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/quizpack/core/convert"
	"github.com/FocuswithJustin/quizpack/core/highlight"
	"github.com/FocuswithJustin/quizpack/core/mathml"
	"github.com/FocuswithJustin/quizpack/core/music"
	"github.com/FocuswithJustin/quizpack/core/qti"
	"github.com/FocuswithJustin/quizpack/core/xml"
	"github.com/FocuswithJustin/quizpack/internal/archive"
	"github.com/FocuswithJustin/quizpack/internal/config"
	"github.com/FocuswithJustin/quizpack/internal/logging"
	"github.com/FocuswithJustin/quizpack/internal/validation"
)

const version = "0.1.0"

// stdout receives command results; diagnostics go to the logger.
var stdout io.Writer = os.Stdout

// CLI defines the command-line interface for quizpack.
var CLI struct {
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`

	Convert ConvertCmd `cmd:"" help:"Convert a quiz file into a QTI package"`
	Inspect InspectCmd `cmd:"" help:"List and check the contents of a QTI package"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ConvertCmd converts a quiz source file.
type ConvertCmd struct {
	Source       string        `arg:"" help:"Quiz source file" type:"existingfile"`
	Out          string        `help:"Output archive path (default: source name with .zip)" type:"path"`
	Strict       bool          `help:"Reject unbalanced question blocks instead of recovering"`
	MusicTool    string        `name:"music-tool" help:"Music notation renderer executable"`
	MusicTimeout time.Duration `name:"music-timeout" help:"Time limit for one music rendering"`
	NoMusic      bool          `name:"no-music" help:"Keep music notation as text"`
	Style        string        `help:"Code highlighting style"`
	Config       string        `help:"Configuration file" type:"existingfile"`
}

func (c *ConvertCmd) Run() error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if err := initLogging(cfg.Log); err != nil {
		return err
	}

	env := qti.Env{
		Math:      mathml.NewEngine(mathml.DefaultCacheSize),
		Highlight: highlight.NewChroma(cfg.Highlight.Style),
	}
	if !cfg.Music.Disabled {
		env.Music = music.NewCachedRenderer(music.NewVerovio(cfg.Music.Tool, cfg.Music.Timeout))
	}

	res, err := convert.File(context.Background(), c.Source, convert.Options{
		Strict:     cfg.Strict,
		OutputPath: c.Out,
		Env:        env,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Generated %s\n", res.ArchivePath)
	if n := len(res.Warnings); n > 0 {
		fmt.Fprintf(stdout, "%d warning(s):\n", n)
		for _, w := range res.Warnings {
			fmt.Fprintf(stdout, "  %s\n", w)
		}
	}
	return nil
}

// config merges the configuration file, global flags and command flags,
// later sources winning.
func (c *ConvertCmd) config() (config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		var err error
		if cfg, err = config.Load(c.Config); err != nil {
			return cfg, err
		}
	}

	if c.Strict {
		cfg.Strict = true
	}
	if c.MusicTool != "" {
		cfg.Music.Tool = c.MusicTool
	}
	if c.MusicTimeout != 0 {
		cfg.Music.Timeout = c.MusicTimeout
	}
	if c.NoMusic {
		cfg.Music.Disabled = true
	}
	if c.Style != "" {
		cfg.Highlight.Style = c.Style
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	if CLI.LogFormat != "" {
		cfg.Log.Format = CLI.LogFormat
	}
	return cfg, cfg.Validate()
}

// InspectCmd lists a package and checks its XML documents.
type InspectCmd struct {
	Archive string `arg:"" help:"QTI package to inspect" type:"existingfile"`
}

func (c *InspectCmd) Run() error {
	if err := initLogging(config.Log{Level: CLI.LogLevel, Format: CLI.LogFormat}); err != nil {
		return err
	}
	if err := validation.ValidatePath(c.Archive); err != nil {
		return fmt.Errorf("invalid archive path: %w", err)
	}
	if err := checkZip(c.Archive); err != nil {
		return err
	}

	r, err := archive.NewReader(c.Archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, e := range r.Entries() {
		method := "stored"
		if !e.Stored {
			method = "deflated"
		}
		fmt.Fprintf(stdout, "%-48s %10d  %s\n", e.Name, e.Size, method)
	}

	var problems []string
	for _, name := range []string{qti.ManifestFile, qti.AssessmentFile} {
		data, err := r.ReadFile(name)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: missing", name))
			continue
		}
		result := xml.Validate(data, nil)
		if !result.Valid {
			problems = append(problems, fmt.Sprintf("%s: %s", name, result.Errors[0]))
			continue
		}
		fmt.Fprintf(stdout, "%s: well-formed\n", name)
		if name == qti.AssessmentFile {
			if err := printItemCount(data); err != nil {
				return err
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("package is invalid:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

func checkZip(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	ft, err := validation.ValidateFileType(f, path)
	if err != nil {
		return err
	}
	if ft != validation.FileTypeZip {
		return fmt.Errorf("%s is not a zip archive", path)
	}
	return nil
}

func printItemCount(assessment []byte) error {
	doc, err := xml.Parse(assessment)
	if err != nil {
		return err
	}
	n, err := doc.Count("count(//assessmentItem)")
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "items: %d\n", n)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(stdout, "quizpack version %s\n", version)
	return nil
}

func initLogging(cfg config.Log) error {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("quizpack"),
		kong.Description("Compile quiz markup into QTI 2.1 content packages"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
