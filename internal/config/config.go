// Package config loads the optional quizpack configuration file.
//
// Example:
//
//	strict: true
//	music:
//	  tool: /opt/verovio/bin/verovio
//	  timeout: 45s
//	highlight:
//	  style: monokai
//	log:
//	  level: debug
//	  format: json
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/quizpack/core/errors"
	"github.com/FocuswithJustin/quizpack/core/highlight"
	"github.com/FocuswithJustin/quizpack/core/music"
	"github.com/FocuswithJustin/quizpack/internal/logging"
)

// Config is the file configuration. Command line flags override it.
type Config struct {
	Strict    bool      `yaml:"strict"`
	Music     Music     `yaml:"music"`
	Highlight Highlight `yaml:"highlight"`
	Log       Log       `yaml:"log"`
}

// Music configures the external notation renderer.
type Music struct {
	Tool     string        `yaml:"tool"`
	Timeout  time.Duration `yaml:"timeout"`
	Disabled bool          `yaml:"disabled"`
}

type Highlight struct {
	Style string `yaml:"style"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Music: Music{
			Tool:    music.DefaultTool,
			Timeout: music.DefaultTimeout,
		},
		Highlight: Highlight{Style: highlight.DefaultStyle},
		Log:       Log{Level: "info", Format: "text"},
	}
}

// Parse decodes a single YAML document over the defaults. Unknown keys are
// rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.NewIO("read", path, err)
	}
	return Parse(data)
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if c.Music.Tool == "" && !c.Music.Disabled {
		return errors.NewValidation("music.tool", "must not be empty")
	}
	if c.Music.Timeout <= 0 {
		return errors.NewValidation("music.timeout", "must be positive")
	}
	if c.Highlight.Style == "" {
		return errors.NewValidation("highlight.style", "must not be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.NewValidation("log.level", err.Error())
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return errors.NewValidation("log.format", err.Error())
	}
	return nil
}
