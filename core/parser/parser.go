// Package parser reads quiz documents: a YAML front matter block followed
// by question blocks of the form
//
//	:::{.question type=multiple_choice points=1}
//	What is 2 + 2?
//	- [ ] 3
//	- [x] 4
//	:::
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/quizpack/core/errors"
	"github.com/FocuswithJustin/quizpack/core/quiz"
	"github.com/FocuswithJustin/quizpack/internal/logging"
)

const (
	frontMatterDelimiter = "---"
	blockOpener          = ":::{.question"
	blockCloser          = ":::"
	answerMarker         = "- ["
	correctMarker        = "- [x]"
	markerLength         = 5

	// TitleLength is the number of characters kept when a title is
	// derived from the prompt.
	TitleLength = 50
)

type frontMatter struct {
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	ShuffleAnswers bool   `yaml:"shuffle_answers"`
}

type options struct {
	strict bool
}

// Option configures Parse.
type Option func(*options)

// WithStrict makes structural recovery an error: an opener inside an open
// block and a block left open at end of input are rejected instead of
// being closed implicitly.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// Parse parses a quiz document.
func Parse(doc string, opts ...Option) (*quiz.Quiz, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	parts := strings.SplitN(doc, frontMatterDelimiter, 3)
	if len(parts) < 3 {
		return nil, errors.NewFormat("invalid file format: missing YAML front matter")
	}

	fm, err := parseFrontMatter(parts[1])
	if err != nil {
		return nil, err
	}

	// body line numbers are reported relative to the whole document
	offset := strings.Count(parts[0], "\n") + strings.Count(parts[1], "\n")
	questions, err := parseBody(parts[2], offset, o)
	if err != nil {
		return nil, err
	}

	return &quiz.Quiz{
		Title:          fm.Title,
		Description:    fm.Description,
		ShuffleAnswers: fm.ShuffleAnswers,
		Questions:      questions,
	}, nil
}

func parseFrontMatter(src string) (*frontMatter, error) {
	var fm frontMatter
	if err := yaml.Unmarshal([]byte(src), &fm); err != nil {
		return nil, &errors.FormatError{
			Message: fmt.Sprintf("failed to parse YAML front matter: %v", err),
			Err:     err,
		}
	}
	if strings.TrimSpace(fm.Title) == "" {
		return nil, errors.NewFormat("failed to parse YAML front matter: missing required field: title")
	}
	return &fm, nil
}

// block is the lines of one question block and the line number of its
// opener.
type block struct {
	start int
	lines []string
}

func parseBody(body string, offset int, o options) ([]quiz.Question, error) {
	var questions []quiz.Question
	var current *block

	flush := func() error {
		q, err := parseQuestion(current)
		if err != nil {
			return err
		}
		questions = append(questions, q)
		current = nil
		return nil
	}

	for i, line := range splitLines(body) {
		lineNo := offset + i + 1
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, blockOpener):
			if current != nil {
				if o.strict {
					return nil, errors.NewFormatAt(lineNo, fmt.Sprintf(
						"question block opened before the block at line %d was closed", current.start))
				}
				logging.Debug("closing unterminated question block", "line", current.start, "next", lineNo)
				if err := flush(); err != nil {
					return nil, err
				}
			}
			current = &block{start: lineNo, lines: []string{line}}
		case trimmed == blockCloser && current != nil:
			current.lines = append(current.lines, line)
			if err := flush(); err != nil {
				return nil, err
			}
		case current != nil:
			current.lines = append(current.lines, line)
		}
	}

	if current != nil {
		if o.strict {
			return nil, errors.NewFormatAt(current.start, "unterminated question block")
		}
		logging.Debug("closing question block at end of input", "line", current.start)
		if err := flush(); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

// splitLines splits on \n and drops a \r before it. A trailing newline
// does not produce an empty final line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func parseQuestion(b *block) (quiz.Question, error) {
	q := quiz.Question{Type: quiz.MultipleChoice, Points: 1.0}

	attrs, err := parseHeader(b.lines[0])
	if err != nil {
		return q, &errors.FormatError{
			Line:    b.start,
			Message: fmt.Sprintf("invalid question header: %v", err),
			Err:     err,
		}
	}
	if v, ok := attrs["type"]; ok {
		if t, known := quiz.ParseQuestionType(v); known {
			q.Type = t
		} else {
			logging.Debug("unknown question type, using multiple_choice", "type", v, "line", b.start)
		}
	}
	if v, ok := attrs["points"]; ok {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			q.Points = p
		} else {
			logging.Debug("ignoring invalid points value", "points", v, "line", b.start)
		}
	}
	if v, ok := attrs["title"]; ok {
		q.Title = strings.ReplaceAll(v, "_", " ")
	}

	// the closer is absent when the block was closed implicitly
	body := b.lines[1:]
	if n := len(body); n > 0 && strings.TrimSpace(body[n-1]) == blockCloser {
		body = body[:n-1]
	}

	var promptLines []string
	inAnswers := false
	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, answerMarker) {
			inAnswers = true
			q.Answers = append(q.Answers, quiz.Answer{
				Text:    answerText(trimmed),
				Correct: strings.HasPrefix(trimmed, correctMarker),
			})
			continue
		}
		if !inAnswers {
			promptLines = append(promptLines, line)
		}
	}

	q.Prompt = strings.TrimSpace(strings.Join(promptLines, "\n"))
	if q.Title == "" {
		q.Title = DeriveTitle(q.Prompt)
	}
	return q, nil
}

// answerText drops the five-character checkbox marker.
func answerText(line string) string {
	for i := 0; i < markerLength && line != ""; i++ {
		_, size := utf8.DecodeRuneInString(line)
		line = line[size:]
	}
	return strings.TrimSpace(line)
}

// DeriveTitle returns the first TitleLength characters of prompt with line
// breaks collapsed to spaces, followed by "..." when it was truncated.
func DeriveTitle(prompt string) string {
	flat := strings.ReplaceAll(prompt, "\n", " ")
	if utf8.RuneCountInString(flat) <= TitleLength {
		return flat
	}
	return string([]rune(flat)[:TitleLength]) + "..."
}
