// Package quiz defines the in-memory model produced by the parser and
// consumed by the QTI generator.
package quiz

import "fmt"

// QuestionType is the closed set of supported question kinds.
type QuestionType int

const (
	MultipleChoice QuestionType = iota
	MultipleAnswers
	TrueFalse
	ShortAnswer
	Essay
	FileUpload
)

var questionTypeNames = [...]string{
	MultipleChoice:  "multiple_choice",
	MultipleAnswers: "multiple_answers",
	TrueFalse:       "true_false",
	ShortAnswer:     "short_answer",
	Essay:           "essay",
	FileUpload:      "file_upload",
}

// String returns the name used in question block headers.
func (t QuestionType) String() string {
	if t < 0 || int(t) >= len(questionTypeNames) {
		return fmt.Sprintf("QuestionType(%d)", int(t))
	}
	return questionTypeNames[t]
}

// ParseQuestionType maps a header value such as "true_false" to a type.
func ParseQuestionType(s string) (QuestionType, bool) {
	for i, name := range questionTypeNames {
		if name == s {
			return QuestionType(i), true
		}
	}
	return MultipleChoice, false
}

// IsChoice reports whether answers are presented as selectable choices.
func (t QuestionType) IsChoice() bool {
	switch t {
	case MultipleChoice, MultipleAnswers, TrueFalse:
		return true
	case ShortAnswer, Essay, FileUpload:
		return false
	}
	return false
}

// Cardinality returns the QTI response cardinality.
func (t QuestionType) Cardinality() string {
	if t == MultipleAnswers {
		return "multiple"
	}
	return "single"
}

// BaseType returns the QTI response base type.
func (t QuestionType) BaseType() string {
	if t.IsChoice() {
		return "identifier"
	}
	return "string"
}

// MaxChoices returns the choiceInteraction limit; 0 means unlimited.
func (t QuestionType) MaxChoices() int {
	if t == MultipleAnswers {
		return 0
	}
	return 1
}

// Scored reports whether the item references the match_correct template.
// MultipleAnswers is scored too: exact match applies to multiple
// cardinality, so it is not limited to MultipleChoice and TrueFalse.
func (t QuestionType) Scored() bool {
	return t.IsChoice()
}

// Quiz is a parsed quiz document. It is not modified after parsing.
type Quiz struct {
	Title          string
	Description    string
	ShuffleAnswers bool
	Questions      []Question
}

// Question is one question block. Its position in Quiz.Questions determines
// the item identifier.
type Question struct {
	Title   string
	Prompt  string
	Type    QuestionType
	Points  float64
	Answers []Answer
}

// Answer is one checkbox line of a question.
type Answer struct {
	Text     string
	Correct  bool
	Feedback string
}

// ItemID returns the assessment item identifier for the question at index i.
func ItemID(i int) string {
	return fmt.Sprintf("q%d", i+1)
}

// ChoiceID returns the choice identifier for the answer at index j.
func ChoiceID(j int) string {
	return fmt.Sprintf("choice_%d", j)
}

// CorrectChoices returns the identifiers of all correct answers in answer order.
func (q *Question) CorrectChoices() []string {
	var ids []string
	for j, a := range q.Answers {
		if a.Correct {
			ids = append(ids, ChoiceID(j))
		}
	}
	return ids
}

// Texts returns every markup field of the quiz in document order: for each
// question its prompt followed by its answers.
func (q *Quiz) Texts() []string {
	var texts []string
	for _, question := range q.Questions {
		texts = append(texts, question.Prompt)
		for _, a := range question.Answers {
			texts = append(texts, a.Text)
		}
	}
	return texts
}
