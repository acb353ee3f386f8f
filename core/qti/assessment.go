package qti

import (
	"context"
	"strconv"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/quizpack/core/quiz"
	"github.com/FocuswithJustin/quizpack/core/xml"
)

// MatchCorrect is the response processing template of scored items.
const MatchCorrect = "http://www.imsglobal.org/question/qti_v2p1/rptemplates/match_correct"

const responseID = "RESPONSE"

// BuildAssessment returns the assessment test holding one item per
// question. Only a code fragment that cannot be spliced fails the build.
func BuildAssessment(ctx context.Context, q *quiz.Quiz, content *ContentRenderer) (*xml.Document, error) {
	doc := xml.NewDocument()
	test := doc.SetRoot("assessmentTest",
		"xmlns", AssessmentNamespace,
		"identifier", "assessment",
		"title", q.Title,
	)
	part := xml.AppendElement(test, "testPart",
		"identifier", "part1",
		"navigationMode", "linear",
		"submissionMode", "individual",
	)
	section := xml.AppendElement(part, "assessmentSection",
		"identifier", "section1",
		"title", "Section 1",
		"visible", "true",
	)

	for i := range q.Questions {
		if err := buildItem(ctx, section, i, &q.Questions[i], content); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func buildItem(ctx context.Context, section *xmlquery.Node, index int, q *quiz.Question, content *ContentRenderer) error {
	item := xml.AppendElement(section, "assessmentItem",
		"identifier", quiz.ItemID(index),
		"title", q.Title,
		"adaptive", "false",
		"timeDependent", "false",
	)

	response := xml.AppendElement(item, "responseDeclaration",
		"identifier", responseID,
		"cardinality", q.Type.Cardinality(),
		"baseType", q.Type.BaseType(),
	)
	if q.Type.IsChoice() {
		correct := xml.AppendElement(response, "correctResponse")
		for _, id := range q.CorrectChoices() {
			xml.AppendText(xml.AppendElement(correct, "value"), id)
		}
	}

	outcome := xml.AppendElement(item, "outcomeDeclaration",
		"identifier", "SCORE",
		"cardinality", "single",
		"baseType", "float",
		"normalMaximum", formatPoints(q.Points),
	)
	xml.AppendText(xml.AppendElement(xml.AppendElement(outcome, "defaultValue"), "value"), "0")

	body := xml.AppendElement(item, "itemBody")
	if q.Type.IsChoice() {
		interaction := xml.AppendElement(body, "choiceInteraction",
			"responseIdentifier", responseID,
			"shuffle", "true",
			"maxChoices", strconv.Itoa(q.Type.MaxChoices()),
		)
		if err := content.Render(ctx, xml.AppendElement(interaction, "prompt"), q.Prompt); err != nil {
			return err
		}
		for j, a := range q.Answers {
			choice := xml.AppendElement(interaction, "simpleChoice", "identifier", quiz.ChoiceID(j))
			if err := content.Render(ctx, choice, a.Text); err != nil {
				return err
			}
		}
	} else {
		// free-text answers are not rendered
		if err := content.Render(ctx, xml.AppendElement(body, "p"), q.Prompt); err != nil {
			return err
		}
	}

	if q.Type.Scored() {
		xml.AppendElement(item, "responseProcessing", "template", MatchCorrect)
	} else {
		xml.AppendElement(item, "responseProcessing")
	}
	return nil
}

func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
