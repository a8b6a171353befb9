package service

import (
	"strings"

	"github.com/eduexamine/eduexamine/internal/model"
)

// DefaultPassPercentage applies when an exam has no configured pass
// threshold.
const DefaultPassPercentage = 35

// GradedQuestion is the minimum an evaluator needs to know about one
// question.
type GradedQuestion struct {
	CorrectAnswer string
	Marks         float64
}

// Outcome is the result of evaluating one submission against one
// question set. Deterministic and pure given its inputs.
type Outcome struct {
	Score      float64
	TotalMarks float64
	Percentage float64
	Status     string
}

// Evaluate scores a submission. An answer earns its question's marks on
// a trimmed, case-insensitive exact match with the correct answer;
// unanswered or non-matching questions earn zero. Status compares the
// percentage against passPercentage (DefaultPassPercentage when unset).
func Evaluate[K comparable](questions map[K]GradedQuestion, answers map[K]string, passPercentage float64) Outcome {
	var out Outcome
	for id, q := range questions {
		out.TotalMarks += q.Marks
		answer, ok := answers[id]
		if !ok {
			continue
		}
		if answerMatches(answer, q.CorrectAnswer) {
			out.Score += q.Marks
		}
	}

	if out.TotalMarks > 0 {
		out.Percentage = out.Score / out.TotalMarks * 100
	}

	if passPercentage <= 0 {
		passPercentage = DefaultPassPercentage
	}
	if out.Percentage >= passPercentage {
		out.Status = model.StatusPass
	} else {
		out.Status = model.StatusFail
	}
	return out
}

func answerMatches(given, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(correct))
}
