package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduexamine/eduexamine/internal/model"
)

func threeQuestionSet() map[uint]GradedQuestion {
	return map[uint]GradedQuestion{
		1: {CorrectAnswer: "Paris", Marks: 5},
		2: {CorrectAnswer: "true", Marks: 5},
		3: {CorrectAnswer: "42", Marks: 5},
	}
}

func TestEvaluateAllCorrect(t *testing.T) {
	out := Evaluate(threeQuestionSet(), map[uint]string{
		1: "Paris",
		2: "true",
		3: "42",
	}, 35)

	assert.Equal(t, 15.0, out.Score)
	assert.Equal(t, 15.0, out.TotalMarks)
	assert.InDelta(t, 100.0, out.Percentage, 0.001)
	assert.Equal(t, model.StatusPass, out.Status)
}

func TestEvaluateTrimAndCaseInsensitive(t *testing.T) {
	out := Evaluate(threeQuestionSet(), map[uint]string{
		1: "  pArIs ",
		2: "TRUE",
		3: " 42",
	}, 35)

	assert.Equal(t, 15.0, out.Score)
	assert.Equal(t, model.StatusPass, out.Status)
}

func TestEvaluateJustBelowThresholdFails(t *testing.T) {
	// 5/15 is 33.33%, below the default 35% threshold.
	out := Evaluate(threeQuestionSet(), map[uint]string{1: "Paris"}, 35)

	assert.Equal(t, 5.0, out.Score)
	assert.InDelta(t, 33.333, out.Percentage, 0.01)
	assert.Equal(t, model.StatusFail, out.Status)
}

func TestEvaluateExactThresholdPasses(t *testing.T) {
	questions := map[uint]GradedQuestion{
		1: {CorrectAnswer: "a", Marks: 35},
		2: {CorrectAnswer: "b", Marks: 65},
	}
	out := Evaluate(questions, map[uint]string{1: "a"}, 35)

	assert.InDelta(t, 35.0, out.Percentage, 0.001)
	assert.Equal(t, model.StatusPass, out.Status)
}

func TestEvaluateUnansweredEarnZero(t *testing.T) {
	out := Evaluate(threeQuestionSet(), map[uint]string{}, 35)

	assert.Equal(t, 0.0, out.Score)
	assert.Equal(t, 15.0, out.TotalMarks)
	assert.Equal(t, model.StatusFail, out.Status)
}

func TestEvaluateUnknownAnswerKeysIgnored(t *testing.T) {
	out := Evaluate(threeQuestionSet(), map[uint]string{
		1:  "Paris",
		99: "Paris",
	}, 35)

	assert.Equal(t, 5.0, out.Score)
	assert.Equal(t, 15.0, out.TotalMarks)
}

func TestEvaluateEmptyQuestionSet(t *testing.T) {
	out := Evaluate(map[uint]GradedQuestion{}, map[uint]string{1: "x"}, 35)

	assert.Equal(t, 0.0, out.Score)
	assert.Equal(t, 0.0, out.TotalMarks)
	assert.Equal(t, 0.0, out.Percentage)
	assert.Equal(t, model.StatusFail, out.Status)
}

func TestEvaluateDefaultThresholdWhenUnset(t *testing.T) {
	questions := map[uint]GradedQuestion{
		1: {CorrectAnswer: "a", Marks: 4},
		2: {CorrectAnswer: "b", Marks: 6},
	}
	// 40% >= default 35%
	out := Evaluate(questions, map[uint]string{1: "a"}, 0)
	assert.Equal(t, model.StatusPass, out.Status)

	// 30% < default 35%
	questions[1] = GradedQuestion{CorrectAnswer: "a", Marks: 3}
	questions[2] = GradedQuestion{CorrectAnswer: "b", Marks: 7}
	out = Evaluate(questions, map[uint]string{1: "a"}, 0)
	assert.Equal(t, model.StatusFail, out.Status)
}

func TestEvaluateStringKeys(t *testing.T) {
	questions := map[string]GradedQuestion{
		"q-1": {CorrectAnswer: "yes", Marks: 2},
		"q-2": {CorrectAnswer: "no", Marks: 2},
	}
	out := Evaluate(questions, map[string]string{"q-1": "YES", "q-2": "maybe"}, 60)

	assert.Equal(t, 2.0, out.Score)
	assert.Equal(t, model.StatusFail, out.Status)
}
