package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/model"
)

func TestBuildQuestionsDerivesTotalMarks(t *testing.T) {
	questions, total, err := buildQuestions([]dto.QuestionCreateDTO{
		{Text: "Capital of France?", Type: model.QuestionKindChoice, Options: []string{"Paris", "London"}, CorrectAnswer: "Paris", Marks: 5},
		{Text: "2+2=4", Type: model.QuestionKindTrueFalse, CorrectAnswer: "true", Marks: 2.5},
		{Text: "Name a prime", Type: model.QuestionKindShort, CorrectAnswer: "7", Marks: 2.5},
	})

	require.NoError(t, err)
	assert.Len(t, questions, 3)
	assert.Equal(t, 10.0, total)
	assert.Equal(t, model.QuestionKindChoice, questions[0].Options.Kind)
	assert.Equal(t, []string{"Paris", "London"}, questions[0].Options.Choices)
}

func TestBuildQuestionsRejectsEmptySet(t *testing.T) {
	_, _, err := buildQuestions(nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBuildQuestionsRejectsNonPositiveMarks(t *testing.T) {
	_, _, err := buildQuestions([]dto.QuestionCreateDTO{
		{Text: "q", Type: model.QuestionKindShort, CorrectAnswer: "a", Marks: 0},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBuildQuestionsRejectsMalformedOptions(t *testing.T) {
	_, _, err := buildQuestions([]dto.QuestionCreateDTO{
		{Text: "q", Type: model.QuestionKindChoice, Options: []string{"only one"}, CorrectAnswer: "a", Marks: 1},
	})
	assert.ErrorIs(t, err, ErrValidation)
}
