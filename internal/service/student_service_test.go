package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduexamine/eduexamine/internal/model"
)

func TestClassifyExamPrecedence(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	enabledExam := &model.Exam{IsEnabled: true}
	expiredExam := &model.Exam{IsEnabled: true, ExpiresAt: &past}
	openUntilLater := &model.Exam{IsEnabled: true, ExpiresAt: &future}

	tests := []struct {
		name       string
		assignment model.ExamStudentAssignment
		exam       *model.Exam
		want       string
	}{
		{
			name:       "submitted wins over everything",
			assignment: model.ExamStudentAssignment{HasSubmitted: true, IsEnabled: false, DisabledAt: &past},
			exam:       expiredExam,
			want:       examStatusSubmitted,
		},
		{
			name:       "open assignment and exam is pending",
			assignment: model.ExamStudentAssignment{IsEnabled: true},
			exam:       enabledExam,
			want:       examStatusPending,
		},
		{
			name:       "future expiry still pending",
			assignment: model.ExamStudentAssignment{IsEnabled: true},
			exam:       openUntilLater,
			want:       examStatusPending,
		},
		{
			name:       "disabled assignment with a disabled_at on record is closed",
			assignment: model.ExamStudentAssignment{IsEnabled: false, DisabledAt: &past},
			exam:       enabledExam,
			want:       examStatusClosed,
		},
		{
			name:       "disabled assignment without disabled_at is unknown",
			assignment: model.ExamStudentAssignment{IsEnabled: false},
			exam:       enabledExam,
			want:       examStatusUnknown,
		},
		{
			name:       "expired exam is closed",
			assignment: model.ExamStudentAssignment{IsEnabled: true},
			exam:       expiredExam,
			want:       examStatusClosed,
		},
		{
			name:       "missing exam is unknown",
			assignment: model.ExamStudentAssignment{IsEnabled: true},
			exam:       nil,
			want:       examStatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyExam(tt.assignment, tt.exam, now))
		})
	}
}

func TestProjectResultUnlocked(t *testing.T) {
	submitted := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	duration := 60
	result := model.StudentExamResult{
		ExamID:      7,
		Score:       12,
		Status:      model.StatusPass,
		SubmittedAt: submitted,
	}
	exam := &model.Exam{
		ID:             7,
		Title:          "Midterm",
		DurationMin:    &duration,
		PassPercentage: 40,
		TotalMarks:     20,
		IsEnabled:      true,
		ResultLocked:   false,
	}

	item := projectResult(result, exam)

	require.NotNil(t, item.Score)
	assert.Equal(t, 12.0, *item.Score)
	require.NotNil(t, item.TotalMarks)
	assert.Equal(t, 20.0, *item.TotalMarks)
	require.NotNil(t, item.PassPercentage)
	assert.Equal(t, 40.0, *item.PassPercentage)
	require.NotNil(t, item.DurationMin)
	assert.Equal(t, 60, *item.DurationMin)
	require.NotNil(t, item.IsEnabled)
	assert.True(t, *item.IsEnabled)
	require.NotNil(t, item.SubmittedAt)
	assert.Equal(t, submitted, *item.SubmittedAt)
	assert.Equal(t, model.StatusPass, item.Status)
	assert.False(t, item.ResultLocked)
}

func TestProjectResultLockedSuppressesOutcome(t *testing.T) {
	duration := 60
	result := model.StudentExamResult{
		ExamID:      7,
		Score:       12,
		Status:      model.StatusPass,
		SubmittedAt: time.Now(),
	}
	exam := &model.Exam{
		ID:             7,
		Title:          "Midterm",
		DurationMin:    &duration,
		PassPercentage: 40,
		TotalMarks:     20,
		IsEnabled:      true,
		ResultLocked:   true,
	}

	item := projectResult(result, exam)

	assert.Nil(t, item.Score)
	assert.Nil(t, item.TotalMarks)
	assert.Nil(t, item.PassPercentage)
	assert.Nil(t, item.DurationMin)
	assert.Nil(t, item.IsEnabled)
	assert.Nil(t, item.SubmittedAt)
	assert.Equal(t, model.StatusPending, item.Status)
	assert.True(t, item.ResultLocked)
	assert.Equal(t, "Midterm", item.Title)
}
