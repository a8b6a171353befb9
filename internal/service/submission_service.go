package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/model"
)

type SubmissionService interface {
	SubmitExam(req dto.SubmitExamRequest) (*dto.SubmitExamResponse, error)
}

type submissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) SubmissionService {
	return &submissionService{db: db}
}

// SubmitExam scores a submission and records the outcome. The whole
// flow runs in one transaction with the assignment row locked FOR
// UPDATE, so two concurrent submissions for the same (student, exam)
// serialize. Resubmission is last-write-wins: the upsert overwrites
// the ledger row and has_submitted stays true.
func (s *submissionService) SubmitExam(req dto.SubmitExamRequest) (*dto.SubmitExamResponse, error) {
	var resp *dto.SubmitExamResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var assignment model.ExamStudentAssignment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("exam_id = ? AND student_id = ?", req.ExamID, req.StudentID).
			First(&assignment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !assignment.IsEnabled {
			return ErrExamClosed
		}

		var exam model.Exam
		if err := tx.First(&exam, req.ExamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !exam.IsEnabled {
			return ErrExamClosed
		}
		if exam.ExpiresAt != nil && time.Now().After(*exam.ExpiresAt) {
			return ErrExamClosed
		}

		var questions []model.Question
		if err := tx.Where("exam_id = ?", req.ExamID).Find(&questions).Error; err != nil {
			return err
		}
		graded := make(map[uint]GradedQuestion, len(questions))
		for _, q := range questions {
			graded[q.ID] = GradedQuestion{CorrectAnswer: q.CorrectAnswer, Marks: q.Marks}
		}

		outcome := Evaluate(graded, req.Answers, exam.PassPercentage)
		now := time.Now()

		result := model.StudentExamResult{
			StudentID:   req.StudentID,
			ExamID:      req.ExamID,
			Score:       outcome.Score,
			Status:      outcome.Status,
			SubmittedAt: now,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "exam_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"score":        outcome.Score,
				"status":       outcome.Status,
				"submitted_at": now,
				"updated_at":   now,
			}),
		}).Create(&result).Error
		if err != nil {
			return err
		}

		err = tx.Model(&model.ExamStudentAssignment{}).
			Where("id = ?", assignment.ID).
			Updates(map[string]interface{}{"has_submitted": true, "updated_at": now}).Error
		if err != nil {
			return err
		}

		resp = &dto.SubmitExamResponse{
			Score:  fmt.Sprintf("%.2f/%g", outcome.Score, outcome.TotalMarks),
			Status: outcome.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("studentID", req.StudentID).Uint("examID", req.ExamID).
		Str("score", resp.Score).Str("status", resp.Status).Msg("Exam submitted")
	return resp, nil
}
