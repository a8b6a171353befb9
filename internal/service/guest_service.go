package service

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eduexamine/eduexamine/config"
	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/model"
	"github.com/eduexamine/eduexamine/internal/repository"
)

type GuestService interface {
	Register(req dto.GuestRegisterRequest) (*dto.GuestRegisterResponse, error)
	CreateExam(req dto.GuestExamCreateRequest) (*dto.GuestExamCreateResponse, error)
	ListExams(guestID uint) ([]dto.GuestExamSummaryDTO, error)
	GetExam(examID uint) (*dto.GuestExamDetailResponse, error)
	Submit(req dto.GuestSubmitRequest) (*dto.GuestSubmitResponse, error)
	Results(guestID uint) (*dto.GuestResultsResponse, error)
}

type guestService struct {
	db        *gorm.DB
	cfg       *config.Config
	guestRepo repository.GuestRepository
}

func NewGuestService(db *gorm.DB, cfg *config.Config, guestRepo repository.GuestRepository) GuestService {
	return &guestService{db: db, cfg: cfg, guestRepo: guestRepo}
}

func (s *guestService) Register(req dto.GuestRegisterRequest) (*dto.GuestRegisterResponse, error) {
	user := &model.GuestUser{Username: req.GuestName}
	if err := s.guestRepo.CreateUser(user); err != nil {
		return nil, err
	}
	log.Info().Uint("guestID", user.ID).Msg("Guest registered")
	return &dto.GuestRegisterResponse{GuestCode: user.ID, GuestName: user.Username}, nil
}

// CreateExam persists a guest exam with its questions. A duration is
// only stored when the time limit is switched on; with the switch off
// the exam is untimed regardless of what duration was sent.
func (s *guestService) CreateExam(req dto.GuestExamCreateRequest) (*dto.GuestExamCreateResponse, error) {
	if _, err := s.guestRepo.FindUser(req.GuestID); err != nil {
		return nil, ErrNotFound
	}
	if len(req.Questions) == 0 {
		return nil, fmt.Errorf("%w: an exam needs at least one question", ErrValidation)
	}

	var duration *int
	if req.EnableTimeLimit {
		if req.DurationMin == nil || *req.DurationMin <= 0 {
			return nil, fmt.Errorf("%w: a positive duration is required when the time limit is enabled", ErrValidation)
		}
		duration = req.DurationMin
	}

	passPct := float64(DefaultPassPercentage)
	if req.PassPercentage != nil && *req.PassPercentage > 0 {
		passPct = *req.PassPercentage
	}

	exam := &model.GuestExam{
		GuestUserID:     req.GuestID,
		Title:           req.Title,
		Description:     req.Description,
		ScheduledDate:   req.ScheduledDate,
		DurationMin:     duration,
		PassPercentage:  passPct,
		EnableTimeLimit: req.EnableTimeLimit,
		RestrictAccess:  req.RestrictAccess,
		Downloadable:    req.Downloadable,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(exam).Error; err != nil {
			return err
		}
		exam.ExamLink = fmt.Sprintf("%s/guest/exam/%d", s.cfg.FrontendURL, exam.ID)
		if err := tx.Model(exam).Update("exam_link", exam.ExamLink).Error; err != nil {
			return err
		}

		questions := make([]model.GuestQuestion, 0, len(req.Questions))
		for _, q := range req.Questions {
			marks := q.Marks
			if marks <= 0 {
				marks = 1
			}
			var choices model.GuestChoices
			if len(q.Choices) > 0 {
				choices = model.GuestChoices(q.Choices)
			}
			questions = append(questions, model.GuestQuestion{
				ID:            uuid.NewString(),
				GuestExamID:   exam.ID,
				Kind:          q.Type,
				Text:          q.Question,
				Choices:       choices,
				CorrectAnswer: q.CorrectAnswer,
				Marks:         marks,
			})
		}
		return tx.Create(&questions).Error
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("guestID", req.GuestID).Uint("examID", exam.ID).Msg("Guest exam created")
	return &dto.GuestExamCreateResponse{Message: "Exam created successfully", ExamID: exam.ID}, nil
}

func (s *guestService) ListExams(guestID uint) ([]dto.GuestExamSummaryDTO, error) {
	if _, err := s.guestRepo.FindUser(guestID); err != nil {
		return nil, ErrNotFound
	}
	exams, err := s.guestRepo.FindExamsByGuest(guestID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GuestExamSummaryDTO, 0, len(exams))
	if err := copier.Copy(&out, &exams); err != nil {
		return nil, err
	}
	return out, nil
}

// GetExam is the taker-facing view: answer keys stay server-side.
func (s *guestService) GetExam(examID uint) (*dto.GuestExamDetailResponse, error) {
	exam, err := s.guestRepo.FindExamByIDWithQuestions(examID)
	if err != nil {
		return nil, ErrNotFound
	}
	detail := dto.GuestExamDetailDTO{
		ID:             exam.ID,
		Title:          exam.Title,
		Description:    exam.Description,
		ScheduledDate:  exam.ScheduledDate,
		DurationMin:    exam.DurationMin,
		PassPercentage: exam.PassPercentage,
		Questions:      make([]dto.GuestQuestionPublicDTO, 0, len(exam.Questions)),
	}
	for _, q := range exam.Questions {
		detail.Questions = append(detail.Questions, dto.GuestQuestionPublicDTO{
			ID:      q.ID,
			Type:    q.Kind,
			Text:    q.Text,
			Options: []string(q.Choices),
		})
	}
	return &dto.GuestExamDetailResponse{Exam: detail}, nil
}

// Submit scores a guest attempt and appends a fresh attempt row.
// Guest attempts are never deduplicated; the same person may retake
// freely.
func (s *guestService) Submit(req dto.GuestSubmitRequest) (*dto.GuestSubmitResponse, error) {
	exam, err := s.guestRepo.FindExamByID(req.ExamID)
	if err != nil {
		return nil, ErrNotFound
	}
	questions, err := s.guestRepo.FindQuestionsByExam(exam.ID)
	if err != nil {
		return nil, err
	}

	graded := make(map[string]GradedQuestion, len(questions))
	for _, q := range questions {
		graded[q.ID] = GradedQuestion{CorrectAnswer: q.CorrectAnswer, Marks: q.Marks}
	}
	outcome := Evaluate(graded, req.Answers, exam.PassPercentage)
	pct := int(math.Round(outcome.Percentage))

	name := req.StudentName
	if name == "" {
		name = "Anonymous"
	}
	attempt := &model.GuestExamAttempt{
		ID:          uuid.NewString(),
		GuestExamID: exam.ID,
		StudentName: name,
		Score:       pct,
		SubmittedAt: time.Now(),
	}
	if err := s.guestRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}
	log.Info().Uint("examID", exam.ID).Str("attemptID", attempt.ID).Int("score", pct).Msg("Guest attempt recorded")
	return &dto.GuestSubmitResponse{
		TotalScore:      outcome.Score,
		TotalMarks:      outcome.TotalMarks,
		ScorePercentage: pct,
	}, nil
}

func (s *guestService) Results(guestID uint) (*dto.GuestResultsResponse, error) {
	if _, err := s.guestRepo.FindUser(guestID); err != nil {
		return nil, ErrNotFound
	}
	attempts, err := s.guestRepo.FindAttemptsByGuest(guestID)
	if err != nil {
		return nil, err
	}
	examIDs := make([]uint, 0, len(attempts))
	for _, a := range attempts {
		examIDs = append(examIDs, a.GuestExamID)
	}
	titles, err := s.guestRepo.ExamTitles(examIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.GuestAttemptRow, 0, len(attempts))
	for _, a := range attempts {
		rows = append(rows, dto.GuestAttemptRow{
			ID:          a.ID,
			ExamTitle:   titles[a.GuestExamID],
			StudentName: a.StudentName,
			Score:       a.Score,
			SubmittedAt: a.SubmittedAt,
		})
	}
	return &dto.GuestResultsResponse{Results: rows}, nil
}
