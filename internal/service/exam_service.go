package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/model"
	"github.com/eduexamine/eduexamine/internal/repository"
)

type ExamService interface {
	CreateExam(req dto.ExamCreateDTO) (*model.Exam, error)
	UpdateExam(req dto.ExamUpdateDTO) (*model.Exam, error)
	GetExamForStudent(examID uint) (*dto.ExamPublicDTO, error)
	GetExamForAuthoring(examID uint) (*dto.ExamAuthoringDTO, error)
	ListExams(instituteID uint, scheduledOnly bool) ([]dto.ExamSummaryDTO, error)
	SearchExams(params repository.ExamSearchParams) ([]dto.ExamSearchResultDTO, error)
	SetEnabled(examID uint, enabled bool) error
	SetResultLocked(examID uint, locked bool) error
	CreateBranch(req dto.BranchCreateDTO) (*model.Branch, error)
	ListBranches(instituteID uint) ([]dto.BranchDTO, error)
	CreateAnnouncement(req dto.AnnouncementCreateDTO) (*model.Announcement, error)
	ListAnnouncements(instituteID uint) ([]model.Announcement, error)
	Dashboard(instituteID uint) (*dto.DashboardDTO, error)
}

type examService struct {
	db               *gorm.DB
	examRepo         repository.ExamRepository
	questionRepo     repository.QuestionRepository
	branchRepo       repository.BranchRepository
	studentRepo      repository.StudentRepository
	announcementRepo repository.AnnouncementRepository
}

func NewExamService(
	db *gorm.DB,
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	branchRepo repository.BranchRepository,
	studentRepo repository.StudentRepository,
	announcementRepo repository.AnnouncementRepository,
) ExamService {
	return &examService{
		db:               db,
		examRepo:         examRepo,
		questionRepo:     questionRepo,
		branchRepo:       branchRepo,
		studentRepo:      studentRepo,
		announcementRepo: announcementRepo,
	}
}

// buildQuestions validates the incoming question payload and derives
// the exam's total marks as the sum of question marks.
func buildQuestions(items []dto.QuestionCreateDTO) ([]model.Question, float64, error) {
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("%w: an exam needs at least one question", ErrValidation)
	}
	questions := make([]model.Question, 0, len(items))
	var total float64
	for i, q := range items {
		opts := model.QuestionOptions{Kind: q.Type, Choices: q.Options}
		if err := opts.Validate(); err != nil {
			return nil, 0, fmt.Errorf("%w: question %d: %v", ErrValidation, i+1, err)
		}
		if q.Marks <= 0 {
			return nil, 0, fmt.Errorf("%w: question %d: marks must be positive", ErrValidation, i+1)
		}
		questions = append(questions, model.Question{
			Text:          q.Text,
			Options:       opts,
			CorrectAnswer: q.CorrectAnswer,
			Marks:         q.Marks,
		})
		total += q.Marks
	}
	return questions, total, nil
}

func (s *examService) CreateExam(req dto.ExamCreateDTO) (*model.Exam, error) {
	questions, total, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	passPct := req.PassPercentage
	if passPct <= 0 {
		passPct = DefaultPassPercentage
	}
	exam := &model.Exam{
		Title:          req.Title,
		Description:    req.Description,
		CreatedBy:      req.CreatedBy,
		ScheduledDate:  req.ScheduledDate,
		ExpiresAt:      req.ExpiryDate,
		DurationMin:    req.DurationMin,
		PassPercentage: passPct,
		TotalMarks:     total,
		IsEnabled:      true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(exam).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ExamID = exam.ID
		}
		return tx.Create(&questions).Error
	})
	if err != nil {
		return nil, err
	}
	exam.Questions = questions
	log.Info().Uint("examID", exam.ID).Int("questions", len(questions)).Msg("Exam created")
	return exam, nil
}

// UpdateExam replaces the exam's metadata and its full question set in
// one transaction, recomputing total marks from the new set.
func (s *examService) UpdateExam(req dto.ExamUpdateDTO) (*model.Exam, error) {
	exam, err := s.examRepo.FindByID(req.ID)
	if err != nil {
		return nil, ErrNotFound
	}
	questions, total, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	passPct := req.PassPercentage
	if passPct <= 0 {
		passPct = exam.PassPercentage
	}
	exam.Title = req.Title
	exam.Description = req.Description
	exam.ScheduledDate = req.ScheduledDate
	exam.ExpiresAt = req.ExpiryDate
	exam.DurationMin = req.DurationMin
	exam.PassPercentage = passPct
	exam.TotalMarks = total

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(exam).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("exam_id = ?", exam.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ExamID = exam.ID
		}
		return tx.Create(&questions).Error
	})
	if err != nil {
		return nil, err
	}
	exam.Questions = questions
	log.Info().Uint("examID", exam.ID).Msg("Exam updated")
	return exam, nil
}

// GetExamForStudent hides the answer key and per-question marks.
func (s *examService) GetExamForStudent(examID uint) (*dto.ExamPublicDTO, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		return nil, ErrNotFound
	}
	out := &dto.ExamPublicDTO{
		ID:          exam.ID,
		Title:       exam.Title,
		Description: exam.Description,
		CreatedAt:   exam.CreatedAt,
		DurationMin: exam.DurationMin,
		CreatedBy:   exam.CreatedBy,
		Questions:   make([]dto.QuestionPublicDTO, 0, len(exam.Questions)),
	}
	for _, q := range exam.Questions {
		out.Questions = append(out.Questions, dto.QuestionPublicDTO{
			ID:      q.ID,
			Text:    q.Text,
			Type:    q.Options.Kind,
			Options: q.Options.Choices,
		})
	}
	return out, nil
}

func (s *examService) GetExamForAuthoring(examID uint) (*dto.ExamAuthoringDTO, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		return nil, ErrNotFound
	}
	out := &dto.ExamAuthoringDTO{
		ID:             exam.ID,
		Title:          exam.Title,
		Description:    exam.Description,
		ScheduledDate:  exam.ScheduledDate,
		DurationMin:    exam.DurationMin,
		PassPercentage: exam.PassPercentage,
		CreatedBy:      exam.CreatedBy,
		Questions:      make([]dto.QuestionAuthoringDTO, 0, len(exam.Questions)),
	}
	for _, q := range exam.Questions {
		out.Questions = append(out.Questions, dto.QuestionAuthoringDTO{
			ID:            q.ID,
			Text:          q.Text,
			Type:          q.Options.Kind,
			Options:       q.Options.Choices,
			CorrectAnswer: q.CorrectAnswer,
			Marks:         q.Marks,
		})
	}
	return out, nil
}

func (s *examService) ListExams(instituteID uint, scheduledOnly bool) ([]dto.ExamSummaryDTO, error) {
	exams, err := s.examRepo.FindAllByInstitute(instituteID, scheduledOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExamSummaryDTO, 0, len(exams))
	for _, e := range exams {
		out = append(out, dto.ExamSummaryDTO{
			ID:          e.ID,
			Title:       e.Title,
			CreatedAt:   e.CreatedAt,
			DurationMin: e.DurationMin,
			IsEnabled:   e.IsEnabled,
		})
	}
	return out, nil
}

func (s *examService) SearchExams(params repository.ExamSearchParams) ([]dto.ExamSearchResultDTO, error) {
	exams, err := s.examRepo.Search(params)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExamSearchResultDTO, 0, len(exams))
	if err := copier.Copy(&out, &exams); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *examService) SetEnabled(examID uint, enabled bool) error {
	affected, err := s.examRepo.SetEnabled(examID, enabled)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	log.Info().Uint("examID", examID).Bool("enabled", enabled).Msg("Exam enablement toggled")
	return nil
}

func (s *examService) SetResultLocked(examID uint, locked bool) error {
	affected, err := s.examRepo.SetResultLocked(examID, locked)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	log.Info().Uint("examID", examID).Bool("locked", locked).Msg("Exam result lock toggled")
	return nil
}

// CreateBranch enforces case-insensitive uniqueness per institute.
func (s *examService) CreateBranch(req dto.BranchCreateDTO) (*model.Branch, error) {
	exists, err := s.branchRepo.ExistsByNameForInstitute(req.Name, req.InstituteID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateBranch
	}
	branch := &model.Branch{
		Name:        req.Name,
		InstituteID: req.InstituteID,
	}
	if err := s.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *examService) ListBranches(instituteID uint) ([]dto.BranchDTO, error) {
	branches, err := s.branchRepo.FindByInstitute(instituteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchDTO, 0, len(branches))
	for _, b := range branches {
		out = append(out, dto.BranchDTO{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt})
	}
	return out, nil
}

func (s *examService) CreateAnnouncement(req dto.AnnouncementCreateDTO) (*model.Announcement, error) {
	visibleTo := req.VisibleTo
	if visibleTo == "" {
		visibleTo = "all"
	}
	announcement := &model.Announcement{
		InstituteID: req.InstituteID,
		Title:       req.Title,
		Content:     req.Message,
		VisibleTo:   visibleTo,
	}
	if err := s.announcementRepo.Create(announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

func (s *examService) ListAnnouncements(instituteID uint) ([]model.Announcement, error) {
	return s.announcementRepo.FindByInstitute(instituteID)
}

func (s *examService) Dashboard(instituteID uint) (*dto.DashboardDTO, error) {
	totalStudents, err := s.studentRepo.CountByInstitute(instituteID)
	if err != nil {
		return nil, err
	}
	totalExams, err := s.examRepo.CountByInstitute(instituteID)
	if err != nil {
		return nil, err
	}
	enabled, err := s.examRepo.CountEnabledAssigned(instituteID)
	if err != nil {
		return nil, err
	}
	today, err := s.examRepo.CountScheduledToday(instituteID)
	if err != nil {
		return nil, err
	}
	recent, err := s.examRepo.FindRecentByInstitute(instituteID, 3)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardDTO{
		TotalStudents: totalStudents,
		TotalExams:    totalExams,
		ExamsEnabled:  enabled,
		ExamsToday:    today,
		RecentExams:   make([]dto.RecentExamDTO, 0, len(recent)),
	}
	for _, e := range recent {
		out.RecentExams = append(out.RecentExams, dto.RecentExamDTO{ID: e.ID, Title: e.Title, CreatedAt: e.CreatedAt})
	}
	return out, nil
}
