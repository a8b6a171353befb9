package repository

import (
	"github.com/eduexamine/eduexamine/internal/model"
	"gorm.io/gorm"
)

type GuestRepository interface {
	CreateUser(user *model.GuestUser) error
	FindUser(id uint) (*model.GuestUser, error)
	FindExamsByGuest(guestUserID uint) ([]model.GuestExam, error)
	FindExamByID(id uint) (*model.GuestExam, error)
	FindExamByIDWithQuestions(id uint) (*model.GuestExam, error)
	FindQuestionsByExam(examID uint) ([]model.GuestQuestion, error)
	CreateAttempt(attempt *model.GuestExamAttempt) error
	FindAttemptsByGuest(guestUserID uint) ([]model.GuestExamAttempt, error)
	ExamTitles(examIDs []uint) (map[uint]string, error)
}

type guestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) CreateUser(user *model.GuestUser) error {
	return r.db.Create(user).Error
}

func (r *guestRepository) FindUser(id uint) (*model.GuestUser, error) {
	var user model.GuestUser
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *guestRepository) FindExamsByGuest(guestUserID uint) ([]model.GuestExam, error) {
	var exams []model.GuestExam
	err := r.db.Where("guest_user_id = ?", guestUserID).
		Order("created_at DESC").Find(&exams).Error
	return exams, err
}

func (r *guestRepository) FindExamByID(id uint) (*model.GuestExam, error) {
	var exam model.GuestExam
	if err := r.db.First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *guestRepository) FindExamByIDWithQuestions(id uint) (*model.GuestExam, error) {
	var exam model.GuestExam
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("guest_questions.created_at ASC")
	}).First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *guestRepository) FindQuestionsByExam(examID uint) ([]model.GuestQuestion, error) {
	var questions []model.GuestQuestion
	err := r.db.Where("guest_exam_id = ?", examID).Find(&questions).Error
	return questions, err
}

func (r *guestRepository) CreateAttempt(attempt *model.GuestExamAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *guestRepository) FindAttemptsByGuest(guestUserID uint) ([]model.GuestExamAttempt, error) {
	var attempts []model.GuestExamAttempt
	err := r.db.
		Joins("JOIN guest_exams ON guest_exams.id = guest_exam_attempts.guest_exam_id").
		Where("guest_exams.guest_user_id = ?", guestUserID).
		Order("guest_exam_attempts.submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *guestRepository) ExamTitles(examIDs []uint) (map[uint]string, error) {
	if len(examIDs) == 0 {
		return map[uint]string{}, nil
	}
	var exams []model.GuestExam
	if err := r.db.Select("id, title").Where("id IN ?", examIDs).Find(&exams).Error; err != nil {
		return nil, err
	}
	titles := make(map[uint]string, len(exams))
	for _, e := range exams {
		titles[e.ID] = e.Title
	}
	return titles, nil
}
