package repository

import (
	"time"

	"github.com/eduexamine/eduexamine/internal/model"
	"gorm.io/gorm"
)

// ExamSearchParams narrows the institute-side exam search. Zero values
// mean "no filter".
type ExamSearchParams struct {
	InstituteID uint
	Search      string
	Branch      string
	CreatedOn   string // YYYY-MM-DD
	SortField   string // title | created_at
	SortOrder   string // asc | desc
}

type ExamRepository interface {
	FindByID(id uint) (*model.Exam, error)
	FindByIDWithQuestions(id uint) (*model.Exam, error)
	FindByTitle(title string) (*model.Exam, error)
	FindAllByInstitute(instituteID uint, scheduledOnly bool) ([]model.Exam, error)
	Search(params ExamSearchParams) ([]model.Exam, error)
	SetEnabled(id uint, enabled bool) (int64, error)
	SetResultLocked(id uint, locked bool) (int64, error)
	CountByInstitute(instituteID uint) (int64, error)
	CountScheduledToday(instituteID uint) (int64, error)
	CountEnabledAssigned(instituteID uint) (int64, error)
	FindRecentByInstitute(instituteID uint, limit int) ([]model.Exam, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.id ASC")
	}).First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByTitle(title string) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.Where("title = ?", title).First(&exam).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindAllByInstitute(instituteID uint, scheduledOnly bool) ([]model.Exam, error) {
	q := r.db.Where("created_by = ?", instituteID)
	if scheduledOnly {
		q = q.Where("scheduled_date > ?", time.Now())
	}
	var exams []model.Exam
	err := q.Find(&exams).Error
	return exams, err
}

func (r *examRepository) Search(params ExamSearchParams) ([]model.Exam, error) {
	q := r.db.Model(&model.Exam{}).Distinct("exams.*").
		Joins("LEFT JOIN exam_branch_assignments eb ON eb.exam_id = exams.id AND eb.is_enabled = true").
		Joins("LEFT JOIN branches b ON b.id = eb.branch_id").
		Where("exams.created_by = ?", params.InstituteID)

	if params.Search != "" {
		q = q.Where("LOWER(exams.title) LIKE LOWER(?)", "%"+params.Search+"%")
	}
	if params.Branch != "" {
		q = q.Where("LOWER(b.name) = LOWER(?)", params.Branch)
	}
	if params.CreatedOn != "" {
		q = q.Where("DATE(exams.created_at) = ?", params.CreatedOn)
	}

	sortField := "created_at"
	if params.SortField == "title" {
		sortField = "title"
	}
	order := "ASC"
	if params.SortOrder == "desc" {
		order = "DESC"
	}

	var exams []model.Exam
	err := q.Order("exams." + sortField + " " + order).Find(&exams).Error
	return exams, err
}

func (r *examRepository) SetEnabled(id uint, enabled bool) (int64, error) {
	res := r.db.Model(&model.Exam{}).Where("id = ?", id).Update("is_enabled", enabled)
	return res.RowsAffected, res.Error
}

func (r *examRepository) SetResultLocked(id uint, locked bool) (int64, error) {
	res := r.db.Model(&model.Exam{}).Where("id = ?", id).Update("result_locked", locked)
	return res.RowsAffected, res.Error
}

func (r *examRepository) CountByInstitute(instituteID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Exam{}).Where("created_by = ?", instituteID).Count(&count).Error
	return count, err
}

func (r *examRepository) CountScheduledToday(instituteID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Exam{}).
		Where("created_by = ? AND DATE(scheduled_date) = CURRENT_DATE", instituteID).
		Count(&count).Error
	return count, err
}

// CountEnabledAssigned counts enabled exams of the institute that have
// at least one student assignment.
func (r *examRepository) CountEnabledAssigned(instituteID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Exam{}).
		Distinct("exams.id").
		Joins("JOIN exam_student_assignments esa ON esa.exam_id = exams.id").
		Where("exams.created_by = ? AND exams.is_enabled = true", instituteID).
		Count(&count).Error
	return count, err
}

func (r *examRepository) FindRecentByInstitute(instituteID uint, limit int) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.Where("created_by = ?", instituteID).
		Order("created_at DESC").Limit(limit).Find(&exams).Error
	return exams, err
}
