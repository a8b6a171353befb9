package repository

import (
	"github.com/eduexamine/eduexamine/internal/model"
	"gorm.io/gorm"
)

// ResultJoinRow is one ledger row joined with student, branch and exam
// names for institute-side reporting.
type ResultJoinRow struct {
	ExamID      uint
	ExamTitle   string
	StudentName string
	Branch      string
	Score       float64
	Status      string
}

// ResultFilter narrows the paginated results listing.
type ResultFilter struct {
	InstituteID uint
	Search      string
	Branch      string
	ExamTitle   string
	Limit       int
	Offset      int
}

type ResultRepository interface {
	FindByStudent(studentID uint) ([]model.StudentExamResult, error)
	FindByStudentAndExam(studentID, examID uint) (*model.StudentExamResult, error)
	FindPaged(filter ResultFilter) ([]ResultJoinRow, int64, error)
	TopPerformers(instituteID uint, examTitle, branch string, limit int) ([]ResultJoinRow, error)
	StudentReport(instituteID uint, studentName, branch string) ([]ResultJoinRow, error)
	AttendedForExam(examID, instituteID uint, branch string) ([]AttendedRow, error)
}

// AttendedRow is one submitted outcome for an exam-summary report.
type AttendedRow struct {
	ID     uint
	Name   string
	Branch string
	Score  float64
	Status string
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) FindByStudent(studentID uint) ([]model.StudentExamResult, error) {
	var results []model.StudentExamResult
	err := r.db.Where("student_id = ?", studentID).Find(&results).Error
	return results, err
}

func (r *resultRepository) FindByStudentAndExam(studentID, examID uint) (*model.StudentExamResult, error) {
	var result model.StudentExamResult
	err := r.db.Where("student_id = ? AND exam_id = ?", studentID, examID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) joined() *gorm.DB {
	return r.db.Model(&model.StudentExamResult{}).
		Select(`student_exam_results.exam_id AS exam_id,
			exams.title AS exam_title,
			students.name AS student_name,
			branches.name AS branch,
			student_exam_results.score AS score,
			student_exam_results.status AS status`).
		Joins("JOIN students ON students.id = student_exam_results.student_id").
		Joins("JOIN exams ON exams.id = student_exam_results.exam_id").
		Joins("JOIN branches ON branches.id = students.branch_id")
}

func (r *resultRepository) FindPaged(filter ResultFilter) ([]ResultJoinRow, int64, error) {
	q := r.joined().Where("students.institute_id = ?", filter.InstituteID)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(`LOWER(students.name) LIKE LOWER(?) OR
			LOWER(exams.title) LIKE LOWER(?) OR
			LOWER(branches.name) LIKE LOWER(?)`, like, like, like)
	}
	if filter.Branch != "" {
		q = q.Where("branches.name = ?", filter.Branch)
	}
	if filter.ExamTitle != "" {
		q = q.Where("exams.title = ?", filter.ExamTitle)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ResultJoinRow
	err := q.Order("exams.id DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Scan(&rows).Error
	return rows, total, err
}

func (r *resultRepository) TopPerformers(instituteID uint, examTitle, branch string, limit int) ([]ResultJoinRow, error) {
	q := r.joined().
		Where("students.institute_id = ? AND exams.title = ?", instituteID, examTitle)
	if branch != "" {
		q = q.Where("branches.name = ?", branch)
	}
	var rows []ResultJoinRow
	err := q.Order("student_exam_results.score DESC").Limit(limit).Scan(&rows).Error
	return rows, err
}

func (r *resultRepository) StudentReport(instituteID uint, studentName, branch string) ([]ResultJoinRow, error) {
	q := r.joined().
		Where("students.institute_id = ? AND LOWER(students.name) = LOWER(?)", instituteID, studentName)
	if branch != "" {
		q = q.Where("branches.name = ?", branch)
	}
	var rows []ResultJoinRow
	err := q.Order("exams.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *resultRepository) AttendedForExam(examID, instituteID uint, branch string) ([]AttendedRow, error) {
	q := r.db.Model(&model.StudentExamResult{}).
		Select(`students.id AS id, students.name AS name, branches.name AS branch,
			student_exam_results.score AS score, student_exam_results.status AS status`).
		Joins("JOIN students ON students.id = student_exam_results.student_id").
		Joins("JOIN branches ON branches.id = students.branch_id").
		Where("student_exam_results.exam_id = ? AND students.institute_id = ?", examID, instituteID)
	if branch != "" {
		q = q.Where("branches.name = ?", branch)
	}
	var rows []AttendedRow
	err := q.Scan(&rows).Error
	return rows, err
}
