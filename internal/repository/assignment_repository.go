package repository

import (
	"github.com/eduexamine/eduexamine/internal/model"
	"gorm.io/gorm"
)

// AssignmentRepository is the read side of the assignment store. All
// reconciliation writes happen inside service-owned transactions.
type AssignmentRepository interface {
	BranchIDsForExam(examID uint, enabledOnly bool) ([]uint, error)
	StudentIDsForExam(examID uint, enabledOnly bool) ([]uint, error)
	FindByStudent(studentID uint) ([]model.ExamStudentAssignment, error)
	EnabledExamIDsForBranch(branchID uint) ([]uint, error)
	EnabledStudentsForExam(examID, instituteID uint, branch string) ([]AssignedStudent, error)
}

// AssignedStudent is one student currently assigned to an exam, with
// the branch name resolved.
type AssignedStudent struct {
	ID     uint
	Name   string
	Branch string
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) BranchIDsForExam(examID uint, enabledOnly bool) ([]uint, error) {
	q := r.db.Model(&model.ExamBranchAssignment{}).Where("exam_id = ?", examID)
	if enabledOnly {
		q = q.Where("is_enabled = true")
	}
	var ids []uint
	err := q.Pluck("branch_id", &ids).Error
	return ids, err
}

func (r *assignmentRepository) StudentIDsForExam(examID uint, enabledOnly bool) ([]uint, error) {
	q := r.db.Model(&model.ExamStudentAssignment{}).Where("exam_id = ?", examID)
	if enabledOnly {
		q = q.Where("is_enabled = true")
	}
	var ids []uint
	err := q.Pluck("student_id", &ids).Error
	return ids, err
}

func (r *assignmentRepository) FindByStudent(studentID uint) ([]model.ExamStudentAssignment, error) {
	var assignments []model.ExamStudentAssignment
	err := r.db.Where("student_id = ?", studentID).Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) EnabledExamIDsForBranch(branchID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.ExamBranchAssignment{}).
		Where("branch_id = ? AND is_enabled = true", branchID).
		Pluck("exam_id", &ids).Error
	return ids, err
}

func (r *assignmentRepository) EnabledStudentsForExam(examID, instituteID uint, branch string) ([]AssignedStudent, error) {
	q := r.db.Model(&model.ExamStudentAssignment{}).
		Select("students.id AS id, students.name AS name, branches.name AS branch").
		Joins("JOIN students ON students.id = exam_student_assignments.student_id").
		Joins("JOIN branches ON branches.id = students.branch_id").
		Where("exam_student_assignments.exam_id = ? AND students.institute_id = ?", examID, instituteID)
	if branch != "" {
		q = q.Where("branches.name = ?", branch)
	}
	var rows []AssignedStudent
	err := q.Scan(&rows).Error
	return rows, err
}
