package repository

import (
	"github.com/eduexamine/eduexamine/internal/model"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(student *model.Student) error
	FindByID(id uint) (*model.Student, error)
	FindByIDWithInstitute(id uint) (*model.Student, error)
	FindByEmailWithRelations(email string) (*model.Student, error)
	ExistsByEmail(email string) (bool, error)
	Update(student *model.Student) error
	Search(instituteID uint, query, branch string) ([]model.Student, error)
	CountByInstitute(instituteID uint) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(student *model.Student) error {
	return r.db.Create(student).Error
}

func (r *studentRepository) FindByID(id uint) (*model.Student, error) {
	var student model.Student
	if err := r.db.First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByIDWithInstitute(id uint) (*model.Student, error) {
	var student model.Student
	if err := r.db.Preload("Institute").Preload("Branch").First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByEmailWithRelations(email string) (*model.Student, error) {
	var student model.Student
	err := r.db.Preload("Institute").Preload("Branch").
		Where("email = ?", email).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Student{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *studentRepository) Update(student *model.Student) error {
	return r.db.Save(student).Error
}

func (r *studentRepository) Search(instituteID uint, query, branch string) ([]model.Student, error) {
	q := r.db.Preload("Branch").Where("students.institute_id = ?", instituteID)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(students.name) LIKE LOWER(?) OR LOWER(students.email) LIKE LOWER(?)", like, like)
	}
	if branch != "" {
		q = q.Joins("JOIN branches ON branches.id = students.branch_id").
			Where("LOWER(branches.name) = LOWER(?)", branch)
	}
	var students []model.Student
	err := q.Order("students.name ASC").Find(&students).Error
	return students, err
}

func (r *studentRepository) CountByInstitute(instituteID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Student{}).Where("institute_id = ?", instituteID).Count(&count).Error
	return count, err
}
