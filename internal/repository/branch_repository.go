package repository

import (
	"github.com/eduexamine/eduexamine/internal/model"
	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(branch *model.Branch) error
	FindByInstitute(instituteID uint) ([]model.Branch, error)
	FindByNameForInstitute(name string, instituteID uint) (*model.Branch, error)
	ExistsByNameForInstitute(name string, instituteID uint) (bool, error)
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(branch *model.Branch) error {
	return r.db.Create(branch).Error
}

func (r *branchRepository) FindByInstitute(instituteID uint) ([]model.Branch, error) {
	var branches []model.Branch
	err := r.db.Where("institute_id = ?", instituteID).Order("name").Find(&branches).Error
	return branches, err
}

// FindByNameForInstitute matches case-insensitively; branch names are
// unique per institute regardless of case.
func (r *branchRepository) FindByNameForInstitute(name string, instituteID uint) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.Where("LOWER(name) = LOWER(?) AND institute_id = ?", name, instituteID).
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) ExistsByNameForInstitute(name string, instituteID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Branch{}).
		Where("LOWER(name) = LOWER(?) AND institute_id = ?", name, instituteID).
		Count(&count).Error
	return count > 0, err
}
