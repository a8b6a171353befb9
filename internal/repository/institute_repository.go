package repository

import (
	"github.com/eduexamine/eduexamine/internal/model"
	"gorm.io/gorm"
)

type InstituteRepository interface {
	Create(institute *model.Institute) error
	FindByID(id uint) (*model.Institute, error)
	FindByEmail(email string) (*model.Institute, error)
	ExistsByEmail(email string) (bool, error)
}

type instituteRepository struct {
	db *gorm.DB
}

func NewInstituteRepository(db *gorm.DB) InstituteRepository {
	return &instituteRepository{db: db}
}

func (r *instituteRepository) Create(institute *model.Institute) error {
	return r.db.Create(institute).Error
}

func (r *instituteRepository) FindByID(id uint) (*model.Institute, error) {
	var institute model.Institute
	if err := r.db.First(&institute, id).Error; err != nil {
		return nil, err
	}
	return &institute, nil
}

func (r *instituteRepository) FindByEmail(email string) (*model.Institute, error) {
	var institute model.Institute
	if err := r.db.Where("email = ?", email).First(&institute).Error; err != nil {
		return nil, err
	}
	return &institute, nil
}

func (r *instituteRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Institute{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
