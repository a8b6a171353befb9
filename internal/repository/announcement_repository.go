package repository

import (
	"github.com/eduexamine/eduexamine/internal/model"
	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	Create(announcement *model.Announcement) error
	FindByInstitute(instituteID uint) ([]model.Announcement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(announcement *model.Announcement) error {
	return r.db.Create(announcement).Error
}

func (r *announcementRepository) FindByInstitute(instituteID uint) ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.db.Where("institute_id = ?", instituteID).
		Order("created_at DESC").Find(&announcements).Error
	return announcements, err
}
