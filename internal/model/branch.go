package model

import (
	"time"

	"gorm.io/gorm"
)

// Branch is an institute's sub-grouping of students (a class section),
// used as the bulk-assignment unit for exams.
type Branch struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex:unique_branch_name_per_institute"`
	InstituteID uint           `json:"institute_id" gorm:"not null;index;uniqueIndex:unique_branch_name_per_institute"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
