package model

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string         `json:"-" gorm:"not null"`
	InstituteID  uint           `json:"institute_id" gorm:"not null;index"`
	Institute    Institute      `json:"institute,omitempty" gorm:"foreignKey:InstituteID"`
	BranchID     uint           `json:"branch_id" gorm:"not null;index"`
	Branch       Branch         `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	IsEnabled    bool           `json:"is_enabled" gorm:"not null;default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
