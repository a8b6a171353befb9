package model

import (
	"time"

	"gorm.io/gorm"
)

type Institute struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Address      string         `json:"address,omitempty"`
	Branches     []Branch       `json:"branches,omitempty" gorm:"foreignKey:InstituteID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
