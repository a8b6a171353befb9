package model

import "time"

type Announcement struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	InstituteID uint      `json:"institute_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	VisibleTo   string    `json:"visible_to" gorm:"not null;default:'all'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
