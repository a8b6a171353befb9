package model

import (
	"time"

	"gorm.io/gorm"
)

type Exam struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description,omitempty"`
	CreatedBy      uint           `json:"created_by" gorm:"not null;index"` // owning institute
	ScheduledDate  *time.Time     `json:"scheduled_date,omitempty"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty"`
	DurationMin    *int           `json:"duration_min,omitempty"`
	PassPercentage float64        `json:"pass_percentage" gorm:"not null;default:35"`
	TotalMarks     float64        `json:"total_marks" gorm:"not null;default:0"` // derived sum of question marks
	IsEnabled      bool           `json:"is_enabled" gorm:"not null;default:true"`
	ResultLocked   bool           `json:"result_locked" gorm:"not null;default:false"`
	Questions      []Question     `json:"questions,omitempty" gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
