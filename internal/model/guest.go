package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// The guest universe is a simplified parallel of the institute flow:
// no branches, no assignments, attempts are append-only and identified
// only by a freeform display name.

type GuestUser struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `json:"username" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

type GuestExam struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	GuestUserID     uint            `json:"guest_user_id" gorm:"not null;index"`
	Title           string          `json:"title" gorm:"not null"`
	Description     string          `json:"description,omitempty"`
	ScheduledDate   *time.Time      `json:"scheduled_date,omitempty"`
	DurationMin     *int            `json:"duration_min,omitempty"` // NULL unless EnableTimeLimit
	PassPercentage  float64         `json:"pass_percentage" gorm:"not null"`
	EnableTimeLimit bool            `json:"enable_time_limit" gorm:"not null;default:false"`
	RestrictAccess  bool            `json:"restrict_access" gorm:"not null;default:false"`
	Downloadable    bool            `json:"downloadable" gorm:"not null;default:false"`
	ExamLink        string          `json:"exam_link,omitempty"`
	Questions       []GuestQuestion `json:"questions,omitempty" gorm:"foreignKey:GuestExamID"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// GuestChoices is a nullable ordered choice list; non-choice guest
// questions store NULL.
type GuestChoices []string

func (c GuestChoices) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *GuestChoices) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrMalformedOptions, value)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOptions, err)
	}
	*c = out
	return nil
}

type GuestQuestion struct {
	ID            string       `gorm:"primarykey;type:uuid" json:"id"`
	GuestExamID   uint         `json:"guest_exam_id" gorm:"not null;index"`
	Kind          string       `json:"type" gorm:"column:type;not null"`
	Text          string       `json:"text" gorm:"column:question_text;type:text;not null"`
	Choices       GuestChoices `json:"options,omitempty" gorm:"column:options;type:jsonb"`
	CorrectAnswer string       `json:"-" gorm:"not null"`
	Marks         float64      `json:"marks" gorm:"not null;default:1"`
	CreatedAt     time.Time    `json:"created_at"`
}

// GuestExamAttempt is append-only: every submission inserts a fresh row.
type GuestExamAttempt struct {
	ID          string    `gorm:"primarykey;type:uuid" json:"id"`
	GuestExamID uint      `json:"guest_exam_id" gorm:"not null;index"`
	StudentName string    `json:"student_name" gorm:"not null;default:'Anonymous'"`
	Score       int       `json:"score" gorm:"not null"` // rounded percentage
	SubmittedAt time.Time `json:"submitted_at"`
}
