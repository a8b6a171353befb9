package model

import "time"

// Exam outcome statuses as stored in the ledger.
const (
	StatusPass    = "Pass"
	StatusFail    = "Fail"
	StatusPending = "Pending"
)

// StudentExamResult is the ledger of final scored outcomes: one
// upsertable row per (student, exam). Resubmission overwrites
// score/status/submitted_at; no history is retained.
type StudentExamResult struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	StudentID   uint      `json:"student_id" gorm:"not null;uniqueIndex:unique_student_exam_result"`
	ExamID      uint      `json:"exam_id" gorm:"not null;uniqueIndex:unique_student_exam_result"`
	Score       float64   `json:"score" gorm:"not null"`
	Status      string    `json:"status" gorm:"not null"`
	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
