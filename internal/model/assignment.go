package model

import "time"

// Assignment provenance tags. Branch reconciliation only ever touches
// rows it created itself; direct assignments are left alone.
const (
	AssignedFromBranch = "branch"
	AssignedFromDirect = "direct"
)

// ExamBranchAssignment says "this exam is offered to this branch". It
// drives the per-student fan-out below.
type ExamBranchAssignment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ExamID    uint      `json:"exam_id" gorm:"not null;uniqueIndex:unique_exam_branch"`
	BranchID  uint      `json:"branch_id" gorm:"not null;uniqueIndex:unique_exam_branch"`
	IsEnabled bool      `json:"is_enabled" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExamStudentAssignment is the single source of truth for whether a
// student can currently see or take an exam. Exactly one row per
// (exam, student); writers upsert, never duplicate.
type ExamStudentAssignment struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	ExamID       uint       `json:"exam_id" gorm:"not null;uniqueIndex:unique_exam_student"`
	StudentID    uint       `json:"student_id" gorm:"not null;uniqueIndex:unique_exam_student"`
	AssignedFrom string     `json:"assigned_from" gorm:"not null;default:'direct'"`
	IsEnabled    bool       `json:"is_enabled" gorm:"not null;default:true"`
	HasSubmitted bool       `json:"has_submitted" gorm:"not null;default:false"`
	AssignedAt   time.Time  `json:"assigned_at" gorm:"autoCreateTime"`
	DisabledAt   *time.Time `json:"disabled_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
