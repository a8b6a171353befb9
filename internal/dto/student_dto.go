package dto

import "time"

type StudentProfileDTO struct {
	StudentID     uint   `json:"studentId"`
	StudentName   string `json:"studentName"`
	InstituteName string `json:"instituteName"`
	TotalExams    int64  `json:"totalExams"`
	Submitted     int64  `json:"submitted"`
	Pending       int64  `json:"pending"`
	Closed        int64  `json:"closed"`
}

// StudentExamItem is one row of a student's visible-exam listing.
// Status is one of pending/submitted/closed/unknown.
type StudentExamItem struct {
	ExamID        uint       `json:"exam_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	TakenDate     *time.Time `json:"taken_date"`
	Status        string     `json:"status"`
}

type StudentExamListResponse struct {
	Exams []StudentExamItem `json:"exams"`
}

type SubmitExamRequest struct {
	StudentID uint            `json:"studentId" binding:"required"`
	ExamID    uint            `json:"examId" binding:"required"`
	Answers   map[uint]string `json:"answers" binding:"required"`
}

type SubmitExamResponse struct {
	Score  string `json:"score"` // "7.00/15"
	Status string `json:"status"`
}

// StudentResultItem is the lock-gated projection of one ledger row.
// Nullable fields are suppressed while the exam's result lock is on.
type StudentResultItem struct {
	ExamID         uint       `json:"examId"`
	Title          string     `json:"title"`
	ScheduledDate  *time.Time `json:"scheduledDate"`
	DurationMin    *int       `json:"durationMin"`
	PassPercentage *float64   `json:"passPercentage"`
	IsEnabled      *bool      `json:"isEnabled"`
	Score          *float64   `json:"score"`
	TotalMarks     *float64   `json:"totalMarks"`
	Status         string     `json:"status"`
	SubmittedAt    *time.Time `json:"submittedAt"`
	ResultLocked   bool       `json:"resultLocked"`
}

type StudentRef struct {
	StudentID     uint   `json:"studentId"`
	StudentName   string `json:"studentName"`
	InstituteName string `json:"instituteName"`
}

type StudentResultsResponse struct {
	Exams   []StudentResultItem `json:"exams"`
	Student StudentRef          `json:"student"`
}

type StudentUpdateRequest struct {
	ID        uint   `json:"id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Branch    string `json:"branch" binding:"required"`
	IsEnabled bool   `json:"is_enabled"`
}

// StudentReportRow is one exam in the admin-side full report for a
// student: every assignment, with the scored outcome attached where one
// exists (lock-gated like the student view).
type StudentReportRow struct {
	ExamID       uint     `json:"examId"`
	Title        string   `json:"title"`
	Status       string   `json:"status"`
	Score        *float64 `json:"score"`
	TotalMarks   *float64 `json:"totalMarks"`
	Result       string   `json:"result,omitempty"`
	ResultLocked bool     `json:"resultLocked"`
}

type StudentFullReportResponse struct {
	Student StudentRef         `json:"student"`
	Exams   []StudentReportRow `json:"exams"`
}

type StudentSearchItem struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	BranchID  uint   `json:"branch_id,omitempty"`
	Branch    string `json:"branch"`
	IsEnabled bool   `json:"is_enabled"`
}
