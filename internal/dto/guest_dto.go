package dto

import "time"

type GuestRegisterRequest struct {
	GuestName string `json:"guestName" binding:"required"`
}

type GuestRegisterResponse struct {
	GuestCode uint   `json:"guestCode"`
	GuestName string `json:"guestName"`
}

type GuestQuestionCreateDTO struct {
	Type          string   `json:"type" binding:"required"`
	Question      string   `json:"question" binding:"required"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
	Marks         float64  `json:"marks"`
}

type GuestExamCreateRequest struct {
	GuestID         uint                     `json:"guestId" binding:"required"`
	Title           string                   `json:"title" binding:"required"`
	Description     string                   `json:"description"`
	ScheduledDate   *time.Time               `json:"scheduled_date" binding:"required"`
	DurationMin     *int                     `json:"duration_min"`
	PassPercentage  *float64                 `json:"pass_percentage" binding:"required"`
	CreatedBy       string                   `json:"created_by" binding:"required"`
	EnableTimeLimit bool                     `json:"enableTimeLimit"`
	RestrictAccess  bool                     `json:"restrictAccess"`
	Downloadable    bool                     `json:"downloadable"`
	Questions       []GuestQuestionCreateDTO `json:"questions" binding:"required"`
}

type GuestExamCreateResponse struct {
	Message string `json:"message"`
	ExamID  uint   `json:"examId"`
}

type GuestExamSummaryDTO struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	ScheduledDate  *time.Time `json:"scheduled_date"`
	DurationMin    *int       `json:"duration_min"`
	PassPercentage float64    `json:"pass_percentage"`
	ExamLink       string     `json:"exam_link"`
	CreatedAt      time.Time  `json:"created_at"`
}

type GuestQuestionPublicDTO struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
}

type GuestExamDetailDTO struct {
	ID             uint                     `json:"id"`
	Title          string                   `json:"title"`
	Description    string                   `json:"description,omitempty"`
	ScheduledDate  *time.Time               `json:"scheduled_date"`
	DurationMin    *int                     `json:"duration_min"`
	PassPercentage float64                  `json:"pass_percentage"`
	Questions      []GuestQuestionPublicDTO `json:"questions"`
}

type GuestExamDetailResponse struct {
	Exam GuestExamDetailDTO `json:"exam"`
}

type GuestSubmitRequest struct {
	ExamID      uint              `json:"examId" binding:"required"`
	StudentName string            `json:"studentName"`
	Answers     map[string]string `json:"answers" binding:"required"`
}

type GuestSubmitResponse struct {
	TotalScore      float64 `json:"totalScore"`
	TotalMarks      float64 `json:"totalMarks"`
	ScorePercentage int     `json:"scorePercentage"`
}

type GuestAttemptRow struct {
	ID          string    `json:"id"`
	ExamTitle   string    `json:"exam_title"`
	StudentName string    `json:"student_name"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type GuestResultsResponse struct {
	Results []GuestAttemptRow `json:"results"`
}
