package dto

import "time"

// QuestionCreateDTO carries one question of an exam create/update
// payload. Options is the ordered choice list for choice-kind
// questions.
type QuestionCreateDTO struct {
	Text          string   `json:"text" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
	Marks         float64  `json:"marks" binding:"required"`
}

type ExamCreateDTO struct {
	Title          string              `json:"title" binding:"required"`
	Description    string              `json:"description"`
	ScheduledDate  *time.Time          `json:"scheduled_date"`
	ExpiryDate     *time.Time          `json:"expiry_date"`
	DurationMin    *int                `json:"duration_min"`
	PassPercentage float64             `json:"pass_percentage"`
	CreatedBy      uint                `json:"created_by" binding:"required"`
	Questions      []QuestionCreateDTO `json:"questions" binding:"required"`
}

type ExamUpdateDTO struct {
	ID             uint                `json:"id" binding:"required"`
	Title          string              `json:"title" binding:"required"`
	Description    string              `json:"description"`
	ScheduledDate  *time.Time          `json:"scheduled_date"`
	ExpiryDate     *time.Time          `json:"expiry_date"`
	DurationMin    *int                `json:"duration_min"`
	PassPercentage float64             `json:"pass_percentage"`
	CreatedBy      uint                `json:"created_by"`
	Questions      []QuestionCreateDTO `json:"questions" binding:"required"`
}

// ExamSummaryDTO lists an institute's exams.
type ExamSummaryDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
	DurationMin *int      `json:"duration_min"`
	IsEnabled   bool      `json:"is_enabled"`
}

// QuestionPublicDTO is the student-facing question view: no correct
// answer, no marks.
type QuestionPublicDTO struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// QuestionAuthoringDTO is the institute-facing view with the answer key.
type QuestionAuthoringDTO struct {
	ID            uint     `json:"id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Marks         float64  `json:"marks"`
}

type ExamPublicDTO struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	DurationMin *int                `json:"duration_min"`
	CreatedBy   uint                `json:"created_by"`
	Questions   []QuestionPublicDTO `json:"questions"`
}

type ExamAuthoringDTO struct {
	ID             uint                   `json:"id"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description,omitempty"`
	ScheduledDate  *time.Time             `json:"scheduled_date"`
	DurationMin    *int                   `json:"duration_min"`
	PassPercentage float64                `json:"pass_percentage"`
	CreatedBy      uint                   `json:"created_by"`
	Questions      []QuestionAuthoringDTO `json:"questions"`
}

type ExamSearchResultDTO struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	CreatedAt      time.Time  `json:"created_at"`
	DurationMin    *int       `json:"duration_min"`
	PassPercentage float64    `json:"pass_percentage"`
	IsEnabled      bool       `json:"is_enabled"`
	ExpiresAt      *time.Time `json:"expires_at"`
	ResultLocked   bool       `json:"result_locked"`
}

type ToggleEnabledDTO struct {
	IsEnabled *bool `json:"is_enabled" binding:"required"`
}

type ToggleResultLockDTO struct {
	ResultLocked *bool `json:"result_locked" binding:"required"`
}

type BranchDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type BranchCreateDTO struct {
	Name        string `json:"name" binding:"required"`
	InstituteID uint   `json:"instituteId" binding:"required"`
}

type AnnouncementCreateDTO struct {
	Title       string `json:"title" binding:"required"`
	Message     string `json:"message" binding:"required"`
	VisibleTo   string `json:"visible_to"`
	InstituteID uint   `json:"instituteId" binding:"required"`
}

type RecentExamDTO struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardDTO struct {
	TotalStudents int64           `json:"totalStudents"`
	TotalExams    int64           `json:"totalExams"`
	ExamsEnabled  int64           `json:"examsEnabled"`
	ExamsToday    int64           `json:"examsToday"`
	RecentExams   []RecentExamDTO `json:"recentExams"`
}
