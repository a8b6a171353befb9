package dto

// ResultRow is one scored outcome joined with student/branch/exam names.
type ResultRow struct {
	ExamID      uint    `json:"examId,omitempty"`
	ExamTitle   string  `json:"examTitle"`
	StudentName string  `json:"studentName"`
	Branch      string  `json:"branch,omitempty"`
	Score       float64 `json:"score"`
	Status      string  `json:"status"`
}

type PagedResultsResponse struct {
	Results    []ResultRow `json:"results"`
	TotalCount int64       `json:"totalCount"`
}

type TopPerformersResponse struct {
	TopPerformers []ResultRow `json:"topPerformers"`
}

type StudentReportResponse struct {
	Report []ResultRow `json:"report"`
}

type ExamParticipantDTO struct {
	ID     uint     `json:"id"`
	Name   string   `json:"name"`
	Branch string   `json:"branch"`
	Score  *float64 `json:"score,omitempty"`
	Status string   `json:"status,omitempty"`
}

type ExamSummaryReportDTO struct {
	ExamTitle        string               `json:"examTitle"`
	TotalEnabled     int                  `json:"totalEnabled"`
	AttendedCount    int                  `json:"attendedCount"`
	NotAttendedCount int                  `json:"notAttendedCount"`
	PassCount        int                  `json:"passCount"`
	FailCount        int                  `json:"failCount"`
	AverageScore     string               `json:"averageScore"`
	AttendedList     []ExamParticipantDTO `json:"attendedList"`
	NotAttendedList  []ExamParticipantDTO `json:"notAttendedList"`
}
