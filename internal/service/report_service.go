package service

import (
	"fmt"

	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/model"
	"github.com/eduexamine/eduexamine/internal/repository"
)

type ReportService interface {
	PagedResults(filter repository.ResultFilter) (*dto.PagedResultsResponse, error)
	TopPerformers(instituteID uint, examTitle, branch string, limit int) (*dto.TopPerformersResponse, error)
	StudentReport(instituteID uint, studentName, branch string) (*dto.StudentReportResponse, error)
	ExamSummary(instituteID uint, examTitle, branch string) (*dto.ExamSummaryReportDTO, error)
}

type reportService struct {
	examRepo       repository.ExamRepository
	resultRepo     repository.ResultRepository
	assignmentRepo repository.AssignmentRepository
}

func NewReportService(
	examRepo repository.ExamRepository,
	resultRepo repository.ResultRepository,
	assignmentRepo repository.AssignmentRepository,
) ReportService {
	return &reportService{
		examRepo:       examRepo,
		resultRepo:     resultRepo,
		assignmentRepo: assignmentRepo,
	}
}

func toResultRows(rows []repository.ResultJoinRow) []dto.ResultRow {
	out := make([]dto.ResultRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ResultRow{
			ExamID:      r.ExamID,
			ExamTitle:   r.ExamTitle,
			StudentName: r.StudentName,
			Branch:      r.Branch,
			Score:       r.Score,
			Status:      r.Status,
		})
	}
	return out
}

func (s *reportService) PagedResults(filter repository.ResultFilter) (*dto.PagedResultsResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	rows, total, err := s.resultRepo.FindPaged(filter)
	if err != nil {
		return nil, err
	}
	return &dto.PagedResultsResponse{Results: toResultRows(rows), TotalCount: total}, nil
}

func (s *reportService) TopPerformers(instituteID uint, examTitle, branch string, limit int) (*dto.TopPerformersResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.resultRepo.TopPerformers(instituteID, examTitle, branch, limit)
	if err != nil {
		return nil, err
	}
	return &dto.TopPerformersResponse{TopPerformers: toResultRows(rows)}, nil
}

func (s *reportService) StudentReport(instituteID uint, studentName, branch string) (*dto.StudentReportResponse, error) {
	rows, err := s.resultRepo.StudentReport(instituteID, studentName, branch)
	if err != nil {
		return nil, err
	}
	return &dto.StudentReportResponse{Report: toResultRows(rows)}, nil
}

// ExamSummary splits the exam's currently assigned students into
// attended and not-attended, with pass/fail tallies and the attended
// average score.
func (s *reportService) ExamSummary(instituteID uint, examTitle, branch string) (*dto.ExamSummaryReportDTO, error) {
	exam, err := s.examRepo.FindByTitle(examTitle)
	if err != nil {
		return nil, ErrNotFound
	}
	assigned, err := s.assignmentRepo.EnabledStudentsForExam(exam.ID, instituteID, branch)
	if err != nil {
		return nil, err
	}
	attended, err := s.resultRepo.AttendedForExam(exam.ID, instituteID, branch)
	if err != nil {
		return nil, err
	}

	out := &dto.ExamSummaryReportDTO{
		ExamTitle:       exam.Title,
		TotalEnabled:    len(assigned),
		AttendedList:    make([]dto.ExamParticipantDTO, 0, len(attended)),
		NotAttendedList: []dto.ExamParticipantDTO{},
	}

	attendedSet := make(map[uint]bool, len(attended))
	var scoreSum float64
	for _, row := range attended {
		attendedSet[row.ID] = true
		score := row.Score
		out.AttendedList = append(out.AttendedList, dto.ExamParticipantDTO{
			ID:     row.ID,
			Name:   row.Name,
			Branch: row.Branch,
			Score:  &score,
			Status: row.Status,
		})
		scoreSum += row.Score
		switch row.Status {
		case model.StatusPass:
			out.PassCount++
		case model.StatusFail:
			out.FailCount++
		}
	}
	for _, st := range assigned {
		if attendedSet[st.ID] {
			continue
		}
		out.NotAttendedList = append(out.NotAttendedList, dto.ExamParticipantDTO{
			ID:     st.ID,
			Name:   st.Name,
			Branch: st.Branch,
		})
	}

	out.AttendedCount = len(out.AttendedList)
	out.NotAttendedCount = len(out.NotAttendedList)
	if out.AttendedCount > 0 {
		out.AverageScore = fmt.Sprintf("%.2f", scoreSum/float64(out.AttendedCount))
	} else {
		out.AverageScore = "0.00"
	}
	return out, nil
}
