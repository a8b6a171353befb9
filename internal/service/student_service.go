package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/model"
	"github.com/eduexamine/eduexamine/internal/repository"
)

// Exam statuses as seen by a student.
const (
	examStatusPending   = "pending"
	examStatusSubmitted = "submitted"
	examStatusClosed    = "closed"
	examStatusUnknown   = "unknown"
)

type StudentService interface {
	Profile(studentID uint) (*dto.StudentProfileDTO, error)
	ListExams(studentID uint, statusFilter string) (*dto.StudentExamListResponse, error)
	Results(studentID uint) (*dto.StudentResultsResponse, error)
	FullReport(studentID uint) (*dto.StudentFullReportResponse, error)
	UpdateStudent(req dto.StudentUpdateRequest) (*model.Student, error)
	SearchStudents(instituteID uint, query, branch string) ([]dto.StudentSearchItem, error)
}

type studentService struct {
	studentRepo    repository.StudentRepository
	examRepo       repository.ExamRepository
	assignmentRepo repository.AssignmentRepository
	resultRepo     repository.ResultRepository
	branchRepo     repository.BranchRepository
}

func NewStudentService(
	studentRepo repository.StudentRepository,
	examRepo repository.ExamRepository,
	assignmentRepo repository.AssignmentRepository,
	resultRepo repository.ResultRepository,
	branchRepo repository.BranchRepository,
) StudentService {
	return &studentService{
		studentRepo:    studentRepo,
		examRepo:       examRepo,
		assignmentRepo: assignmentRepo,
		resultRepo:     resultRepo,
		branchRepo:     branchRepo,
	}
}

// classifyExam resolves one assignment row to a student-facing status.
// Precedence: submitted beats everything, then open-for-taking, then
// closed. Closed requires the disabling to be on record (disabled_at
// set) or the exam to have expired; a dangling assignment whose exam
// is gone, or a disabled row with no disabled_at, reports unknown.
func classifyExam(assignment model.ExamStudentAssignment, exam *model.Exam, now time.Time) string {
	if exam == nil {
		return examStatusUnknown
	}
	if assignment.HasSubmitted {
		return examStatusSubmitted
	}
	expired := exam.ExpiresAt != nil && now.After(*exam.ExpiresAt)
	if assignment.IsEnabled && exam.IsEnabled && !expired {
		return examStatusPending
	}
	if expired || (!assignment.IsEnabled && assignment.DisabledAt != nil) {
		return examStatusClosed
	}
	return examStatusUnknown
}

// visibleExams resolves everything a student can currently see: their
// own assignment rows plus enabled branch-level assignments matching
// their branch, so students who join a branch after it was assigned
// still see the exam. Globally disabled exams are not visible at all.
func (s *studentService) visibleExams(studentID, branchID uint) ([]model.ExamStudentAssignment, map[uint]*model.Exam, error) {
	assignments, err := s.assignmentRepo.FindByStudent(studentID)
	if err != nil {
		return nil, nil, err
	}
	haveRow := make(map[uint]bool, len(assignments))
	for _, a := range assignments {
		haveRow[a.ExamID] = true
	}

	branchExamIDs, err := s.assignmentRepo.EnabledExamIDsForBranch(branchID)
	if err != nil {
		return nil, nil, err
	}
	for _, examID := range branchExamIDs {
		if haveRow[examID] {
			continue
		}
		haveRow[examID] = true
		assignments = append(assignments, model.ExamStudentAssignment{
			ExamID:       examID,
			StudentID:    studentID,
			AssignedFrom: model.AssignedFromBranch,
			IsEnabled:    true,
		})
	}

	exams := make(map[uint]*model.Exam, len(assignments))
	visible := assignments[:0]
	for _, a := range assignments {
		exam, ok := exams[a.ExamID]
		if !ok {
			exam, err = s.examRepo.FindByID(a.ExamID)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, nil, err
				}
				exam = nil
			}
			exams[a.ExamID] = exam
		}
		if exam != nil && !exam.IsEnabled {
			continue
		}
		visible = append(visible, a)
	}
	return visible, exams, nil
}

func (s *studentService) Profile(studentID uint) (*dto.StudentProfileDTO, error) {
	student, err := s.studentRepo.FindByIDWithInstitute(studentID)
	if err != nil {
		return nil, ErrNotFound
	}
	assignments, exams, err := s.visibleExams(studentID, student.BranchID)
	if err != nil {
		return nil, err
	}

	out := &dto.StudentProfileDTO{
		StudentID:     student.ID,
		StudentName:   student.Name,
		InstituteName: student.Institute.Name,
	}
	now := time.Now()
	for _, a := range assignments {
		out.TotalExams++
		switch classifyExam(a, exams[a.ExamID], now) {
		case examStatusSubmitted:
			out.Submitted++
		case examStatusPending:
			out.Pending++
		case examStatusClosed:
			out.Closed++
		}
	}
	return out, nil
}

// ListExams reports every exam visible to the student with its status.
// A non-empty statusFilter narrows the listing to that status.
func (s *studentService) ListExams(studentID uint, statusFilter string) (*dto.StudentExamListResponse, error) {
	student, err := s.studentRepo.FindByID(studentID)
	if err != nil {
		return nil, ErrNotFound
	}
	assignments, exams, err := s.visibleExams(studentID, student.BranchID)
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}
	submittedAt := make(map[uint]time.Time, len(results))
	for _, r := range results {
		submittedAt[r.ExamID] = r.SubmittedAt
	}

	now := time.Now()
	items := make([]dto.StudentExamItem, 0, len(assignments))
	for _, a := range assignments {
		exam := exams[a.ExamID]
		status := classifyExam(a, exam, now)
		if statusFilter != "" && status != statusFilter {
			continue
		}
		item := dto.StudentExamItem{
			ExamID: a.ExamID,
			Status: status,
		}
		if exam != nil {
			item.Title = exam.Title
			item.Description = exam.Description
			item.ScheduledDate = exam.ScheduledDate
		}
		if taken, ok := submittedAt[a.ExamID]; ok {
			t := taken
			item.TakenDate = &t
		}
		items = append(items, item)
	}
	return &dto.StudentExamListResponse{Exams: items}, nil
}

// Results returns the ledger rows visible to the student. While an
// exam's result lock is on, the row still appears but its score,
// total, duration, pass mark and enablement are suppressed and the
// status reads Pending.
func (s *studentService) Results(studentID uint) (*dto.StudentResultsResponse, error) {
	student, err := s.studentRepo.FindByIDWithInstitute(studentID)
	if err != nil {
		return nil, ErrNotFound
	}
	results, err := s.resultRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StudentResultItem, 0, len(results))
	for _, r := range results {
		exam, err := s.examRepo.FindByID(r.ExamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, projectResult(r, exam))
	}
	return &dto.StudentResultsResponse{
		Exams: items,
		Student: dto.StudentRef{
			StudentID:     student.ID,
			StudentName:   student.Name,
			InstituteName: student.Institute.Name,
		},
	}, nil
}

func projectResult(r model.StudentExamResult, exam *model.Exam) dto.StudentResultItem {
	item := dto.StudentResultItem{
		ExamID:        r.ExamID,
		Title:         exam.Title,
		ScheduledDate: exam.ScheduledDate,
		ResultLocked:  exam.ResultLocked,
	}
	if exam.ResultLocked {
		item.Status = model.StatusPending
		return item
	}
	score := r.Score
	total := exam.TotalMarks
	passPct := exam.PassPercentage
	enabled := exam.IsEnabled
	submitted := r.SubmittedAt
	item.DurationMin = exam.DurationMin
	item.PassPercentage = &passPct
	item.IsEnabled = &enabled
	item.Score = &score
	item.TotalMarks = &total
	item.Status = r.Status
	item.SubmittedAt = &submitted
	return item
}

// FullReport is the admin-side view of every exam assigned to one
// student. Submitted exams carry their ledger outcome, gated by the
// exam's result lock exactly like the student view.
func (s *studentService) FullReport(studentID uint) (*dto.StudentFullReportResponse, error) {
	student, err := s.studentRepo.FindByIDWithInstitute(studentID)
	if err != nil {
		return nil, ErrNotFound
	}
	assignments, exams, err := s.visibleExams(studentID, student.BranchID)
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}
	resultByExam := make(map[uint]model.StudentExamResult, len(results))
	for _, r := range results {
		resultByExam[r.ExamID] = r
	}

	now := time.Now()
	rows := make([]dto.StudentReportRow, 0, len(assignments))
	for _, a := range assignments {
		exam := exams[a.ExamID]
		row := dto.StudentReportRow{
			ExamID: a.ExamID,
			Status: classifyExam(a, exam, now),
		}
		if exam != nil {
			row.Title = exam.Title
			row.ResultLocked = exam.ResultLocked
		}
		if r, ok := resultByExam[a.ExamID]; ok && exam != nil {
			if exam.ResultLocked {
				row.Result = model.StatusPending
			} else {
				score := r.Score
				total := exam.TotalMarks
				row.Score = &score
				row.TotalMarks = &total
				row.Result = r.Status
			}
		}
		rows = append(rows, row)
	}

	return &dto.StudentFullReportResponse{
		Student: dto.StudentRef{
			StudentID:     student.ID,
			StudentName:   student.Name,
			InstituteName: student.Institute.Name,
		},
		Exams: rows,
	}, nil
}

func (s *studentService) UpdateStudent(req dto.StudentUpdateRequest) (*model.Student, error) {
	student, err := s.studentRepo.FindByID(req.ID)
	if err != nil {
		return nil, ErrNotFound
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != student.Email {
		taken, err := s.studentRepo.ExistsByEmail(email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}
	branch, err := s.branchRepo.FindByNameForInstitute(req.Branch, student.InstituteID)
	if err != nil {
		return nil, ErrNotFound
	}

	student.Name = req.Name
	student.Email = email
	student.BranchID = branch.ID
	student.IsEnabled = req.IsEnabled
	if err := s.studentRepo.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentService) SearchStudents(instituteID uint, query, branch string) ([]dto.StudentSearchItem, error) {
	students, err := s.studentRepo.Search(instituteID, query, branch)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StudentSearchItem, 0, len(students))
	for _, st := range students {
		out = append(out, dto.StudentSearchItem{
			ID:        st.ID,
			Name:      st.Name,
			Email:     st.Email,
			BranchID:  st.BranchID,
			Branch:    st.Branch.Name,
			IsEnabled: st.IsEnabled,
		})
	}
	return out, nil
}
