package service

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/eduexamine/eduexamine/config"
	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/model"
	"github.com/eduexamine/eduexamine/internal/repository"
)

// These tests need a running Postgres; FOR UPDATE and ON CONFLICT are
// exercised for real. Set EDUEXAMINE_INTEGRATION=1 to run them.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("EDUEXAMINE_INTEGRATION") != "1" {
		t.Skip("set EDUEXAMINE_INTEGRATION=1 to run integration tests")
	}
	dsn := os.Getenv("EDUEXAMINE_TEST_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=eduexamine password=eduexamine dbname=eduexamine_test sslmode=disable"
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open test db")

	require.NoError(t, db.AutoMigrate(
		&model.Institute{},
		&model.Branch{},
		&model.Student{},
		&model.Exam{},
		&model.Question{},
		&model.ExamBranchAssignment{},
		&model.ExamStudentAssignment{},
		&model.StudentExamResult{},
		&model.GuestUser{},
		&model.GuestExam{},
		&model.GuestQuestion{},
		&model.GuestExamAttempt{},
	))
	return db
}

type seeded struct {
	institute model.Institute
	branch    model.Branch
	student   model.Student
	exam      model.Exam
}

func seedExamWithStudent(t *testing.T, db *gorm.DB) seeded {
	t.Helper()
	suffix := time.Now().UnixNano()

	institute := model.Institute{
		Name:         fmt.Sprintf("ITEST Institute %d", suffix),
		Email:        fmt.Sprintf("itest-inst-%d@example.test", suffix),
		PasswordHash: "x",
		Address:      "Test Street",
	}
	require.NoError(t, db.Create(&institute).Error)

	branch := model.Branch{Name: fmt.Sprintf("ITEST-Branch-%d", suffix), InstituteID: institute.ID}
	require.NoError(t, db.Create(&branch).Error)

	student := model.Student{
		Name:         "Integration Student",
		Email:        fmt.Sprintf("itest-student-%d@example.test", suffix),
		PasswordHash: "x",
		InstituteID:  institute.ID,
		BranchID:     branch.ID,
		IsEnabled:    true,
	}
	require.NoError(t, db.Create(&student).Error)

	exam := model.Exam{
		Title:          fmt.Sprintf("ITEST Exam %d", suffix),
		CreatedBy:      institute.ID,
		PassPercentage: 35,
		TotalMarks:     10,
		IsEnabled:      true,
	}
	require.NoError(t, db.Create(&exam).Error)

	questions := []model.Question{
		{ExamID: exam.ID, Text: "q1", Options: model.QuestionOptions{Kind: model.QuestionKindShort}, CorrectAnswer: "alpha", Marks: 5},
		{ExamID: exam.ID, Text: "q2", Options: model.QuestionOptions{Kind: model.QuestionKindShort}, CorrectAnswer: "beta", Marks: 5},
	}
	require.NoError(t, db.Create(&questions).Error)

	return seeded{institute: institute, branch: branch, student: student, exam: exam}
}

func TestSubmitExamScoresAndOverwritesOnResubmission(t *testing.T) {
	db := openTestDB(t)
	s := seedExamWithStudent(t, db)

	require.NoError(t, db.Create(&model.ExamStudentAssignment{
		ExamID:       s.exam.ID,
		StudentID:    s.student.ID,
		AssignedFrom: model.AssignedFromDirect,
		IsEnabled:    true,
	}).Error)

	var questions []model.Question
	require.NoError(t, db.Where("exam_id = ?", s.exam.ID).Order("id").Find(&questions).Error)

	svc := NewSubmissionService(db)
	resp, err := svc.SubmitExam(dto.SubmitExamRequest{
		StudentID: s.student.ID,
		ExamID:    s.exam.ID,
		Answers: map[uint]string{
			questions[0].ID: " ALPHA ",
			questions[1].ID: "wrong",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "5.00/10", resp.Score)
	assert.Equal(t, model.StatusPass, resp.Status)

	var result model.StudentExamResult
	require.NoError(t, db.Where("student_id = ? AND exam_id = ?", s.student.ID, s.exam.ID).First(&result).Error)
	assert.Equal(t, 5.0, result.Score)

	var assignment model.ExamStudentAssignment
	require.NoError(t, db.Where("student_id = ? AND exam_id = ?", s.student.ID, s.exam.ID).First(&assignment).Error)
	assert.True(t, assignment.HasSubmitted)

	// Resubmission is last-write-wins: the same ledger row is
	// overwritten with the new outcome.
	resp, err = svc.SubmitExam(dto.SubmitExamRequest{
		StudentID: s.student.ID,
		ExamID:    s.exam.ID,
		Answers: map[uint]string{
			questions[0].ID: "alpha",
			questions[1].ID: "beta",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "10.00/10", resp.Score)

	require.NoError(t, db.Where("student_id = ? AND exam_id = ?", s.student.ID, s.exam.ID).First(&result).Error)
	assert.Equal(t, 10.0, result.Score)
	assert.Equal(t, model.StatusPass, result.Status)

	require.NoError(t, db.Where("student_id = ? AND exam_id = ?", s.student.ID, s.exam.ID).First(&assignment).Error)
	assert.True(t, assignment.HasSubmitted)

	var count int64
	require.NoError(t, db.Model(&model.StudentExamResult{}).
		Where("student_id = ? AND exam_id = ?", s.student.ID, s.exam.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBranchAssignmentReconciliation(t *testing.T) {
	db := openTestDB(t)
	s := seedExamWithStudent(t, db)

	svc := NewAssignmentService(db,
		repository.NewExamRepository(db),
		repository.NewAssignmentRepository(db))

	// Assign the branch: the student gets a branch-provenance row.
	require.NoError(t, svc.AssignBranches(dto.AssignBranchesRequest{
		ExamID:    s.exam.ID,
		BranchIDs: []uint{s.branch.ID},
	}))

	var row model.ExamStudentAssignment
	require.NoError(t, db.Where("exam_id = ? AND student_id = ?", s.exam.ID, s.student.ID).First(&row).Error)
	assert.True(t, row.IsEnabled)
	assert.Equal(t, model.AssignedFromBranch, row.AssignedFrom)
	assert.Nil(t, row.DisabledAt)

	// Unassign: the row is disabled with a timestamp, not deleted.
	require.NoError(t, svc.AssignBranches(dto.AssignBranchesRequest{
		ExamID:    s.exam.ID,
		BranchIDs: []uint{},
	}))

	require.NoError(t, db.Where("exam_id = ? AND student_id = ?", s.exam.ID, s.student.ID).First(&row).Error)
	assert.False(t, row.IsEnabled)
	assert.NotNil(t, row.DisabledAt)

	// Reassign: the same row is re-enabled and the timestamp cleared.
	require.NoError(t, svc.AssignBranches(dto.AssignBranchesRequest{
		ExamID:    s.exam.ID,
		BranchIDs: []uint{s.branch.ID},
	}))

	require.NoError(t, db.Where("exam_id = ? AND student_id = ?", s.exam.ID, s.student.ID).First(&row).Error)
	assert.True(t, row.IsEnabled)
	assert.Nil(t, row.DisabledAt)

	var rowCount int64
	require.NoError(t, db.Model(&model.ExamStudentAssignment{}).
		Where("exam_id = ? AND student_id = ?", s.exam.ID, s.student.ID).Count(&rowCount).Error)
	assert.Equal(t, int64(1), rowCount)
}

func TestDirectAssignmentSurvivesBranchRemoval(t *testing.T) {
	db := openTestDB(t)
	s := seedExamWithStudent(t, db)

	svc := NewAssignmentService(db,
		repository.NewExamRepository(db),
		repository.NewAssignmentRepository(db))

	require.NoError(t, svc.AssignStudents(dto.AssignStudentsRequest{
		ExamID:     s.exam.ID,
		StudentIDs: []uint{s.student.ID},
	}))
	require.NoError(t, svc.AssignBranches(dto.AssignBranchesRequest{
		ExamID:    s.exam.ID,
		BranchIDs: []uint{s.branch.ID},
	}))
	require.NoError(t, svc.AssignBranches(dto.AssignBranchesRequest{
		ExamID:    s.exam.ID,
		BranchIDs: []uint{},
	}))

	// The direct row predates the branch fan-out, so branch removal
	// must leave it enabled.
	var row model.ExamStudentAssignment
	require.NoError(t, db.Where("exam_id = ? AND student_id = ?", s.exam.ID, s.student.ID).First(&row).Error)
	assert.Equal(t, model.AssignedFromDirect, row.AssignedFrom)
	assert.True(t, row.IsEnabled)
}

func TestGuestExamDurationRule(t *testing.T) {
	db := openTestDB(t)

	cfg := &config.Config{FrontendURL: "http://localhost:3000"}
	svc := NewGuestService(db, cfg, repository.NewGuestRepository(db))

	guest, err := svc.Register(dto.GuestRegisterRequest{GuestName: "ITEST Guest"})
	require.NoError(t, err)

	now := time.Now()
	pass := 50.0
	duration := 30

	baseReq := dto.GuestExamCreateRequest{
		GuestID:        guest.GuestCode,
		Title:          "ITEST Guest Exam",
		ScheduledDate:  &now,
		PassPercentage: &pass,
		CreatedBy:      "ITEST Guest",
		Questions: []dto.GuestQuestionCreateDTO{
			{Type: model.QuestionKindShort, Question: "q", CorrectAnswer: "a", Marks: 1},
		},
	}

	// Time limit off: the duration is discarded and stored as NULL.
	req := baseReq
	req.DurationMin = &duration
	req.EnableTimeLimit = false
	resp, err := svc.CreateExam(req)
	require.NoError(t, err)

	var exam model.GuestExam
	require.NoError(t, db.First(&exam, resp.ExamID).Error)
	assert.Nil(t, exam.DurationMin)
	assert.Contains(t, exam.ExamLink, fmt.Sprintf("/guest/exam/%d", exam.ID))

	// Time limit on without a duration: rejected.
	req = baseReq
	req.EnableTimeLimit = true
	req.DurationMin = nil
	_, err = svc.CreateExam(req)
	assert.ErrorIs(t, err, ErrValidation)

	// Time limit on with a duration: stored.
	req = baseReq
	req.EnableTimeLimit = true
	req.DurationMin = &duration
	resp, err = svc.CreateExam(req)
	require.NoError(t, err)
	require.NoError(t, db.First(&exam, resp.ExamID).Error)
	require.NotNil(t, exam.DurationMin)
	assert.Equal(t, 30, *exam.DurationMin)
}

func TestSubmittedExamExportRequiresLedgerRow(t *testing.T) {
	db := openTestDB(t)
	s := seedExamWithStudent(t, db)

	require.NoError(t, db.Create(&model.ExamStudentAssignment{
		ExamID:       s.exam.ID,
		StudentID:    s.student.ID,
		AssignedFrom: model.AssignedFromDirect,
		IsEnabled:    true,
	}).Error)

	exporter := NewExamExporter(
		repository.NewExamRepository(db),
		repository.NewResultRepository(db),
		repository.NewGuestRepository(db))

	// Nothing submitted yet, so there is nothing to download.
	_, _, err := exporter.ExportSubmittedExam(s.student.ID, s.exam.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var questions []model.Question
	require.NoError(t, db.Where("exam_id = ?", s.exam.ID).Order("id").Find(&questions).Error)
	_, err = NewSubmissionService(db).SubmitExam(dto.SubmitExamRequest{
		StudentID: s.student.ID,
		ExamID:    s.exam.ID,
		Answers:   map[uint]string{questions[0].ID: "alpha"},
	})
	require.NoError(t, err)

	data, filename, err := exporter.ExportSubmittedExam(s.student.ID, s.exam.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("exam-%d.pdf", s.exam.ID), filename)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
}

func TestExamCreateFetchRoundTrip(t *testing.T) {
	db := openTestDB(t)
	s := seedExamWithStudent(t, db)

	svc := NewExamService(db,
		repository.NewExamRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewBranchRepository(db),
		repository.NewStudentRepository(db),
		repository.NewAnnouncementRepository(db))

	exam, err := svc.CreateExam(dto.ExamCreateDTO{
		Title:     "ITEST Round Trip",
		CreatedBy: s.institute.ID,
		Questions: []dto.QuestionCreateDTO{
			{Text: "pick one", Type: model.QuestionKindChoice, Options: []string{"a", "b"}, CorrectAnswer: "a", Marks: 2},
			{Text: "spell it", Type: model.QuestionKindShort, CorrectAnswer: "beta", Marks: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, exam.TotalMarks)

	public, err := svc.GetExamForStudent(exam.ID)
	require.NoError(t, err)
	require.Len(t, public.Questions, 2)
	assert.Equal(t, []string{"a", "b"}, public.Questions[0].Options)

	authoring, err := svc.GetExamForAuthoring(exam.ID)
	require.NoError(t, err)
	require.Len(t, authoring.Questions, 2)
	assert.Equal(t, "a", authoring.Questions[0].CorrectAnswer)
	assert.Equal(t, "beta", authoring.Questions[1].CorrectAnswer)
	assert.Equal(t, 3.0, authoring.Questions[1].Marks)

	// The update path can set an expiry after creation and clear it
	// again.
	expiry := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	updateReq := dto.ExamUpdateDTO{
		ID:         exam.ID,
		Title:      "ITEST Round Trip",
		ExpiryDate: &expiry,
		Questions: []dto.QuestionCreateDTO{
			{Text: "spell it", Type: model.QuestionKindShort, CorrectAnswer: "beta", Marks: 3},
		},
	}
	_, err = svc.UpdateExam(updateReq)
	require.NoError(t, err)

	var stored model.Exam
	require.NoError(t, db.First(&stored, exam.ID).Error)
	require.NotNil(t, stored.ExpiresAt)
	assert.WithinDuration(t, expiry, *stored.ExpiresAt, time.Second)

	updateReq.ExpiryDate = nil
	_, err = svc.UpdateExam(updateReq)
	require.NoError(t, err)
	require.NoError(t, db.First(&stored, exam.ID).Error)
	assert.Nil(t, stored.ExpiresAt)
}

func TestBranchAssignmentVisibleToLateJoiningStudent(t *testing.T) {
	db := openTestDB(t)
	s := seedExamWithStudent(t, db)

	assignments := NewAssignmentService(db,
		repository.NewExamRepository(db),
		repository.NewAssignmentRepository(db))
	require.NoError(t, assignments.AssignBranches(dto.AssignBranchesRequest{
		ExamID:    s.exam.ID,
		BranchIDs: []uint{s.branch.ID},
	}))

	// A student who joins the branch after it was assigned has no
	// assignment row of their own but must still see the exam.
	late := model.Student{
		Name:         "Late Joiner",
		Email:        fmt.Sprintf("itest-late-%d@example.test", time.Now().UnixNano()),
		PasswordHash: "x",
		InstituteID:  s.institute.ID,
		BranchID:     s.branch.ID,
		IsEnabled:    true,
	}
	require.NoError(t, db.Create(&late).Error)

	students := NewStudentService(
		repository.NewStudentRepository(db),
		repository.NewExamRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewResultRepository(db),
		repository.NewBranchRepository(db))

	listing, err := students.ListExams(late.ID, "")
	require.NoError(t, err)

	var statuses []string
	for _, item := range listing.Exams {
		if item.ExamID == s.exam.ID {
			statuses = append(statuses, item.Status)
		}
	}
	require.Len(t, statuses, 1)
	assert.Equal(t, examStatusPending, statuses[0])
}
