package service

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/eduexamine/eduexamine/internal/repository"
)

// ExamExporter renders exams as downloadable documents: the submitted
// paper with its answer key for students, shared papers for guests.
type ExamExporter interface {
	ExportSubmittedExam(studentID, examID uint) ([]byte, string, error)
	ExportGuestExam(examID uint) ([]byte, string, error)
}

type pdfExporter struct {
	examRepo   repository.ExamRepository
	resultRepo repository.ResultRepository
	guestRepo  repository.GuestRepository
}

func NewExamExporter(
	examRepo repository.ExamRepository,
	resultRepo repository.ResultRepository,
	guestRepo repository.GuestRepository,
) ExamExporter {
	return &pdfExporter{examRepo: examRepo, resultRepo: resultRepo, guestRepo: guestRepo}
}

var choiceLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// ExportSubmittedExam renders the paper a student already submitted,
// with the answer key. No ledger row means nothing to download.
func (e *pdfExporter) ExportSubmittedExam(studentID, examID uint) ([]byte, string, error) {
	if _, err := e.resultRepo.FindByStudentAndExam(studentID, examID); err != nil {
		return nil, "", ErrNotFound
	}
	exam, err := e.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		return nil, "", ErrNotFound
	}

	pdf := newExamPDF(exam.Title, exam.Description, exam.DurationMin)
	for i, q := range exam.Questions {
		writeQuestion(pdf, i+1, q.Text, q.Options.Choices, q.CorrectAnswer, q.Marks)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("rendering exam pdf: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("exam-%d.pdf", exam.ID), nil
}

// ExportGuestExam renders a guest exam's question paper with the
// answer key. Only exams flagged downloadable by their creator can be
// exported.
func (e *pdfExporter) ExportGuestExam(examID uint) ([]byte, string, error) {
	exam, err := e.guestRepo.FindExamByIDWithQuestions(examID)
	if err != nil {
		return nil, "", ErrNotFound
	}
	if !exam.Downloadable {
		return nil, "", ErrNotDownloadable
	}

	pdf := newExamPDF(exam.Title, exam.Description, exam.DurationMin)
	for i, q := range exam.Questions {
		writeQuestion(pdf, i+1, q.Text, q.Choices, q.CorrectAnswer, q.Marks)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("rendering exam pdf: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("guest-exam-%d.pdf", exam.ID), nil
}

func newExamPDF(title, description string, durationMin *int) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, title, "", "C", false)
	if description != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, description, "", "C", false)
	}
	if durationMin != nil {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, fmt.Sprintf("Duration: %d minutes", *durationMin), "", "C", false)
	}
	pdf.Ln(4)
	return pdf
}

func writeQuestion(pdf *fpdf.Fpdf, number int, text string, choices []string, correctAnswer string, marks float64) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", number, text), "", "L", false)

	pdf.SetFont("Helvetica", "", 11)
	for j, choice := range choices {
		label := "?"
		if j < len(choiceLabels) {
			label = choiceLabels[j]
		}
		pdf.MultiCell(0, 6, fmt.Sprintf("   %s. %s", label, choice), "", "L", false)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Answer: %s   (%g marks)", correctAnswer, marks), "", "L", false)
	pdf.Ln(2)
}
