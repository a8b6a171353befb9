package student

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/eduexamine/eduexamine/internal/controller"
	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/service"
)

type StudentController struct {
	studentService    service.StudentService
	examService       service.ExamService
	submissionService service.SubmissionService
	exporter          service.ExamExporter
}

func NewStudentController(
	studentService service.StudentService,
	examService service.ExamService,
	submissionService service.SubmissionService,
	exporter service.ExamExporter,
) *StudentController {
	return &StudentController{
		studentService:    studentService,
		examService:       examService,
		submissionService: submissionService,
		exporter:          exporter,
	}
}

// Profile godoc
// @Summary Student profile with exam counters
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentProfileDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id}/profile [get]
func (c *StudentController) Profile(ctx *gin.Context) {
	studentID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	profile, err := c.studentService.Profile(studentID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// ListExams godoc
// @Summary Exams visible to a student with their statuses
// @Description Each exam reports pending, submitted, closed or unknown.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param status query string false "Filter by status (pending, submitted, closed)"
// @Success 200 {object} dto.StudentExamListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id}/exams [get]
func (c *StudentController) ListExams(ctx *gin.Context) {
	studentID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	exams, err := c.studentService.ListExams(studentID, ctx.Query("status"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// GetExam godoc
// @Summary Exam paper without the answer key
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.ExamPublicDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id} [get]
func (c *StudentController) GetExam(ctx *gin.Context) {
	examID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	exam, err := c.examService.GetExamForStudent(examID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

// SubmitExam godoc
// @Summary Submit answers for scoring
// @Description Scores atomically; resubmitting overwrites the previous outcome.
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submission body dto.SubmitExamRequest true "Answers keyed by question ID"
// @Success 200 {object} dto.SubmitExamResponse
// @Failure 403 {object} dto.ErrorResponse "Exam disabled, expired or assignment revoked"
// @Failure 404 {object} dto.ErrorResponse "No assignment for this student and exam"
// @Router /submit-exam [post]
func (c *StudentController) SubmitExam(ctx *gin.Context) {
	var req dto.SubmitExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.submissionService.SubmitExam(req)
	if err != nil {
		log.Warn().Err(err).Uint("studentID", req.StudentID).Uint("examID", req.ExamID).Msg("SubmitExam rejected")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Results godoc
// @Summary A student's scored outcomes
// @Description Rows for result-locked exams appear with the score withheld and status Pending.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentResultsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id}/results [get]
func (c *StudentController) Results(ctx *gin.Context) {
	studentID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	results, err := c.studentService.Results(studentID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// DownloadExam godoc
// @Summary Download a submitted exam paper as PDF
// @Description Available only after the student has submitted the exam.
// @Tags Student
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param examId path int true "Exam ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "No submission on record"
// @Router /students/{id}/exams/{examId}/download [get]
func (c *StudentController) DownloadExam(ctx *gin.Context) {
	studentID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	examID, ok := controller.UintParam(ctx, "examId")
	if !ok {
		return
	}
	data, filename, err := c.exporter.ExportSubmittedExam(studentID, examID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", data)
}
