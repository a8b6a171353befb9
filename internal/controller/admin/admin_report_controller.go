package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eduexamine/eduexamine/internal/controller"
	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/repository"
	"github.com/eduexamine/eduexamine/internal/service"
)

// AdminReportController serves institute-side reporting and student
// administration.
type AdminReportController struct {
	reportService  service.ReportService
	studentService service.StudentService
}

func NewAdminReportController(reportService service.ReportService, studentService service.StudentService) *AdminReportController {
	return &AdminReportController{reportService: reportService, studentService: studentService}
}

// PagedResults godoc
// @Summary Paginated scored outcomes for an institute
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param instituteId query int true "Institute ID"
// @Param search query string false "Student, exam or branch substring"
// @Param branch query string false "Branch name filter"
// @Param examTitle query string false "Exam title filter"
// @Param page query int false "1-based page"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} dto.PagedResultsResponse
// @Router /results [get]
func (c *AdminReportController) PagedResults(ctx *gin.Context) {
	instituteID, ok := controller.UintQuery(ctx, "instituteId")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}

	resp, err := c.reportService.PagedResults(repository.ResultFilter{
		InstituteID: instituteID,
		Search:      ctx.Query("search"),
		Branch:      ctx.Query("branch"),
		ExamTitle:   ctx.Query("examTitle"),
		Limit:       limit,
		Offset:      (page - 1) * limit,
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// TopPerformers godoc
// @Summary Highest scores for one exam
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param instituteId query int true "Institute ID"
// @Param examTitle query string true "Exam title"
// @Param branch query string false "Branch name filter"
// @Param limit query int false "Row cap (default 10)"
// @Success 200 {object} dto.TopPerformersResponse
// @Router /reports/top-performers [get]
func (c *AdminReportController) TopPerformers(ctx *gin.Context) {
	instituteID, ok := controller.UintQuery(ctx, "instituteId")
	if !ok {
		return
	}
	examTitle := ctx.Query("examTitle")
	if examTitle == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "examTitle is required"})
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	resp, err := c.reportService.TopPerformers(instituteID, examTitle, ctx.Query("branch"), limit)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StudentReport godoc
// @Summary All scored outcomes for one student by name
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param instituteId query int true "Institute ID"
// @Param studentName query string true "Student name (case-insensitive)"
// @Param branch query string false "Branch name filter"
// @Success 200 {object} dto.StudentReportResponse
// @Router /reports/student [get]
func (c *AdminReportController) StudentReport(ctx *gin.Context) {
	instituteID, ok := controller.UintQuery(ctx, "instituteId")
	if !ok {
		return
	}
	studentName := ctx.Query("studentName")
	if studentName == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "studentName is required"})
		return
	}
	resp, err := c.reportService.StudentReport(instituteID, studentName, ctx.Query("branch"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ExamSummary godoc
// @Summary Attendance and pass/fail summary for one exam
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param instituteId query int true "Institute ID"
// @Param examTitle query string true "Exam title"
// @Param branch query string false "Branch name filter"
// @Success 200 {object} dto.ExamSummaryReportDTO
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /reports/exam-summary [get]
func (c *AdminReportController) ExamSummary(ctx *gin.Context) {
	instituteID, ok := controller.UintQuery(ctx, "instituteId")
	if !ok {
		return
	}
	examTitle := ctx.Query("examTitle")
	if examTitle == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "examTitle is required"})
		return
	}
	resp, err := c.reportService.ExamSummary(instituteID, examTitle, ctx.Query("branch"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StudentFullReport godoc
// @Summary Every assigned exam for one student with lock-gated outcomes
// @Description Includes exams not yet submitted; scores for result-locked exams are withheld.
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentFullReportResponse
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/report [get]
func (c *AdminReportController) StudentFullReport(ctx *gin.Context) {
	studentID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.studentService.FullReport(studentID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SearchStudents godoc
// @Summary Search an institute's students
// @Tags Admin - Students
// @Produce json
// @Security BearerAuth
// @Param instituteId query int true "Institute ID"
// @Param query query string false "Name or email substring"
// @Param branch query string false "Branch name filter"
// @Success 200 {array} dto.StudentSearchItem
// @Router /students [get]
func (c *AdminReportController) SearchStudents(ctx *gin.Context) {
	instituteID, ok := controller.UintQuery(ctx, "instituteId")
	if !ok {
		return
	}
	students, err := c.studentService.SearchStudents(instituteID, ctx.Query("query"), ctx.Query("branch"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// UpdateStudent godoc
// @Summary Update a student's profile, branch or enablement
// @Tags Admin - Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param student body dto.StudentUpdateRequest true "Updated student"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /students [put]
func (c *AdminReportController) UpdateStudent(ctx *gin.Context) {
	var req dto.StudentUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	if _, err := c.studentService.UpdateStudent(req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Student updated"})
}
