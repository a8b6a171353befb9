package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/eduexamine/eduexamine/internal/controller"
	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/repository"
	"github.com/eduexamine/eduexamine/internal/service"
)

// AdminExamController serves the institute-side authoring surface:
// exams, branches, announcements and the dashboard.
type AdminExamController struct {
	examService       service.ExamService
	assignmentService service.AssignmentService
}

func NewAdminExamController(examService service.ExamService, assignmentService service.AssignmentService) *AdminExamController {
	return &AdminExamController{examService: examService, assignmentService: assignmentService}
}

// CreateExam godoc
// @Summary Create an exam with its questions
// @Description Total marks are derived from the question marks; the exam starts enabled.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam body dto.ExamCreateDTO true "Exam with questions"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /upload-exam [post]
func (c *AdminExamController) CreateExam(ctx *gin.Context) {
	var req dto.ExamCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	exam, err := c.examService.CreateExam(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateExam failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Exam created successfully", "examId": exam.ID})
}

// UpdateExam godoc
// @Summary Replace an exam's metadata and question set
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam body dto.ExamUpdateDTO true "Updated exam"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /update-exam [put]
func (c *AdminExamController) UpdateExam(ctx *gin.Context) {
	var req dto.ExamUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	if _, err := c.examService.UpdateExam(req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Exam updated successfully"})
}

// GetExamForAuthoring godoc
// @Summary Fetch an exam with its answer key
// @Tags Admin - Exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.ExamAuthoringDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id}/edit [get]
func (c *AdminExamController) GetExamForAuthoring(ctx *gin.Context) {
	examID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	exam, err := c.examService.GetExamForAuthoring(examID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

// ListExams godoc
// @Summary List an institute's exams
// @Tags Admin - Exams
// @Produce json
// @Security BearerAuth
// @Param instituteId query int true "Institute ID"
// @Param scheduledOnly query bool false "Only exams with a scheduled date"
// @Success 200 {array} dto.ExamSummaryDTO
// @Router /exams [get]
func (c *AdminExamController) ListExams(ctx *gin.Context) {
	instituteID, ok := controller.UintQuery(ctx, "instituteId")
	if !ok {
		return
	}
	scheduledOnly := ctx.Query("scheduledOnly") == "true"
	exams, err := c.examService.ListExams(instituteID, scheduledOnly)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// SearchExams godoc
// @Summary Search and sort an institute's exams
// @Tags Admin - Exams
// @Produce json
// @Security BearerAuth
// @Param instituteId query int true "Institute ID"
// @Param search query string false "Title substring"
// @Param branch query string false "Branch name filter"
// @Param createdOn query string false "Creation date (YYYY-MM-DD)"
// @Param sortField query string false "title or created_at"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {array} dto.ExamSearchResultDTO
// @Router /exams/search [get]
func (c *AdminExamController) SearchExams(ctx *gin.Context) {
	instituteID, ok := controller.UintQuery(ctx, "instituteId")
	if !ok {
		return
	}
	exams, err := c.examService.SearchExams(repository.ExamSearchParams{
		InstituteID: instituteID,
		Search:      ctx.Query("search"),
		Branch:      ctx.Query("branch"),
		CreatedOn:   ctx.Query("createdOn"),
		SortField:   ctx.Query("sortField"),
		SortOrder:   ctx.Query("sortOrder"),
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// ToggleExamEnabled godoc
// @Summary Enable or disable an exam
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param state body dto.ToggleEnabledDTO true "Desired enablement"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id}/enabled [patch]
func (c *AdminExamController) ToggleExamEnabled(ctx *gin.Context) {
	examID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ToggleEnabledDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	if err := c.examService.SetEnabled(examID, *req.IsEnabled); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Exam updated"})
}

// ToggleResultLock godoc
// @Summary Lock or unlock an exam's results
// @Description While locked, students see their outcome as Pending with the score withheld.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param state body dto.ToggleResultLockDTO true "Desired lock state"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id}/result-lock [patch]
func (c *AdminExamController) ToggleResultLock(ctx *gin.Context) {
	examID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ToggleResultLockDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	if err := c.examService.SetResultLocked(examID, *req.ResultLocked); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Result lock updated"})
}

// AssignBranches godoc
// @Summary Declare the full set of branches an exam is assigned to
// @Description Reconciles by set difference: new branches fan out to their students, removed branches disable only the rows they created.
// @Tags Admin - Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body dto.AssignBranchesRequest true "Exam and desired branches"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assign-branches [post]
func (c *AdminExamController) AssignBranches(ctx *gin.Context) {
	var req dto.AssignBranchesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	if err := c.assignmentService.AssignBranches(req); err != nil {
		log.Error().Err(err).Uint("examID", req.ExamID).Msg("AssignBranches failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Branch assignments updated"})
}

// AssignStudents godoc
// @Summary Declare the full set of directly assigned students
// @Tags Admin - Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body dto.AssignStudentsRequest true "Exam and desired students"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assign-students [post]
func (c *AdminExamController) AssignStudents(ctx *gin.Context) {
	var req dto.AssignStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	if err := c.assignmentService.AssignStudents(req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Student assignments updated"})
}

// AssignedBranches godoc
// @Summary List the branches currently assigned to an exam
// @Tags Admin - Assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.AssignedBranchesResponse
// @Router /exam/{id}/assigned-branches [get]
func (c *AdminExamController) AssignedBranches(ctx *gin.Context) {
	examID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.assignmentService.AssignedBranches(examID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AssignedStudents godoc
// @Summary List the students currently assigned to an exam
// @Tags Admin - Assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.AssignedStudentsResponse
// @Router /exam/{id}/assigned-students [get]
func (c *AdminExamController) AssignedStudents(ctx *gin.Context) {
	examID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.assignmentService.AssignedStudents(examID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateBranch godoc
// @Summary Create a branch
// @Tags Admin - Branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param branch body dto.BranchCreateDTO true "Branch details"
// @Success 201 {object} dto.BranchDTO
// @Failure 409 {object} dto.ErrorResponse "Duplicate branch name (case-insensitive)"
// @Router /branches [post]
func (c *AdminExamController) CreateBranch(ctx *gin.Context) {
	var req dto.BranchCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	branch, err := c.examService.CreateBranch(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.BranchDTO{ID: branch.ID, Name: branch.Name, CreatedAt: branch.CreatedAt})
}

// ListBranches godoc
// @Summary List an institute's branches
// @Tags Admin - Branches
// @Produce json
// @Security BearerAuth
// @Param instituteId query int true "Institute ID"
// @Success 200 {array} dto.BranchDTO
// @Router /branches [get]
func (c *AdminExamController) ListBranches(ctx *gin.Context) {
	instituteID, ok := controller.UintQuery(ctx, "instituteId")
	if !ok {
		return
	}
	branches, err := c.examService.ListBranches(instituteID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, branches)
}

// CreateAnnouncement godoc
// @Summary Post an announcement
// @Tags Admin - Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param announcement body dto.AnnouncementCreateDTO true "Announcement"
// @Success 201 {object} dto.MessageResponse
// @Router /announcements [post]
func (c *AdminExamController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.AnnouncementCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	if _, err := c.examService.CreateAnnouncement(req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Announcement posted"})
}

// ListAnnouncements godoc
// @Summary List an institute's announcements
// @Tags Admin - Announcements
// @Produce json
// @Security BearerAuth
// @Param instituteId query int true "Institute ID"
// @Success 200 {array} model.Announcement
// @Router /announcements [get]
func (c *AdminExamController) ListAnnouncements(ctx *gin.Context) {
	instituteID, ok := controller.UintQuery(ctx, "instituteId")
	if !ok {
		return
	}
	announcements, err := c.examService.ListAnnouncements(instituteID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, announcements)
}

// Dashboard godoc
// @Summary Institute dashboard counters and recent exams
// @Tags Admin - Dashboard
// @Produce json
// @Security BearerAuth
// @Param instituteId query int true "Institute ID"
// @Success 200 {object} dto.DashboardDTO
// @Router /dashboard [get]
func (c *AdminExamController) Dashboard(ctx *gin.Context) {
	instituteID, ok := controller.UintQuery(ctx, "instituteId")
	if !ok {
		return
	}
	dashboard, err := c.examService.Dashboard(instituteID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dashboard)
}
