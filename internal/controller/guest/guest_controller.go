package guest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/eduexamine/eduexamine/internal/controller"
	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/service"
)

// GuestController serves the unauthenticated guest universe: ad-hoc
// exams shared by link, with append-only attempts.
type GuestController struct {
	guestService service.GuestService
	exporter     service.ExamExporter
}

func NewGuestController(guestService service.GuestService, exporter service.ExamExporter) *GuestController {
	return &GuestController{guestService: guestService, exporter: exporter}
}

// Register godoc
// @Summary Register a guest account
// @Tags Guest
// @Accept json
// @Produce json
// @Param guest body dto.GuestRegisterRequest true "Display name"
// @Success 201 {object} dto.GuestRegisterResponse
// @Router /guest/register [post]
func (c *GuestController) Register(ctx *gin.Context) {
	var req dto.GuestRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.guestService.Register(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// CreateExam godoc
// @Summary Create a guest exam with questions
// @Description A duration is only stored when the time limit is enabled; otherwise the exam is untimed.
// @Tags Guest
// @Accept json
// @Produce json
// @Param exam body dto.GuestExamCreateRequest true "Exam with questions"
// @Success 201 {object} dto.GuestExamCreateResponse
// @Failure 400 {object} dto.ErrorResponse "Missing duration with time limit enabled"
// @Failure 404 {object} dto.ErrorResponse "Guest not found"
// @Router /guest/exams [post]
func (c *GuestController) CreateExam(ctx *gin.Context) {
	var req dto.GuestExamCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.guestService.CreateExam(req)
	if err != nil {
		log.Warn().Err(err).Uint("guestID", req.GuestID).Msg("Guest CreateExam rejected")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListExams godoc
// @Summary List a guest's exams
// @Tags Guest
// @Produce json
// @Param id path int true "Guest ID"
// @Success 200 {array} dto.GuestExamSummaryDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /guest/users/{id}/exams [get]
func (c *GuestController) ListExams(ctx *gin.Context) {
	guestID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	exams, err := c.guestService.ListExams(guestID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// GetExam godoc
// @Summary Guest exam paper without the answer key
// @Tags Guest
// @Produce json
// @Param id path int true "Guest exam ID"
// @Success 200 {object} dto.GuestExamDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /guest/exam/{id} [get]
func (c *GuestController) GetExam(ctx *gin.Context) {
	examID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.guestService.GetExam(examID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary Submit a guest attempt
// @Description Attempts are append-only; the same taker may retake freely.
// @Tags Guest
// @Accept json
// @Produce json
// @Param attempt body dto.GuestSubmitRequest true "Answers keyed by question ID"
// @Success 200 {object} dto.GuestSubmitResponse
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /guest/submit [post]
func (c *GuestController) Submit(ctx *gin.Context) {
	var req dto.GuestSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.guestService.Submit(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Results godoc
// @Summary Attempts recorded against a guest's exams
// @Tags Guest
// @Produce json
// @Param id path int true "Guest ID"
// @Success 200 {object} dto.GuestResultsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /guest/users/{id}/results [get]
func (c *GuestController) Results(ctx *gin.Context) {
	guestID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.guestService.Results(guestID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ExportExam godoc
// @Summary Download a guest exam as PDF
// @Description Only exams flagged downloadable by their creator can be exported.
// @Tags Guest
// @Produce application/pdf
// @Param id path int true "Guest exam ID"
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorResponse "Exam not downloadable"
// @Failure 404 {object} dto.ErrorResponse
// @Router /guest/exam/{id}/export [get]
func (c *GuestController) ExportExam(ctx *gin.Context) {
	examID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	data, filename, err := c.exporter.ExportGuestExam(examID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", data)
}
