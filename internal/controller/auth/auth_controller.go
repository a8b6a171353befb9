package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/eduexamine/eduexamine/internal/controller"
	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary Log in as an institute or student
// @Description Authenticates by email, password and role, returning an access token, a refresh token and the user profile.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Wrong credentials or disabled account"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.authService.Login(req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Str("role", req.Role).Msg("Login failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RegisterInstitute godoc
// @Summary Register a new institute
// @Tags Auth
// @Accept json
// @Produce json
// @Param institute body dto.InstituteRegisterRequest true "Institute details"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /institute/register [post]
func (c *AuthController) RegisterInstitute(ctx *gin.Context) {
	var req dto.InstituteRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	if _, err := c.authService.RegisterInstitute(req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Institute registered successfully"})
}

// RegisterStudent godoc
// @Summary Register a single student under an institute
// @Tags Auth
// @Accept json
// @Produce json
// @Param student body dto.StudentRegisterRequest true "Student details"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Institute not found"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /student/register [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.StudentRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	if _, err := c.authService.RegisterStudent(req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Student registered successfully"})
}

// BulkRegisterStudents godoc
// @Summary Register many students at once
// @Description Validates every row first; any invalid row rejects the whole batch and nothing is inserted.
// @Tags Auth
// @Accept json
// @Produce json
// @Param batch body dto.BulkRegisterRequest true "Students to register"
// @Success 201 {object} dto.MessageResponse
// @Failure 409 {object} dto.BulkRegisterErrorResponse "Per-row validation failures"
// @Failure 404 {object} dto.ErrorResponse "Institute not found"
// @Router /student/bulk-register [post]
func (c *AuthController) BulkRegisterStudents(ctx *gin.Context) {
	var req dto.BulkRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	count, err := c.authService.BulkRegisterStudents(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Students registered successfully", "count": count})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid, expired or revoked refresh token"
// @Router /refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.authService.Refresh(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Revoke a refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body dto.LogoutRequest true "Refresh token to revoke"
// @Success 200 {object} dto.MessageResponse
// @Router /logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	if err := c.authService.Logout(req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}
