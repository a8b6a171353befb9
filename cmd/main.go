package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/eduexamine/eduexamine/config"
	"github.com/eduexamine/eduexamine/database"
	_ "github.com/eduexamine/eduexamine/docs"
	adminctrl "github.com/eduexamine/eduexamine/internal/controller/admin"
	authctrl "github.com/eduexamine/eduexamine/internal/controller/auth"
	guestctrl "github.com/eduexamine/eduexamine/internal/controller/guest"
	studentctrl "github.com/eduexamine/eduexamine/internal/controller/student"
	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/logger"
	"github.com/eduexamine/eduexamine/internal/middleware"
	"github.com/eduexamine/eduexamine/internal/model"
	"github.com/eduexamine/eduexamine/internal/repository"
	"github.com/eduexamine/eduexamine/internal/service"
)

// @title EduExamine API
// @version 1.0
// @description Exam management backend for institutes, students and guests: authoring, assignment, submission scoring and reporting.
// @contact.name API Support
// @host localhost:5000
// @BasePath /api/auth
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewInstituteRepository,
			repository.NewStudentRepository,
			repository.NewBranchRepository,
			repository.NewExamRepository,
			repository.NewQuestionRepository,
			repository.NewAssignmentRepository,
			repository.NewResultRepository,
			repository.NewRefreshTokenRepository,
			repository.NewAnnouncementRepository,
			repository.NewGuestRepository,
		),

		fx.Provide(
			service.NewTokenService,
			service.NewAuthService,
			service.NewExamService,
			service.NewAssignmentService,
			service.NewSubmissionService,
			service.NewStudentService,
			service.NewReportService,
			service.NewGuestService,
			service.NewExamExporter,
		),

		fx.Provide(
			authctrl.NewAuthController,
			adminctrl.NewAdminExamController,
			adminctrl.NewAdminReportController,
			studentctrl.NewStudentController,
			guestctrl.NewGuestController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the route tree and manages the
// HTTP server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokens service.TokenService,
	authCtrl *authctrl.AuthController,
	adminExamCtrl *adminctrl.AdminExamController,
	adminReportCtrl *adminctrl.AdminReportController,
	studentCtrl *studentctrl.StudentController,
	guestCtrl *guestctrl.GuestController,
) {
	api := router.Group("/api/auth")

	// Public surface
	api.POST("/login", authCtrl.Login)
	api.POST("/institute/register", authCtrl.RegisterInstitute)
	api.POST("/student/register", authCtrl.RegisterStudent)
	api.POST("/refresh", authCtrl.Refresh)
	api.POST("/logout", authCtrl.Logout)

	// Institute-only surface
	instituteGroup := api.Group("", middleware.RequireAuth(tokens, dto.RoleInstitute))
	{
		instituteGroup.POST("/student/bulk-register", authCtrl.BulkRegisterStudents)

		instituteGroup.POST("/upload-exam", adminExamCtrl.CreateExam)
		instituteGroup.PUT("/update-exam", adminExamCtrl.UpdateExam)
		instituteGroup.GET("/exam/:id/edit", adminExamCtrl.GetExamForAuthoring)
		instituteGroup.GET("/exams", adminExamCtrl.ListExams)
		instituteGroup.GET("/exams/search", adminExamCtrl.SearchExams)
		instituteGroup.PATCH("/exam/:id/enabled", adminExamCtrl.ToggleExamEnabled)
		instituteGroup.PATCH("/exam/:id/result-lock", adminExamCtrl.ToggleResultLock)

		instituteGroup.POST("/assign-branches", adminExamCtrl.AssignBranches)
		instituteGroup.POST("/assign-students", adminExamCtrl.AssignStudents)
		instituteGroup.GET("/exam/:id/assigned-branches", adminExamCtrl.AssignedBranches)
		instituteGroup.GET("/exam/:id/assigned-students", adminExamCtrl.AssignedStudents)

		instituteGroup.POST("/branches", adminExamCtrl.CreateBranch)
		instituteGroup.GET("/branches", adminExamCtrl.ListBranches)
		instituteGroup.POST("/announcements", adminExamCtrl.CreateAnnouncement)
		instituteGroup.GET("/announcements", adminExamCtrl.ListAnnouncements)
		instituteGroup.GET("/dashboard", adminExamCtrl.Dashboard)

		instituteGroup.GET("/results", adminReportCtrl.PagedResults)
		instituteGroup.GET("/reports/top-performers", adminReportCtrl.TopPerformers)
		instituteGroup.GET("/reports/student", adminReportCtrl.StudentReport)
		instituteGroup.GET("/reports/exam-summary", adminReportCtrl.ExamSummary)
		instituteGroup.GET("/students", adminReportCtrl.SearchStudents)
		instituteGroup.PUT("/students", adminReportCtrl.UpdateStudent)
		instituteGroup.GET("/students/:id/report", adminReportCtrl.StudentFullReport)
	}

	// Student surface
	studentGroup := api.Group("", middleware.RequireAuth(tokens, dto.RoleStudent))
	{
		studentGroup.GET("/students/:id/profile", studentCtrl.Profile)
		studentGroup.GET("/students/:id/exams", studentCtrl.ListExams)
		studentGroup.GET("/exam/:id", studentCtrl.GetExam)
		studentGroup.POST("/submit-exam", studentCtrl.SubmitExam)
		studentGroup.GET("/students/:id/results", studentCtrl.Results)
		studentGroup.GET("/students/:id/exams/:examId/download", studentCtrl.DownloadExam)
	}

	// Guest surface, no authentication
	guestGroup := api.Group("/guest")
	{
		guestGroup.POST("/register", guestCtrl.Register)
		guestGroup.POST("/exams", guestCtrl.CreateExam)
		guestGroup.GET("/users/:id/exams", guestCtrl.ListExams)
		guestGroup.GET("/users/:id/results", guestCtrl.Results)
		guestGroup.GET("/exam/:id", guestCtrl.GetExam)
		guestGroup.GET("/exam/:id/export", guestCtrl.ExportExam)
		guestGroup.POST("/submit", guestCtrl.Submit)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("EduExamine API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Institute{},
		&model.Branch{},
		&model.Student{},
		&model.Exam{},
		&model.Question{},
		&model.ExamBranchAssignment{},
		&model.ExamStudentAssignment{},
		&model.StudentExamResult{},
		&model.RefreshToken{},
		&model.Announcement{},
		&model.GuestUser{},
		&model.GuestExam{},
		&model.GuestQuestion{},
		&model.GuestExamAttempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
