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

	"github.com/shashanktechgrah/backend-ExamSetu/config"
	"github.com/shashanktechgrah/backend-ExamSetu/database"
	adminctrl "github.com/shashanktechgrah/backend-ExamSetu/internal/controller/admin"
	studentctrl "github.com/shashanktechgrah/backend-ExamSetu/internal/controller/student"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/logger"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/repository"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/service"
)

// @title Exam Portal API
// @version 1.0
// @description School exam portal: question bank, system-generated mock tests and automatic evaluation with delegated free-text grading.
// @host localhost:5000
// @BasePath /api/v1
// @schemes http
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewClassRepository,
			repository.NewSubjectRepository,
			repository.NewQuestionBankRepository,
			repository.NewQuestionSourceRepository,
			repository.NewTestRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
			repository.NewResultRepository,
			repository.NewNotificationRepository,
		),

		fx.Provide(
			NewGraderService,
			service.NewMockTestService,
			service.NewEvaluationService,
			service.NewQuestionBankService,
			service.NewQuestionSourceService,
			service.NewCatalogService,
			service.NewAdminTestService,
			service.NewResultService,
			service.NewNotificationService,
		),

		fx.Provide(
			studentctrl.NewMockTestController,
			studentctrl.NewPortalController,
			adminctrl.NewAdminController,
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

// NewGraderService selects the free-text grading delegate from config:
// "gemini" grades with the Gemini API, anything else uses the HTTP delegate.
func NewGraderService(cfg *config.Config) (service.GraderService, error) {
	if cfg.Grader.Provider == "gemini" {
		return service.NewGeminiGrader(cfg)
	}
	return service.NewHTTPGrader(cfg), nil
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the route groups and manages the HTTP
// server lifecycle through fx hooks.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	mockTestCtrl *studentctrl.MockTestController,
	portalCtrl *studentctrl.PortalController,
	adminCtrl *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")
	{
		api.GET("/health", portalCtrl.Health)
		api.GET("/classes", portalCtrl.ListClasses)
		api.GET("/subjects", portalCtrl.ListSubjects)
		api.GET("/students/profile", portalCtrl.GetStudentProfile)
		api.GET("/tests", portalCtrl.ListTests)
		api.GET("/question-bank", portalCtrl.ListQuestionBank)
		api.GET("/question-sources", portalCtrl.ListQuestionSources)
		api.GET("/results", portalCtrl.ListResults)
		api.GET("/notifications", portalCtrl.ListNotifications)
	}

	mockTests := router.Group("/api/v1/mock-tests")
	{
		mockTests.POST("/start", mockTestCtrl.StartMockTest)
		mockTests.GET("/attempts/:attempt_id", mockTestCtrl.GetAttempt)
		mockTests.GET("/attempts/:attempt_id/responses", mockTestCtrl.GetAttemptResponses)
		mockTests.POST("/attempts/:attempt_id/submit", mockTestCtrl.SubmitAttempt)
	}

	admin := router.Group("/api/v1/admin")
	{
		admin.POST("/tests", adminCtrl.CreateTest)
		admin.POST("/question-bank", adminCtrl.CreateQuestion)
		admin.DELETE("/question-bank/:id", adminCtrl.DeactivateQuestion)
		admin.POST("/question-sources/upsert", adminCtrl.UpsertQuestionSource)
		admin.POST("/notifications", adminCtrl.CreateNotification)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam portal API server starting on port %s", cfg.Server.Port)
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
		&model.Class{},
		&model.Subject{},
		&model.User{},
		&model.Student{},
		&model.QuestionSource{},
		&model.QuestionBankQuestion{},
		&model.QuestionBankOption{},
		&model.QuestionBankCorrectAnswer{},
		&model.Test{},
		&model.TestQuestion{},
		&model.MockTestConfig{},
		&model.Attempt{},
		&model.Answer{},
		&model.Result{},
		&model.Notification{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
