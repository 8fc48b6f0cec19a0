package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/config"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/controller"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/service"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/logger"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/monitoring"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/tracing"
)

// App holds the wired application and its HTTP server.
type App struct {
	cfg    *config.Config
	engine *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	gin.SetMode(cfg.Server.Mode)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	tutorRepo := repository.NewTutorRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	studyRepo := repository.NewStudySessionRepository(db)

	// Services
	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	aiClient := service.NewAIClient(cfg.AI.BaseURL, cfg.AI.Model)

	authService := service.NewAuthService(userRepo, schoolRepo, cfg)
	userService := service.NewUserService(userRepo)
	schoolService := service.NewSchoolService(schoolRepo, userRepo)
	assessmentService := service.NewAssessmentService(assessmentRepo, submissionRepo)
	attemptService := service.NewAttemptService(assessmentRepo, submissionRepo, rdb)
	gradingService := service.NewGradingService(assessmentRepo, submissionRepo)
	tutorService := service.NewTutorService(tutorRepo, docRepo, schoolRepo, aiClient, cfg)
	documentService := service.NewDocumentService(docRepo, storage)
	analyticsService := service.NewAnalyticsService(userRepo, assessmentRepo, submissionRepo, studyRepo, tutorRepo)
	dashboardService := service.NewDashboardService(userRepo, assessmentRepo, submissionRepo, studyRepo, tutorRepo)

	// Controllers
	controllers := &controllers{
		auth:       controller.NewAuthController(authService),
		user:       controller.NewUserController(userService),
		school:     controller.NewSchoolController(schoolService, userService),
		assessment: controller.NewAssessmentController(assessmentService),
		attempt:    controller.NewAttemptController(attemptService),
		grading:    controller.NewGradingController(gradingService),
		tutor:      controller.NewTutorController(tutorService),
		document:   controller.NewDocumentController(documentService),
		analytics:  controller.NewAnalyticsController(analyticsService),
		dashboard:  controller.NewDashboardController(dashboardService),
		health:     controller.NewHealthController(db, rdb),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(monitoring.MetricsMiddleware())
	if cfg.Tracing.Enabled {
		engine.Use(tracing.GinMiddleware())
	}

	setupRoutes(engine, cfg, controllers, userRepo)

	return &App{
		cfg:    cfg,
		engine: engine,
		server: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      engine,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute, // streaming tutor replies
			IdleTimeout:  120 * time.Second,
		},
	}, nil
}

func (a *App) Run() error {
	logger.Log.Info("Server starting", zap.String("port", a.cfg.Server.Port), zap.String("mode", a.cfg.Server.Mode))
	err := a.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	logger.Log.Info("Server shutting down")
	return a.server.Shutdown(ctx)
}
