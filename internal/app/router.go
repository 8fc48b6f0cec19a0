package app

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/alaadin007/learnable-connect-hub-sub002/docs"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/config"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/controller"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/middleware"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/monitoring"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/security"
)

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	school     *controller.SchoolController
	assessment *controller.AssessmentController
	attempt    *controller.AttemptController
	grading    *controller.GradingController
	tutor      *controller.TutorController
	document   *controller.DocumentController
	analytics  *controller.AnalyticsController
	dashboard  *controller.DashboardController
	health     *controller.HealthController
}

func setupRoutes(r *gin.Engine, cfg *config.Config, c *controllers, userRepo *repository.UserRepository) {
	r.Use(security.CORS(cfg.CORS.AllowedOrigins))
	r.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 {
		r.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	}

	r.GET("/health", c.health.Health)
	r.GET("/api/health", c.health.Health)
	r.GET("/metrics", monitoring.PrometheusHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Public
	auth := api.Group("/auth")
	{
		auth.POST("/register-school", c.auth.RegisterSchool)
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)
	}

	// Any authenticated user
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	authed.Use(middleware.ActivityMiddleware(userRepo))
	{
		authed.GET("/me", c.auth.Profile)
		authed.PUT("/me", c.user.UpdateProfile)
		authed.PUT("/me/password", c.user.ChangePassword)
	}

	// Students
	student := api.Group("/student")
	student.Use(middleware.AuthMiddleware(cfg))
	student.Use(middleware.RoleMiddleware(model.Student))
	student.Use(middleware.ActivityMiddleware(userRepo))
	{
		student.GET("/dashboard", c.dashboard.Student)

		student.GET("/assessments", c.assessment.ListForStudent)
		student.GET("/assessments/:id", c.assessment.GetForStudent)
		student.POST("/assessments/:id/start", c.attempt.Start)
		student.POST("/assessments/:id/submit", c.attempt.Submit)
		student.GET("/assessments/:id/status", c.attempt.Status)
		student.GET("/assessments/:id/results", c.attempt.Results)
		student.GET("/submissions", c.attempt.MySubmissions)

		student.POST("/tutor/sessions", c.tutor.CreateSession)
		student.GET("/tutor/sessions", c.tutor.ListSessions)
		student.GET("/tutor/sessions/:id", c.tutor.GetSession)
		student.DELETE("/tutor/sessions/:id", c.tutor.DeleteSession)
		student.POST("/tutor/sessions/:id/messages", c.tutor.SendMessage)
		student.GET("/tutor/sessions/:id/stream", c.tutor.Stream)

		student.POST("/study-sessions/start", c.analytics.StartStudySession)
		student.POST("/study-sessions/end", c.analytics.EndStudySession)
		student.GET("/performance", c.analytics.MyPerformance)
	}

	// Teachers (school admins pass the role check too)
	teacher := api.Group("/teacher")
	teacher.Use(middleware.AuthMiddleware(cfg))
	teacher.Use(middleware.RoleMiddleware(model.Teacher, model.SchoolAdmin))
	teacher.Use(middleware.ActivityMiddleware(userRepo))
	{
		teacher.GET("/dashboard", c.dashboard.Teacher)

		teacher.POST("/assessments", c.assessment.Create)
		teacher.GET("/assessments", c.assessment.ListForTeacher)
		teacher.GET("/assessments/:id", c.assessment.GetForTeacher)
		teacher.PUT("/assessments/:id", c.assessment.Update)
		teacher.DELETE("/assessments/:id", c.assessment.Delete)
		teacher.POST("/assessments/:id/publish", c.assessment.Publish)
		teacher.POST("/assessments/:id/unpublish", c.assessment.Unpublish)

		teacher.GET("/assessments/:id/submissions", c.grading.ListSubmissions)
		teacher.GET("/assessments/:id/submissions/:subId", c.grading.GetSubmission)
		teacher.POST("/assessments/:id/submissions/:subId/grade", c.grading.Grade)
		teacher.GET("/assessments/:id/report", c.analytics.AssessmentReport)

		teacher.GET("/students/:id/performance", c.analytics.StudentPerformance)

		teacher.POST("/documents", c.document.Upload)
		teacher.GET("/documents", c.document.List)
		teacher.GET("/documents/:id", c.document.Get)
		teacher.GET("/documents/:id/download", c.document.Download)
		teacher.DELETE("/documents/:id", c.document.Delete)
	}

	// School admins
	school := api.Group("/school")
	school.Use(middleware.AuthMiddleware(cfg))
	school.Use(middleware.RoleMiddleware(model.SchoolAdmin))
	school.Use(middleware.ActivityMiddleware(userRepo))
	{
		school.GET("", c.school.GetSchool)
		school.PUT("", c.school.UpdateSchool)
		school.POST("/rotate-code", c.school.RotateJoinCode)
		school.GET("/dashboard", c.dashboard.School)
		school.GET("/report", c.analytics.SchoolReport)

		school.POST("/invitations", c.school.CreateInvitation)
		school.GET("/invitations", c.school.ListInvitations)
		school.DELETE("/invitations/:id", c.school.RevokeInvitation)

		school.POST("/api-keys", c.school.RegisterAPIKey)
		school.GET("/api-keys", c.school.ListAPIKeys)
		school.DELETE("/api-keys/:id", c.school.RevokeAPIKey)

		school.GET("/members", c.school.ListMembers)
		school.PUT("/members/:id/disabled", c.school.SetMemberDisabled)
		school.PUT("/members/:id/password", c.school.ResetMemberPassword)
		school.DELETE("/members/:id", c.school.RemoveMember)

		school.GET("/assessments", c.assessment.ListForSchool)
	}

	// Platform admins
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/schools", c.school.AdminListSchools)
		admin.PUT("/schools/:id/active", c.school.AdminSetSchoolActive)
	}
}
