package api

import (
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/service"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RouterConfig carries everything SetupRoutes wires into the engine.
type RouterConfig struct {
	JWTSecret      string
	AdminKeyHash   string
	AllowedOrigins []string
	DefaultZone    *time.Location
	TracingEnabled bool
	ServiceName    string
	Log            *logger.Logger

	TagService         service.TagService
	ScanService        service.ScanService
	CatalogService     service.CatalogService
	ProfileService     service.ProfileService
	ExerciseLogService service.ExerciseLogService
	HistoryService     service.HistoryService
	FeedbackService    service.FeedbackService
	AdminService       service.AdminService
}

func SetupRoutes(router *gin.Engine, cfg RouterConfig) {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(RequestContext())
	router.Use(RequestLogger(log))
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	scanHandler := NewScanHandler(cfg.ScanService, cfg.TagService, log)
	catalogHandler := NewCatalogHandler(cfg.CatalogService, cfg.ProfileService, log)
	profileHandler := NewProfileHandler(cfg.ProfileService, log)
	logHandler := NewLogHandler(cfg.ExerciseLogService, cfg.HistoryService, cfg.DefaultZone, log)
	feedbackHandler := NewFeedbackHandler(cfg.FeedbackService, log)
	adminHandler := NewAdminHandler(cfg.AdminService, log)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(cfg.JWTSecret))
	{
		protected.POST("/scans", scanHandler.Scan)
		protected.GET("/tags/:tag", scanHandler.ResolveTag)

		// --- Catalog ---
		protected.GET("/gyms", catalogHandler.ListGyms)
		protected.GET("/gyms/:gymId", catalogHandler.GetGym)
		protected.GET("/gyms/:gymId/machines", catalogHandler.ListGymMachines)
		protected.GET("/machines/:machineId", catalogHandler.GetMachine)

		// --- Current user ---
		meGroup := protected.Group("/me")
		{
			meGroup.GET("/profile", profileHandler.GetProfile)
			meGroup.PUT("/profile", profileHandler.SaveProfile)
			meGroup.POST("/logs", logHandler.LogExercise)
			meGroup.GET("/logs/week", logHandler.WeeklySummary)
		}

		// --- Feedback ---
		protected.POST("/feedback", feedbackHandler.SubmitFeedback)
		protected.GET("/devices/:deviceId/feedback-prompt", feedbackHandler.GetFeedbackPrompt)
		protected.PUT("/devices/:deviceId/feedback-prompt", feedbackHandler.MarkFeedbackPrompt)
	}

	adminGroup := apiV1.Group("/admin")
	adminGroup.Use(AdminMiddleware(cfg.AdminKeyHash))
	{
		adminGroup.POST("/gyms", adminHandler.CreateGym)
		adminGroup.POST("/machines", adminHandler.CreateMachine)
		adminGroup.POST("/tags", adminHandler.CreateTag)
		adminGroup.PUT("/gyms/:gymId/machines/:machineId", adminHandler.LinkMachine)
		adminGroup.POST("/machines/:machineId/media-upload-url", adminHandler.MediaUploadURL)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", headerAdminKey, headerRequestID, headerTimezone},
		ExposeHeaders: []string{headerRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
