package main

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/api"
	"innovafit/gym-backend/internal/cache"
	"innovafit/gym-backend/internal/config"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/observability"
	"innovafit/gym-backend/internal/repository"
	"innovafit/gym-backend/internal/repository/memory"
	"innovafit/gym-backend/internal/repository/mongo"
	"innovafit/gym-backend/internal/service"
	"innovafit/gym-backend/internal/storage"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// repositories is the set of stores the services are built on.
type repositories struct {
	tags        repository.TagRepository
	gyms        repository.GymRepository
	machines    repository.MachineRepository
	gymMachines repository.GymMachineRepository
	profiles    repository.UserProfileRepository
	logs        repository.ExerciseLogRepository
	feedback    repository.FeedbackRepository
	deviceFlags repository.DeviceFlagRepository
}

// @title InnovaFit Gym API
// @version 1.0
// @description QR machine scans, tutorial catalog and exercise history for gym members.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		stdlog.Fatalf("FATAL: Could not load config: %v", err)
	}

	log, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		stdlog.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer log.Sync()
	log.Info("Starting InnovaFit gym backend", "driver", cfg.Database.Driver, "address", cfg.Server.Address)

	ctx := context.Background()

	// --- Tracing ---
	shutdownTracing, err := observability.InitTracing(ctx, log, cfg.Tracing)
	if err != nil {
		log.Fatal("Could not initialize tracing", "error", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("Tracer shutdown failed", "error", err)
		}
	}()

	// --- Repositories ---
	repos, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Could not open document store", "error", err)
	}
	defer closeStore()

	// --- Redis (optional) ---
	var scanTracker service.ScanTracker = service.NewScanCoordinator()
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Could not connect to Redis", "addr", cfg.Redis.Addr, "error", err)
		}
		defer rdb.Close()
		repos.gyms = cache.NewCachedGymRepository(repos.gyms, rdb, cfg.Redis.CacheTTL, log)
		repos.machines = cache.NewCachedMachineRepository(repos.machines, rdb, cfg.Redis.CacheTTL, log)
		repos.deviceFlags = cache.NewRedisDeviceFlagRepository(rdb)
		scanTracker = cache.NewRedisScanTracker(rdb, cache.DefaultScanTrackTTL)
		log.Info("Redis catalog cache enabled", "ttl", cfg.Redis.CacheTTL)
	}

	// --- Media storage (optional) ---
	var media storage.FileStorage
	if cfg.S3.BucketName != "" {
		media, err = storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", "error", err)
		}
	} else {
		log.Warn("S3 bucket not configured; media references are served unsigned")
	}

	// --- Services ---
	clock := service.Clock(time.Now)
	catalogService := service.NewCatalogService(repos.gyms, repos.machines, repos.gymMachines, media, cfg.S3.URLExpiry, log)
	tagService := service.NewTagService(repos.tags)
	scanService := service.NewScanService(tagService, catalogService, scanTracker, log)
	profileService := service.NewProfileService(repos.profiles, repos.gyms, catalogService, log)
	logService := service.NewExerciseLogService(repos.logs, catalogService, clock, log)
	historyService := service.NewHistoryService(repos.logs, clock)
	feedbackService := service.NewFeedbackService(repos.feedback, repos.deviceFlags, catalogService, clock, log)
	adminService := service.NewAdminService(repos.gyms, repos.machines, repos.tags, repos.gymMachines,
		catalogService, media, cfg.S3.URLExpiry, clock, log)

	// --- Gin Engine ---
	if cfg.Logging.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, api.RouterConfig{
		JWTSecret:          cfg.JWT.Secret,
		AdminKeyHash:       cfg.Admin.KeyHash,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		DefaultZone:        cfg.Time.Location(),
		TracingEnabled:     cfg.Tracing.Enabled,
		ServiceName:        cfg.Tracing.ServiceName,
		Log:                log,
		TagService:         tagService,
		ScanService:        scanService,
		CatalogService:     catalogService,
		ProfileService:     profileService,
		ExerciseLogService: logService,
		HistoryService:     historyService,
		FeedbackService:    feedbackService,
		AdminService:       adminService,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe error", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server exiting.")
}

// openStore builds the repositories for the configured driver and returns a
// function that releases the underlying connection.
func openStore(ctx context.Context, cfg config.Config, log *logger.Logger) (*repositories, func(), error) {
	switch cfg.Database.Driver {
	case "memory":
		log.Warn("Using the in-memory store; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			tags:        store.Tags(),
			gyms:        store.Gyms(),
			machines:    store.Machines(),
			gymMachines: store.GymMachines(),
			profiles:    store.Profiles(),
			logs:        store.ExerciseLogs(),
			feedback:    store.Feedback(),
			deviceFlags: store.DeviceFlags(),
		}, func() {}, nil

	case "mongo", "":
		client, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.Database.Name)

		indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(indexCtx, db, log); err != nil {
			_ = mongo.DisconnectDB(client)
			return nil, nil, err
		}
		log.Info("Database connection established", "database", cfg.Database.Name)

		return &repositories{
				tags:        mongo.NewMongoTagRepository(db),
				gyms:        mongo.NewMongoGymRepository(db, log),
				machines:    mongo.NewMongoMachineRepository(db, log),
				gymMachines: mongo.NewMongoGymMachineRepository(db, log),
				profiles:    mongo.NewMongoUserProfileRepository(db),
				logs:        mongo.NewMongoExerciseLogRepository(db, log),
				feedback:    mongo.NewMongoFeedbackRepository(db),
				deviceFlags: mongo.NewMongoDeviceFlagRepository(db),
			}, func() {
				log.Info("Disconnecting MongoDB...")
				if err := mongo.DisconnectDB(client); err != nil {
					log.Error("Failed to disconnect MongoDB", "error", err)
				}
			}, nil
	}
	return nil, nil, errors.New("unknown database driver " + cfg.Database.Driver)
}
