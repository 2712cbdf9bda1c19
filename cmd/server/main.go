package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gym-tracker/internal/ai"
	"gym-tracker/internal/api"
	"gym-tracker/internal/config"
	"gym-tracker/internal/repository"
	gormrepo "gym-tracker/internal/repository/gorm"
	"gym-tracker/internal/service"
	"gym-tracker/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}
	logger.Info("configuration loaded",
		zap.String("db_type", cfg.Database.Type),
		zap.String("address", cfg.Server.Address),
	)

	// --- Database ---
	db, err := gormrepo.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer func() {
		if err := gormrepo.Close(db); err != nil {
			logger.Warn("error closing database", zap.Error(err))
		}
	}()
	if err := gormrepo.AutoMigrate(db); err != nil {
		logger.Fatal("could not run migrations", zap.Error(err))
	}
	logger.Info("database ready")

	// --- Object storage ---
	avatarStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Fatal("could not initialize object storage", zap.Error(err))
	}

	// --- Repositories ---
	userRepo := gormrepo.NewUserRepository(db)
	sessionRepo := gormrepo.NewSessionRepository(db)
	partnerRepo := gormrepo.NewPartnerRepository(db)
	exerciseRepo := gormrepo.NewExerciseRepository(db)
	planRepo := gormrepo.NewPlanRepository(db)
	workoutRepo := gormrepo.NewWorkoutRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.OAuth, cfg.Session.TTL)
	accessService := service.NewAccessService(partnerRepo)
	partnerService := service.NewPartnerService(partnerRepo, userRepo)
	exerciseService := service.NewExerciseService(exerciseRepo)
	planService := service.NewPlanService(planRepo, exerciseRepo, accessService)
	workoutService := service.NewWorkoutService(workoutRepo, planRepo, accessService)
	generator := ai.NewClient(cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Timeout)
	analysisService := service.NewAnalysisService(workoutRepo, exerciseRepo, accessService, generator)
	profileService := service.NewProfileService(userRepo, avatarStorage)

	// --- Router ---
	router := gin.New()
	router.Use(api.RequestLogger(logger), gin.Recovery())
	api.SetupRoutes(router, cfg.Session,
		authService, accessService, partnerService,
		exerciseService, planService, workoutService,
		analysisService, profileService,
	)

	// Expired session rows serve no one; sweep them in the background.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepSessions(sweepCtx, sessionRepo, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

// sweepSessions deletes expired session rows once an hour until ctx ends.
func sweepSessions(ctx context.Context, sessions repository.SessionRepository, logger *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.DeleteExpired(ctx); err != nil {
				logger.Warn("session sweep failed", zap.Error(err))
			}
		}
	}
}
