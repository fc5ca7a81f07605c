package main

import (
	"alcyxob/fitness-tracker/internal/api"
	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/repository/postgres"
	"alcyxob/fitness-tracker/internal/service"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer appLog.Sync()
	appLog.Info("starting fitness tracker server")

	// --- Database Connection ---
	db, err := postgres.Connect(cfg.Database.DSN)
	if err != nil {
		appLog.Fatal("could not connect to database", "error", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLog.Error("failed to close database", "error", err)
		}
	}()
	if err := db.Migrate(); err != nil {
		appLog.Fatal("could not run migrations", "error", err)
	}
	appLog.Info("database connection established")

	// --- Initialize Repositories ---
	userRepo := postgres.NewUserRepository(db)
	weightLogRepo := postgres.NewWeightLogRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	exerciseRepo := postgres.NewExerciseRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	logRepo := postgres.NewWorkoutLogRepository(db)
	recordRepo := postgres.NewRecordRepository(db)
	bjjRepo := postgres.NewBjjRepository(db)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	recordService := service.NewRecordService(recordRepo, exerciseRepo)
	workoutService := service.NewWorkoutService(planRepo, logRepo, recordRepo, exerciseRepo, recordService, db)
	exerciseService := service.NewExerciseService(exerciseRepo, categoryRepo, recordRepo, logRepo, db)
	userService := service.NewUserService(userRepo, weightLogRepo, logRepo, recordRepo, bjjRepo, db)

	// --- Initialize Gin Engine ---
	if cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// --- Setup Routes ---
	api.SetupRoutes(router, appLog, cfg.JWT.Secret,
		authService, workoutService, exerciseService, recordService, userService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLog.Info("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("listen and serve", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		appLog.Fatal("server forced to shutdown", "error", err)
	}
	appLog.Info("server exiting")
}
