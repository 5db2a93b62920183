package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftedu/coursecraft-backend/internal/authz"
	"github.com/craftedu/coursecraft-backend/internal/config"
	"github.com/craftedu/coursecraft-backend/internal/database"
	"github.com/craftedu/coursecraft-backend/internal/handler"
	"github.com/craftedu/coursecraft-backend/internal/logger"
	"github.com/craftedu/coursecraft-backend/internal/repository"
	"github.com/craftedu/coursecraft-backend/internal/router"
	"github.com/craftedu/coursecraft-backend/internal/service"
	"github.com/craftedu/coursecraft-backend/internal/storage"
	"github.com/craftedu/coursecraft-backend/internal/validator"
	"github.com/craftedu/coursecraft-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting CourseCraft Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories + Storage ─────────────────────────────
	courseRepo := repository.NewCourseRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	objectStore := storage.NewClient(cfg, log)
	orphanQueue := storage.NewOrphanQueue(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, rdb)
	courseService := service.NewCourseService(courseRepo, objectStore, orphanQueue, log)
	lessonService := service.NewLessonService(courseRepo, objectStore, orphanQueue, log)
	resourceService := service.NewResourceService(courseRepo, objectStore, orphanQueue, log)
	quizService := service.NewQuizService(courseRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Course:       handler.NewCourseHandler(courseService),
		Lesson:       handler.NewLessonHandler(lessonService),
		Resource:     handler.NewResourceHandler(resourceService, cfg.MaxUploadBytes),
		Quiz:         handler.NewQuizHandler(quizService),
		QuizQuestion: handler.NewQuizQuestionHandler(quizService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	janitor := worker.NewUploadJanitor(rdb, objectStore, log)
	go janitor.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, authz.DefaultPolicy(), handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the janitor and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow the worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
