package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathfinder-edu/pathfinder-backend/internal/assessment"
	"github.com/pathfinder-edu/pathfinder-backend/internal/catalog"
	"github.com/pathfinder-edu/pathfinder-backend/internal/config"
	"github.com/pathfinder-edu/pathfinder-backend/internal/database"
	"github.com/pathfinder-edu/pathfinder-backend/internal/handler"
	"github.com/pathfinder-edu/pathfinder-backend/internal/logger"
	"github.com/pathfinder-edu/pathfinder-backend/internal/middleware"
	"github.com/pathfinder-edu/pathfinder-backend/internal/repository"
	"github.com/pathfinder-edu/pathfinder-backend/internal/router"
	"github.com/pathfinder-edu/pathfinder-backend/internal/service"
	"github.com/pathfinder-edu/pathfinder-backend/internal/validator"
	"github.com/pathfinder-edu/pathfinder-backend/internal/worker"
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
		Msg("Starting PathFinder Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Static Content ───────────────────────────────────────────
	bank, err := assessment.LoadBank(cfg.QuestionBankFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.QuestionBankFile).Msg("Failed to load question bank")
	}
	log.Info().Int("questions", bank.Len()).Msg("Question bank loaded")

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load resource catalog")
	}

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

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	semesterRepo := repository.NewSemesterResultRepository(pool)
	assessmentRepo := repository.NewAssessmentRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	studentService := service.NewStudentService(studentRepo, authService)
	profileService := service.NewProfileService(profileRepo)
	marksService := service.NewMarksService(semesterRepo)
	analysisService := service.NewAnalysisService(semesterRepo, assessmentRepo, cat, log)
	historyService := service.NewHistoryService(assessmentRepo)
	proctoringService := service.NewProctoringService(rdb, cfg.ProctoringSessionTTL)

	assessmentCfg := assessment.DefaultConfig()
	assessmentCfg.Debounce = cfg.AssessmentDebounce
	assessmentService := service.NewAssessmentService(
		assessment.NewSelector(bank, nil),
		assessmentCfg,
		profileService,
		service.NewRedisResultQueue(rdb),
		proctoringService,
		service.NewRedisRunLocker(rdb),
		log,
	)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, studentService),
		Profile:    handler.NewProfileHandler(profileService),
		Marks:      handler.NewMarksHandler(marksService),
		Analysis:   handler.NewAnalysisHandler(analysisService),
		Resource:   handler.NewResourceHandler(cat),
		History:    handler.NewHistoryHandler(historyService),
		Proctoring: handler.NewProctoringHandler(proctoringService),
		WS:         handler.NewWSHandler(assessmentService, log, cfg.AllowedOrigins),
		System:     handler.NewSystemHandler(database.NewHealth(pool, rdb), rdb),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	resultWorker := worker.NewAssessmentResultWorker(pool, rdb, log)
	proctoringWorker := worker.NewProctoringWorker(pool, rdb, log)

	workers.Add(2)
	go func() { defer workers.Done(); resultWorker.Start(workerCtx) }()
	go func() { defer workers.Done(); proctoringWorker.Start(workerCtx) }()

	// ─── Setup Router ──────────────────────────────────────────────────
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute)
	defer authLimiter.Stop()

	r := router.SetupRouter(authService, handlers, authLimiter, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
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

	// 2. Stop background workers and wait for their buffers to flush.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
