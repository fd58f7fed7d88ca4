package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-hr/meridian-hr/internal/app"
	"github.com/meridian-hr/meridian-hr/internal/applications"
	"github.com/meridian-hr/meridian-hr/internal/attendance"
	"github.com/meridian-hr/meridian-hr/internal/employees"
	"github.com/meridian-hr/meridian-hr/internal/goals"
	"github.com/meridian-hr/meridian-hr/internal/observability"
	"github.com/meridian-hr/meridian-hr/internal/openings"
	"github.com/meridian-hr/meridian-hr/internal/payslips"
	"github.com/meridian-hr/meridian-hr/internal/platform/cache"
	"github.com/meridian-hr/meridian-hr/internal/platform/db"
	"github.com/meridian-hr/meridian-hr/internal/policies"
	"github.com/meridian-hr/meridian-hr/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	employeesService := employees.NewService(employees.NewRepository(pool))
	employeesHandler := employees.NewHandler(logger, employeesService)

	openingsService := openings.NewService(openings.NewRepository(pool), cfg.OpeningsCacheTTL)
	openingsHandler := openings.NewHandler(logger, openingsService)

	applicationsService := applications.NewService(applications.NewRepository(pool), openingsService)
	applicationsHandler := applications.NewHandler(logger, applicationsService)

	payslipsService := payslips.NewService(payslips.NewRepository(pool), jobClient, logger)
	payslipsHandler := payslips.NewHandler(logger, payslipsService)

	summaryCache := attendance.NewSummaryCache(redisClient, cfg.SummaryCacheTTL)
	attendanceService := attendance.NewService(attendance.NewRepository(pool), summaryCache, logger)
	attendanceHandler := attendance.NewHandler(logger, attendanceService)

	policiesService := policies.NewService(policies.NewRepository(pool))
	policiesHandler := policies.NewHandler(logger, policiesService)

	goalsService := goals.NewService(goals.NewRepository(pool))
	goalsHandler := goals.NewHandler(logger, goalsService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		EmployeesHandler:    employeesHandler,
		OpeningsHandler:     openingsHandler,
		ApplicationsHandler: applicationsHandler,
		PayslipsHandler:     payslipsHandler,
		AttendanceHandler:   attendanceHandler,
		PoliciesHandler:     policiesHandler,
		GoalsHandler:        goalsHandler,
		JobsHandler:         jobsHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
