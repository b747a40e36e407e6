package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/saludmental/mindtrack/internal/config"
	v1 "github.com/saludmental/mindtrack/internal/handler/v1"
	"github.com/saludmental/mindtrack/internal/repository"
	"github.com/saludmental/mindtrack/internal/service"
	"github.com/saludmental/mindtrack/pkg/auth"
	"github.com/saludmental/mindtrack/pkg/database"
	"github.com/saludmental/mindtrack/pkg/logger"
	"github.com/saludmental/mindtrack/pkg/metrics"
	"github.com/saludmental/mindtrack/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer log.Sync()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	m := metrics.NewCollector("mindtrack")
	if sqlDB, err := db.DB(); err == nil {
		m.DBConnections.Set(float64(sqlDB.Stats().OpenConnections))
	}

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), m, log)
	defer auditSvc.Shutdown()

	repos := repository.NewImportRepos(db)

	svcs := v1.Services{
		Import:  service.NewImportService(db, cfg.Import, auditSvc, m, log),
		Export:  service.NewExportService(repos.Patients, auditSvc, m, log),
		Patient: service.NewPatientService(repos.Patients, repos.Disorders, repos.Attempts, repos.Consumptions, repos.Followups, log),
		Stats:   service.NewStatsService(repos.Patients, repos.Disorders, repos.Attempts, repos.Consumptions, repos.Followups),
	}

	verifier := auth.NewVerifier(cfg.JWT)
	router := v1.NewRouter(cfg, svcs, verifier, m, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	log.Info("stopped")
}
