package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/vytor/ayahrecall/internal/api"
	"github.com/vytor/ayahrecall/internal/clock"
	"github.com/vytor/ayahrecall/internal/config"
	"github.com/vytor/ayahrecall/internal/content"
	"github.com/vytor/ayahrecall/internal/db"
	"github.com/vytor/ayahrecall/internal/jobs"
	"github.com/vytor/ayahrecall/internal/logger"
	"github.com/vytor/ayahrecall/internal/repository/sqlite"
	"github.com/vytor/ayahrecall/internal/services"
	"github.com/vytor/ayahrecall/internal/srs"
	"github.com/vytor/ayahrecall/internal/worker"
)

func main() {
	cfg := config.Load()

	format := logger.ParseFormat(cfg.LogFormat)
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(format),
		logger.WithColors(format == logger.FormatText),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("AyahRecall Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Error("failed to load time zone %s: %v", cfg.Timezone, err)
		os.Exit(1)
	}

	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("log_format=%s", cfg.LogFormat)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("content_base_url=%s", cfg.ContentBaseURL)
	log.Debug("content_edition=%s", cfg.ContentEdition)
	log.Debug("content_timeout=%s", cfg.ContentTimeout)
	log.Debug("persist_queue_size=%d", cfg.PersistQueueSize)
	log.Debug("goals=%d/%d/%d", cfg.GoalDaily, cfg.GoalWeekly, cfg.GoalMonthly)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	clk := clock.NewSystem(loc)
	scheduler := srs.New(clk)
	stateRepo := sqlite.NewStateRepository(database.DB)
	logRepo := sqlite.NewReviewLogRepository(database.DB)

	// One worker keeps saves in submission order.
	persistPool := worker.NewPool(1, cfg.PersistQueueSize)
	queue := jobs.NewWorkerQueue(persistPool, scheduler, stateRepo)

	studyService := services.NewStudyService(scheduler, clk, stateRepo, logRepo, queue, cfg.GoalTargets())
	contentService := services.NewContentService(content.New(cfg.ContentBaseURL, cfg.ContentTimeout), cfg.ContentEdition)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := studyService.Load(logger.NewContext(ctx, log)); err != nil {
		log.Error("failed to restore state: %v", err)
		database.Close()
		os.Exit(1)
	}

	persistPool.Start(ctx)

	srv := api.NewServer(studyService, contentService, database)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping persist pool")
	persistPool.Stop()

	log.Debug("flushing state")
	if err := studyService.Flush(logger.NewContext(shutdownCtx, log)); err != nil {
		log.Error("final flush failed: %v", err)
	}

	log.Info("===========================================")
	log.Info("AyahRecall Server Stopped")
	log.Info("===========================================")
}
