// Pharmacovigilance API extracts structured adverse-event data from
// free-text patient reports, persists it in SQLite and serves it over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/giygas/pharmacovigilance-api/config"
	"github.com/giygas/pharmacovigilance-api/data"
	"github.com/giygas/pharmacovigilance-api/extractor"
	"github.com/giygas/pharmacovigilance-api/handlers"
	"github.com/giygas/pharmacovigilance-api/health"
	"github.com/giygas/pharmacovigilance-api/logging"
	"github.com/giygas/pharmacovigilance-api/scheduler"
	"github.com/giygas/pharmacovigilance-api/server"
	"github.com/giygas/pharmacovigilance-api/storage"
	"github.com/giygas/pharmacovigilance-api/translation"
	"github.com/giygas/pharmacovigilance-api/validation"
)

func init() {
	// Read the env variables from the working directory, falling back to the
	// executable directory when launched from elsewhere
	if err := godotenv.Load(); err != nil {
		ex, err := os.Executable()
		if err != nil {
			logging.Error("Failed to get executable path", "error", err)
			os.Exit(1)
		}

		if err := os.Chdir(filepath.Dir(ex)); err != nil {
			logging.Error("Failed to change directory", "error", err)
			os.Exit(1)
		}

		// A missing .env is fine, defaults cover every variable
		_ = godotenv.Load()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error("Configuration error", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogRetentionWeeks, cfg.MaxLogFileSize)

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		logging.Error("Failed to open database", "error", err, "path", cfg.DatabasePath)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error("Failed to close database", "error", err)
		}
	}()

	statsContainer := data.NewStatsContainer()
	statsContainer.SetServerStartTime(time.Now())

	handler := handlers.NewHTTPHandler(
		store,
		extractor.NewRuleExtractor(),
		translation.NewDictionary(),
		validation.NewReportValidator(),
		statsContainer,
		health.NewHealthChecker(store, statsContainer),
	)

	sched := scheduler.NewScheduler(store, statsContainer, cfg.ReportRetentionDays)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
