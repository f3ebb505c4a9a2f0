package logging

import (
	"log/slog"
	"os"
)

type LoggingService struct {
	Logger *slog.Logger
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger instance
func InitLogger(logDir string, retentionWeeks int, maxFileSize int64) {
	DefaultLoggingService = &LoggingService{
		Logger: SetupLogger(logDir, retentionWeeks, maxFileSize),
	}
	slog.SetDefault(DefaultLoggingService.Logger)
}

// fallback returns a console logger for use before InitLogger has run
func fallback(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// Logger returns the configured logger, or a console fallback before
// InitLogger has run
func Logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return fallback(slog.LevelInfo)
	}
	return DefaultLoggingService.Logger
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelInfo).Info(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelError).Error(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Error(msg, args...)
}

func Warn(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelWarn).Warn(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelDebug).Debug(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Debug(msg, args...)
}
