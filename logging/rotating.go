package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingLogger writes log output to weekly files with a size cap and
// retention-based cleanup. Files are named app-<year>-W<week>.log; when the
// size cap is hit, a numbered overflow file is started for the same week.
type RotatingLogger struct {
	logDir      string
	retention   time.Duration
	maxFileSize int64

	mu          sync.Mutex
	currentFile *os.File
	currentWeek string
	currentSize int64
	overflowSeq int

	ctx         context.Context
	cancel      context.CancelFunc
	cleanupDone chan struct{}
}

// NewRotatingLogger creates a rotating logger writing into logDir.
func NewRotatingLogger(logDir string, retentionWeeks int, maxFileSize int64) *RotatingLogger {
	ctx, cancel := context.WithCancel(context.Background())
	return &RotatingLogger{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		ctx:         ctx,
		cancel:      cancel,
		cleanupDone: make(chan struct{}),
	}
}

// getWeekKey returns the week key in YYYY-Www format (ISO week)
func getWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// doRotate opens the log file for targetWeek (caller must hold mu)
func (rl *RotatingLogger) doRotate(targetWeek string, sizeRotation bool) error {
	if rl.currentFile != nil {
		if err := rl.currentFile.Close(); err != nil {
			slog.Warn("Failed to close log file during rotation", "error", err)
		}
	}

	if targetWeek != rl.currentWeek {
		rl.overflowSeq = 0
	}
	if sizeRotation {
		rl.overflowSeq++
	}

	fileName := fmt.Sprintf("app-%s.log", targetWeek)
	if rl.overflowSeq > 0 {
		fileName = fmt.Sprintf("app-%s_%02d.log", targetWeek, rl.overflowSeq)
	}

	logPath := filepath.Join(rl.logDir, fileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	rl.currentFile = file
	rl.currentWeek = targetWeek
	rl.currentSize = 0
	if info, err := os.Stat(logPath); err == nil {
		rl.currentSize = info.Size()
	}

	return nil
}

// Write writes data to the current log file, rotating first when the week
// changed or the size cap would be exceeded.
func (rl *RotatingLogger) Write(p []byte) (n int, err error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	week := getWeekKey(time.Now())
	weekChanged := rl.currentWeek != week
	sizeExceeded := rl.maxFileSize > 0 && rl.currentSize+int64(len(p)) > rl.maxFileSize

	if rl.currentFile == nil || weekChanged || sizeExceeded {
		if err := rl.doRotate(week, sizeExceeded && !weekChanged); err != nil {
			return 0, err
		}
	}

	n, err = rl.currentFile.Write(p)
	rl.currentSize += int64(n)
	return n, err
}

// cleanupOldLogs removes log files older than the retention period
func (rl *RotatingLogger) cleanupOldLogs() error {
	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := time.Now().Add(-rl.retention)
	deleted := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "app-") || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(rl.logDir, entry.Name())); err == nil {
				deleted++
			}
		}
	}

	if deleted > 0 {
		// Console only, logging here would recurse into Write
		fmt.Printf("Cleaned up %d old log files\n", deleted)
	}

	return nil
}

// Close stops the cleanup goroutine and closes the current file
func (rl *RotatingLogger) Close() error {
	rl.cancel()

	select {
	case <-rl.cleanupDone:
	case <-time.After(5 * time.Second):
		fmt.Println("Warning: log cleanup goroutine did not shut down gracefully")
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.currentFile != nil {
		return rl.currentFile.Close()
	}
	return nil
}

// SetupLogger configures slog to log to both console and rotating file.
// Console gets text format, the file gets JSON for easier parsing.
func SetupLogger(logDir string, retentionWeeks int, maxFileSize int64) *slog.Logger {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		consoleLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		consoleLogger.Error("Failed to create logs directory", "error", err)
		return consoleLogger
	}

	rotatingLogger := NewRotatingLogger(logDir, retentionWeeks, maxFileSize)

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		defer close(rotatingLogger.cleanupDone)

		for {
			select {
			case <-rotatingLogger.ctx.Done():
				return
			case <-ticker.C:
				if err := rotatingLogger.cleanupOldLogs(); err != nil {
					slog.Warn("Failed to cleanup old logs", "error", err)
				}
			}
		}
	}()

	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	fileHandler := slog.NewJSONHandler(rotatingLogger, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	return slog.New(&multiHandler{
		handlers: []slog.Handler{consoleHandler, fileHandler},
	})
}

// multiHandler implements slog.Handler to write to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}
