// Package logging a simple slog logger middleware
package logging

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// responseWriterPool reuses wrapper instances to avoid an allocation per request.
var responseWriterPool = sync.Pool{
	New: func() any {
		return &responseWriterWrapper{
			statusCode: 200,
		}
	},
}

// LoggingMiddleware logs HTTP requests using slog with structured logging
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip logging for probe endpoints
			if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			ww := responseWriterPool.Get().(*responseWriterWrapper)
			ww.ResponseWriter = w
			ww.statusCode = 200
			ww.bytesWritten = 0

			next.ServeHTTP(ww, r)

			duration := time.Since(start)

			requestID, ok := r.Context().Value(middleware.RequestIDKey).(string)
			if !ok || requestID == "" {
				requestID = "unknown"
			}

			logger.InfoContext(r.Context(), "HTTP request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"status_code", ww.statusCode,
				"bytes_written", ww.bytesWritten,
				"duration_ms", duration.Milliseconds(),
			)

			ww.ResponseWriter = nil
			responseWriterPool.Put(ww)
		})
	}
}

// responseWriterWrapper wraps http.ResponseWriter to capture status code and bytes written
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.bytesWritten += n
	return n, err
}
