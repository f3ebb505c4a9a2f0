package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/juju/ratelimit"

	"github.com/giygas/pharmacovigilance-api/config"
	"github.com/giygas/pharmacovigilance-api/handlers"
	"github.com/giygas/pharmacovigilance-api/logging"
)

// RealIPMiddleware extracts the real IP from X-Forwarded-For header
func RealIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// Take the first IP from the comma-separated list
			if idx := strings.Index(xff, ","); idx != -1 {
				xff = xff[:idx]
			}
			r.RemoteAddr = strings.TrimSpace(xff)
		}
		next.ServeHTTP(w, r)
	})
}

// RequestSizeMiddleware limits the size of request headers and body
func RequestSizeMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if contentLength := r.Header.Get("Content-Length"); contentLength != "" {
				if length, err := strconv.ParseInt(contentLength, 10, 64); err == nil {
					if length > int64(cfg.MaxRequestBody) {
						logging.Warn("Request body too large",
							"content_length", length,
							"max_allowed", cfg.MaxRequestBody,
							"remote_addr", r.RemoteAddr,
							"user_agent", r.UserAgent())

						handlers.RespondWithError(w, http.StatusRequestEntityTooLarge,
							fmt.Sprintf("Request body too large. Maximum allowed size is %d bytes", cfg.MaxRequestBody))
						return
					}
				}
			}

			// Rough header size estimate
			headerSize := int64(0)
			for key, values := range r.Header {
				headerSize += int64(len(key))
				for _, value := range values {
					headerSize += int64(len(value))
				}
			}

			if headerSize > int64(cfg.MaxHeaderSize) {
				logging.Warn("Request headers too large",
					"header_size", headerSize,
					"max_allowed", cfg.MaxHeaderSize,
					"remote_addr", r.RemoteAddr,
					"user_agent", r.UserAgent())

				handlers.RespondWithError(w, http.StatusRequestHeaderFieldsTooLarge,
					fmt.Sprintf("Request headers too large. Maximum allowed size is %d bytes", cfg.MaxHeaderSize))
				return
			}

			// Hard cap on the body regardless of Content-Length honesty
			r.Body = http.MaxBytesReader(w, r.Body, int64(cfg.MaxRequestBody))

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter manages per-client rate limiting
type RateLimiter struct {
	clients map[string]*ratelimit.Bucket
	mu      sync.RWMutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*ratelimit.Bucket),
	}
}

func (rl *RateLimiter) getBucket(clientIP string) *ratelimit.Bucket {
	rl.mu.RLock()
	bucket, exists := rl.clients[clientIP]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		if bucket, exists = rl.clients[clientIP]; !exists {
			// Create bucket: 3 tokens per second, max 1000 tokens
			bucket = ratelimit.NewBucketWithRate(3, 1000)
			rl.clients[clientIP] = bucket
		}
		rl.mu.Unlock()
	}

	return bucket
}

// cleanup removes old clients periodically
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(30 * time.Minute)
	go func() {
		for range ticker.C {
			rl.mu.Lock()
			// Remove clients with full buckets
			for ip, bucket := range rl.clients {
				if bucket.Available() == bucket.Capacity() {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
}

var globalRateLimiter = NewRateLimiter()

func init() {
	globalRateLimiter.cleanup()
}

func getTokenCost(r *http.Request) int64 {
	path := r.URL.Path

	switch path {
	case "/process-report":
		return 100 // Extraction plus a database write
	case "/translate":
		return 10
	case "/stats":
		return 10
	case "/health":
		return 5 // Low cost for health check
	case "/metrics":
		return 5
	}

	if path == "/reports" || strings.HasPrefix(path, "/reports/") {
		return 20
	}

	return 20 // Default cost for other endpoints
}

// RateLimitHandler implements rate limiting using token bucket
func RateLimitHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := r.RemoteAddr

		bucket := globalRateLimiter.getBucket(clientIP)

		tokenCost := getTokenCost(r)

		// Add rate limit headers before consuming tokens
		w.Header().Set("X-RateLimit-Limit", "1000")
		w.Header().Set("X-RateLimit-Rate", "3")

		if bucket.TakeAvailable(tokenCost) < tokenCost {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(bucket.Available(), 10))

		next.ServeHTTP(w, r)
	})
}
