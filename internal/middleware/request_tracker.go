package middleware

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/queenswoodclub/booking-backend/internal/store"
)

// RequestTracker stores request metrics in the database
type RequestTracker struct {
	store *store.Store
}

// NewRequestTracker creates a new request tracker middleware
func NewRequestTracker(db *sql.DB) (*RequestTracker, error) {
	s, err := store.New(db)
	if err != nil {
		return nil, err
	}
	return &RequestTracker{store: s}, nil
}

// Middleware returns an HTTP middleware that tracks request metrics
func (rt *RequestTracker) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			durationMs := int(time.Since(start).Milliseconds())

			// Written asynchronously so a slow insert never blocks a response.
			go func(method, path string, status int) {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := rt.store.RecordRequest(ctx, method, path, status, durationMs); err != nil {
					log.Printf("[tracker] failed to record request: %v", err)
				}
			}(r.Method, r.URL.Path, rw.statusCode)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
