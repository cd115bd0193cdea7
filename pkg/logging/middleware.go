package logging

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDMiddleware tags each request with an ID and logs its outcome.
// The ID comes from the X-Request-ID header when the client sends one, so a
// proxy chain keeps one ID end to end; otherwise a fresh UUID is minted.
// Metrics scrapes and static asset requests log at debug so a polling
// dashboard does not drown the console.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"durationMs", time.Since(start).Milliseconds(),
			"remoteAddr", r.RemoteAddr,
		}
		switch {
		case rec.status >= 400:
			ErrorContext(ctx, "request failed", args...)
		case quietPath(r.URL.Path):
			DebugContext(ctx, "request completed", args...)
		default:
			InfoContext(ctx, "request completed", args...)
		}
	})
}

// quietPath reports whether a path is polled routinely: the Prometheus
// scrape endpoint and everything outside the API, which is the static UI.
func quietPath(path string) bool {
	return path == "/metrics" || !strings.HasPrefix(path, "/api/")
}

// statusWriter wraps http.ResponseWriter to capture the status code
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// Flush implements http.Flusher so SSE streams keep flowing through the
// wrapper
func (sw *statusWriter) Flush() {
	if flusher, ok := sw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
