package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/shady2k/spruthub-mcp-server/internal/instrumentation"
)

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader captures the status code before writing the header.
func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures that a response was written.
func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.written = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter to support http.ResponseController.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Flush implements http.Flusher; SSE streams depend on it.
func (rw *statusRecorder) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// HTTPMetrics creates middleware that records the request count and duration
// for each method/route/status combination.
//
// A nil or disabled provider makes the middleware a pass-through.
func HTTPMetrics(provider *instrumentation.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !provider.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := newStatusRecorder(w)

			next.ServeHTTP(recorder, r)

			provider.Metrics().RecordHTTPRequest(
				r.Context(),
				r.Method,
				routeLabel(r.URL.Path),
				recorder.statusCode,
				time.Since(start),
			)
		})
	}
}

// knownRoutes are the paths the server mounts. Everything else is reported as
// "other" so that scanners cannot inflate the label set.
var knownRoutes = map[string]struct{}{
	"/mcp":     {},
	"/sse":     {},
	"/message": {},
	"/healthz": {},
	"/readyz":  {},
	"/metrics": {},
}

// routeLabel maps a request path to a bounded metric label.
func routeLabel(path string) string {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	if strings.HasPrefix(path, "/mcp/") {
		return "/mcp/:session"
	}
	return "other"
}
