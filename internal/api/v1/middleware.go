package v1

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/vmunix/vidio/internal/auth"
	"github.com/vmunix/vidio/internal/metrics"
)

// requireAdmin wraps a handler and returns 401 unless the request carries a
// valid admin bearer token.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.BearerToken(r.Header.Get("Authorization"))
		if err := s.deps.Gate.Check(token); err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "Admin token required")
			return
		}
		next(w, r)
	}
}

// requireJellyfin wraps a handler and returns 503 if Jellyfin is not configured.
func (s *Server) requireJellyfin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Jellyfin == nil {
			writeError(w, http.StatusServiceUnavailable, codeUnavailable, "Jellyfin not configured")
			return
		}
		next(w, r)
	}
}

// requireStats wraps a handler and returns 503 if the stats service is not configured.
func (s *Server) requireStats(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Stats == nil {
			writeError(w, http.StatusServiceUnavailable, codeUnavailable, "Jellyfin not configured")
			return
		}
		next(w, r)
	}
}

// loginLimiter limits login attempts per client IP.
func (s *Server) loginLimiter() func(http.Handler) http.Handler {
	if s.cfg.LoginRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	window := s.cfg.LoginWindow
	if window <= 0 {
		window = time.Minute
	}
	return httprate.Limit(
		s.cfg.LoginRequests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusTooManyRequests, codeRateLimited, "Too many login attempts")
		}),
	)
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written { // Only capture first WriteHeader call
		r.status = code
		r.written = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.written = true
	return r.ResponseWriter.Write(b)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		elapsed := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(wrapped.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method).Observe(elapsed.Seconds())

		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}
