// Package v1 implements the native REST API.
package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/vmunix/vidio/internal/metrics"
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest   = "BAD_REQUEST"
	codeNotFound     = "NOT_FOUND"
	codeConflict     = "CONFLICT"
	codeUnauthorized = "UNAUTHORIZED"
	codeRateLimited  = "RATE_LIMITED"
	codeUnavailable  = "SERVICE_UNAVAILABLE"
	codeUpstream     = "UPSTREAM_ERROR"
	codeInternal     = "INTERNAL_ERROR"
)

// Config holds API server configuration.
type Config struct {
	Version string

	// LoginRequests is the number of login attempts allowed per IP per
	// LoginWindow. Zero disables the limit.
	LoginRequests int
	LoginWindow   time.Duration
	Logger        *slog.Logger
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
	log  *slog.Logger
}

// New creates a new v1 API server with the given dependencies.
// Returns an error if required dependencies are missing.
func New(deps ServerDeps, cfg Config) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDependency, err)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Server{deps: deps, cfg: cfg, log: log.With("component", "api")}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	limit := s.loginLimiter()

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
	mux.HandleFunc("GET /api/v1/landing", s.getLanding)

	// Changelog
	mux.HandleFunc("GET /api/v1/changelog", s.listChangelog)
	mux.HandleFunc("GET /api/v1/changelog/{id}", s.getChangelog)
	mux.HandleFunc("POST /api/v1/changelog", s.requireAdmin(s.addChangelog))
	mux.HandleFunc("PUT /api/v1/changelog/{id}", s.requireAdmin(s.updateChangelog))
	mux.HandleFunc("DELETE /api/v1/changelog/{id}", s.requireAdmin(s.deleteChangelog))
	mux.HandleFunc("PUT /api/v1/changelog", s.requireAdmin(s.importChangelog))

	// Settings
	mux.HandleFunc("GET /api/v1/settings", s.listSettings)
	mux.HandleFunc("PUT /api/v1/settings/{key}", s.requireAdmin(s.updateSetting))

	// Admin
	mux.Handle("POST /api/v1/admin/login", limit(http.HandlerFunc(s.adminLogin)))
	mux.HandleFunc("POST /api/v1/admin/logout", s.requireAdmin(s.adminLogout))

	// Jellyfin
	mux.Handle("POST /api/v1/jellyfin/login", limit(s.requireJellyfin(s.jellyfinLogin)))
	mux.HandleFunc("GET /api/v1/stats", s.requireStats(s.getStats))
}

// Handler returns the complete HTTP handler: API routes, /metrics and
// request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metrics.Handler())
	return logRequests(mux, s.log)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON reads a JSON request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, idStr)
	}
	return id, nil
}

// queryInt extracts an optional non-negative integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}
