// internal/api/v1/types.go
package v1

import (
	"time"

	"github.com/vmunix/vidio/internal/changelog"
	"github.com/vmunix/vidio/internal/landing"
)

// StatusResponse is the response for GET /status.
type StatusResponse struct {
	Status   string         `json:"status"`
	Version  string         `json:"version"`
	Admin    bool           `json:"admin_enabled"`
	Jellyfin JellyfinStatus `json:"jellyfin"`
}

// JellyfinStatus reports upstream reachability.
type JellyfinStatus struct {
	Configured   bool   `json:"configured"`
	Reachable    bool   `json:"reachable"`
	ServerName   string `json:"server_name,omitempty"`
	Version      string `json:"version,omitempty"`
	BreakerState string `json:"breaker_state,omitempty"`
	Error        string `json:"error,omitempty"`
}

// LandingResponse is the response for GET /landing.
type LandingResponse struct {
	landing.Copy
	RevealImage string   `json:"reveal_image"`
	Languages   []string `json:"languages"`
}

// ListChangelogResponse is the response for GET /changelog.
type ListChangelogResponse struct {
	Items  []*changelog.Entry `json:"items"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

// SearchChangelogResponse is the response for GET /changelog?q=.
type SearchChangelogResponse struct {
	Query string            `json:"query"`
	Items []changelog.Match `json:"items"`
}

// ChangelogRequest is the body for POST /changelog.
type ChangelogRequest struct {
	Version     string     `json:"version"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// UpdateChangelogRequest is the body for PUT /changelog/{id}.
// Nil fields are left unchanged.
type UpdateChangelogRequest struct {
	Version     *string    `json:"version,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Body        *string    `json:"body,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// ImportChangelogRequest is the body for PUT /changelog. It replaces every
// existing entry.
type ImportChangelogRequest struct {
	Entries []ChangelogRequest `json:"entries"`
}

// ImportChangelogResponse is the response for PUT /changelog.
type ImportChangelogResponse struct {
	Imported int `json:"imported"`
}

// SettingRequest is the body for PUT /settings/{key}.
type SettingRequest struct {
	Value string `json:"value"`
}

// SettingResponse is the response for PUT /settings/{key}.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AdminLoginRequest is the body for POST /admin/login.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// JellyfinLoginRequest is the body for POST /jellyfin/login.
type JellyfinLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
