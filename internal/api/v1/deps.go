package v1

import (
	"context"
	"errors"

	"github.com/vmunix/vidio/internal/auth"
	"github.com/vmunix/vidio/internal/changelog"
	"github.com/vmunix/vidio/internal/jellyfin"
	"github.com/vmunix/vidio/internal/landing"
	"github.com/vmunix/vidio/pkg/stats"
)

//go:generate mockgen -source=deps.go -destination=mocks/deps_mock.go -package=mocks

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// StatsFetcher computes viewing statistics for a Jellyfin session.
type StatsFetcher interface {
	Fetch(ctx context.Context, session jellyfin.Session) (*stats.UserStats, error)
}

// JellyfinAPI is the unscoped part of the Jellyfin client the API uses.
type JellyfinAPI interface {
	AuthenticateByName(ctx context.Context, username, password string) (*jellyfin.Session, error)
	PublicInfo(ctx context.Context) (*jellyfin.PublicInfo, error)
}

// ChangelogStore persists changelog entries.
type ChangelogStore interface {
	Add(e *changelog.Entry) error
	Get(id int64) (*changelog.Entry, error)
	List(f changelog.Filter) ([]*changelog.Entry, int, error)
	Update(e *changelog.Entry) error
	Delete(id int64) error
	ReplaceAll(entries []*changelog.Entry) error
	Search(query string, limit int) ([]changelog.Match, error)
}

// SettingsStore persists viewer preferences.
type SettingsStore interface {
	Get(key string) (string, error)
	All() (map[string]string, error)
	Set(key, value string) error
}

// AdminGate issues and checks admin tokens.
type AdminGate interface {
	Enabled() bool
	Login(password string) (*auth.Token, error)
	Check(token string) error
	Logout(token string)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Changelog ChangelogStore
	Settings  SettingsStore
	Landing   *landing.Catalog
	Gate      AdminGate

	// Optional dependencies (nil if Jellyfin is not configured)
	Stats    StatsFetcher
	Jellyfin JellyfinAPI
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Changelog == nil {
		return errors.New("changelog store is required")
	}
	if d.Settings == nil {
		return errors.New("settings store is required")
	}
	if d.Landing == nil {
		return errors.New("landing catalog is required")
	}
	if d.Gate == nil {
		return errors.New("admin gate is required")
	}
	return nil
}
