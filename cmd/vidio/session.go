package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/vidio/internal/config"
	"github.com/vmunix/vidio/internal/jellyfin"
)

// sessionPath is where login state is persisted; tests point it elsewhere.
var sessionPath = config.SessionPath

// Session is the CLI's persisted login state, keyed by server URL so that
// switching --server does not reuse another server's credentials.
type Session struct {
	Server   string            `toml:"server"`
	Jellyfin *jellyfin.Session `toml:"jellyfin,omitempty"`
	Admin    *AdminSession     `toml:"admin,omitempty"`
}

type AdminSession struct {
	Token     string    `toml:"token"`
	ExpiresAt time.Time `toml:"expires_at"`
}

// Valid reports whether the admin token is present and unexpired at now.
func (a *AdminSession) Valid(now time.Time) bool {
	return a != nil && a.Token != "" && now.Before(a.ExpiresAt)
}

// loadSession reads the session file. A missing file, or one written for a
// different server, yields an empty session for server.
func loadSession(server string) (*Session, error) {
	s := &Session{Server: server}
	data, err := os.ReadFile(sessionPath())
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var stored Session
	if _, err := toml.Decode(string(data), &stored); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", sessionPath(), err)
	}
	if stored.Server != server {
		return s, nil
	}
	return &stored, nil
}

// save writes the session with owner-only permissions. An empty session
// removes the file.
func (s *Session) save() error {
	path := sessionPath()
	if s.Jellyfin == nil && s.Admin == nil {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing session: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding session: %w", err)
	}
	return f.Close()
}

// requireJellyfin returns the saved Jellyfin session or tells the user to log in.
func (s *Session) requireJellyfin() (jellyfin.Session, error) {
	if s.Jellyfin == nil || !s.Jellyfin.Valid() {
		return jellyfin.Session{}, errors.New("not logged in to Jellyfin; run 'vidio login'")
	}
	return *s.Jellyfin, nil
}

// adminClient returns a client carrying the saved admin token.
func (s *Session) adminClient() (*Client, error) {
	if !s.Admin.Valid(time.Now()) {
		return nil, errors.New("admin session missing or expired; run 'vidio admin login'")
	}
	return NewClient(s.Server).WithAdminToken(s.Admin.Token), nil
}
