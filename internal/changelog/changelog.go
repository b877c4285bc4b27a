// Package changelog stores the "what's new" entries shown to viewers.
package changelog

import (
	"strings"
	"time"
)

// Entry is a single release note.
type Entry struct {
	ID          int64     `json:"id"`
	Version     string    `json:"version"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter specifies pagination for listing entries.
type Filter struct {
	Limit  int // 0 = no limit
	Offset int
}

func (e *Entry) validate() error {
	e.Version = strings.TrimSpace(e.Version)
	e.Title = strings.TrimSpace(e.Title)
	if e.Version == "" {
		return invalid("version is required")
	}
	if e.Title == "" {
		return invalid("title is required")
	}
	return nil
}
