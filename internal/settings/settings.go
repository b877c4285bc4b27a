// Package settings persists viewer-facing preferences with built-in defaults.
package settings

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Known keys.
const (
	KeyRevealImage = "reveal_image"
)

// DefaultRevealImage is the background shown under the cursor reveal.
const DefaultRevealImage = "https://i.ibb.co/mVqWyZXX/pixar-story-featured.png"

var (
	// ErrUnknownKey indicates the key is not a recognised setting.
	ErrUnknownKey = errors.New("unknown setting")

	// ErrInvalidValue indicates the value failed validation for its key.
	ErrInvalidValue = errors.New("invalid value")
)

type definition struct {
	def      string
	validate func(string) error
}

var definitions = map[string]definition{
	KeyRevealImage: {def: DefaultRevealImage, validate: validateURL},
}

// Keys returns the known setting keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(definitions))
	for k := range definitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store reads and writes settings.
type Store struct {
	db *sql.DB
}

// NewStore creates a new settings store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the stored value for key, or its default when unset.
func (s *Store) Get(key string) (string, error) {
	d, ok := definitions[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return d.def, nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// All returns every known setting with defaults filled in.
func (s *Store) All() (map[string]string, error) {
	out := make(map[string]string, len(definitions))
	for k, d := range definitions {
		out[k] = d.def
	}

	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		// rows for keys dropped in later versions are ignored
		if _, ok := definitions[k]; ok {
			out[k] = v
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return out, nil
}

// Set validates and stores value for key. An empty value restores the default.
func (s *Store) Set(key, value string) error {
	d, ok := definitions[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
			return fmt.Errorf("reset setting %q: %w", key, err)
		}
		return nil
	}
	if err := d.validate(value); err != nil {
		return fmt.Errorf("%w for %s: %w", ErrInvalidValue, key, err)
	}

	_, err := s.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func validateURL(v string) error {
	u, err := url.Parse(v)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
