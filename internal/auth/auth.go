// Package auth gates admin endpoints behind a single bcrypt-hashed password.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDisabled is returned when no admin password is configured.
	ErrDisabled = errors.New("admin mode disabled")

	// ErrInvalidCredentials is returned for a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for unknown or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// DefaultTokenTTL is used when the gate is created with a zero TTL.
const DefaultTokenTTL = 12 * time.Hour

// Token is an issued admin session.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Gate issues and validates admin tokens.
type Gate struct {
	hash []byte
	ttl  time.Duration
	now  func() time.Time
	log  *slog.Logger

	mu     sync.Mutex
	tokens map[string]time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Gate) { g.log = log }
}

// NewGate creates a gate for the given bcrypt hash. An empty hash disables
// admin mode; every Login then returns ErrDisabled.
func NewGate(passwordHash string, ttl time.Duration, opts ...Option) *Gate {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	g := &Gate{
		hash:   []byte(passwordHash),
		ttl:    ttl,
		now:    time.Now,
		log:    slog.Default(),
		tokens: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Enabled reports whether an admin password is configured.
func (g *Gate) Enabled() bool {
	return len(g.hash) > 0
}

// Login verifies password and issues a new token.
func (g *Gate) Login(password string) (*Token, error) {
	if !g.Enabled() {
		return nil, ErrDisabled
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		g.log.Warn("admin login failed")
		return nil, ErrInvalidCredentials
	}

	t := &Token{
		Token:     uuid.NewString(),
		ExpiresAt: g.now().Add(g.ttl),
	}
	g.mu.Lock()
	g.tokens[t.Token] = t.ExpiresAt
	g.mu.Unlock()

	g.log.Info("admin login", "expires_at", t.ExpiresAt)
	return t, nil
}

// Check validates a token. Expired tokens are removed.
func (g *Gate) Check(token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	exp, ok := g.tokens[token]
	if !ok {
		return ErrInvalidToken
	}
	if !g.now().Before(exp) {
		delete(g.tokens, token)
		return ErrInvalidToken
	}
	return nil
}

// Logout revokes a token. Unknown tokens are ignored.
func (g *Gate) Logout(token string) {
	g.mu.Lock()
	delete(g.tokens, token)
	g.mu.Unlock()
}

// Sweep removes expired tokens and returns how many were dropped.
func (g *Gate) Sweep() int {
	now := g.now()
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for tok, exp := range g.tokens {
		if !now.Before(exp) {
			delete(g.tokens, tok)
			n++
		}
	}
	return n
}

// Active returns the number of live tokens.
func (g *Gate) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tokens)
}

// RunSweeper calls Sweep every interval until ctx is canceled.
func (g *Gate) RunSweeper(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := g.Sweep(); n > 0 {
				g.log.Debug("swept expired admin tokens", "count", n, "active", g.Active())
			}
		}
	}
}

// HashPassword hashes a password with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
