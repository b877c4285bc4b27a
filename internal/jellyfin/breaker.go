package jellyfin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/vmunix/vidio/internal/metrics"
	"github.com/vmunix/vidio/pkg/stats"
)

var _ API = (*BreakerClient)(nil)

// BreakerConfig tunes the circuit breaker around a Client.
type BreakerConfig struct {
	Name                string
	ConsecutiveFailures uint32        // failures that open the circuit
	OpenTimeout         time.Duration // time spent open before probing
	HalfOpenRequests    uint32        // trial requests allowed while half-open
}

// DefaultBreakerConfig returns the production breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:                "jellyfin-api",
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
		HalfOpenRequests:    3,
	}
}

// BreakerClient wraps a Client with a circuit breaker so an unreachable
// server fails fast instead of tying up every stats request.
// Rejected credentials do not count as failures.
type BreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[any]
	name   string
}

// NewBreakerClient wraps client.
func NewBreakerClient(client *Client, cfg BreakerConfig, log *slog.Logger) *BreakerClient {
	def := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = def.ConsecutiveFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = def.HalfOpenRequests
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "jellyfin-breaker")

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    time.Minute,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrUnauthorized) ||
				errors.Is(err, ErrInvalidSession) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerClient{client: client, cb: cb, name: cfg.Name}
}

// State returns the breaker state name ("closed", "half-open", "open").
func (b *BreakerClient) State() string {
	return b.cb.State().String()
}

func (b *BreakerClient) execute(fn func() (any, error)) (any, error) {
	res, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return res, err
}

// AuthenticateByName implements API.
func (b *BreakerClient) AuthenticateByName(ctx context.Context, username, password string) (*Session, error) {
	res, err := b.execute(func() (any, error) {
		return b.client.AuthenticateByName(ctx, username, password)
	})
	if err != nil {
		return nil, err
	}
	return res.(*Session), nil
}

// PlayedItems implements API.
func (b *BreakerClient) PlayedItems(ctx context.Context, s Session) ([]stats.MediaItem, error) {
	res, err := b.execute(func() (any, error) {
		return b.client.PlayedItems(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return res.([]stats.MediaItem), nil
}

// AllSeries implements API.
func (b *BreakerClient) AllSeries(ctx context.Context, s Session) ([]stats.SeriesSummary, error) {
	res, err := b.execute(func() (any, error) {
		return b.client.AllSeries(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return res.([]stats.SeriesSummary), nil
}

// PublicInfo implements API.
func (b *BreakerClient) PublicInfo(ctx context.Context) (*PublicInfo, error) {
	res, err := b.execute(func() (any, error) {
		return b.client.PublicInfo(ctx)
	})
	if err != nil {
		return nil, err
	}
	return res.(*PublicInfo), nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
