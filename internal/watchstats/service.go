// Package watchstats fetches a user's viewing history and aggregates it.
package watchstats

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/vidio/internal/jellyfin"
	"github.com/vmunix/vidio/internal/metrics"
	"github.com/vmunix/vidio/pkg/stats"
)

var (
	// ErrFetchPlayed indicates the played items could not be fetched.
	ErrFetchPlayed = errors.New("fetch played items")

	// ErrFetchSeries indicates the series list could not be fetched.
	ErrFetchSeries = errors.New("fetch series")
)

// Source provides the two lists the aggregation needs.
type Source interface {
	PlayedItems(ctx context.Context, s jellyfin.Session) ([]stats.MediaItem, error)
	AllSeries(ctx context.Context, s jellyfin.Session) ([]stats.SeriesSummary, error)
}

// Service computes UserStats from a Source.
type Service struct {
	source Source
	log    *slog.Logger
}

// NewService creates a stats service.
func NewService(source Source, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		source: source,
		log:    log.With("component", "watchstats"),
	}
}

// Fetch retrieves both lists concurrently and aggregates them.
// On any fetch failure it returns a nil result and an error wrapping
// ErrFetchPlayed or ErrFetchSeries together with the cause.
func (s *Service) Fetch(ctx context.Context, session jellyfin.Session) (*stats.UserStats, error) {
	start := time.Now()

	var (
		played []stats.MediaItem
		series []stats.SeriesSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.source.PlayedItems(gctx, session)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFetchPlayed, err)
		}
		played = items
		return nil
	})
	g.Go(func() error {
		all, err := s.source.AllSeries(gctx, session)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFetchSeries, err)
		}
		series = all
		return nil
	})

	if err := g.Wait(); err != nil {
		metrics.StatsComputations.WithLabelValues("failure").Inc()
		s.log.Warn("stats fetch failed", "user_id", session.UserID, "error", err)
		return nil, err
	}

	result := stats.Compute(played, series)
	metrics.StatsComputations.WithLabelValues("success").Inc()

	s.log.Debug("stats computed",
		"user_id", session.UserID,
		"played", len(played),
		"series", len(series),
		"duration_ms", time.Since(start).Milliseconds())

	return &result, nil
}
