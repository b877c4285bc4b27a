// Package stats turns a user's played media into viewing statistics.
package stats

import "time"

// ItemType is the Jellyfin item kind ("Episode", "Movie", "Series", ...).
type ItemType string

const (
	TypeEpisode ItemType = "Episode"
	TypeMovie   ItemType = "Movie"
	TypeSeries  ItemType = "Series"
)

const (
	// TicksPerSecond is the media server's runtime resolution (100ns ticks).
	TicksPerSecond = 10_000_000

	// TopShowsLimit caps the number of entries in UserStats.TopShows.
	TopShowsLimit = 5

	// UnknownShowName is used when no episode of a series carries its name.
	UnknownShowName = "Unknown Show"
)

// MediaItem is a played item as reported by the media server.
type MediaItem struct {
	ID           string   `json:"Id"`
	Type         ItemType `json:"Type"`
	SeriesID     string   `json:"SeriesId,omitempty"`
	SeriesName   string   `json:"SeriesName,omitempty"`
	RunTimeTicks FlexInt  `json:"RunTimeTicks,omitempty"`
}

// SeriesSummary carries the episode total the server reports for a series.
type SeriesSummary struct {
	ID                 string  `json:"Id"`
	RecursiveItemCount FlexInt `json:"RecursiveItemCount,omitempty"`
}

// UserStats is the aggregate produced by Compute.
type UserStats struct {
	SeriesStarted         int       `json:"seriesStarted"`
	SeriesWatched         int       `json:"seriesWatched"`
	EpisodesWatched       int       `json:"episodesWatched"`
	MoviesWatched         int       `json:"moviesWatched"`
	TotalWatchTimeMinutes int64     `json:"totalWatchTimeMinutes"`
	TopShows              []TopShow `json:"topShows"`
}

// TopShow is one entry of the most-played ranking.
type TopShow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PlayedCount int    `json:"playedCount"`
	TotalCount  int    `json:"totalCount"`
	Percentage  int    `json:"percentage"`
}

// WatchTime returns the total watch time as a duration.
func (s UserStats) WatchTime() time.Duration {
	return time.Duration(s.TotalWatchTimeMinutes) * time.Minute
}
