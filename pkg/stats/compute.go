package stats

import (
	"math"
	"sort"
)

// showTally accumulates played episodes for one series.
type showTally struct {
	id    string
	name  string
	count int
	total int
}

// Compute aggregates played items into UserStats.
//
// Watch time covers every played item regardless of type. Only episodes
// are grouped into shows; an episode without a series ID is counted but
// belongs to no show. Percentages are not clamped: a played count above
// the server's total yields more than 100.
func Compute(played []MediaItem, series []SeriesSummary) UserStats {
	totals := make(map[string]int, len(series))
	for _, s := range series {
		if _, seen := totals[s.ID]; !seen {
			totals[s.ID] = clampInt(s.RecursiveItemCount.Int64())
		}
	}

	var (
		out      = UserStats{TopShows: []TopShow{}}
		ticks    int64
		shows    []*showTally
		showByID = make(map[string]*showTally)
	)

	for _, item := range played {
		ticks = addSaturating(ticks, item.RunTimeTicks.Int64())

		switch item.Type {
		case TypeMovie:
			out.MoviesWatched++
			continue
		case TypeEpisode:
			out.EpisodesWatched++
		default:
			continue
		}

		// No series to group under; still counted above.
		if item.SeriesID == "" {
			continue
		}
		show, ok := showByID[item.SeriesID]
		if !ok {
			show = &showTally{id: item.SeriesID, total: totals[item.SeriesID]}
			showByID[item.SeriesID] = show
			shows = append(shows, show)
		}
		if show.name == "" && item.SeriesName != "" {
			show.name = item.SeriesName
		}
		show.count++
	}

	out.TotalWatchTimeMinutes = ticks / TicksPerSecond / 60
	out.SeriesStarted = len(shows)

	for _, show := range shows {
		if show.total > 0 && show.count >= show.total {
			out.SeriesWatched++
		}
		name := show.name
		if name == "" {
			name = UnknownShowName
		}
		out.TopShows = append(out.TopShows, TopShow{
			ID:          show.id,
			Name:        name,
			PlayedCount: show.count,
			TotalCount:  show.total,
			Percentage:  percentage(show.count, show.total),
		})
	}

	// Stable: equal counts keep first-encounter order.
	sort.SliceStable(out.TopShows, func(i, j int) bool {
		return out.TopShows[i].PlayedCount > out.TopShows[j].PlayedCount
	})
	if len(out.TopShows) > TopShowsLimit {
		out.TopShows = out.TopShows[:TopShowsLimit]
	}

	return out
}

// percentage returns count/total*100 rounded half up, or 0 when total is 0.
// The math is exact: 29/200 is 15 even though float64 puts it just below 14.5.
func percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int((int64(count)*200 + int64(total)) / (int64(total) * 2))
}

func addSaturating(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}

func clampInt(v int64) int {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
