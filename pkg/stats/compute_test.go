package stats

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func episode(seriesID, seriesName string, ticks int64) MediaItem {
	return MediaItem{ID: seriesID + "-ep", Type: TypeEpisode, SeriesID: seriesID, SeriesName: seriesName, RunTimeTicks: FlexInt(ticks)}
}

func episodes(n int, seriesID, seriesName string) []MediaItem {
	items := make([]MediaItem, n)
	for i := range items {
		items[i] = episode(seriesID, seriesName, 0)
		items[i].ID = fmt.Sprintf("%s-%d", seriesID, i)
	}
	return items
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(nil, nil)

	assert.Zero(t, got.SeriesStarted)
	assert.Zero(t, got.SeriesWatched)
	assert.Zero(t, got.EpisodesWatched)
	assert.Zero(t, got.MoviesWatched)
	assert.Zero(t, got.TotalWatchTimeMinutes)
	require.NotNil(t, got.TopShows)
	assert.Empty(t, got.TopShows)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"topShows":[]`)
}

func TestCompute_SingleFullyWatchedSeries(t *testing.T) {
	played := []MediaItem{episode("A", "Show A", 600_000_000)}
	series := []SeriesSummary{{ID: "A", RecursiveItemCount: 1}}

	got := Compute(played, series)

	assert.Equal(t, 1, got.EpisodesWatched)
	assert.Equal(t, 1, got.SeriesStarted)
	assert.Equal(t, 1, got.SeriesWatched)
	assert.Equal(t, int64(1), got.TotalWatchTimeMinutes)
	assert.Equal(t, []TopShow{{ID: "A", Name: "Show A", PlayedCount: 1, TotalCount: 1, Percentage: 100}}, got.TopShows)
}

func TestCompute_ZeroTotalNeverWatched(t *testing.T) {
	played := []MediaItem{episode("A", "Show A", 0)}
	series := []SeriesSummary{{ID: "A", RecursiveItemCount: 0}}

	got := Compute(played, series)

	assert.Equal(t, 1, got.SeriesStarted)
	assert.Zero(t, got.SeriesWatched)
	require.Len(t, got.TopShows, 1)
	assert.Zero(t, got.TopShows[0].Percentage)
}

func TestCompute_OrdersByPlayedCount(t *testing.T) {
	played := append(episodes(3, "A", "Three"), episodes(5, "B", "Five")...)

	got := Compute(played, nil)

	require.Len(t, got.TopShows, 2)
	assert.Equal(t, "B", got.TopShows[0].ID)
	assert.Equal(t, 5, got.TopShows[0].PlayedCount)
	assert.Equal(t, "A", got.TopShows[1].ID)
}

func TestCompute_TiesKeepFirstEncounterOrder(t *testing.T) {
	var played []MediaItem
	for _, id := range []string{"C", "A", "B"} {
		played = append(played, episodes(2, id, "Show "+id)...)
	}

	got := Compute(played, nil)

	require.Len(t, got.TopShows, 3)
	assert.Equal(t, "C", got.TopShows[0].ID)
	assert.Equal(t, "A", got.TopShows[1].ID)
	assert.Equal(t, "B", got.TopShows[2].ID)
}

func TestCompute_TruncatesToFive(t *testing.T) {
	var played []MediaItem
	for i := 0; i < 8; i++ {
		played = append(played, episodes(i+1, fmt.Sprintf("S%d", i), "")...)
	}

	got := Compute(played, nil)

	assert.Equal(t, 8, got.SeriesStarted)
	require.Len(t, got.TopShows, TopShowsLimit)
	assert.Equal(t, "S7", got.TopShows[0].ID)
	assert.Equal(t, "S3", got.TopShows[4].ID)
}

func TestCompute_OtherTypesOnlyAddWatchTime(t *testing.T) {
	played := []MediaItem{
		{ID: "x", Type: "Audio", SeriesID: "A", RunTimeTicks: 1_200_000_000},
		{ID: "s", Type: TypeSeries, SeriesID: "A", RunTimeTicks: 600_000_000},
	}

	got := Compute(played, nil)

	assert.Equal(t, int64(3), got.TotalWatchTimeMinutes)
	assert.Zero(t, got.EpisodesWatched)
	assert.Zero(t, got.MoviesWatched)
	assert.Zero(t, got.SeriesStarted)
	assert.Empty(t, got.TopShows)
}

func TestCompute_MoviesAndWatchTime(t *testing.T) {
	played := []MediaItem{
		{ID: "m1", Type: TypeMovie, RunTimeTicks: 72_000_000_000}, // 2h
		{ID: "m2", Type: TypeMovie},
		episode("A", "Show A", 25*60*TicksPerSecond+59*TicksPerSecond),
	}

	got := Compute(played, nil)

	assert.Equal(t, 2, got.MoviesWatched)
	assert.Equal(t, 1, got.EpisodesWatched)
	// 120m + 25m59s floors to 145m.
	assert.Equal(t, int64(145), got.TotalWatchTimeMinutes)
	assert.Equal(t, 145*time.Minute, got.WatchTime())
}

func TestCompute_UnknownSeriesHasZeroTotal(t *testing.T) {
	played := episodes(2, "ghost", "Ghost Show")
	series := []SeriesSummary{{ID: "other", RecursiveItemCount: 10}}

	got := Compute(played, series)

	assert.Equal(t, 1, got.SeriesStarted)
	assert.Zero(t, got.SeriesWatched)
	require.Len(t, got.TopShows, 1)
	assert.Equal(t, 2, got.TopShows[0].PlayedCount)
	assert.Zero(t, got.TopShows[0].TotalCount)
	assert.Zero(t, got.TopShows[0].Percentage)
}

func TestCompute_NameResolution(t *testing.T) {
	played := []MediaItem{
		episode("A", "", 0),
		episode("A", "Late Name", 0),
		episode("A", "Ignored", 0),
		episode("B", "", 0),
	}

	got := Compute(played, nil)

	require.Len(t, got.TopShows, 2)
	assert.Equal(t, "Late Name", got.TopShows[0].Name)
	assert.Equal(t, UnknownShowName, got.TopShows[1].Name)
}

func TestCompute_PercentageRoundsAndPassesThrough(t *testing.T) {
	tests := []struct {
		name    string
		played  int
		total   int64
		want    int
		watched int
	}{
		{"one third", 1, 3, 33, 0},
		{"two thirds", 2, 3, 67, 0},
		{"half rounds up", 1, 8, 13, 0},
		{"exact half with no float error", 29, 200, 15, 0},
		{"complete", 4, 4, 100, 1},
		{"inconsistent upstream", 6, 4, 150, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(episodes(tt.played, "A", "A"), []SeriesSummary{{ID: "A", RecursiveItemCount: FlexInt(tt.total)}})
			require.Len(t, got.TopShows, 1)
			assert.Equal(t, tt.want, got.TopShows[0].Percentage)
			assert.Equal(t, tt.watched, got.SeriesWatched)
		})
	}
}

func TestCompute_FirstSeriesSummaryWins(t *testing.T) {
	series := []SeriesSummary{{ID: "A", RecursiveItemCount: 2}, {ID: "A", RecursiveItemCount: 50}}

	got := Compute(episodes(2, "A", "A"), series)

	assert.Equal(t, 2, got.TopShows[0].TotalCount)
	assert.Equal(t, 1, got.SeriesWatched)
}

func TestCompute_EpisodeWithoutSeriesID(t *testing.T) {
	played := []MediaItem{{ID: "orphan", Type: TypeEpisode, RunTimeTicks: 600_000_000}}

	got := Compute(played, nil)

	assert.Equal(t, 1, got.EpisodesWatched)
	assert.Equal(t, int64(1), got.TotalWatchTimeMinutes)
	assert.Zero(t, got.SeriesStarted)
	assert.Empty(t, got.TopShows)
}

func TestCompute_DecodedMalformedNumerics(t *testing.T) {
	raw := `[
		{"Id":"1","Type":"Episode","SeriesId":"A","SeriesName":"A","RunTimeTicks":"600000000"},
		{"Id":"2","Type":"Episode","SeriesId":"A","RunTimeTicks":"garbage"},
		{"Id":"3","Type":"Movie","RunTimeTicks":null},
		{"Id":"4","Type":"Movie","RunTimeTicks":-5},
		{"Id":"5","Type":"Movie","RunTimeTicks":{"nested":true}}
	]`
	var played []MediaItem
	require.NoError(t, json.Unmarshal([]byte(raw), &played))

	var series []SeriesSummary
	require.NoError(t, json.Unmarshal([]byte(`[{"Id":"A","RecursiveItemCount":"x"}]`), &series))

	got := Compute(played, series)

	assert.Equal(t, int64(1), got.TotalWatchTimeMinutes)
	assert.Equal(t, 2, got.EpisodesWatched)
	assert.Equal(t, 3, got.MoviesWatched)
	assert.Zero(t, got.SeriesWatched)
	assert.Zero(t, got.TopShows[0].TotalCount)
}

func TestCompute_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	types := []ItemType{TypeEpisode, TypeEpisode, TypeEpisode, TypeMovie, TypeSeries, "Audio"}

	for round := 0; round < 200; round++ {
		var played []MediaItem
		for i := rng.Intn(60); i > 0; i-- {
			played = append(played, MediaItem{
				ID:           fmt.Sprint(i),
				Type:         types[rng.Intn(len(types))],
				SeriesID:     fmt.Sprintf("s%d", rng.Intn(9)),
				RunTimeTicks: FlexInt(rng.Int63n(30 * 60 * TicksPerSecond)),
			})
		}
		var series []SeriesSummary
		for i := 0; i < 9; i++ {
			if rng.Intn(3) > 0 {
				series = append(series, SeriesSummary{ID: fmt.Sprintf("s%d", i), RecursiveItemCount: FlexInt(rng.Intn(8))})
			}
		}

		got := Compute(played, series)

		require.LessOrEqual(t, len(got.TopShows), TopShowsLimit)
		require.LessOrEqual(t, got.SeriesWatched, got.SeriesStarted)
		for i := 1; i < len(got.TopShows); i++ {
			require.GreaterOrEqual(t, got.TopShows[i-1].PlayedCount, got.TopShows[i].PlayedCount)
		}

		var episodesSeen, moviesSeen int
		for _, it := range played {
			switch it.Type {
			case TypeEpisode:
				episodesSeen++
			case TypeMovie:
				moviesSeen++
			}
		}
		require.Equal(t, episodesSeen, got.EpisodesWatched)
		require.Equal(t, moviesSeen, got.MoviesWatched)
	}
}
