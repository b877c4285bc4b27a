package changelog

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MinSearchScore is the lowest Jaro-Winkler similarity reported as a match.
	MinSearchScore = 0.70

	defaultSearchLimit = 10
)

// Match is a search hit.
type Match struct {
	Entry *Entry  `json:"entry"`
	Score float64 `json:"score"`
}

// Search fuzzy-matches query against entry titles and versions.
// Results are ordered by score, then newest first. A limit <= 0 uses a default of 10.
func (s *Store) Search(query string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	q := normalize(query)
	if q == "" {
		return []Match{}, nil
	}

	entries, _, err := s.List(Filter{})
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}

	matches := []Match{}
	for _, e := range entries {
		score := max(similarity(q, normalize(e.Title)), similarity(q, normalize(e.Version)))
		if score >= MinSearchScore {
			matches = append(matches, Match{Entry: e, Score: score})
		}
	}

	// entries are already newest first
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// similarity scores query against text, also trying every run of words in
// text with as many words as the query so short queries can hit long titles.
func similarity(query, text string) float64 {
	if text == "" {
		return 0
	}
	if strings.Contains(text, query) {
		return 1
	}
	best := float64(edlib.JaroWinklerSimilarity(query, text))

	words := strings.Fields(text)
	n := len(strings.Fields(query))
	for i := 0; i+n <= len(words); i++ {
		window := strings.Join(words[i:i+n], " ")
		if score := float64(edlib.JaroWinklerSimilarity(query, window)); score > best {
			best = score
		}
	}
	return best
}

// normalize lowercases, strips accents and punctuation, and collapses whitespace.
// Dots survive so versions like "1.2.0" stay intact.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = removeAccents(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
