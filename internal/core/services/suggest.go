package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

const (
	maxSuggestions        = 3
	maxSuggestionDistance = 3
	customFieldPrefix     = "customfield_"
)

// SuggestFields returns up to limit display names within maxDistance edits
// of token, closest first. Ties are broken alphabetically.
func SuggestFields(token string, catalog *domain.FieldCatalog, limit, maxDistance int) []string {
	if catalog == nil || limit <= 0 {
		return nil
	}

	type scored struct {
		name  string
		score int
	}
	needle := strings.ToLower(token)
	seen := make(map[string]bool)
	var picks []scored
	for _, name := range catalog.IDToName {
		if seen[name] {
			continue
		}
		seen[name] = true
		if d := levenshtein(needle, strings.ToLower(name)); d <= maxDistance {
			picks = append(picks, scored{name: name, score: d})
		}
	}

	sort.Slice(picks, func(i, j int) bool {
		if picks[i].score != picks[j].score {
			return picks[i].score < picks[j].score
		}
		return picks[i].name < picks[j].name
	})
	if len(picks) > limit {
		picks = picks[:limit]
	}

	names := make([]string, len(picks))
	for i, p := range picks {
		names[i] = p.name
	}
	return names
}

// SortFieldsForDisplay orders field ids with system fields before custom
// fields, each group sorted by display name ignoring case.
func SortFieldsForDisplay(ids []string, catalog *domain.FieldCatalog) []string {
	friendly := func(id string) string {
		if name, ok := catalog.Name(id); ok {
			return strings.ToLower(name)
		}
		return strings.ToLower(id)
	}

	sorted := append([]string(nil), ids...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci := strings.HasPrefix(sorted[i], customFieldPrefix)
		cj := strings.HasPrefix(sorted[j], customFieldPrefix)
		if ci != cj {
			return !ci
		}
		fi, fj := friendly(sorted[i]), friendly(sorted[j])
		if fi != fj {
			return fi < fj
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

// levenshtein returns the edit distance between a and b in runes.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
