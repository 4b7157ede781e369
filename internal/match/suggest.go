package match

import (
	"cmp"
	"slices"
)

// MinSimilarity is the IdentSimilarity a candidate needs to be suggested.
const MinSimilarity = 0.7

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit candidates most similar to name, best first.
// Ties keep candidate order.
func Suggest(name string, candidates []string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	var ranked []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := IdentSimilarity(name, c); s >= MinSimilarity {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, r := range ranked[:min(limit, len(ranked))] {
		out = append(out, r.name)
	}

	return out
}
