// Package match ranks candidate names by edit distance for "did you mean"
// suggestions. Both the type resolver and the property binder use it so
// misspelled type names and member paths produce the same style of hint.
package match

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Candidate pairs a name with its computed distance from the query.
type Candidate struct {
	Name     string
	Distance int
}

// Rank computes the Levenshtein distance between query and every candidate
// (case-insensitively) and returns candidates ordered by ascending distance.
// Ties break by shorter name, then lexical order. Duplicate names keep their
// first occurrence.
func Rank(query string, candidates []string) []Candidate {
	lowered := strings.ToLower(query)
	seen := make(map[string]struct{}, len(candidates))
	ranked := make([]Candidate, 0, len(candidates))
	for _, name := range candidates {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		ranked = append(ranked, Candidate{
			Name:     name,
			Distance: levenshtein.ComputeDistance(lowered, strings.ToLower(name)),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Distance != ranked[j].Distance {
			return ranked[i].Distance < ranked[j].Distance
		}
		if len(ranked[i].Name) != len(ranked[j].Name) {
			return len(ranked[i].Name) < len(ranked[j].Name)
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// Closest returns the names of the k best-ranked candidates. A k of zero or
// less returns nil.
func Closest(query string, candidates []string, k int) []string {
	if k <= 0 {
		return nil
	}
	ranked := Rank(query, candidates)
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	names := make([]string, 0, len(ranked))
	for _, c := range ranked {
		names = append(names, c.Name)
	}
	return names
}
