// Package search matches user input against the shows already loaded in the
// store. Nothing here touches the network.
package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
)

// titleIndex implements fuzzy.Source over entry names
type titleIndex struct {
	entries []domain.Entry
}

func (idx titleIndex) String(i int) string { return idx.entries[i].Name() }
func (idx titleIndex) Len() int            { return len(idx.entries) }

// Match is an entry whose title matched a filter query
type Match struct {
	Entry          domain.Entry
	MatchedIndexes []int // Byte offsets in the title, for highlighting
	Score          int   // Higher is better
}

// FilterTitles fuzzy-matches query against entry titles, best match first.
// A blank query matches everything in the original order.
func FilterTitles(query string, entries []domain.Entry) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		matches := make([]Match, len(entries))
		for i, e := range entries {
			matches[i] = Match{Entry: e}
		}
		return matches
	}

	found := fuzzy.FindFrom(query, titleIndex{entries: entries})
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{
			Entry:          entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return matches
}

// ResolveGenre maps free-form user input onto one of the known genres.
// "" and "all" resolve to "all". An exact case-insensitive match wins,
// otherwise the closest fuzzy match is used. ok is false when nothing matches.
func ResolveGenre(input string, genres []string) (genre string, ok bool) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "all") {
		return "all", true
	}

	for _, g := range genres {
		if strings.EqualFold(g, input) {
			return g, true
		}
	}

	ranks := lfuzzy.RankFindNormalizedFold(input, genres)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Stable(ranks)
	return ranks[0].Target, true
}
