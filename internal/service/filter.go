package service

import (
	"sort"
	"strings"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterByTitle keeps the anime whose title contains query, ignoring case.  An empty query keeps everything.
// Order is preserved and the input slice is never modified.
func FilterByTitle(list []domain.Anime, query string) []domain.Anime {
	filtered := make([]domain.Anime, 0, len(list))
	if query == "" {
		return append(filtered, list...)
	}

	query = strings.ToLower(query)
	for _, anime := range list {
		// Records with no usable title have an empty Text and simply never match
		if strings.Contains(strings.ToLower(anime.Title.Text), query) {
			filtered = append(filtered, anime)
		}
	}
	return filtered
}

// FuzzySearch ranks the collection by how closely each title fuzzily matches the query, best match first
func (s *AnimeService) FuzzySearch(query string) []domain.Anime {
	list := s.GetAnimeList()
	if query == "" {
		return list
	}

	titles := make([]string, len(list))
	for i, anime := range list {
		titles[i] = anime.Title.Text
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	result := make([]domain.Anime, 0, len(ranks))
	for _, rank := range ranks {
		result = append(result, list[rank.OriginalIndex])
	}
	return result
}
