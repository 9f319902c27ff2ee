package models

// anime_list_filters.go handles narrowing the anime list down with the search query

import (
	"fmt"

	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/PizzaHomicide/hypelist/internal/service"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/styles"
)

// applyFilters rebuilds filteredAnime from allAnime.  The store is never touched, so this is safe to run on every
// keystroke.
func (m *AnimeListModel) applyFilters() {
	m.filteredAnime = service.FilterByTitle(m.allAnime, m.searchQuery)
	log.Trace("Applied search filter", "query", m.searchQuery, "matches", len(m.filteredAnime), "total", len(m.allAnime))

	// Reset cursor if it's out of bounds
	if len(m.filteredAnime) == 0 {
		m.cursor = 0
	} else if m.cursor >= len(m.filteredAnime) {
		m.cursor = len(m.filteredAnime) - 1
	}
}

// clearSearch leaves search mode and shows the whole list again
func (m *AnimeListModel) clearSearch() {
	m.searchMode = false
	m.searchQuery = ""
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.applyFilters()
}

// renderSearchStatus shows the search box while typing, or the active query once it has been applied
func (m *AnimeListModel) renderSearchStatus() string {
	if m.searchMode {
		return styles.SearchStatus.Render(m.searchInput.View())
	}

	prefix := styles.Title.Render("Search:")
	if m.searchQuery == "" {
		return prefix + styles.SearchStatus.Render(fmt.Sprintf("none | %d anime", len(m.allAnime)))
	}
	return prefix + styles.SearchStatus.Render(fmt.Sprintf("%q | %d of %d anime", m.searchQuery, len(m.filteredAnime), len(m.allAnime)))
}
