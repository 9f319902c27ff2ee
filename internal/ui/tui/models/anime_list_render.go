package models

// anime_list_render.go is responsible for visual representation of the anime list.
// It contains the rendering logic for the list view, including formatting individual
// anime entries, handling pagination and the status line.

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/components"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/styles"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/util"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultTitleWidth = 50
	studioWidth       = 20
	hypeWidth         = 4
)

// visibleRows is how many anime fit on screen below the header, search line, status line and footer
func (m *AnimeListModel) visibleRows() int {
	return max(m.height-14, 1)
}

func (m *AnimeListModel) titleWidth() int {
	if m.config != nil && m.config.UI.TitleWidth > 0 {
		return m.config.UI.TitleWidth
	}
	return defaultTitleWidth
}

// renderAnimeList renders the rows of the filtered anime list that fit on screen
func (m *AnimeListModel) renderAnimeList() string {
	animeList := m.filteredAnime

	if len(animeList) == 0 {
		text := "Your hype list is empty.  Press 'n' to add an anime."
		if !m.loaded {
			text = "Anime list not loaded yet"
		} else if m.searchQuery != "" {
			text = fmt.Sprintf("No anime match %q", m.searchQuery)
		}
		return styles.ContentBox(m.width-2, styles.CenteredText(m.width-6, text), 1)
	}

	visibleCount := min(len(animeList), m.visibleRows())

	// Adjust starting index to keep cursor in view
	startIdx := 0
	if m.cursor >= visibleCount {
		startIdx = m.cursor - visibleCount + 1
	}
	endIdx := min(startIdx+visibleCount, len(animeList))

	// Styles for list items
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Width(m.width-4).
		Padding(0, 1)

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#7D56F4")).
		Width(m.width-4).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Width(m.width-4).
		Padding(0, 1)

	var b strings.Builder

	headerText := fmt.Sprintf("%s %s %*s  %s",
		util.PadRight("Title", m.titleWidth()),
		util.PadRight("Studio", studioWidth),
		hypeWidth, "Hype",
		"Genres")
	b.WriteString(headerStyle.Render(headerText) + "\n")
	b.WriteString(strings.Repeat("─", max(m.width-6, 0)) + "\n")

	for i := startIdx; i < endIdx; i++ {
		itemText := m.formatAnimeListItem(animeList[i])
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(itemText) + "\n")
		} else {
			b.WriteString(normalStyle.Render(itemText) + "\n")
		}
	}

	// Add pagination indicator if needed
	if len(animeList) > visibleCount {
		pagination := fmt.Sprintf("Showing %d-%d of %d", startIdx+1, endIdx, len(animeList))
		b.WriteString(styles.CenteredText(m.width-4, pagination))
	}

	return styles.ContentBox(m.width-2, b.String(), 1)
}

// formatAnimeListItem formats a single anime list item for display
func (m *AnimeListModel) formatAnimeListItem(anime domain.Anime) string {
	title := anime.Title.Text
	if title == "" {
		title = "(untitled)"
	}

	// Whatever is left after the fixed columns goes to the genres
	genresWidth := max(m.width-8-m.titleWidth()-studioWidth-hypeWidth-5, 10)

	return fmt.Sprintf("%s %s %*d  %s",
		util.PadRight(util.FirstLine(title), m.titleWidth()),
		util.PadRight(util.FirstLine(anime.Studio), studioWidth),
		hypeWidth, anime.Hype,
		util.TruncateString(anime.Genres.String(), genresWidth))
}

func (m *AnimeListModel) renderStatusLine() string {
	switch {
	case m.status == "":
		return ""
	case m.statusIsError:
		return styles.Error.Render(" " + m.status)
	default:
		return styles.Success.Render(" " + m.status)
	}
}

func (m *AnimeListModel) renderFooter() string {
	if m.searchMode {
		return components.KeyBindingsBar(m.width, []components.KeyBinding{
			{Key: "Enter", Desc: "Apply"},
			{Key: "Esc", Desc: "Clear search"},
		})
	}
	return components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "↑/↓", Desc: "Navigate"},
		{Key: "Enter", Desc: "Details"},
		{Key: "/", Desc: "Search"},
		{Key: "n", Desc: "Add"},
		{Key: "e", Desc: "Edit"},
		{Key: "d", Desc: "Delete"},
		{Key: "r", Desc: "Reload"},
		{Key: "Ctrl+h", Desc: "Help"},
	})
}
