package models

import (
	"fmt"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/config"
	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/service"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AnimeListModel handles displaying and interacting with the anime list
type AnimeListModel struct {
	config        *config.Config
	animeService  *service.AnimeService
	timeout       time.Duration
	width, height int
	loaded        bool  // At least one load has finished, successfully or not
	loadError     error // Error from the most recent load, cleared by the next successful one
	cursor        int
	allAnime      []domain.Anime // Copy of the collection taken on the last refresh
	filteredAnime []domain.Anime // allAnime after applying the search query

	searchMode  bool
	searchInput textinput.Model
	searchQuery string

	// Outcome of the last operation, shown in the status line
	status        string
	statusIsError bool
}

// NewAnimeListModel creates a new anime list model
func NewAnimeListModel(cfg *config.Config, animeService *service.AnimeService, timeout time.Duration) *AnimeListModel {
	ti := textinput.New()
	ti.Placeholder = "Search anime..."
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return &AnimeListModel{
		config:        cfg,
		animeService:  animeService,
		timeout:       timeout,
		searchInput:   ti,
		allAnime:      []domain.Anime{},
		filteredAnime: []domain.Anime{},
	}
}

func (m *AnimeListModel) ViewType() View {
	return ViewAnimeList
}

// Init initializes the model.  The first load is started by the app so it can show the loading screen.
func (m *AnimeListModel) Init() tea.Cmd {
	return nil
}

// Resize updates the model with new dimensions
func (m *AnimeListModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// Refresh copies the current collection out of the store and re-applies the search filter
func (m *AnimeListModel) Refresh() {
	m.allAnime = m.animeService.GetAnimeList()
	m.applyFilters()
}

// SelectByID moves the cursor onto the anime with the given ID if it is visible
func (m *AnimeListModel) SelectByID(id string) {
	for i, anime := range m.filteredAnime {
		if anime.ID == id {
			m.cursor = i
			return
		}
	}
}

// SetStatus records the outcome of an operation for the status line
func (m *AnimeListModel) SetStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusIsError = false
}

// SetError records a failed operation for the status line
func (m *AnimeListModel) SetError(op string, err error) {
	m.status = fmt.Sprintf("Failed to %s anime: %v", op, err)
	m.statusIsError = true
}

// View renders the anime list model
func (m *AnimeListModel) View() string {
	if m.loadError != nil && len(m.allAnime) == 0 {
		errorMsg := fmt.Sprintf("Error loading anime list: %v\n\nPress 'r' to retry.", m.loadError)
		return styles.CenteredView(
			m.width,
			m.height,
			styles.ContentBox(m.width-20, errorMsg, 1),
		)
	}

	header := styles.Header(m.width, "Hypelist - Anime List")
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		m.renderSearchStatus(),
		"",
		m.renderAnimeList(),
		m.renderStatusLine(),
		m.renderFooter(),
	)
}

// getSelectedAnime returns the currently selected anime or nil if none
func (m *AnimeListModel) getSelectedAnime() *domain.Anime {
	if len(m.filteredAnime) == 0 || m.cursor >= len(m.filteredAnime) {
		return nil
	}
	anime := m.filteredAnime[m.cursor]
	return &anime
}
