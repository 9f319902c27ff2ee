package models

// anime_list_input.go manages user input handling for the anime list view.
// It contains the main Update method to process tea.Msg events and turns key presses into
// navigation, search input or requests for the app to open another view.

import (
	"github.com/PizzaHomicide/hypelist/internal/log"
	kb "github.com/PizzaHomicide/hypelist/internal/ui/tui/keybindings"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
func (m *AnimeListModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// If in search mode, handle input differently
		if m.searchMode {
			return m, m.handleSearchModeKeyMsg(msg)
		}
		return m, m.handleKeyPress(msg)

	case AnimeListLoadedMsg:
		m.loaded = true
		m.loadError = nil
		m.Refresh()
		return m, nil

	case AnimeListErrorMsg:
		log.Debug("Anime list load error", "error", msg.Error)
		// The store keeps its previous list, so the view keeps showing it
		m.loaded = true
		m.loadError = msg.Error
		m.status = "Failed to load anime list: " + msg.Error.Error()
		m.statusIsError = true
		return m, nil
	}

	return m, nil
}

func (m *AnimeListModel) handleSearchModeKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextSearchMode) {
	case kb.ActionBack:
		// Cancels search, clearing the filter
		m.clearSearch()
		return Handled("search:exit")
	case kb.ActionSearchComplete:
		m.searchMode = false
		m.searchInput.Blur()
		m.searchQuery = m.searchInput.Value()
		m.applyFilters()
		return Handled("search:apply")
	}

	// Let the text input model handle other keys
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Apply filters as we type
	m.searchQuery = m.searchInput.Value()
	m.applyFilters()

	return cmd
}

// handleKeyPress processes keyboard inputs in normal mode
func (m *AnimeListModel) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextAnimeList) {
	case kb.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return Handled("cursor_move:up")
	case kb.ActionMoveDown:
		if len(m.filteredAnime) > 0 && m.cursor < len(m.filteredAnime)-1 {
			m.cursor++
		}
		return Handled("cursor_move:down")
	case kb.ActionPageUp:
		m.cursor = max(m.cursor-m.visibleRows(), 0)
		return Handled("cursor_move:page_up")
	case kb.ActionPageDown:
		m.cursor = max(min(m.cursor+m.visibleRows(), len(m.filteredAnime)-1), 0)
		return Handled("cursor_move:page_down")
	case kb.ActionMoveTop:
		m.cursor = 0
		return Handled("cursor_move:top")
	case kb.ActionMoveBottom:
		m.cursor = max(len(m.filteredAnime)-1, 0)
		return Handled("cursor_move:bottom")
	case kb.ActionEnableSearch:
		m.searchMode = true
		return m.searchInput.Focus()
	case kb.ActionRefreshAnimeList:
		m.status = ""
		return func() tea.Msg {
			return LoadingMsg{
				Type:      LoadingStart,
				Op:        OpLoad,
				Message:   "Reloading your hype list",
				Operation: loadAnimeListCmd(m.animeService, m.timeout),
			}
		}
	case kb.ActionAddAnime:
		return func() tea.Msg {
			return OpenFormMsg{Mode: FormCreate}
		}
	case kb.ActionViewAnimeDetails:
		anime := m.getSelectedAnime()
		if anime == nil {
			return Handled("view_anime_details:none_selected")
		}
		return func() tea.Msg {
			return AnimeDetailsMsg{Anime: *anime}
		}
	case kb.ActionEditAnime:
		anime := m.getSelectedAnime()
		if anime == nil {
			return Handled("edit_anime:none_selected")
		}
		return func() tea.Msg {
			return OpenFormMsg{Mode: FormEdit, Anime: *anime}
		}
	case kb.ActionDeleteAnime:
		anime := m.getSelectedAnime()
		if anime == nil {
			return Handled("delete_anime:none_selected")
		}
		return func() tea.Msg {
			return ConfirmDeleteMsg{Anime: *anime}
		}
	}

	return nil
}
