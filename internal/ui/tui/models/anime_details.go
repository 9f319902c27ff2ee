package models

import (
	"strconv"
	"strings"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/hypelist/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AnimeDetailsModel displays detailed information about a single anime
type AnimeDetailsModel struct {
	width, height int
	anime         domain.Anime
	viewport      viewport.Model // For scrolling content
}

// NewAnimeDetailsModel creates a new anime details model
func NewAnimeDetailsModel(anime domain.Anime) *AnimeDetailsModel {
	vp := viewport.New(80, 20) // Default size, will be updated in Resize()

	return &AnimeDetailsModel{
		anime:    anime,
		viewport: vp,
	}
}

func (m *AnimeDetailsModel) ViewType() View {
	return ViewAnimeDetails
}

// AnimeID returns the ID of the anime being shown
func (m *AnimeDetailsModel) AnimeID() string {
	return m.anime.ID
}

// SetAnime replaces the anime being shown, e.g. after it was edited
func (m *AnimeDetailsModel) SetAnime(anime domain.Anime) {
	m.anime = anime
	m.viewport.SetContent(m.generateContent())
}

// Init initializes the model
func (m *AnimeDetailsModel) Init() tea.Cmd {
	m.viewport.SetContent(m.generateContent())
	return nil
}

// Update handles messages
func (m *AnimeDetailsModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextAnimeDetails) {
		case kb.ActionMoveUp, kb.ActionMoveDown, kb.ActionPageUp, kb.ActionPageDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case kb.ActionMoveTop:
			m.viewport.GotoTop()
			return m, nil
		case kb.ActionMoveBottom:
			m.viewport.GotoBottom()
			return m, nil
		case kb.ActionEditAnime:
			anime := m.anime
			return m, func() tea.Msg {
				return OpenFormMsg{Mode: FormEdit, Anime: anime}
			}
		case kb.ActionDeleteAnime:
			anime := m.anime
			return m, func() tea.Msg {
				return ConfirmDeleteMsg{Anime: anime}
			}
		}

	case tea.MouseMsg:
		// Handle mouse scrolling
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the anime details view
func (m *AnimeDetailsModel) View() string {
	header := styles.Header(m.width, "Details: "+m.anime.Title.Text)

	keyBindings := []components.KeyBinding{
		{Key: "↑/↓", Desc: "Scroll"},
		{Key: "PgUp/PgDn", Desc: "Page scroll"},
		{Key: "e", Desc: "Edit"},
		{Key: "d", Desc: "Delete"},
		{Key: "Ctrl+h", Desc: "Help"},
		{Key: "Esc", Desc: "Return"},
	}
	footer := components.KeyBindingsBar(m.width, keyBindings)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		styles.ContentBox(m.width-2, m.viewport.View(), 1),
		"",
		footer,
	)
}

// Resize updates the dimensions of the model
func (m *AnimeDetailsModel) Resize(width, height int) {
	m.width = width
	m.height = height

	m.viewport.Width = max(width-4, 1)    // Account for borders/padding
	m.viewport.Height = max(height-10, 1) // Account for header, footer, spacing

	// Regenerate content for the new width
	m.viewport.SetContent(m.generateContent())
}

// generateContent creates the detailed text content for the anime
func (m *AnimeDetailsModel) generateContent() string {
	anime := m.anime
	contentWidth := max(m.width-6, 40)

	var b strings.Builder

	sectionTitleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	field := func(name, value string) {
		if value == "" {
			value = styles.Muted.Render("not set")
		}
		b.WriteString(styles.FieldLabel.Render(name + ": "))
		b.WriteString(value)
		b.WriteString("\n")
	}

	b.WriteString(sectionTitleStyle.Render("Anime Information"))
	b.WriteString("\n\n")

	field("Title", anime.Title.Text)
	if anime.Title.Link != "" {
		field("Link", styles.Url.Render(anime.Title.Link))
	}
	field("Studio", anime.Studio)
	field("Genres", anime.Genres.String())
	field("Hype", strconv.Itoa(anime.Hype))
	field("Start date", anime.StartDate)
	field("Image", anime.Image)
	field("ID", anime.ID)

	b.WriteString("\n")
	b.WriteString(sectionTitleStyle.Render("Description"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(contentWidth).Render(anime.Description))
	b.WriteString("\n")

	return b.String()
}
