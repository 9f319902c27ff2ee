package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	kb "github.com/PizzaHomicide/hypelist/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel displays contextual help with scrolling
type HelpModel struct {
	width, height int
	context       View
	viewport      viewport.Model
}

// NewHelpModel creates a new help model for the given context
func NewHelpModel(context View) *HelpModel {
	return &HelpModel{
		context:  context,
		viewport: viewport.New(0, 0),
	}
}

func (m *HelpModel) ViewType() View {
	return ViewHelp
}

// Init initializes the model
func (m *HelpModel) Init() tea.Cmd {
	// Set initial content if dimensions are available
	if m.width > 0 && m.height > 0 {
		m.updateContent()
	}
	return nil
}

// Update handles messages
func (m *HelpModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextHelp) {
		case kb.ActionMoveUp, kb.ActionMoveDown, kb.ActionPageUp, kb.ActionPageDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case kb.ActionMoveTop:
			m.viewport.GotoTop()
			return m, cmd
		case kb.ActionMoveBottom:
			m.viewport.GotoBottom()
			return m, cmd
		}

	}
	return m, cmd
}

// Resize updates the dimensions
func (m *HelpModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Ensure we don't set negative dimensions
	m.viewport.Width = max(width-4, 1)    // Account for borders
	m.viewport.Height = max(height-10, 1) // Account for header, footer, spacing

	// Update content for new dimensions
	m.updateContent()
}

// updateContent generates help content and updates the viewport
func (m *HelpModel) updateContent() {
	m.viewport.SetContent(m.generateHelpContent())
	// Reset to top when content changes
	m.viewport.GotoTop()
}

// View renders the help screen
func (m *HelpModel) View() string {
	header := styles.Header(m.width, "Help: "+m.getContextTitle())

	scrollText := "↑/↓: Scroll • PgUp/PgDn: Page scroll • Home/End: Goto top/bottom • ESC: Return"
	footer := styles.CenteredText(m.width, styles.Info.Render(scrollText))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"", // Spacing
		styles.ContentBox(m.width-2, m.viewport.View(), 1),
		"", // Spacing
		footer,
	)
}

// getContextTitle returns a user-friendly title for the context
func (m *HelpModel) getContextTitle() string {
	switch m.context {
	case ViewAnimeList:
		return "Anime List"
	case ViewAnimeDetails:
		return "Anime Details"
	case ViewAnimeForm:
		return "Anime Form"
	default:
		return "General"
	}
}

// keybindingContext maps the view help was opened from to its keybindings
func (m *HelpModel) keybindingContext() kb.ContextName {
	switch m.context {
	case ViewAnimeList:
		return kb.ContextAnimeList
	case ViewAnimeDetails:
		return kb.ContextAnimeDetails
	case ViewAnimeForm:
		return kb.ContextAnimeForm
	default:
		return ""
	}
}

// formatKeybindingSection formats a section of keybindings with aligned colons
func (m *HelpModel) formatKeybindingSection(title string, bindings []kb.Binding, skipActions map[kb.Action]bool) string {
	if len(bindings) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")

	keyText := func(binding kb.Binding) string {
		text := binding.KeyMap.Primary
		if binding.KeyMap.Secondary != "" {
			text += " or " + binding.KeyMap.Secondary
		}
		return text
	}

	// First pass: determine the maximum key width for alignment
	maxKeyWidth := 0
	for _, binding := range bindings {
		if skipActions[binding.Action] {
			continue
		}
		maxKeyWidth = max(maxKeyWidth, utf8.RuneCountInString(keyText(binding)))
	}

	// Second pass: format each binding with aligned colons
	for _, binding := range bindings {
		if skipActions[binding.Action] {
			continue
		}

		text := keyText(binding)
		padding := strings.Repeat(" ", maxKeyWidth-utf8.RuneCountInString(text))

		b.WriteString(fmt.Sprintf("• %s%s : %s\n",
			lipgloss.NewStyle().Bold(true).Render(text),
			padding,
			binding.KeyMap.Help))
	}

	return b.String()
}

// generateHelpContent builds the complete help content
func (m *HelpModel) generateHelpContent() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

	b.WriteString(titleStyle.Render(m.getContextTitle()))
	b.WriteString("\n\n")
	b.WriteString(m.getContextDescription())
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Keybindings"))
	b.WriteString("\n\n")

	globalBindings := m.formatKeybindingSection("Global commands:", kb.ContextBindings[kb.ContextGlobal], nil)
	b.WriteString(globalBindings)

	// Build a map of global actions to avoid duplicating them in context-specific bindings
	globalActions := make(map[kb.Action]bool)
	for _, binding := range kb.ContextBindings[kb.ContextGlobal] {
		globalActions[binding.Action] = true
	}

	if contextName := m.keybindingContext(); contextName != "" {
		b.WriteString("\n")
		sectionTitle := fmt.Sprintf("%s commands:", m.getContextTitle())
		b.WriteString(m.formatKeybindingSection(sectionTitle, kb.ContextBindings[contextName], globalActions))
	}

	if m.context == ViewAnimeList {
		b.WriteString("\n")
		b.WriteString(m.formatKeybindingSection("When in search mode:", kb.ContextBindings[kb.ContextSearchMode], nil))
		b.WriteString("\n")
		b.WriteString(m.formatKeybindingSection("When confirming a delete:", kb.ContextBindings[kb.ContextConfirm], nil))
	}

	return b.String()
}

// getContextDescription returns help text for the current context
func (m *HelpModel) getContextDescription() string {
	switch m.context {
	case ViewAnimeList:
		return "The anime list shows every anime on your hype list in the order it was added.\n\n" +
			"Search narrows the list down to titles containing the text you type, ignoring case. " +
			"Searching never changes the list itself.\n\n" +
			"Deleting always asks for confirmation first.  If saving to the backend fails, the list is left " +
			"exactly as it was and the error is shown in the status line."

	case ViewAnimeDetails:
		return "The details screen shows everything stored for a single anime, including the full description."

	case ViewAnimeForm:
		return "The form is used both to add a new anime and to edit an existing one.\n\n" +
			"Title, studio, genres and description are required.  Genres are separated by commas and " +
			"surrounding spaces are removed.  Hype is a whole number, anything else is saved as 0.\n\n" +
			"If saving fails the form stays open with everything you typed, so you can fix the problem and " +
			"try again.  When adding an anime, ctrl+l fills the form from the best AniList match for the title."

	default:
		return "Welcome to Hypelist, a terminal UI for keeping track of the anime you are hyped for."
	}
}
