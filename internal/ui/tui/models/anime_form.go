package models

import (
	"errors"
	"strings"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/hypelist/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form fields in tab order.  The description is a textarea and always comes last.
const (
	fieldTitle = iota
	fieldLink
	fieldStudio
	fieldGenres
	fieldHype
	fieldStartDate
	fieldImage
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldTitle:       "Title *",
	fieldLink:        "Link",
	fieldStudio:      "Studio *",
	fieldGenres:      "Genres *",
	fieldHype:        "Hype",
	fieldStartDate:   "Start date",
	fieldImage:       "Image URL",
	fieldDescription: "Description *",
}

var fieldPlaceholders = [fieldCount]string{
	fieldTitle:       "Frieren: Beyond Journey's End",
	fieldLink:        "https://anilist.co/anime/...",
	fieldStudio:      "Madhouse",
	fieldGenres:      "Adventure, Drama, Fantasy",
	fieldHype:        "0-10",
	fieldStartDate:   "2023-09-29",
	fieldImage:       "https://...",
	fieldDescription: "What is it about?",
}

const labelWidth = 15

// AnimeFormModel edits a single draft.  The add and edit flows each get their own instance, so a half written new
// anime survives editing another one.
type AnimeFormModel struct {
	mode          FormMode
	id            string // ID of the anime being edited
	width, height int
	inputs        [fieldDescription]textinput.Model
	description   textarea.Model
	focus         int
	err           error
	notice        string
	canLookup     bool
}

// NewAnimeFormModel creates a form pre-filled with draft.  Lookups are offered when canLookup is set and the form
// creates a new anime.
func NewAnimeFormModel(mode FormMode, id string, draft domain.Draft, canLookup bool) *AnimeFormModel {
	m := &AnimeFormModel{
		mode:      mode,
		id:        id,
		canLookup: canLookup && mode == FormCreate,
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 500
		m.inputs[i] = ti
	}
	m.inputs[fieldHype].CharLimit = 3

	ta := textarea.New()
	ta.Placeholder = fieldPlaceholders[fieldDescription]
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	m.description = ta

	m.SetDraft(draft)
	return m
}

func (m *AnimeFormModel) ViewType() View {
	return ViewAnimeForm
}

// Mode reports whether the form creates or edits an anime
func (m *AnimeFormModel) Mode() FormMode {
	return m.mode
}

// Init focuses the current field
func (m *AnimeFormModel) Init() tea.Cmd {
	return m.setFocus(m.focus)
}

// Resize updates the dimensions of the form and its inputs
func (m *AnimeFormModel) Resize(width, height int) {
	m.width = width
	m.height = height

	inputWidth := max(width-labelWidth-12, 10)
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}
	m.description.SetWidth(inputWidth)
	m.description.SetHeight(max(min(height-len(m.inputs)-16, 10), 3))
}

// Draft builds the draft described by the current field values
func (m *AnimeFormModel) Draft() domain.Draft {
	studio := m.inputs[fieldStudio].Value()
	hype := m.inputs[fieldHype].Value()
	description := m.description.Value()
	image := m.inputs[fieldImage].Value()
	startDate := m.inputs[fieldStartDate].Value()

	return domain.Draft{}.
		WithTitle(m.inputs[fieldTitle].Value(), m.inputs[fieldLink].Value()).
		WithGenres(m.inputs[fieldGenres].Value()).
		WithScalars(domain.ScalarPatch{
			Studio:      &studio,
			Hype:        &hype,
			Description: &description,
			Image:       &image,
			StartDate:   &startDate,
		})
}

// SetDraft overwrites every field with the values of draft
func (m *AnimeFormModel) SetDraft(draft domain.Draft) {
	m.inputs[fieldTitle].SetValue(draft.Title.Text)
	m.inputs[fieldLink].SetValue(draft.Title.Link)
	m.inputs[fieldStudio].SetValue(draft.Studio)
	m.inputs[fieldGenres].SetValue(draft.Genres)
	m.inputs[fieldHype].SetValue(draft.Hype)
	m.inputs[fieldStartDate].SetValue(draft.StartDate)
	m.inputs[fieldImage].SetValue(draft.Image)
	m.description.SetValue(draft.Description)
}

// ApplyLookup fills the form from an AniList match.  Fields the match has no value for keep what the user typed.
func (m *AnimeFormModel) ApplyLookup(draft domain.Draft) {
	fill := func(field int, value string) {
		if value != "" {
			m.inputs[field].SetValue(value)
		}
	}
	fill(fieldTitle, draft.Title.Text)
	fill(fieldLink, draft.Title.Link)
	fill(fieldStudio, draft.Studio)
	fill(fieldGenres, draft.Genres)
	fill(fieldHype, draft.Hype)
	fill(fieldStartDate, draft.StartDate)
	fill(fieldImage, draft.Image)
	if draft.Description != "" {
		m.description.SetValue(draft.Description)
	}

	m.err = nil
	m.notice = "Filled from AniList.  Check the values and save with ctrl+s."
}

// SetError shows err above the form.  The field values are left alone so nothing typed is lost.
func (m *AnimeFormModel) SetError(err error) {
	m.err = err
	m.notice = ""
}

// Update handles messages
func (m *AnimeFormModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocused(msg)
	}

	switch kb.GetActionByKey(keyMsg, kb.ContextAnimeForm) {
	case kb.ActionNextField:
		// Arrow keys move between lines of the description before leaving it
		if keyMsg.String() == "down" && m.focus == fieldDescription &&
			m.description.Line() < m.description.LineCount()-1 {
			break
		}
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case kb.ActionPrevField:
		if keyMsg.String() == "up" && m.focus == fieldDescription && m.description.Line() > 0 {
			break
		}
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case kb.ActionSubmitForm:
		return m, m.submit()
	case kb.ActionLookupAnime:
		return m, m.requestLookup()
	case kb.ActionClearFormErr:
		m.err = nil
		m.notice = ""
		return m, Handled("form:clear_error")
	}

	return m, m.updateFocused(msg)
}

// submit validates the draft before handing it to the app, so missing fields are reported without a backend call
func (m *AnimeFormModel) submit() tea.Cmd {
	draft := m.Draft()
	if err := draft.Validate(); err != nil {
		log.Debug("Form not submitted", "mode", m.mode, "error", err)
		m.SetError(err)
		return Handled("form:invalid")
	}

	m.err = nil
	mode, id := m.mode, m.id
	return func() tea.Msg {
		return SubmitFormMsg{Mode: mode, ID: id, Draft: draft}
	}
}

func (m *AnimeFormModel) requestLookup() tea.Cmd {
	if !m.canLookup {
		m.SetError(errors.New("AniList lookup is only available when adding an anime"))
		return Handled("form:lookup_unavailable")
	}

	title := strings.TrimSpace(m.inputs[fieldTitle].Value())
	if title == "" {
		m.SetError(errors.New("enter a title to look up"))
		return Handled("form:lookup_no_title")
	}

	return func() tea.Msg {
		return LookupRequestMsg{Title: title}
	}
}

func (m *AnimeFormModel) setFocus(field int) tea.Cmd {
	m.focus = field
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.description.Blur()

	if field == fieldDescription {
		return m.description.Focus()
	}
	return m.inputs[field].Focus()
}

func (m *AnimeFormModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == fieldDescription {
		m.description, cmd = m.description.Update(msg)
	} else {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return cmd
}

// View renders the form
func (m *AnimeFormModel) View() string {
	title := "Add Anime"
	if m.mode == FormEdit {
		title = "Edit Anime: " + m.inputs[fieldTitle].Value()
	}
	header := styles.Header(m.width, title)

	labelStyle := styles.FieldLabel.Width(labelWidth)
	focusedLabelStyle := labelStyle.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7D56F4"))

	var rows []string
	for i := 0; i < fieldCount; i++ {
		style := labelStyle
		if i == m.focus {
			style = focusedLabelStyle
		}

		var input string
		if i == fieldDescription {
			input = m.description.View()
		} else {
			input = m.inputs[i].View()
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, style.Render(fieldLabels[i]), " ", input))
	}

	var message string
	switch {
	case m.err != nil:
		message = styles.Error.Render(m.err.Error())
	case m.notice != "":
		message = styles.Success.Render(m.notice)
	default:
		message = styles.Muted.Render("Fields marked * are required.  Genres are separated by commas.")
	}

	keyBindings := []components.KeyBinding{
		{Key: "Tab/Shift+Tab", Desc: "Move between fields"},
		{Key: "Ctrl+s", Desc: "Save"},
	}
	if m.canLookup {
		keyBindings = append(keyBindings, components.KeyBinding{Key: "Ctrl+l", Desc: "AniList lookup"})
	}
	keyBindings = append(keyBindings, components.KeyBinding{Key: "Esc", Desc: "Cancel"})

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		" "+message,
		"",
		styles.ContentBox(m.width-2, strings.Join(rows, "\n"), 1),
		"",
		components.KeyBindingsBar(m.width, keyBindings),
	)
}
