package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/config"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/styles"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/util"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Elapsed time is only shown once an operation has taken longer than this
const showElapsedAfter = time.Second

// LoadingModel is the overlay shown while a collection operation or lookup is waiting on its backend
type LoadingModel struct {
	width, height int
	op            string
	subject       string // What the operation works on, e.g. the anime title
	target        string // Where the request goes
	timeout       time.Duration
	spinner       spinner.Model
	startTime     time.Time
}

// NewLoadingModel creates the overlay for op.  Lookups always go to AniList, everything else to the configured
// backend.
func NewLoadingModel(op, subject string, backend config.BackendConfig, timeout time.Duration) *LoadingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D86FF")).Bold(true)

	target := backendTarget(backend)
	if op == OpLookup {
		target = "AniList"
	}

	return &LoadingModel{
		op:        op,
		subject:   subject,
		target:    target,
		timeout:   timeout,
		spinner:   s,
		startTime: time.Now(),
	}
}

// backendTarget describes where the configured backend keeps the collection
func backendTarget(b config.BackendConfig) string {
	switch b.Type {
	case config.BackendRemote:
		return "remote " + b.URL
	case config.BackendJSONFile:
		return "file " + b.FilePath
	case config.BackendBolt:
		return "database " + b.BoltPath
	}
	return b.Type
}

// operationTitle is the heading for op
func operationTitle(op string) string {
	switch op {
	case OpLoad:
		return "Loading anime list"
	case OpCreate:
		return "Adding anime"
	case OpUpdate:
		return "Saving anime"
	case OpDelete:
		return "Deleting anime"
	case OpLookup:
		return "Searching AniList"
	}
	return "Working"
}

func (m *LoadingModel) ViewType() View {
	return ViewLoading
}

// Op is the operation the overlay is waiting on
func (m *LoadingModel) Op() string {
	return m.op
}

func (m *LoadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update only advances the spinner.  Each tick also redraws the elapsed time.
func (m *LoadingModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}

	log.Trace("Loading overlay ignored message", "op", m.op, "message", fmt.Sprintf("%T", msg))
	return m, nil
}

// status reports how long the operation has been running, and warns once it is close to the timeout
func (m *LoadingModel) status(elapsed time.Duration) string {
	if elapsed < showElapsedAfter {
		return ""
	}

	text := fmt.Sprintf("%ds", int(elapsed.Seconds()))
	if m.timeout > 0 {
		text += fmt.Sprintf(" of %ds", int(m.timeout.Seconds()))
		if elapsed >= m.timeout/2 {
			return styles.Error.Render(text + ".  The backend is slow to answer")
		}
	}
	return styles.Muted.Render(text)
}

func (m *LoadingModel) View() string {
	boxWidth := max(min(m.width-20, 72), min(m.width-4, 40))
	innerWidth := max(boxWidth-8, 10)
	center := lipgloss.NewStyle().Width(innerWidth).Align(lipgloss.Center)

	lines := []string{
		m.spinner.View() + " " + lipgloss.NewStyle().Bold(true).Render(util.TruncateString(m.subject, innerWidth-4)),
		"",
		styles.Muted.Render(util.TruncateString(m.target, innerWidth)),
	}
	if status := m.status(m.GetElapsedTime()); status != "" {
		lines = append(lines, "", status)
	}
	lines = append(lines, "", styles.Success.Render("ctrl+c quits"))

	for i, line := range lines {
		lines[i] = center.Render(line)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#7D56F4")).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(operationTitle(m.op))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#9D86FF")).
		Padding(1, 3).
		Width(boxWidth).
		Render(strings.Join(lines, "\n"))

	return styles.CenteredView(m.width, m.height, lipgloss.JoinVertical(lipgloss.Center, header, box))
}

func (m *LoadingModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// GetElapsedTime returns the time elapsed since the operation started
func (m *LoadingModel) GetElapsedTime() time.Duration {
	return time.Since(m.startTime)
}
