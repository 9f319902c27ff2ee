package models

import tea "github.com/charmbracelet/bubbletea"

// View represents a specific UI view in the application
type View string

// Available views in the application
const (
	ViewAnimeList    View = "anime-list"
	ViewAnimeDetails View = "anime-detail"
	ViewAnimeForm    View = "anime-form"
	ViewLoading      View = "loading"
	ViewHelp         View = "help"
	ViewMenu         View = "menu"
)

// Modal represents a UI intended to be temporarily shown to the user before returning to the original view
type Modal string

// Available modals in the application
const (
	ModalNone    Modal = "none"
	ModalHelp    Modal = "help"
	ModalConfirm Modal = "confirm"
)

// Model is implemented by every view and modal the AppModel delegates to
type Model interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Model, tea.Cmd)
	View() string
	Resize(width, height int)
	ViewType() View
}
