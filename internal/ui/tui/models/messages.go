package models

import (
	"github.com/PizzaHomicide/hypelist/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// HandledMsg tells the app that a key press was consumed by a child model and needs no further processing
type HandledMsg struct {
	Source string
}

// Handled returns a command producing a HandledMsg, so child models can signal that they consumed a key
func Handled(source string) tea.Cmd {
	return func() tea.Msg {
		return HandledMsg{Source: source}
	}
}

// LoadingType distinguishes the start and end of a blocking operation
type LoadingType int

const (
	LoadingStart LoadingType = iota
	LoadingStop
)

// LoadingMsg shows or hides the loading overlay.  Operation is run when loading starts.  Op names the kind of
// operation and Message what it works on.
type LoadingMsg struct {
	Type      LoadingType
	Op        string
	Message   string
	Operation tea.Cmd
}

// AnimeListLoadedMsg is sent when the anime list is loaded
type AnimeListLoadedMsg struct{}

// AnimeListErrorMsg is sent when there's an error loading the anime list.  The previous list is kept.
type AnimeListErrorMsg struct {
	Error error
}

// FileChangedMsg is sent when the collection file was changed by another program
type FileChangedMsg struct{}

// AnimeDetailsMsg asks the app to open the details view for an anime
type AnimeDetailsMsg struct {
	Anime domain.Anime
}

// FormMode says whether a form creates a new record or edits an existing one
type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// OpenFormMsg asks the app to show the add form, or the edit form seeded from Anime
type OpenFormMsg struct {
	Mode  FormMode
	Anime domain.Anime // Only used for FormEdit
}

// SubmitFormMsg is sent by the form when the user saves it
type SubmitFormMsg struct {
	Mode  FormMode
	ID    string // Only set for FormEdit
	Draft domain.Draft
}

// LookupRequestMsg is sent by the form when the user asks for the draft to be filled from AniList
type LookupRequestMsg struct {
	Title string
}

// LookupCompletedMsg carries a draft built from an AniList lookup
type LookupCompletedMsg struct {
	Draft domain.Draft
}

// ConfirmDeleteMsg asks the app to confirm the deletion of an anime
type ConfirmDeleteMsg struct {
	Anime domain.Anime
}

// DeleteConfirmedMsg is sent once the user has agreed to delete the anime
type DeleteConfirmedMsg struct {
	Anime domain.Anime
}

// MenuClosedMsg is sent when a menu is dismissed without choosing anything that does work
type MenuClosedMsg struct{}

// AnimeCreatedMsg is sent after an anime was stored and added to the collection
type AnimeCreatedMsg struct {
	Anime domain.Anime
}

// AnimeUpdatedMsg is sent after an anime was replaced in the collection
type AnimeUpdatedMsg struct {
	Anime domain.Anime
}

// AnimeDeletedMsg is sent after a delete finished.  Deleted is false if the store declined to delete.
type AnimeDeletedMsg struct {
	Anime   domain.Anime
	Deleted bool
}

// OperationErrorMsg is sent when a collection operation or lookup failed.  Nothing has been changed locally.
type OperationErrorMsg struct {
	Op    string
	Error error
}

// Operation names used in LoadingMsg and OperationErrorMsg
const (
	OpLoad   = "load"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpLookup = "lookup"
)
