package models

import (
	"errors"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/config"
	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/PizzaHomicide/hypelist/internal/repository/anilist"
	"github.com/PizzaHomicide/hypelist/internal/service"
	kb "github.com/PizzaHomicide/hypelist/internal/ui/tui/keybindings"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel is the main application model that coordinates all child models.  It is the high level wrapper.
type AppModel struct {
	config        *config.Config
	activeView    View  // Track the current active 'main view'
	activeModal   Modal // Track the current active 'modal overlay' if any
	width, height int

	// Models used for various views
	animeListModel *AnimeListModel
	detailsModel   *AnimeDetailsModel
	addFormModel   *AnimeFormModel // Kept until a create succeeds so a cancelled add can be resumed
	editFormModel  *AnimeFormModel
	activeForm     FormMode
	helpModel      *HelpModel
	menuModel      *MenuModel
	loadingModel   *LoadingModel // Non-nil while a blocking operation is in flight

	// Services used for fetching and updating state
	animeService *service.AnimeService
	lookup       *anilist.Lookup
	timeout      time.Duration
}

// NewAppModel creates a new instance of the main application model.  lookup may be nil, which disables filling the
// add form from AniList.
func NewAppModel(cfg *config.Config, animeService *service.AnimeService, lookup *anilist.Lookup) AppModel {
	timeout := cfg.Backend.Timeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return AppModel{
		config:         cfg,
		activeView:     ViewAnimeList,
		activeModal:    ModalNone,
		animeListModel: NewAnimeListModel(cfg, animeService, timeout),
		helpModel:      NewHelpModel(ViewAnimeList),
		animeService:   animeService,
		lookup:         lookup,
		timeout:        timeout,
	}
}

func (m AppModel) Init() tea.Cmd {
	log.Info("Initialising Hypelist TUI", "backend", m.config.Backend.Type)

	return func() tea.Msg {
		return LoadingMsg{
			Type:      LoadingStart,
			Op:        OpLoad,
			Message:   "Fetching your hype list",
			Operation: loadAnimeListCmd(m.animeService, m.timeout),
		}
	}
}

// Update handles messages and updates the models as appropriate
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextGlobal) {
		case kb.ActionQuit:
			log.Info("Quit command received.  Shutting down...")
			return m, tea.Quit
		case kb.ActionToggleHelp:
			log.Debug("Help requested", "active_view", m.activeView)
			// Disable/toggle modal if one already active
			if m.activeModal != ModalNone {
				m.activeModal = ModalNone
			} else {
				m.helpModel = NewHelpModel(m.activeView)
				m.helpModel.Resize(m.width, m.height)
				m.activeModal = ModalHelp
			}
			return m, nil
		case kb.ActionBack:
			// Handle closing modal when esc is pressed if any is active
			if m.activeModal != ModalNone {
				m.activeModal = ModalNone
				return m, nil
			}
			if m.loadingModel == nil && (m.activeView == ViewAnimeDetails || m.activeView == ViewAnimeForm) {
				log.Debug("Returning to anime list", "from", m.activeView)
				m.activeView = ViewAnimeList
				m.detailsModel = nil
				return m, nil
			}
		}

		// Nothing but quitting is allowed while waiting on the backend
		if m.loadingModel != nil {
			return m, nil
		}

	case tea.WindowSizeMsg:
		log.Debug("Window size changed", "old_width", m.width, "new_width", msg.Width, "old_height", m.height, "new_height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

		// Propagate new window size to all views so they are aware and can render correctly
		for _, child := range m.children() {
			child.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case HandledMsg:
		log.Trace("Key handled", "source", msg.Source)
		return m, nil

	case LoadingMsg:
		if msg.Type == LoadingStart {
			m.loadingModel = NewLoadingModel(msg.Op, msg.Message, m.config.Backend, m.timeout)
			m.loadingModel.Resize(m.width, m.height)
			return m, tea.Batch(m.loadingModel.Init(), msg.Operation)
		}
		m.stopLoading()
		return m, nil

	case spinner.TickMsg:
		if m.loadingModel == nil {
			return m, nil
		}
		model, cmd := m.loadingModel.Update(msg)
		m.loadingModel = model.(*LoadingModel)
		return m, cmd

	case FileChangedMsg:
		log.Info("Collection file changed outside hypelist.  Reloading")
		return m, loadAnimeListCmd(m.animeService, m.timeout)

	case AnimeListLoadedMsg:
		m.stopLoading()
		m.syncDetails()
		return m.updateAnimeListView(msg)

	case AnimeListErrorMsg:
		m.stopLoading()
		return m.updateAnimeListView(msg)

	case AnimeDetailsMsg:
		m.detailsModel = NewAnimeDetailsModel(msg.Anime)
		m.detailsModel.Resize(m.width, m.height)
		m.activeView = ViewAnimeDetails
		return m, m.detailsModel.Init()

	case OpenFormMsg:
		return m.openForm(msg)

	case SubmitFormMsg:
		return m.submitForm(msg)

	case LookupRequestMsg:
		if m.lookup == nil {
			if form := m.currentForm(); form != nil {
				form.SetError(errors.New("AniList lookup is not available"))
			}
			return m, nil
		}
		return m, func() tea.Msg {
			return LoadingMsg{
				Type:      LoadingStart,
				Op:        OpLookup,
				Message:   msg.Title,
				Operation: lookupAnimeCmd(m.lookup, m.timeout, msg.Title),
			}
		}

	case LookupCompletedMsg:
		m.stopLoading()
		if form := m.currentForm(); form != nil {
			form.ApplyLookup(msg.Draft)
		}
		return m, nil

	case ConfirmDeleteMsg:
		m.menuModel = NewConfirmDeleteMenu(msg.Anime)
		m.menuModel.Resize(m.width, m.height)
		m.activeModal = ModalConfirm
		return m, m.menuModel.Init()

	case MenuClosedMsg:
		m.activeModal = ModalNone
		return m, nil

	case DeleteConfirmedMsg:
		m.activeModal = ModalNone
		return m, func() tea.Msg {
			return LoadingMsg{
				Type:      LoadingStart,
				Op:        OpDelete,
				Message:   msg.Anime.Title.Text,
				Operation: deleteAnimeCmd(m.animeService, m.timeout, msg.Anime),
			}
		}

	case AnimeCreatedMsg:
		m.stopLoading()
		// The draft has been stored, so the next add starts from an empty form
		m.addFormModel = nil
		m.activeView = ViewAnimeList
		m.animeListModel.Refresh()
		m.animeListModel.SelectByID(msg.Anime.ID)
		m.animeListModel.SetStatus("Added %q", msg.Anime.Title.Text)
		return m, nil

	case AnimeUpdatedMsg:
		m.stopLoading()
		m.editFormModel = nil
		m.animeListModel.Refresh()
		m.animeListModel.SetStatus("Saved %q", msg.Anime.Title.Text)
		if m.detailsModel != nil && m.detailsModel.AnimeID() == msg.Anime.ID {
			m.detailsModel.SetAnime(msg.Anime)
			m.activeView = ViewAnimeDetails
		} else {
			m.activeView = ViewAnimeList
		}
		return m, nil

	case AnimeDeletedMsg:
		m.stopLoading()
		if !msg.Deleted {
			return m, nil
		}
		m.animeListModel.Refresh()
		m.animeListModel.SetStatus("Deleted %q", msg.Anime.Title.Text)
		if m.detailsModel != nil && m.detailsModel.AnimeID() == msg.Anime.ID {
			m.detailsModel = nil
			m.activeView = ViewAnimeList
		}
		return m, nil

	case OperationErrorMsg:
		m.stopLoading()
		log.Warn("Operation failed", "op", msg.Op, "error", msg.Error)
		// Form errors stay on the form so the user can correct the draft and retry
		if form := m.currentForm(); form != nil && m.activeView == ViewAnimeForm && msg.Op != OpDelete {
			form.SetError(msg.Error)
			return m, nil
		}
		m.animeListModel.SetError(msg.Op, msg.Error)
		return m, nil
	}

	// Prioritise delegating messages to a modal if one is active
	switch m.activeModal {
	case ModalHelp:
		return m.updateHelpModal(msg)
	case ModalConfirm:
		return m.updateMenuModal(msg)
	}

	// Delegate message processing to the active view
	switch m.activeView {
	case ViewAnimeList:
		return m.updateAnimeListView(msg)
	case ViewAnimeDetails:
		return m.updateDetailsView(msg)
	case ViewAnimeForm:
		return m.updateFormView(msg)
	}

	return m, nil
}

func (m AppModel) View() string {
	// A blocking operation takes precedence over everything else
	if m.loadingModel != nil {
		return m.loadingModel.View()
	}

	// If there is an active modal it takes precedence
	switch m.activeModal {
	case ModalHelp:
		return m.helpModel.View()
	case ModalConfirm:
		return m.menuModel.View()
	}

	// Else display the actual view
	switch m.activeView {
	case ViewAnimeList:
		return m.animeListModel.View()
	case ViewAnimeDetails:
		return m.detailsModel.View()
	case ViewAnimeForm:
		if form := m.currentForm(); form != nil {
			return form.View()
		}
	}
	return "Unknown view\nPress ctrl+c to quit."
}

// children returns every child model that currently exists
func (m AppModel) children() []Model {
	children := []Model{m.animeListModel, m.helpModel}
	if m.detailsModel != nil {
		children = append(children, m.detailsModel)
	}
	if m.addFormModel != nil {
		children = append(children, m.addFormModel)
	}
	if m.editFormModel != nil {
		children = append(children, m.editFormModel)
	}
	if m.menuModel != nil {
		children = append(children, m.menuModel)
	}
	if m.loadingModel != nil {
		children = append(children, m.loadingModel)
	}
	return children
}

func (m *AppModel) stopLoading() {
	if m.loadingModel == nil {
		return
	}
	log.Debug("Operation finished", "op", m.loadingModel.Op(), "elapsed", m.loadingModel.GetElapsedTime())
	m.loadingModel = nil
}

// syncDetails keeps the details view in step with a reloaded collection
func (m *AppModel) syncDetails() {
	if m.detailsModel == nil {
		return
	}
	anime, ok := m.animeService.GetAnimeByID(m.detailsModel.AnimeID())
	if !ok {
		m.detailsModel = nil
		if m.activeView == ViewAnimeDetails {
			m.activeView = ViewAnimeList
		}
		return
	}
	m.detailsModel.SetAnime(anime)
}

// currentForm returns the form for the flow that was opened last, or nil if it has been closed
func (m AppModel) currentForm() *AnimeFormModel {
	if m.activeForm == FormEdit {
		return m.editFormModel
	}
	return m.addFormModel
}

func (m AppModel) openForm(msg OpenFormMsg) (tea.Model, tea.Cmd) {
	switch msg.Mode {
	case FormCreate:
		if m.addFormModel == nil {
			m.addFormModel = NewAnimeFormModel(FormCreate, "", domain.Draft{}, m.lookup != nil)
			m.addFormModel.Resize(m.width, m.height)
		}
	case FormEdit:
		// Editing always starts from the stored record
		m.editFormModel = NewAnimeFormModel(FormEdit, msg.Anime.ID, domain.EditDraftFrom(msg.Anime).Draft, false)
		m.editFormModel.Resize(m.width, m.height)
	}

	log.Debug("Opening anime form", "mode", msg.Mode, "id", msg.Anime.ID)
	m.activeForm = msg.Mode
	m.activeView = ViewAnimeForm
	return m, m.currentForm().Init()
}

func (m AppModel) submitForm(msg SubmitFormMsg) (tea.Model, tea.Cmd) {
	var operation tea.Cmd
	var op string
	switch msg.Mode {
	case FormCreate:
		op, operation = OpCreate, createAnimeCmd(m.animeService, m.timeout, msg.Draft)
	case FormEdit:
		op, operation = OpUpdate, updateAnimeCmd(m.animeService, m.timeout, msg.ID, msg.Draft)
	default:
		return m, nil
	}

	title := msg.Draft.Title.Text
	return m, func() tea.Msg {
		return LoadingMsg{Type: LoadingStart, Op: op, Message: title, Operation: operation}
	}
}

// updateAnimeListView delegates message processing to the anime list model
func (m AppModel) updateAnimeListView(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.animeListModel.Update(msg)
	m.animeListModel = model.(*AnimeListModel)
	return m, cmd
}

func (m AppModel) updateDetailsView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.detailsModel == nil {
		m.activeView = ViewAnimeList
		return m, nil
	}
	model, cmd := m.detailsModel.Update(msg)
	m.detailsModel = model.(*AnimeDetailsModel)
	return m, cmd
}

func (m AppModel) updateFormView(msg tea.Msg) (tea.Model, tea.Cmd) {
	form := m.currentForm()
	if form == nil {
		m.activeView = ViewAnimeList
		return m, nil
	}
	_, cmd := form.Update(msg)
	return m, cmd
}

func (m AppModel) updateHelpModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.helpModel.Update(msg)
	m.helpModel = model.(*HelpModel)
	return m, cmd
}

func (m AppModel) updateMenuModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.menuModel.Update(msg)
	m.menuModel = model.(*MenuModel)
	return m, cmd
}
