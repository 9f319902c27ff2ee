package models

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/config"
	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository keeps records in memory and counts the calls made to it
type fakeRepository struct {
	records   []domain.Anime
	createErr error
	updateErr error
	calls     map[string]int
}

func newFakeRepository(records ...domain.Anime) *fakeRepository {
	return &fakeRepository{records: records, calls: map[string]int{}}
}

func (r *fakeRepository) List(ctx context.Context) ([]domain.Anime, error) {
	r.calls["list"]++
	return append([]domain.Anime{}, r.records...), nil
}

func (r *fakeRepository) Create(ctx context.Context, anime domain.Anime) (*domain.Anime, error) {
	r.calls["create"]++
	if r.createErr != nil {
		return nil, r.createErr
	}
	anime.ID = strconv.Itoa(len(r.records) + 100)
	r.records = append(r.records, anime)
	return &anime, nil
}

func (r *fakeRepository) Update(ctx context.Context, id string, anime domain.Anime) (*domain.Anime, error) {
	r.calls["update"]++
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i] = anime
		}
	}
	return nil, nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	r.calls["delete"]++
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func sampleAnime() []domain.Anime {
	return []domain.Anime{
		{ID: "1", Title: domain.Title{Text: "Frieren"}, Studio: "Madhouse", Genres: domain.Genres{"Fantasy"}, Hype: 9, Description: "Elf mage"},
		{ID: "2", Title: domain.Title{Text: "Dandadan"}, Studio: "Science SARU", Genres: domain.Genres{"Action"}, Hype: 7, Description: "Aliens"},
		{ID: "3", Title: domain.Title{Text: "The Apothecary Diaries"}, Studio: "OLM", Genres: domain.Genres{"Mystery"}, Hype: 7, Description: "Poison"},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newLoadedApp returns an app whose collection has been loaded from repo
func newLoadedApp(t *testing.T, repo *fakeRepository) (AppModel, *service.AnimeService) {
	t.Helper()
	svc := service.NewAnimeService(repo)
	app := NewAppModel(&config.Config{}, svc, nil)
	app = update(t, app, tea.WindowSizeMsg{Width: 160, Height: 50})

	msg := app.Init()()
	loading, ok := msg.(LoadingMsg)
	require.True(t, ok, "expected LoadingMsg, got %T", msg)

	require.Equal(t, OpLoad, loading.Op)

	app = update(t, app, loading)
	require.NotNil(t, app.loadingModel)
	require.Equal(t, OpLoad, app.loadingModel.Op())
	app = update(t, app, loading.Operation())
	require.Nil(t, app.loadingModel)
	return app, svc
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	app, ok := next.(AppModel)
	require.True(t, ok)
	return app
}

// run feeds msg to the app and then every message its commands produce.  Loading operations are run in place of the
// batch that starts the spinner.  Commands that don't finish quickly, like cursor blinks, end the run.
func run(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	for i := 0; msg != nil && i < 10; i++ {
		next, cmd := m.Update(msg)
		m = next.(AppModel)

		if loading, ok := msg.(LoadingMsg); ok && loading.Type == LoadingStart {
			cmd = loading.Operation
		}
		if cmd == nil {
			return m
		}
		msg = execute(cmd)
		if _, ok := msg.(tea.BatchMsg); ok {
			return m
		}
	}
	return m
}

func execute(cmd tea.Cmd) tea.Msg {
	result := make(chan tea.Msg, 1)
	go func() {
		result <- cmd()
	}()

	select {
	case msg := <-result:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func TestAppLoadsListOnStart(t *testing.T) {
	app, _ := newLoadedApp(t, newFakeRepository(sampleAnime()...))

	assert.Equal(t, ViewAnimeList, app.activeView)
	assert.Len(t, app.animeListModel.filteredAnime, 3)
	assert.Contains(t, app.View(), "Frieren")
}

func TestSearchFiltersWithoutTouchingTheStore(t *testing.T) {
	repo := newFakeRepository(sampleAnime()...)
	app, svc := newLoadedApp(t, repo)

	app = run(t, app, keyRunes("/"))
	require.True(t, app.animeListModel.searchMode)

	app = run(t, app, keyRunes("DAN"))
	require.Len(t, app.animeListModel.filteredAnime, 1)
	assert.Equal(t, "Dandadan", app.animeListModel.filteredAnime[0].Title.Text)
	assert.Len(t, svc.GetAnimeList(), 3)

	app = run(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, app.animeListModel.searchMode)
	assert.Equal(t, "DAN", app.animeListModel.searchQuery)

	app = run(t, app, keyRunes("/"))
	app = run(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.animeListModel.searchMode)
	assert.Len(t, app.animeListModel.filteredAnime, 3)
	assert.Equal(t, 1, repo.calls["list"])
}

func TestCreateFlowAppendsAndClearsDraft(t *testing.T) {
	repo := newFakeRepository(sampleAnime()...)
	app, svc := newLoadedApp(t, repo)

	app = run(t, app, keyRunes("n"))
	require.Equal(t, ViewAnimeForm, app.activeView)
	require.NotNil(t, app.addFormModel)

	app.addFormModel.SetDraft(domain.Draft{
		Title:       domain.Title{Text: "Kaiju No. 8"},
		Studio:      "Production I.G",
		Genres:      " Action ,Sci-Fi,",
		Hype:        "6",
		Description: "Kaiju",
	})
	app = run(t, app, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, ViewAnimeList, app.activeView)
	assert.Nil(t, app.addFormModel)
	list := svc.GetAnimeList()
	require.Len(t, list, 4)
	assert.Equal(t, "Kaiju No. 8", list[3].Title.Text)
	assert.Equal(t, domain.Genres{"Action", "Sci-Fi"}, list[3].Genres)
	assert.Equal(t, 3, app.animeListModel.cursor)
	assert.Contains(t, app.animeListModel.status, "Kaiju No. 8")
}

func TestCreateWithMissingFieldsMakesNoCall(t *testing.T) {
	repo := newFakeRepository(sampleAnime()...)
	app, svc := newLoadedApp(t, repo)

	app = run(t, app, keyRunes("n"))
	app.addFormModel.SetDraft(domain.Draft{Title: domain.Title{Text: "Only a title"}})
	app = run(t, app, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, ViewAnimeForm, app.activeView)
	assert.True(t, domain.IsValidation(app.addFormModel.err))
	assert.Equal(t, "Only a title", app.addFormModel.Draft().Title.Text)
	assert.Zero(t, repo.calls["create"])
	assert.Len(t, svc.GetAnimeList(), 3)
}

func TestCreateFailureKeepsDraftForRetry(t *testing.T) {
	repo := newFakeRepository(sampleAnime()...)
	repo.createErr = errors.New("backend unavailable")
	app, svc := newLoadedApp(t, repo)

	draft := domain.Draft{
		Title:       domain.Title{Text: "Kaiju No. 8"},
		Studio:      "Production I.G",
		Genres:      "Action",
		Description: "Kaiju",
	}
	app = run(t, app, keyRunes("n"))
	app.addFormModel.SetDraft(draft)
	app = run(t, app, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, ViewAnimeForm, app.activeView)
	require.Error(t, app.addFormModel.err)
	assert.Contains(t, app.addFormModel.err.Error(), "backend unavailable")
	assert.Len(t, svc.GetAnimeList(), 3)

	// Leaving and coming back keeps what was typed
	app = run(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewAnimeList, app.activeView)
	app = run(t, app, keyRunes("n"))
	assert.Equal(t, draft, app.addFormModel.Draft())
}

func TestEditDraftIsIndependentOfAddDraft(t *testing.T) {
	repo := newFakeRepository(sampleAnime()...)
	app, svc := newLoadedApp(t, repo)

	app = run(t, app, keyRunes("n"))
	app.addFormModel.SetDraft(domain.Draft{Title: domain.Title{Text: "Half written"}})
	app = run(t, app, tea.KeyMsg{Type: tea.KeyEsc})

	// Edit the second anime
	app = run(t, app, keyRunes("j"))
	app = run(t, app, keyRunes("e"))
	require.Equal(t, FormEdit, app.activeForm)
	assert.Equal(t, "Dandadan", app.editFormModel.Draft().Title.Text)

	app.editFormModel.SetDraft(app.editFormModel.Draft().WithTitle("Dan Da Dan", ""))
	app = run(t, app, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, ViewAnimeList, app.activeView)
	list := svc.GetAnimeList()
	assert.Equal(t, "2", list[1].ID)
	assert.Equal(t, "Dan Da Dan", list[1].Title.Text)
	assert.Equal(t, "Half written", app.addFormModel.Draft().Title.Text)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	repo := newFakeRepository(sampleAnime()...)
	app, svc := newLoadedApp(t, repo)

	app = run(t, app, keyRunes("d"))
	require.Equal(t, ModalConfirm, app.activeModal)
	assert.Contains(t, app.View(), "Frieren")

	app = run(t, app, keyRunes("n"))
	assert.Equal(t, ModalNone, app.activeModal)
	assert.Zero(t, repo.calls["delete"])
	assert.Len(t, svc.GetAnimeList(), 3)

	// Enter on the default choice keeps the anime too
	app = run(t, app, keyRunes("d"))
	app = run(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Zero(t, repo.calls["delete"])

	app = run(t, app, keyRunes("d"))
	app = run(t, app, keyRunes("y"))
	assert.Equal(t, 1, repo.calls["delete"])
	_, found := svc.GetAnimeByID("1")
	assert.False(t, found)
	assert.Len(t, app.animeListModel.filteredAnime, 2)
}

func TestUpdateFailureLeavesListUnchanged(t *testing.T) {
	repo := newFakeRepository(sampleAnime()...)
	repo.updateErr = errors.New("conflict")
	app, svc := newLoadedApp(t, repo)
	before := svc.GetAnimeList()

	app = run(t, app, keyRunes("e"))
	app.editFormModel.SetDraft(app.editFormModel.Draft().WithGenres("Drama"))
	app = run(t, app, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, ViewAnimeForm, app.activeView)
	assert.Contains(t, app.editFormModel.err.Error(), "conflict")
	assert.Equal(t, before, svc.GetAnimeList())
}

func TestFileChangeReloadsList(t *testing.T) {
	repo := newFakeRepository(sampleAnime()...)
	app, _ := newLoadedApp(t, repo)

	repo.records = repo.records[:1]
	app = run(t, app, FileChangedMsg{})

	assert.Equal(t, 2, repo.calls["list"])
	assert.Len(t, app.animeListModel.filteredAnime, 1)
}

func TestDetailsViewAndHelp(t *testing.T) {
	app, _ := newLoadedApp(t, newFakeRepository(sampleAnime()...))

	app = run(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ViewAnimeDetails, app.activeView)
	assert.Contains(t, app.View(), "Madhouse")

	app = run(t, app, tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Equal(t, ModalHelp, app.activeModal)
	assert.Contains(t, app.View(), "Anime Details")

	app = run(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModalNone, app.activeModal)
	app = run(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewAnimeList, app.activeView)
}

func TestLookupKeepsFieldsAniListLeavesEmpty(t *testing.T) {
	form := NewAnimeFormModel(FormCreate, "", domain.Draft{Hype: "8", Title: domain.Title{Text: "frieren"}}, true)
	form.ApplyLookup(domain.Draft{
		Title:       domain.Title{Text: "Frieren: Beyond Journey's End", Link: "https://anilist.co/anime/154587"},
		Studio:      "Madhouse",
		Genres:      "Adventure, Drama",
		Description: "line one\nline two",
	})

	draft := form.Draft()
	assert.Equal(t, "Frieren: Beyond Journey's End", draft.Title.Text)
	assert.Equal(t, "https://anilist.co/anime/154587", draft.Title.Link)
	assert.Equal(t, "8", draft.Hype)
	assert.Equal(t, "line one\nline two", draft.Description)
	assert.Nil(t, form.err)
}

func TestLookupOnlyOfferedWhenAdding(t *testing.T) {
	form := NewAnimeFormModel(FormEdit, "1", domain.Draft{Title: domain.Title{Text: "Frieren"}}, true)
	_, cmd := form.Update(tea.KeyMsg{Type: tea.KeyCtrlL})

	require.NotNil(t, cmd)
	assert.IsType(t, HandledMsg{}, cmd())
	assert.Error(t, form.err)

	form = NewAnimeFormModel(FormCreate, "", domain.Draft{Title: domain.Title{Text: " Frieren "}}, true)
	_, cmd = form.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, LookupRequestMsg{Title: "Frieren"}, cmd())
}

func TestFormFieldNavigationWraps(t *testing.T) {
	form := NewAnimeFormModel(FormCreate, "", domain.Draft{}, false)
	form.Init()

	form.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldDescription, form.focus)
	form.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldTitle, form.focus)

	form.Update(keyRunes("Frieren"))
	assert.Equal(t, "Frieren", form.Draft().Title.Text)
}
