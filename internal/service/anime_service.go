package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/google/uuid"
)

// Confirmer is asked before a record is deleted.  Returning false cancels the deletion.
type Confirmer func(anime domain.Anime) bool

// AlwaysConfirm is a Confirmer for callers that have already obtained confirmation, e.g. a --yes flag
func AlwaysConfirm(domain.Anime) bool { return true }

// Option configures an AnimeService
type Option func(*AnimeService)

// WithIDGenerator replaces the generator used for records the backend returns without an ID
func WithIDGenerator(fn func() string) Option {
	return func(s *AnimeService) {
		s.newID = fn
	}
}

// AnimeService owns the local copy of the anime collection and keeps it in step with the repository.
// Local state is only changed after the repository call for an operation has succeeded.
type AnimeService struct {
	repo  domain.AnimeRepository
	newID func() string

	mu        sync.RWMutex // Guards animeList
	animeList []domain.Anime

	// Serialises operations so a slow request can't interleave with another mutation.  Readers never take it, so
	// the UI can keep rendering while a request is in flight.
	updateLock sync.Mutex
}

func NewAnimeService(repo domain.AnimeRepository, opts ...Option) *AnimeService {
	s := &AnimeService{
		repo:  repo,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAnimeList returns a copy of the collection in its current order
func (s *AnimeService) GetAnimeList() []domain.Anime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneList(s.animeList)
}

// GetAnimeByID finds an anime in the local collection by its ID
func (s *AnimeService) GetAnimeByID(id string) (domain.Anime, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.animeList[idx].Clone(), true
	}
	return domain.Anime{}, false
}

// Search returns the anime whose title contains the query, ignoring case
func (s *AnimeService) Search(query string) []domain.Anime {
	return FilterByTitle(s.GetAnimeList(), query)
}

// LoadAnimeList fetches the complete collection from the repository and replaces the local copy with it
func (s *AnimeService) LoadAnimeList(ctx context.Context) error {
	s.updateLock.Lock()
	defer s.updateLock.Unlock()

	list, err := s.repo.List(ctx)
	if err != nil {
		log.Error("Failed to load anime list", "error", err)
		return fmt.Errorf("failed to load anime list: %w", err)
	}

	seen := make(map[string]struct{}, len(list))
	loaded := make([]domain.Anime, 0, len(list))
	for _, anime := range list {
		if anime.ID == "" {
			anime.ID = s.newID()
			log.Warn("Loaded anime without an ID.  Assigned a local one", "title", anime.Title.Text, "id", anime.ID)
		}
		if _, dup := seen[anime.ID]; dup {
			log.Warn("Dropping anime with duplicate ID", "id", anime.ID, "title", anime.Title.Text)
			continue
		}
		seen[anime.ID] = struct{}{}
		loaded = append(loaded, anime.Clone())
	}

	s.mu.Lock()
	s.animeList = loaded
	s.mu.Unlock()

	log.Info("Loaded anime list", "count", len(loaded))
	return nil
}

// CreateAnime validates and normalises the draft, stores it in the repository and appends the stored record to the
// collection.  The draft is never modified, so callers keep the user's input when this fails.
func (s *AnimeService) CreateAnime(ctx context.Context, draft domain.NewRecordDraft) (domain.Anime, error) {
	if err := draft.Draft.Validate(); err != nil {
		return domain.Anime{}, err
	}

	s.updateLock.Lock()
	defer s.updateLock.Unlock()

	record := draft.Draft.Normalize()
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		log.Error("Failed to create anime", "title", record.Title.Text, "error", err)
		return domain.Anime{}, fmt.Errorf("failed to create anime: %w", err)
	}

	result := record
	if created != nil {
		result = created.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if result.ID == "" || s.indexOf(result.ID) >= 0 {
		previous := result.ID
		result.ID = s.newID()
		log.Warn("Backend returned a missing or duplicate ID.  Assigned a local one",
			"backend_id", previous, "id", result.ID, "title", result.Title.Text)
	}
	s.animeList = append(s.animeList, result)

	log.Info("Created anime", "id", result.ID, "title", result.Title.Text)
	return result.Clone(), nil
}

// UpdateAnime replaces the record the draft was opened for, keeping its position in the collection
func (s *AnimeService) UpdateAnime(ctx context.Context, draft domain.EditRecordDraft) (domain.Anime, error) {
	s.updateLock.Lock()
	defer s.updateLock.Unlock()

	if _, ok := s.GetAnimeByID(draft.ID); !ok {
		return domain.Anime{}, fmt.Errorf("cannot update anime %q: %w", draft.ID, domain.ErrNotFound)
	}

	if err := draft.Draft.Validate(); err != nil {
		return domain.Anime{}, err
	}

	record := draft.Draft.Normalize()
	record.ID = draft.ID

	updated, err := s.repo.Update(ctx, draft.ID, record)
	if err != nil {
		log.Error("Failed to update anime", "id", draft.ID, "error", err)
		return domain.Anime{}, fmt.Errorf("failed to update anime: %w", err)
	}

	result := record
	if updated != nil {
		result = updated.Clone()
		result.ID = draft.ID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(draft.ID)
	if idx < 0 {
		// Only reachable if a concurrent load dropped the record while the request was in flight
		return domain.Anime{}, fmt.Errorf("cannot update anime %q: %w", draft.ID, domain.ErrNotFound)
	}
	s.animeList[idx] = result

	log.Info("Updated anime", "id", result.ID, "title", result.Title.Text)
	return result.Clone(), nil
}

// DeleteAnime removes a record after asking confirm.  Returns false without contacting the repository when the
// deletion is not confirmed.
func (s *AnimeService) DeleteAnime(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	s.updateLock.Lock()
	defer s.updateLock.Unlock()

	anime, ok := s.GetAnimeByID(id)
	if !ok {
		return false, fmt.Errorf("cannot delete anime %q: %w", id, domain.ErrNotFound)
	}

	if confirm == nil || !confirm(anime) {
		log.Debug("Deletion not confirmed", "id", id, "title", anime.Title.Text)
		return false, nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("Failed to delete anime", "id", id, "error", err)
		return false, fmt.Errorf("failed to delete anime: %w", err)
	}

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.animeList = append(s.animeList[:idx:idx], s.animeList[idx+1:]...)
	}
	s.mu.Unlock()

	log.Info("Deleted anime", "id", id, "title", anime.Title.Text)
	return true, nil
}

// indexOf must be called with mu held
func (s *AnimeService) indexOf(id string) int {
	for i := range s.animeList {
		if s.animeList[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneList(list []domain.Anime) []domain.Anime {
	out := make([]domain.Anime, len(list))
	for i, anime := range list {
		out[i] = anime.Clone()
	}
	return out
}
