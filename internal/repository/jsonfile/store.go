package jsonfile

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/log"
)

// Store keeps the whole collection as a JSON array in a single file.  Every operation reads the file, so edits
// made outside hypelist are picked up on the next call.
type Store struct {
	path string

	mu sync.Mutex
	// Checksum of the file contents as last read or written by this store, used by Watch to skip its own writes
	lastSum [sha256.Size]byte
}

func New(path string) *Store {
	return &Store{path: path}
}

// Path is the file backing the store
func (s *Store) Path() string {
	return s.path
}

func (s *Store) List(ctx context.Context) ([]domain.Anime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Create appends the record with the next sequential ID
func (s *Store) Create(ctx context.Context, anime domain.Anime) (*domain.Anime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read()
	if err != nil {
		return nil, err
	}

	anime = anime.Clone()
	anime.ID = nextID(list)
	if err := s.write(append(list, anime)); err != nil {
		return nil, err
	}

	log.Debug("Stored anime in file", "path", s.path, "id", anime.ID)
	return &anime, nil
}

func (s *Store) Update(ctx context.Context, id string, anime domain.Anime) (*domain.Anime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read()
	if err != nil {
		return nil, err
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return nil, fmt.Errorf("update anime %q: %w", id, domain.ErrNotFound)
	}

	anime = anime.Clone()
	anime.ID = id
	list[idx] = anime
	if err := s.write(list); err != nil {
		return nil, err
	}
	return &anime, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read()
	if err != nil {
		return err
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return fmt.Errorf("delete anime %q: %w", id, domain.ErrNotFound)
	}
	return s.write(append(list[:idx], list[idx+1:]...))
}

// read must be called with mu held.  A missing or empty file is an empty collection.
func (s *Store) read() ([]domain.Anime, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.lastSum = sha256.Sum256(nil)
		return []domain.Anime{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection file: %w", err)
	}
	s.lastSum = sha256.Sum256(data)

	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Anime{}, nil
	}

	var list []domain.Anime
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, &domain.DecodeError{Op: "read " + filepath.Base(s.path), Err: err}
	}

	// Records written by hand or by older versions may lack an ID.  They are numbered and saved straight away, so
	// the IDs stay the same on every later read and can be used to edit or delete those records.
	if filled := fillMissingIDs(list); filled > 0 {
		if err := s.write(list); err != nil {
			return nil, fmt.Errorf("failed to save assigned IDs: %w", err)
		}
		log.Info("Assigned IDs to records without one", "path", s.path, "count", filled)
	}
	return list, nil
}

// write must be called with mu held.  The file is replaced atomically so readers never see a partial array.
func (s *Store) write(list []domain.Anime) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	data = append(data, '\n')

	if err := WriteFileAtomic(s.path, data); err != nil {
		return err
	}
	s.lastSum = sha256.Sum256(data)
	return nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames it into place
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // No-op once renamed

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// nextID is one more than the highest numeric ID in the collection.  Non-numeric IDs are ignored.
func nextID(list []domain.Anime) string {
	highest := 0
	for _, anime := range list {
		if n, err := strconv.Atoi(anime.ID); err == nil && n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}

// fillMissingIDs numbers records without an ID after the highest numeric ID, in file order
func fillMissingIDs(list []domain.Anime) int {
	filled := 0
	for i := range list {
		if list[i].ID == "" {
			list[i].ID = nextID(list)
			filled++
		}
	}
	return filled
}

func indexOf(list []domain.Anime, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
