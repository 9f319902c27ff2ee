package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/log"
	bolt "go.etcd.io/bbolt"
)

var (
	bAnime = []byte("anime") // sequence key -> JSON record, iterated in insertion order
	bIDs   = []byte("ids")   // record id -> sequence key
)

// Store keeps the collection in a bbolt database
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.  Only one process can hold it at a time, so a second hypelist
// instance fails after a short timeout instead of hanging.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("bolt: missing database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bAnime, bIDs} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialise database: %w", err)
	}

	log.Debug("Opened bolt database", "path", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) List(ctx context.Context) ([]domain.Anime, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list := []domain.Anime{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bAnime).ForEach(func(k, v []byte) error {
			var anime domain.Anime
			if err := json.Unmarshal(v, &anime); err != nil {
				return &domain.DecodeError{Op: "read record " + strconv.FormatUint(btoi(k), 10), Err: err}
			}
			list = append(list, anime)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Create stores the record under the next bucket sequence, which also becomes its ID
func (s *Store) Create(ctx context.Context, anime domain.Anime) (*domain.Anime, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	anime = anime.Clone()
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bAnime)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		anime.ID = strconv.FormatUint(seq, 10)
		key := itob(seq)
		if err := putRecord(b, key, anime); err != nil {
			return err
		}
		return tx.Bucket(bIDs).Put([]byte(anime.ID), key)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store anime: %w", err)
	}
	return &anime, nil
}

func (s *Store) Update(ctx context.Context, id string, anime domain.Anime) (*domain.Anime, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	anime = anime.Clone()
	anime.ID = id
	err := s.db.Update(func(tx *bolt.Tx) error {
		key := tx.Bucket(bIDs).Get([]byte(id))
		if key == nil {
			return fmt.Errorf("update anime %q: %w", id, domain.ErrNotFound)
		}
		return putRecord(tx.Bucket(bAnime), key, anime)
	})
	if err != nil {
		return nil, err
	}
	return &anime, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		ids := tx.Bucket(bIDs)
		key := ids.Get([]byte(id))
		if key == nil {
			return fmt.Errorf("delete anime %q: %w", id, domain.ErrNotFound)
		}
		// key is only valid for the life of the transaction and Delete may reuse its page, so copy it first
		key = append([]byte(nil), key...)
		if err := tx.Bucket(bAnime).Delete(key); err != nil {
			return err
		}
		return ids.Delete([]byte(id))
	})
}

func putRecord(b *bolt.Bucket, key []byte, anime domain.Anime) error {
	data, err := json.Marshal(anime)
	if err != nil {
		return fmt.Errorf("failed to encode anime: %w", err)
	}
	return b.Put(key, data)
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
