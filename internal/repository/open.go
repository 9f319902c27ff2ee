package repository

import (
	"context"
	"fmt"

	"github.com/PizzaHomicide/hypelist/internal/config"
	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/PizzaHomicide/hypelist/internal/repository/bolt"
	"github.com/PizzaHomicide/hypelist/internal/repository/jsonfile"
	"github.com/PizzaHomicide/hypelist/internal/repository/remote"
)

// Backend is an opened anime repository together with the capabilities that depend on its type
type Backend struct {
	domain.AnimeRepository

	Type  string
	watch func(ctx context.Context, onChange func()) error
	close func() error
}

// Open creates the repository selected by the backend configuration
func Open(cfg config.BackendConfig) (*Backend, error) {
	log.Info("Opening anime repository", "type", cfg.Type)

	switch cfg.Type {
	case config.BackendRemote:
		client := remote.NewClient(cfg.URL, cfg.Timeout())
		return &Backend{
			AnimeRepository: remote.NewAnimeRepository(client),
			Type:            cfg.Type,
		}, nil
	case config.BackendJSONFile:
		store := jsonfile.New(cfg.FilePath)
		return &Backend{
			AnimeRepository: store,
			Type:            cfg.Type,
			watch:           store.Watch,
		}, nil
	case config.BackendBolt:
		store, err := bolt.Open(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return &Backend{
			AnimeRepository: store,
			Type:            cfg.Type,
			close:           store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Type)
	}
}

// Local reports whether the records are stored on this machine
func (b *Backend) Local() bool {
	return b.Type != config.BackendRemote
}

// CanWatch reports whether Watch can detect changes made outside hypelist
func (b *Backend) CanWatch() bool {
	return b.watch != nil
}

// Watch calls onChange when the collection changes outside hypelist.  Blocks until ctx is cancelled.  Backends that
// cannot detect outside changes just wait for ctx.
func (b *Backend) Watch(ctx context.Context, onChange func()) error {
	if b.watch == nil {
		<-ctx.Done()
		return nil
	}
	return b.watch(ctx, onChange)
}

// Close releases any resources held by the backend
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}
