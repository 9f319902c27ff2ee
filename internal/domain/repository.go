package domain

//go:generate mockgen -destination ../service/mock_repository_test.go -package service -source=repository.go

import "context"

// AnimeRepository is the persistence port behind the collection.  Remote and local backends implement it the same
// way so the service never knows where the records live.
type AnimeRepository interface {
	// List retrieves the complete collection in backend order
	List(ctx context.Context) ([]Anime, error)

	// Create stores a new record and returns it as stored, including the ID the backend assigned
	Create(ctx context.Context, anime Anime) (*Anime, error)

	// Update replaces every mutable field of the record with the given ID.  A nil result means the backend
	// acknowledged the update without returning the record.
	Update(ctx context.Context, id string, anime Anime) (*Anime, error)

	// Delete removes the record with the given ID
	Delete(ctx context.Context, id string) error
}
