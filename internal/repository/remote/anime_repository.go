package remote

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/PizzaHomicide/hypelist/internal/domain"
)

// AnimeRepository implements domain.AnimeRepository against a REST collection:
// GET and POST on the collection URL, PUT and DELETE on <collection>/<id>.
type AnimeRepository struct {
	client *Client
}

func NewAnimeRepository(client *Client) *AnimeRepository {
	return &AnimeRepository{client: client}
}

// animePayload is the body sent on create.  The backend assigns the ID, so none is sent.
type animePayload struct {
	Title       domain.Title  `json:"title"`
	Studio      string        `json:"studio"`
	Genres      domain.Genres `json:"genres"`
	Hype        int           `json:"hype"`
	Description string        `json:"description"`
	Image       string        `json:"image,omitempty"`
	StartDate   string        `json:"start_date,omitempty"`
}

func payloadFrom(anime domain.Anime) animePayload {
	return animePayload{
		Title:       anime.Title,
		Studio:      anime.Studio,
		Genres:      anime.Genres,
		Hype:        anime.Hype,
		Description: anime.Description,
		Image:       anime.Image,
		StartDate:   anime.StartDate,
	}
}

func (r *AnimeRepository) itemURL(id string) string {
	return r.client.baseURL + "/" + url.PathEscape(id)
}

func (r *AnimeRepository) List(ctx context.Context) ([]domain.Anime, error) {
	const op = "list anime"
	b, err := r.client.do(ctx, op, http.MethodGet, r.client.baseURL, nil)
	if err != nil {
		return nil, err
	}

	var list []domain.Anime
	if err := decode(op, b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AnimeRepository) Create(ctx context.Context, anime domain.Anime) (*domain.Anime, error) {
	const op = "create anime"
	b, err := r.client.do(ctx, op, http.MethodPost, r.client.baseURL, payloadFrom(anime))
	if err != nil {
		return nil, err
	}

	// The record was stored even when the backend doesn't echo it.  Without an ID the caller assigns one locally.
	if len(bytes.TrimSpace(b)) == 0 {
		sent := anime.Clone()
		sent.ID = ""
		return &sent, nil
	}

	var created domain.Anime
	if err := decode(op, b, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *AnimeRepository) Update(ctx context.Context, id string, anime domain.Anime) (*domain.Anime, error) {
	const op = "update anime"
	anime.ID = id
	b, err := r.client.do(ctx, op, http.MethodPut, r.itemURL(id), anime)
	if err != nil {
		return nil, err
	}

	// Some backends acknowledge an update without echoing the record
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}

	var updated domain.Anime
	if err := decode(op, b, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *AnimeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.do(ctx, "delete anime", http.MethodDelete, r.itemURL(id), nil)
	return err
}
