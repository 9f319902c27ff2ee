package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "anime.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func record(title string) domain.Anime {
	return domain.Anime{
		Title:       domain.Title{Text: title, Link: "https://example.org/" + title},
		Studio:      "Studio",
		Genres:      domain.Genres{"Drama"},
		Hype:        5,
		Description: "Description",
	}
}

func TestEmptyDatabase(t *testing.T) {
	store, _ := openTestStore(t)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRoundTripPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	for _, title := range []string{"C", "A", "B"} {
		_, err := store.Create(ctx, record(title))
		require.NoError(t, err)
	}

	_, err := store.Update(ctx, "2", record("A2"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "1"))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ID)
	assert.Equal(t, "A2", list[0].Title.Text)
	assert.Equal(t, "https://example.org/A2", list[0].Title.Link)
	assert.Equal(t, "3", list[1].ID)
}

func TestIDsAreNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	first, err := store.Create(ctx, record("A"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, first.ID))

	second, err := store.Create(ctx, record("B"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	store, path := openTestStore(t)

	created, err := store.Create(ctx, record("Frieren"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	list, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Anime{*created}, list)
}

func TestUnknownIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	_, err := store.Update(ctx, "404", record("X"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "404"), domain.ErrNotFound)
}

func TestCancelledContext(t *testing.T) {
	store, _ := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
