package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/repository/jsonfile"
	"github.com/PizzaHomicide/hypelist/internal/repository/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *jsonfile.Store) {
	t.Helper()
	store := jsonfile.New(filepath.Join(t.TempDir(), "anime.json"))
	srv := httptest.NewServer(New(store, "").Router())
	t.Cleanup(srv.Close)
	return srv, store
}

func frieren() domain.Anime {
	return domain.Anime{
		Title:       domain.Title{Text: "Frieren"},
		Studio:      "Madhouse",
		Genres:      domain.Genres{"Adventure", "Fantasy"},
		Hype:        9,
		Description: "An elf mage",
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))
}

// The remote backend must be able to use a served collection as its backend
func TestRemoteRepositoryAgainstServer(t *testing.T) {
	ctx := context.Background()
	srv, store := newTestServer(t)
	repo := remote.NewAnimeRepository(remote.NewClient(srv.URL+"/anime", 2*time.Second))

	created, err := repo.Create(ctx, frieren())
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)

	second := frieren()
	second.Title.Text = "Dandadan"
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	edited := *created
	edited.Hype = 10
	updated, err := repo.Update(ctx, created.ID, edited)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 10, updated.Hype)

	require.NoError(t, repo.Delete(ctx, "2"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Frieren", list[0].Title.Text)
	assert.Equal(t, 10, list[0].Hype)

	stored, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, stored)
}

func TestUnknownIDIs404(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	repo := remote.NewAnimeRepository(remote.NewClient(srv.URL+"/anime", 2*time.Second))

	err := repo.Delete(ctx, "99")
	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)

	_, err = repo.Update(ctx, "99", frieren())
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
}

func TestInvalidBodyIs400(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/anime", "application/json", strings.NewReader(`{"title":`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "invalid anime")
	assert.NotEmpty(t, body.RequestID)
}

func TestCreateIgnoresClientID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/anime", "application/json", strings.NewReader(`{"id":"999","title":"Frieren"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created domain.Anime
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "1", created.ID)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/anime", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServeStopsOnCancel(t *testing.T) {
	store := jsonfile.New(filepath.Join(t.TempDir(), "anime.json"))
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(store, "").Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
