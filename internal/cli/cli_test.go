package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PizzaHomicide/hypelist/internal/config"
	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/repository"
	"github.com/PizzaHomicide/hypelist/internal/repository/anilist"
	"github.com/PizzaHomicide/hypelist/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Backend: config.BackendConfig{
			Type:           config.BackendJSONFile,
			FilePath:       filepath.Join(dir, "anime.json"),
			BoltPath:       filepath.Join(dir, "anime.db"),
			TimeoutSeconds: 2,
		},
		Server: config.ServerConfig{Addr: "127.0.0.1:0"},
		UI:     config.UIConfig{TitleWidth: 50},
	}
}

// run executes hypelist with args and returns what it printed
func run(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := New(cfg, WithIO(strings.NewReader(stdin), &out, &errOut))
	err := cmd.Run(context.Background(), append([]string{"hypelist"}, args...))
	return out.String(), err
}

func addFrieren(t *testing.T, cfg *config.Config) {
	t.Helper()
	_, err := run(t, cfg, "", "add",
		"--title", "Frieren", "--studio", "Madhouse", "--genres", "Adventure, Drama ,Fantasy",
		"--hype", "9", "--description", "An elf mage outlives her party")
	require.NoError(t, err)
}

func listJSON(t *testing.T, cfg *config.Config) []domain.Anime {
	t.Helper()
	out, err := run(t, cfg, "", "list", "--json")
	require.NoError(t, err)

	var list []domain.Anime
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	return list
}

func TestAddAndList(t *testing.T) {
	cfg := testConfig(t)
	addFrieren(t, cfg)

	list := listJSON(t, cfg)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, domain.Genres{"Adventure", "Drama", "Fantasy"}, list[0].Genres)
	assert.Equal(t, 9, list[0].Hype)

	out, err := run(t, cfg, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Frieren")
	assert.Contains(t, out, "Adventure, Drama, Fantasy")
}

func TestAddWithMissingFieldsFails(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, cfg, "", "add", "--title", "Frieren")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "studio, genres, description")

	_, statErr := os.Stat(cfg.Backend.FilePath)
	assert.True(t, os.IsNotExist(statErr), "nothing should have been written")
}

func TestEditKeepsUnsetFields(t *testing.T) {
	cfg := testConfig(t)
	addFrieren(t, cfg)

	out, err := run(t, cfg, "", "edit", "--hype", "10", "--link", "https://example.org/frieren", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated")

	list := listJSON(t, cfg)
	require.Len(t, list, 1)
	assert.Equal(t, 10, list[0].Hype)
	assert.Equal(t, domain.Title{Text: "Frieren", Link: "https://example.org/frieren"}, list[0].Title)
	assert.Equal(t, "Madhouse", list[0].Studio)
}

func TestEditUnknownID(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, cfg, "", "edit", "--hype", "1", "7")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = run(t, cfg, "", "edit")
	assert.ErrorContains(t, err, "needs the id")
}

func TestDeletePromptsForConfirmation(t *testing.T) {
	cfg := testConfig(t)
	addFrieren(t, cfg)

	out, err := run(t, cfg, "n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Delete "Frieren" (id 1)? [y/N]`)
	assert.Contains(t, out, "Nothing deleted")
	assert.Len(t, listJSON(t, cfg), 1)

	// No answer at all also cancels
	_, err = run(t, cfg, "", "delete", "1")
	require.NoError(t, err)
	assert.Len(t, listJSON(t, cfg), 1)

	out, err = run(t, cfg, "yes\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted anime 1")
	assert.Empty(t, listJSON(t, cfg))
}

func TestDeleteWithYesFlag(t *testing.T) {
	cfg := testConfig(t)
	addFrieren(t, cfg)

	out, err := run(t, cfg, "", "delete", "--yes", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Empty(t, listJSON(t, cfg))
}

func TestSearch(t *testing.T) {
	cfg := testConfig(t)
	addFrieren(t, cfg)
	_, err := run(t, cfg, "", "add", "--title", "Dandadan", "--studio", "Science SARU",
		"--genres", "Action", "--description", "Aliens and ghosts")
	require.NoError(t, err)

	out, err := run(t, cfg, "", "search", "frie")
	require.NoError(t, err)
	assert.Contains(t, out, "Frieren")
	assert.NotContains(t, out, "Dandadan")

	out, err = run(t, cfg, "", "search", "--fuzzy", "ddn")
	require.NoError(t, err)
	assert.Contains(t, out, "Dandadan")

	out, err = run(t, cfg, "", "search", "nothing matches")
	require.NoError(t, err)
	assert.Contains(t, out, "No anime found")
}

func TestBackfillIDs(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"A"},{"title":"B","id":"5"}]`), 0600))

	out, err := run(t, cfg, "", "backfill-ids", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Filled 1 of 2 ids")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"A","id":"1"},{"title":"B","id":"5"}]`, string(data))
}

func TestAddWithLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data": {"Media": {
			"id": 1, "siteUrl": "https://anilist.co/anime/1",
			"title": {"english": "Frieren: Beyond Journey's End"},
			"description": "An elf mage", "genres": ["Adventure", "Fantasy"],
			"studios": {"nodes": [{"name": "Madhouse"}]}
		}}}`)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(t)
	var out bytes.Buffer
	cmd := New(cfg, WithIO(strings.NewReader(""), &out, io.Discard), WithLookupEndpoint(srv.URL))
	err := cmd.Run(context.Background(), []string{"hypelist", "add", "--lookup", "--title", "frieren", "--hype", "8"})
	require.NoError(t, err)

	list := listJSON(t, cfg)
	require.Len(t, list, 1)
	// --title is the search term, the stored title comes from AniList
	assert.Equal(t, "Frieren: Beyond Journey's End", list[0].Title.Text)
	assert.Equal(t, "https://anilist.co/anime/1", list[0].Title.Link)
	assert.Equal(t, 8, list[0].Hype)
}

func TestServeRejectsRemoteBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backend.Type = config.BackendRemote
	cfg.Backend.URL = "http://127.0.0.1:1/anime"

	_, err := run(t, cfg, "", "serve")
	assert.ErrorContains(t, err, "local backend")
}

func TestRootRunsTUI(t *testing.T) {
	cfg := testConfig(t)
	called := false
	runner := func(ctx context.Context, c *config.Config, svc *service.AnimeService, backend *repository.Backend, lookup *anilist.Lookup) error {
		called = true
		assert.Same(t, cfg, c)
		assert.Equal(t, config.BackendJSONFile, backend.Type)
		assert.NotNil(t, svc)
		assert.NotNil(t, lookup)
		return nil
	}

	cmd := New(cfg, WithIO(strings.NewReader(""), io.Discard, io.Discard), WithTUIRunner(runner))
	require.NoError(t, cmd.Run(context.Background(), []string{"hypelist"}))
	assert.True(t, called)
}

func TestVersionAndEnv(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, cfg, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hypelist v")

	out, err = run(t, cfg, "", "env")
	require.NoError(t, err)
	assert.Contains(t, out, "HYPELIST_CONFIG_BACKEND_TYPE")
}
