package models

// commands.go holds the tea.Cmd factories that talk to the collection store and AniList.  Each runs off the UI
// goroutine with its own timeout and reports back with a message, so the list keeps rendering while it waits.

import (
	"context"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/PizzaHomicide/hypelist/internal/repository/anilist"
	"github.com/PizzaHomicide/hypelist/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// loadAnimeListCmd reloads the whole collection from the backend
func loadAnimeListCmd(animeService *service.AnimeService, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := animeService.LoadAnimeList(ctx); err != nil {
			return AnimeListErrorMsg{Error: err}
		}

		log.Debug("Anime list loaded successfully.  Sending AnimeListLoadedMsg")
		return AnimeListLoadedMsg{}
	}
}

func createAnimeCmd(animeService *service.AnimeService, timeout time.Duration, draft domain.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		created, err := animeService.CreateAnime(ctx, domain.NewRecordDraft{Draft: draft})
		if err != nil {
			return OperationErrorMsg{Op: OpCreate, Error: err}
		}
		return AnimeCreatedMsg{Anime: created}
	}
}

func updateAnimeCmd(animeService *service.AnimeService, timeout time.Duration, id string, draft domain.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		updated, err := animeService.UpdateAnime(ctx, domain.EditRecordDraft{ID: id, Draft: draft})
		if err != nil {
			return OperationErrorMsg{Op: OpUpdate, Error: err}
		}
		return AnimeUpdatedMsg{Anime: updated}
	}
}

// deleteAnimeCmd is only used once the confirm menu has been answered, so it passes AlwaysConfirm to the store
func deleteAnimeCmd(animeService *service.AnimeService, timeout time.Duration, anime domain.Anime) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		deleted, err := animeService.DeleteAnime(ctx, anime.ID, service.AlwaysConfirm)
		if err != nil {
			return OperationErrorMsg{Op: OpDelete, Error: err}
		}
		return AnimeDeletedMsg{Anime: anime, Deleted: deleted}
	}
}

func lookupAnimeCmd(lookup *anilist.Lookup, timeout time.Duration, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := lookup.Lookup(ctx, title)
		if err != nil {
			log.Warn("AniList lookup failed", "title", title, "error", err)
			return OperationErrorMsg{Op: OpLookup, Error: err}
		}
		return LookupCompletedMsg{Draft: result.Draft}
	}
}
