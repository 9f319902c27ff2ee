package tui

import (
	"context"
	"errors"

	"github.com/PizzaHomicide/hypelist/internal/config"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/PizzaHomicide/hypelist/internal/repository"
	"github.com/PizzaHomicide/hypelist/internal/repository/anilist"
	"github.com/PizzaHomicide/hypelist/internal/service"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the interactive list until the user quits or ctx is cancelled.  When the backend can detect changes
// made by other programs, the list is reloaded whenever they happen.
func Run(ctx context.Context, cfg *config.Config, svc *service.AnimeService, backend *repository.Backend, lookup *anilist.Lookup) error {
	p := tea.NewProgram(models.NewAppModel(cfg, svc, lookup), tea.WithAltScreen(), tea.WithContext(ctx))

	if backend != nil && backend.CanWatch() {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		go func() {
			err := backend.Watch(watchCtx, func() {
				p.Send(models.FileChangedMsg{})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("Stopped watching the collection for outside changes", "error", err)
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		log.Info("TUI stopped by signal")
		return nil
	}
	return err
}
