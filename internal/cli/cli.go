// Package cli is the command line surface of hypelist.  Running hypelist without a subcommand opens the TUI, the
// subcommands drive the same collection operations from scripts.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/config"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/PizzaHomicide/hypelist/internal/repository"
	"github.com/PizzaHomicide/hypelist/internal/repository/anilist"
	"github.com/PizzaHomicide/hypelist/internal/service"
	"github.com/PizzaHomicide/hypelist/internal/ui/tui"
	"github.com/PizzaHomicide/hypelist/internal/version"
	"github.com/urfave/cli/v3"
)

// TUIRunner starts the interactive interface over an opened backend
type TUIRunner func(ctx context.Context, cfg *config.Config, svc *service.AnimeService, backend *repository.Backend, lookup *anilist.Lookup) error

type app struct {
	cfg            *config.Config
	runTUI         TUIRunner
	lookupEndpoint string
	in             io.Reader
	out            io.Writer
	errOut         io.Writer
}

// Option customises the command, mostly for tests
type Option func(*app)

// WithIO replaces stdin, stdout and stderr
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *app) {
		a.in, a.out, a.errOut = in, out, errOut
	}
}

// WithTUIRunner replaces the interactive interface started by the root command
func WithTUIRunner(run TUIRunner) Option {
	return func(a *app) {
		a.runTUI = run
	}
}

// WithLookupEndpoint points AniList lookups at a different GraphQL endpoint
func WithLookupEndpoint(endpoint string) Option {
	return func(a *app) {
		a.lookupEndpoint = endpoint
	}
}

// New creates the root hypelist command
func New(cfg *config.Config, opts ...Option) *cli.Command {
	a := &app{
		cfg:            cfg,
		runTUI:         tui.Run,
		lookupEndpoint: anilist.DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(a)
	}

	return &cli.Command{
		Name:        "hypelist",
		Usage:       "Keep track of the anime you are hyped for",
		Version:     version.Version,
		Description: "Run without a command to open the interactive list.",
		Reader:      a.in,
		Writer:      a.out,
		ErrWriter:   a.errOut,
		Commands: []*cli.Command{
			a.listCommand(),
			a.searchCommand(),
			a.addCommand(),
			a.editCommand(),
			a.deleteCommand(),
			a.lookupCommand(),
			a.backfillCommand(),
			a.serveCommand(),
			a.envCommand(),
			a.versionCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Present() {
				return fmt.Errorf("unknown command: %s", cmd.Args().First())
			}
			return a.runInteractive(ctx)
		},
	}
}

func (a *app) runInteractive(ctx context.Context) error {
	backend, err := repository.Open(a.cfg.Backend)
	if err != nil {
		return err
	}
	defer closeBackend(backend)

	// The TUI loads the list itself so it can show progress
	svc := service.NewAnimeService(backend)
	return a.runTUI(ctx, a.cfg, svc, backend, a.lookup())
}

// openService opens the configured backend and loads the collection from it
func (a *app) openService(ctx context.Context) (*service.AnimeService, *repository.Backend, error) {
	backend, err := repository.Open(a.cfg.Backend)
	if err != nil {
		return nil, nil, err
	}

	svc := service.NewAnimeService(backend)
	if err := svc.LoadAnimeList(ctx); err != nil {
		closeBackend(backend)
		return nil, nil, err
	}
	return svc, backend, nil
}

func (a *app) lookup() *anilist.Lookup {
	return anilist.NewLookup(anilist.NewClient(a.lookupEndpoint, a.requestTimeout()))
}

func (a *app) requestTimeout() time.Duration {
	if t := a.cfg.Backend.Timeout(); t > 0 {
		return t
	}
	return 10 * time.Second
}

func closeBackend(backend *repository.Backend) {
	if err := backend.Close(); err != nil {
		log.Warn("Failed to close backend", "type", backend.Type, "error", err)
	}
}

func (a *app) envCommand() *cli.Command {
	return &cli.Command{
		Name:  "env",
		Usage: "List the environment variables that override the config file",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return config.PrintEnvVars(cmd.Root().Writer)
		},
	}
}

func (a *app) versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintln(cmd.Root().Writer, version.GetVersionInfo())
			return err
		},
	}
}
