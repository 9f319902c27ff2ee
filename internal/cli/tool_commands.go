package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/PizzaHomicide/hypelist/internal/backfill"
	"github.com/PizzaHomicide/hypelist/internal/repository"
	"github.com/PizzaHomicide/hypelist/internal/server"
	"github.com/urfave/cli/v3"
)

func (a *app) backfillCommand() *cli.Command {
	return &cli.Command{
		Name:  "backfill-ids",
		Usage: "Give every record of a JSON collection file without an id one based on its position",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "collection file to rewrite",
				Value: a.cfg.Backend.FilePath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("file")
			result, err := backfill.File(path)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			_, _ = fmt.Fprintf(out, "Filled %d of %d ids in %s\n", result.Filled, result.Records, path)
			if len(result.Duplicates) > 0 {
				_, _ = fmt.Fprintf(out, "Warning: duplicate ids %s, only the first record with each id will load\n",
					strings.Join(result.Duplicates, ", "))
			}
			return nil
		},
	}
}

func (a *app) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the local collection over HTTP so it can be used as a remote backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "address to listen on",
				Value: a.cfg.Server.Addr,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			backend, err := repository.Open(a.cfg.Backend)
			if err != nil {
				return err
			}
			defer closeBackend(backend)

			if !backend.Local() {
				return fmt.Errorf("serve needs a local backend, the configured backend is %s", backend.Type)
			}

			addr := cmd.String("addr")
			_, _ = fmt.Fprintf(cmd.Root().Writer, "Serving %s collection on http://%s/anime\n", backend.Type, addr)
			return server.New(backend, addr).Run(ctx)
		},
	}
}
