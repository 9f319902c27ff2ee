package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/service"
	"github.com/urfave/cli/v3"
)

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "print JSON instead of a table",
	}
}

// draftFlags are shared by add and edit.  Only flags that are set change the draft.
func draftFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "title of the anime"},
		&cli.StringFlag{Name: "link", Usage: "external link for the title"},
		&cli.StringFlag{Name: "studio", Aliases: []string{"s"}, Usage: "animation studio"},
		&cli.StringFlag{Name: "genres", Aliases: []string{"g"}, Usage: "comma-separated genres, e.g. \"Action, Drama\""},
		&cli.StringFlag{Name: "hype", Usage: "hype score, a whole number"},
		&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "short description"},
		&cli.StringFlag{Name: "image", Usage: "cover image URL"},
		&cli.StringFlag{Name: "start-date", Usage: "when it starts airing"},
	}
}

func applyDraftFlags(cmd *cli.Command, d domain.Draft) domain.Draft {
	if cmd.IsSet("title") || cmd.IsSet("link") {
		text, link := d.Title.Text, d.Title.Link
		if cmd.IsSet("title") {
			text = cmd.String("title")
		}
		if cmd.IsSet("link") {
			link = cmd.String("link")
		}
		d = d.WithTitle(text, link)
	}
	if cmd.IsSet("genres") {
		d = d.WithGenres(cmd.String("genres"))
	}
	return d.WithScalars(domain.ScalarPatch{
		Studio:      setString(cmd, "studio"),
		Hype:        setString(cmd, "hype"),
		Description: setString(cmd, "description"),
		Image:       setString(cmd, "image"),
		StartDate:   setString(cmd, "start-date"),
	})
}

func setString(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.String(name)
	return &v
}

func (a *app) listCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List the collection",
		Flags:   []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, backend, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer closeBackend(backend)

			return a.printList(cmd, svc.GetAnimeList())
		},
	}
}

func (a *app) searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Find anime by title",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			jsonFlag(),
			&cli.BoolFlag{Name: "fuzzy", Aliases: []string{"f"}, Usage: "rank by fuzzy match instead of substring"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")

			svc, backend, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer closeBackend(backend)

			if cmd.Bool("fuzzy") {
				return a.printList(cmd, svc.FuzzySearch(query))
			}
			return a.printList(cmd, svc.Search(query))
		},
	}
}

func (a *app) addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add an anime to the collection",
		Flags: append(draftFlags(),
			&cli.BoolFlag{Name: "lookup", Usage: "pre-fill fields from AniList using --title, flags override what is found"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			draft := domain.NewRecordDraft{}
			if cmd.Bool("lookup") {
				found, err := a.lookup().Lookup(ctx, cmd.String("title"))
				if err != nil {
					return err
				}
				draft = found
			}
			draft.Draft = applyDraftFlags(cmd, draft.Draft)

			svc, backend, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer closeBackend(backend)

			created, err := svc.CreateAnime(ctx, draft)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.Root().Writer, "Added %q with id %s\n", created.Title.Text, created.ID)
			return err
		},
	}
}

func (a *app) editCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Change fields of an anime, fields without a flag keep their value",
		ArgsUsage: "<id>",
		Flags:     draftFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := requireID(cmd)
			if err != nil {
				return err
			}

			svc, backend, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer closeBackend(backend)

			anime, ok := svc.GetAnimeByID(id)
			if !ok {
				return fmt.Errorf("no anime with id %s: %w", id, domain.ErrNotFound)
			}

			edit := domain.EditDraftFrom(anime)
			edit.Draft = applyDraftFlags(cmd, edit.Draft)

			updated, err := svc.UpdateAnime(ctx, edit)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.Root().Writer, "Updated %q (id %s)\n", updated.Title.Text, updated.ID)
			return err
		},
	}
}

func (a *app) deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Remove an anime from the collection",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := requireID(cmd)
			if err != nil {
				return err
			}

			svc, backend, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer closeBackend(backend)

			var confirm service.Confirmer = service.AlwaysConfirm
			if !cmd.Bool("yes") {
				confirm = promptConfirmer(cmd.Root().Reader, cmd.Root().Writer)
			}

			deleted, err := svc.DeleteAnime(ctx, id, confirm)
			if err != nil {
				return err
			}
			if !deleted {
				_, err = fmt.Fprintln(cmd.Root().Writer, "Nothing deleted")
				return err
			}
			_, err = fmt.Fprintf(cmd.Root().Writer, "Deleted anime %s\n", id)
			return err
		},
	}
}

func (a *app) lookupCommand() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Show what AniList knows about a title without adding it",
		ArgsUsage: "<title>",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			title := strings.Join(cmd.Args().Slice(), " ")
			if strings.TrimSpace(title) == "" {
				return errors.New("lookup needs a title")
			}

			draft, err := a.lookup().Lookup(ctx, title)
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				return writeJSON(cmd.Root().Writer, draft.Draft.Normalize())
			}
			return printDetails(cmd.Root().Writer, draft.Draft.Normalize())
		},
	}
}

func requireID(cmd *cli.Command) (string, error) {
	id := strings.TrimSpace(cmd.Args().First())
	if id == "" {
		return "", fmt.Errorf("%s needs the id of an anime, see 'hypelist list'", cmd.Name)
	}
	return id, nil
}

// promptConfirmer asks on the terminal before a delete.  Anything but y or yes cancels.
func promptConfirmer(in io.Reader, out io.Writer) service.Confirmer {
	return func(anime domain.Anime) bool {
		_, _ = fmt.Fprintf(out, "Delete %q (id %s)? [y/N]: ", anime.Title.Text, anime.ID)

		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

func (a *app) printList(cmd *cli.Command, list []domain.Anime) error {
	if cmd.Bool("json") {
		return writeJSON(cmd.Root().Writer, list)
	}
	return printTable(cmd.Root().Writer, list, a.cfg.UI.TitleWidth)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
