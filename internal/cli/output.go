package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/mattn/go-runewidth"
)

func printTable(w io.Writer, list []domain.Anime, titleWidth int) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No anime found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tSTUDIO\tHYPE\tGENRES")
	for _, anime := range list {
		title := anime.Title.Text
		if titleWidth > 0 {
			title = runewidth.Truncate(title, titleWidth, "...")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", anime.ID, title, anime.Studio, anime.Hype, anime.Genres)
	}
	return tw.Flush()
}

func printDetails(w io.Writer, anime domain.Anime) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Title", anime.Title.Text},
		{"Link", anime.Title.Link},
		{"Studio", anime.Studio},
		{"Genres", anime.Genres.String()},
		{"Hype", strconv.Itoa(anime.Hype)},
		{"Starts", anime.StartDate},
		{"Image", anime.Image},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", anime.Description)
	return err
}
