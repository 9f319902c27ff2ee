package anilist

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/log"
)

// Lookup finds anime on AniList to pre-fill new drafts
type Lookup struct {
	client *Client
}

func NewLookup(client *Client) *Lookup {
	return &Lookup{client: client}
}

const lookupQuery = `
    query ($search: String) {
        Media(search: $search, type: ANIME) {
            id
            siteUrl
            title {
                romaji
                english
            }
            description(asHtml: false)
            genres
            coverImage {
                large
            }
            startDate { year month day }
            studios(isMain: true) {
                nodes {
                    name
                }
            }
        }
    }
`

type mediaResponse struct {
	Media struct {
		ID      int
		SiteUrl string
		Title   struct {
			Romaji  string
			English string
		}
		Description string
		Genres      []string
		CoverImage  struct {
			Large string
		}
		StartDate struct {
			Year  int
			Month int
			Day   int
		}
		Studios struct {
			Nodes []struct {
				Name string
			}
		}
	}
}

// Lookup returns a draft pre-filled from the best AniList match for title.  Hype is left for the user to decide.
func (l *Lookup) Lookup(ctx context.Context, title string) (domain.NewRecordDraft, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.NewRecordDraft{}, fmt.Errorf("lookup needs a title")
	}

	var response mediaResponse
	if err := l.client.Query(ctx, lookupQuery, map[string]interface{}{"search": title}, &response); err != nil {
		if strings.Contains(err.Error(), "Not Found") {
			return domain.NewRecordDraft{}, fmt.Errorf("no AniList match for %q: %w", title, domain.ErrNotFound)
		}
		return domain.NewRecordDraft{}, fmt.Errorf("failed to look up %q: %w", title, err)
	}

	media := response.Media
	if media.ID == 0 {
		return domain.NewRecordDraft{}, fmt.Errorf("no AniList match for %q: %w", title, domain.ErrNotFound)
	}

	name := media.Title.English
	if name == "" {
		name = media.Title.Romaji
	}

	var studio string
	if len(media.Studios.Nodes) > 0 {
		studio = media.Studios.Nodes[0].Name
	}

	log.Info("Found anime on AniList", "search", title, "id", media.ID, "title", name)

	draft := domain.Draft{}.
		WithTitle(name, media.SiteUrl).
		WithGenres(strings.Join(media.Genres, ", ")).
		WithScalars(domain.ScalarPatch{
			Studio:      &studio,
			Description: ptr(cleanDescription(media.Description)),
			Image:       &media.CoverImage.Large,
			StartDate:   ptr(formatDate(media.StartDate.Year, media.StartDate.Month, media.StartDate.Day)),
		})
	return domain.NewRecordDraft{Draft: draft}, nil
}

var (
	lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	blankLines       = regexp.MustCompile(`\n{3,}`)
)

// cleanDescription turns AniList's lightly formatted description into plain text
func cleanDescription(s string) string {
	s = lineBreakPattern.ReplaceAllString(s, "\n")
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func formatDate(year, month, day int) string {
	if year == 0 {
		return ""
	}

	if month == 0 {
		return fmt.Sprintf("%d", year)
	}

	if day == 0 {
		return fmt.Sprintf("%d-%02d", year, month)
	}

	return fmt.Sprintf("%d-%02d-%02d", year, month, day)
}

func ptr(s string) *string {
	return &s
}
