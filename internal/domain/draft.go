package domain

import (
	"strconv"
	"strings"
)

// Draft holds the uncommitted values of a record while it is being composed.  Genres and hype are kept exactly as
// typed by the user and are only parsed when the draft is normalised.
type Draft struct {
	Title       Title
	Studio      string
	Genres      string // Comma-separated, as typed
	Hype        string // As typed, parsed with ParseHype
	Description string
	Image       string
	StartDate   string
}

// NewRecordDraft is the draft used by the create flow
type NewRecordDraft struct {
	Draft Draft
}

// EditRecordDraft is the draft used by the edit flow, keyed by the ID of the record being edited
type EditRecordDraft struct {
	ID    string
	Draft Draft
}

// ScalarPatch sets any of the plain text fields of a draft.  Nil fields are left untouched.
type ScalarPatch struct {
	Studio      *string
	Hype        *string
	Description *string
	Image       *string
	StartDate   *string
}

// EditDraftFrom seeds an edit draft from a committed record
func EditDraftFrom(anime Anime) EditRecordDraft {
	return EditRecordDraft{
		ID: anime.ID,
		Draft: Draft{
			Title:       anime.Title,
			Studio:      anime.Studio,
			Genres:      anime.Genres.String(),
			Hype:        strconv.Itoa(anime.Hype),
			Description: anime.Description,
			Image:       anime.Image,
			StartDate:   anime.StartDate,
		},
	}
}

// WithTitle returns a copy of the draft with a new title
func (d Draft) WithTitle(text, link string) Draft {
	d.Title = Title{Text: text, Link: link}
	return d
}

// WithGenres returns a copy of the draft with new raw genre input
func (d Draft) WithGenres(raw string) Draft {
	d.Genres = raw
	return d
}

// WithScalars returns a copy of the draft with every non-nil field of the patch applied
func (d Draft) WithScalars(p ScalarPatch) Draft {
	if p.Studio != nil {
		d.Studio = *p.Studio
	}
	if p.Hype != nil {
		d.Hype = *p.Hype
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Image != nil {
		d.Image = *p.Image
	}
	if p.StartDate != nil {
		d.StartDate = *p.StartDate
	}
	return d
}

// Validate reports every required field that is missing.  Returns nil if the draft can be committed.
func (d Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Title.Text) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Studio) == "" {
		missing = append(missing, "studio")
	}
	if len(ParseGenres(d.Genres)) == 0 {
		missing = append(missing, "genres")
	}
	if strings.TrimSpace(d.Description) == "" {
		missing = append(missing, "description")
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Normalize builds the record described by the draft.  The returned record has no ID.
func (d Draft) Normalize() Anime {
	return Anime{
		Title: Title{
			Text: strings.TrimSpace(d.Title.Text),
			Link: strings.TrimSpace(d.Title.Link),
		},
		Studio:      strings.TrimSpace(d.Studio),
		Genres:      ParseGenres(d.Genres),
		Hype:        ParseHype(d.Hype),
		Description: strings.TrimSpace(d.Description),
		Image:       strings.TrimSpace(d.Image),
		StartDate:   strings.TrimSpace(d.StartDate),
	}
}
