package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Anime is a single entry of the tracked list
type Anime struct {
	ID          string `json:"id,omitempty"`
	Title       Title  `json:"title"`
	Studio      string `json:"studio"`
	Genres      Genres `json:"genres"`
	Hype        int    `json:"hype"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
}

// Clone returns a copy of the anime that shares no memory with the original
func (a Anime) Clone() Anime {
	if a.Genres != nil {
		a.Genres = append(Genres{}, a.Genres...)
	}
	return a
}

// UnmarshalJSON accepts the record shapes seen across backends: numeric or string ids and hype values given as
// numbers or numeric strings.
func (a *Anime) UnmarshalJSON(data []byte) error {
	type plain Anime
	var raw struct {
		plain
		ID   json.RawMessage `json:"id"`
		Hype json.RawMessage `json:"hype"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}

	*a = Anime(raw.plain)
	a.ID = id
	a.Hype = decodeHype(raw.Hype)
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("unsupported id value %s", string(raw))
	}
	return n.String(), nil
}

func decodeHype(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		return ParseHype(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return clampHype(int(min(i, math.MaxInt)))
	}
	if f, err := n.Float64(); err == nil {
		return hypeFromFloat(f)
	}
	return 0
}

// hypeFromFloat truncates f, saturating at the bounds of int instead of relying on an out of range conversion
func hypeFromFloat(f float64) int {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	}
	return int(f)
}

// Title is the display label of an anime plus an optional external link.
// Older backends stored the title as a bare string, newer ones as {text, link}; both decode into this type.
type Title struct {
	Text string
	Link string
}

type titleObject struct {
	Text json.RawMessage `json:"text"`
	Link json.RawMessage `json:"link"`
}

// UnmarshalJSON decodes either a bare string or a {text, link} object.  Anything else decodes to an empty title
// so a single malformed record never prevents the rest of the collection from loading.
func (t *Title) UnmarshalJSON(data []byte) error {
	*t = Title{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t.Text = s
	case '{':
		var obj titleObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		t.Text = stringOrEmpty(obj.Text)
		t.Link = stringOrEmpty(obj.Link)
	}
	return nil
}

// MarshalJSON always writes the canonical {text, link} shape, with a null link when none is set
func (t Title) MarshalJSON() ([]byte, error) {
	var link *string
	if t.Link != "" {
		link = &t.Link
	}
	return json.Marshal(struct {
		Text string  `json:"text"`
		Link *string `json:"link"`
	}{Text: t.Text, Link: link})
}

func stringOrEmpty(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Genres is the ordered list of genre names.  It is kept normalised: trimmed, with no empty entries.
type Genres []string

// UnmarshalJSON accepts a list of strings or a legacy comma-separated string
func (g *Genres) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*g = Genres{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = ParseGenres(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*g = NormalizeGenres(list)
	return nil
}

// MarshalJSON writes an empty list instead of null
func (g Genres) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(g))
}

// String joins the genres the same way the edit form displays them
func (g Genres) String() string {
	return strings.Join(g, ", ")
}

// ParseGenres splits comma-separated user input into trimmed, non-empty genre names, keeping their order.
func ParseGenres(raw string) Genres {
	return NormalizeGenres(strings.Split(raw, ","))
}

// NormalizeGenres trims every entry and drops the empty ones
func NormalizeGenres(list []string) Genres {
	genres := make(Genres, 0, len(list))
	for _, genre := range list {
		if genre = strings.TrimSpace(genre); genre != "" {
			genres = append(genres, genre)
		}
	}
	return genres
}

// ParseHype converts user input into a hype score.  Anything that is not a non-negative integer becomes 0.
func ParseHype(raw string) int {
	hype, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return clampHype(hype)
}

func clampHype(hype int) int {
	if hype < 0 {
		return 0
	}
	return hype
}
