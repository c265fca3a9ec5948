package domain

import "strings"

// Track represents catalog metadata for one track. DurationMs is the
// authoritative bound for jump offset validation.
type Track struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album,omitempty"`
	DurationMs int      `json:"duration_ms"`
	CoverURL   string   `json:"cover_url,omitempty"`
}

// PrimaryArtist returns the first listed artist, or "" when none are known.
func (t Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}

// SearchQuery builds the fuzzy query the analyser expects: the track name,
// followed by " - " and the primary artist when one is known.
func (t Track) SearchQuery() string {
	var b strings.Builder
	b.WriteString(t.Title)
	if artist := t.PrimaryArtist(); artist != "" {
		b.WriteString(" - ")
		b.WriteString(artist)
	}
	return b.String()
}
