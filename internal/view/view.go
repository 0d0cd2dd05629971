// Package view derives what a front end renders from a controller snapshot.
package view

import (
	"fmt"

	"github.com/herohuntr/huntr/internal/domain/search/kind"
	"github.com/herohuntr/huntr/internal/domain/search/result"
	"github.com/herohuntr/huntr/internal/usecase/search"
)

// Display defaults.
const (
	TitleLimit    = 20
	UnknownHero   = "Unknown Hero"
	UnknownMovie  = "Unknown Movie"
	DefaultPoster = "/default-poster.jpg"
	missing       = "N/A"
)

// Card is one rendered result.
type Card struct {
	Key    string    `json:"key"`
	Kind   kind.Kind `json:"kind"`
	Title  string    `json:"title"`
	Alt    string    `json:"alt"`
	Image  string    `json:"image"`
	Badges []string  `json:"badges"`
}

// Pagination is the page control, present only for multi-page results.
type Pagination struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	Label      string `json:"label"`
	HasPrev    bool   `json:"hasPrev"`
	HasNext    bool   `json:"hasNext"`
}

// View is the render model of one search session.
type View struct {
	Cards      []Card      `json:"cards"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Loading    bool        `json:"loading"`
	NoResults  bool        `json:"noResults"`
}

// Build maps a state snapshot to its view.
func Build(s search.State) View {
	cards := make([]Card, 0, len(s.Results))
	for _, item := range s.Results {
		cards = append(cards, card(item))
	}

	v := View{
		Cards:     cards,
		Loading:   s.Loading,
		NoResults: s.HasQuery() && !s.Loading && len(cards) == 0,
	}
	if s.TotalPages > 1 {
		v.Pagination = &Pagination{
			Page:       s.Page,
			TotalPages: s.TotalPages,
			Label:      fmt.Sprintf("Page %d of %d", s.Page, s.TotalPages),
			HasPrev:    s.Page > 1,
			HasNext:    s.Page < s.TotalPages,
		}
	}
	return v
}

func card(item result.Item) Card {
	if h, ok := item.Superhero(); ok {
		name := orDefault(h.Name, UnknownHero)
		return Card{
			Key:   item.Key(),
			Kind:  kind.Superhero,
			Title: Truncate(name, TitleLimit),
			Alt:   name,
			Image: h.Image,
			Badges: []string{
				"⭐ Power: " + orDefault(h.Power, missing),
				"Alignment: " + orDefault(h.Alignment, missing),
			},
		}
	}

	m, _ := item.Movie()
	title := orDefault(m.Title, UnknownMovie)
	return Card{
		Key:    item.Key(),
		Kind:   kind.Movie,
		Title:  Truncate(title, TitleLimit),
		Alt:    title,
		Image:  orDefault(m.Poster, DefaultPoster),
		Badges: []string{"🎬 Year: " + orDefault(m.Year, missing)},
	}
}

// Truncate shortens s to limit runes followed by "..." when it is longer.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
