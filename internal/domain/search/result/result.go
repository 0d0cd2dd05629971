package result

import (
	"encoding/json"
	"fmt"

	"github.com/herohuntr/huntr/internal/domain/search/kind"
)

// Superhero is a superhero search hit.
type Superhero struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Power     string `json:"power"`
	Alignment string `json:"alignment"`
}

// Movie is a movie or TV series search hit.
type Movie struct {
	ImdbID string `json:"imdbID,omitempty"`
	Title  string `json:"title"`
	Poster string `json:"poster"`
	Year   string `json:"year"`
	Type   string `json:"type,omitempty"`
}

// Item is a tagged search hit: exactly one of the variants is set,
// and Kind says which.
type Item struct {
	kind  kind.Kind
	hero  Superhero
	movie Movie
}

// NewSuperhero tags a superhero hit.
func NewSuperhero(h Superhero) Item {
	return Item{kind: kind.Superhero, hero: h}
}

// NewMovie tags a movie hit.
func NewMovie(m Movie) Item {
	return Item{kind: kind.Movie, movie: m}
}

// Kind returns the variant tag.
func (i Item) Kind() kind.Kind { return i.kind }

// Superhero returns the superhero variant.
func (i Item) Superhero() (Superhero, bool) {
	return i.hero, i.kind == kind.Superhero
}

// Movie returns the movie variant.
func (i Item) Movie() (Movie, bool) {
	return i.movie, i.kind == kind.Movie
}

// Key returns a stable identity for list rendering: the provided id when
// present, otherwise name-alignment / title-year.
func (i Item) Key() string {
	switch i.kind {
	case kind.Superhero:
		if i.hero.ID != "" {
			return "superhero:" + i.hero.ID
		}
		return fmt.Sprintf("superhero:%s-%s", i.hero.Name, i.hero.Alignment)
	case kind.Movie:
		if i.movie.ImdbID != "" {
			return "movie:" + i.movie.ImdbID
		}
		return fmt.Sprintf("movie:%s-%s", i.movie.Title, i.movie.Year)
	default:
		return ""
	}
}

// wireItem is the JSON form of an Item: the variant fields plus a type tag.
type wireItem struct {
	Type      kind.Kind  `json:"type"`
	Superhero *Superhero `json:"superhero,omitempty"`
	Movie     *Movie     `json:"movie,omitempty"`
}

// MarshalJSON encodes the item with an explicit type tag.
func (i Item) MarshalJSON() ([]byte, error) {
	w := wireItem{Type: i.kind}
	switch i.kind {
	case kind.Superhero:
		h := i.hero
		w.Superhero = &h
	case kind.Movie:
		m := i.movie
		w.Movie = &m
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}
	return b, nil
}

// UnmarshalJSON decodes a tagged item.
func (i *Item) UnmarshalJSON(data []byte) error {
	var w wireItem
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("unmarshal item: %w", err)
	}
	switch {
	case w.Type == kind.Superhero && w.Superhero != nil:
		*i = NewSuperhero(*w.Superhero)
	case w.Type == kind.Movie && w.Movie != nil:
		*i = NewMovie(*w.Movie)
	default:
		return fmt.Errorf("unmarshal item: missing variant for type %q", w.Type)
	}
	return nil
}

// Page is one page of combined results.
type Page struct {
	Items      []Item `json:"results"`
	TotalPages int    `json:"totalPages"`
}

// Empty returns the designated empty page used for fail-soft outcomes.
func Empty() Page {
	return Page{Items: []Item{}, TotalPages: 1}
}

// NewPage builds a page; totalPages below 1 is raised to 1.
func NewPage(items []Item, totalPages int) Page {
	if totalPages < 1 {
		totalPages = 1
	}
	if items == nil {
		items = []Item{}
	}
	return Page{Items: items, TotalPages: totalPages}
}

// Clone returns a page that shares no backing array with p.
func (p Page) Clone() Page {
	items := make([]Item, len(p.Items))
	copy(items, p.Items)
	return Page{Items: items, TotalPages: p.TotalPages}
}

// IsEmpty reports whether the page has no items.
func (p Page) IsEmpty() bool { return len(p.Items) == 0 }
