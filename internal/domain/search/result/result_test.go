package result

import (
	"encoding/json"
	"testing"

	"github.com/herohuntr/huntr/internal/domain/search/kind"
)

func TestItem_Variants(t *testing.T) {
	hero := NewSuperhero(Superhero{Name: "Batman", Power: "90"})
	if hero.Kind() != kind.Superhero {
		t.Fatalf("expected superhero tag, got %q", hero.Kind())
	}
	if _, ok := hero.Movie(); ok {
		t.Error("superhero must not expose a movie variant")
	}
	h, ok := hero.Superhero()
	if !ok || h.Name != "Batman" {
		t.Errorf("unexpected superhero variant: %+v ok=%v", h, ok)
	}

	movie := NewMovie(Movie{Title: "Batman Begins", Year: "2005"})
	if movie.Kind() != kind.Movie {
		t.Fatalf("expected movie tag, got %q", movie.Kind())
	}
	if _, ok := movie.Superhero(); ok {
		t.Error("movie must not expose a superhero variant")
	}
}

func TestItem_Key(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{"hero with id", NewSuperhero(Superhero{ID: "70", Name: "Batman"}), "superhero:70"},
		{"hero fallback", NewSuperhero(Superhero{Name: "Batman", Alignment: "good"}), "superhero:Batman-good"},
		{"movie with id", NewMovie(Movie{ImdbID: "tt0372784", Title: "Batman Begins"}), "movie:tt0372784"},
		{"movie fallback", NewMovie(Movie{Title: "Batman", Year: "1989"}), "movie:Batman-1989"},
		{"zero item", Item{}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.Key(); got != tc.want {
				t.Errorf("Key() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestItem_JSONKeepsTag(t *testing.T) {
	in := []Item{
		NewSuperhero(Superhero{Name: "Storm", Alignment: "good"}),
		NewMovie(Movie{Title: "X-Men", Year: "2000", Type: "movie"}),
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out []Item
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 || out[0].Kind() != kind.Superhero || out[1].Kind() != kind.Movie {
		t.Fatalf("tags lost: %+v", out)
	}
	if m, _ := out[1].Movie(); m.Title != "X-Men" {
		t.Errorf("unexpected movie: %+v", m)
	}
}

func TestItem_UnmarshalMissingVariant(t *testing.T) {
	var it Item
	if err := json.Unmarshal([]byte(`{"type":"movie"}`), &it); err == nil {
		t.Fatal("expected error for tag without variant")
	}
}

func TestNewPage_NormalizesTotalPages(t *testing.T) {
	p := NewPage(nil, 0)
	if p.TotalPages != 1 {
		t.Errorf("expected totalPages=1, got %d", p.TotalPages)
	}
	if p.Items == nil || !p.IsEmpty() {
		t.Errorf("expected non-nil empty items, got %#v", p.Items)
	}
}

func TestEmpty(t *testing.T) {
	p := Empty()
	if !p.IsEmpty() || p.TotalPages != 1 {
		t.Errorf("unexpected empty page: %+v", p)
	}
}

func TestClone_Independent(t *testing.T) {
	p := NewPage([]Item{NewSuperhero(Superhero{Name: "A"})}, 1)
	c := p.Clone()
	c.Items[0] = NewSuperhero(Superhero{Name: "B"})

	if h, _ := p.Items[0].Superhero(); h.Name != "A" {
		t.Errorf("clone shares backing array with original")
	}
}
