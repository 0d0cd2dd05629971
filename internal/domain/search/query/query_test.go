package query

import (
	"testing"

	"github.com/herohuntr/huntr/internal/domain/search/filter"
	"github.com/herohuntr/huntr/internal/domain/search/kind"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Batman ", "Batman"},
		{"\tSpider-Man\n", "Spider-Man"},
		{"   ", ""},
		{"", ""},
		// "e" + combining acute composes to "é".
		{"Poke\u0301mon", "Pok\u00e9mon"},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewKey_Deterministic(t *testing.T) {
	f1, _ := filter.Defaults(kind.Superhero).WithRange("power", 50, 100)
	f1, _ = f1.WithChoice("alignment", "good")
	f2, _ := filter.Defaults(kind.Superhero).WithChoice("alignment", "good")
	f2, _ = f2.WithRange("power", 50, 100)

	a := NewKey("Man", 1, f1)
	b := NewKey(" Man ", 1, f2)
	if a != b {
		t.Fatalf("expected equal keys, got %v and %v", a, b)
	}
	if a.Digest() != b.Digest() {
		t.Error("expected equal digests")
	}
}

func TestNewKey_DistinguishesInputs(t *testing.T) {
	base := filter.Defaults(kind.Superhero)
	changed, _ := base.WithChoice("gender", "Male")

	keys := []Key{
		NewKey("Batman", 1, base),
		NewKey("Batman", 2, base),
		NewKey("Superman", 1, base),
		NewKey("Batman", 1, changed),
	}
	seen := make(map[Key]bool)
	digests := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key %v", k)
		}
		seen[k] = true
		digests[k.Digest()] = true
	}
	if len(digests) != len(keys) {
		t.Errorf("expected %d distinct digests, got %d", len(keys), len(digests))
	}
}

func TestKey_StringIsUnambiguous(t *testing.T) {
	a := Key{Text: "a|1", Page: 2}
	b := Key{Text: "a", Page: 1}
	if a.String() == b.String() {
		t.Errorf("string forms collide: %q", a.String())
	}
}

func TestKey_IsSearchable(t *testing.T) {
	if (Key{Text: "", Page: 1}).IsSearchable() {
		t.Error("empty text must not be searchable")
	}
	if (Key{Text: "x", Page: 0}).IsSearchable() {
		t.Error("page 0 must not be searchable")
	}
	if !(Key{Text: "x", Page: 1}).IsSearchable() {
		t.Error("expected key to be searchable")
	}
}

func TestRequest_Key(t *testing.T) {
	set, _ := filter.Defaults(kind.Movie).WithChoice("type", "series")
	req := Request{Text: " Loki ", Page: 2, Filters: set, PageSize: 12}

	got := req.Key()
	want := Key{Text: "Loki", Page: 2, Filters: "type=series", Limit: 12}
	if got != want {
		t.Errorf("Key() = %+v, want %+v", got, want)
	}
}

func TestRequest_KeyDistinguishesPageSize(t *testing.T) {
	base := Request{Text: "Batman", Page: 2, Filters: filter.Defaults(kind.Superhero), PageSize: 12}
	wide := base
	wide.PageSize = 24

	if base.Key() == wide.Key() {
		t.Fatal("keys for different page sizes must differ")
	}
	if base.Key().Digest() == wide.Key().Digest() {
		t.Fatal("digests for different page sizes must differ")
	}

	unset := base
	unset.PageSize = 0
	if unset.Key() != base.Key() {
		t.Errorf("zero page size must key as the default: %+v vs %+v", unset.Key(), base.Key())
	}
}
