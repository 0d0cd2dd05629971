package huntr

import (
	"github.com/herohuntr/huntr/internal/domain/search/filter"
	"github.com/herohuntr/huntr/internal/domain/search/kind"
	"github.com/herohuntr/huntr/internal/domain/search/result"
	"github.com/herohuntr/huntr/internal/usecase/search"
	"github.com/herohuntr/huntr/internal/view"
)

// Kind selects the filter domain of a session.
type Kind = kind.Kind

// Search kinds.
const (
	Superhero = kind.Superhero
	Movie     = kind.Movie
)

// Filters is an immutable filter set. Updates return a new value.
type Filters = filter.Set

// FilterField describes one filter: its bounds and step, or its choices.
type FilterField = filter.Field

// Item is a tagged search hit, either a superhero or a movie.
type Item = result.Item

// State is a snapshot of a session.
type State = search.State

// View is the render model of a session state.
type View = view.View

// ParseKind accepts "superhero", "movie" and their plurals.
func ParseKind(s string) (Kind, error) {
	return kind.Parse(s)
}

// DefaultFilters returns the full-range filter set for k.
func DefaultFilters(k Kind) Filters {
	return filter.Defaults(k)
}

// Schema lists the filter fields available for k.
func Schema(k Kind) ([]FilterField, error) {
	return filter.SchemaFor(k)
}

// Render derives the render model of a state.
func Render(s State) View {
	return view.Build(s)
}
