package kind

import (
	"fmt"

	"github.com/herohuntr/huntr/internal/domain"
)

// Kind is the search domain a result or filter set belongs to.
type Kind string

// Search kinds.
const (
	Superhero Kind = "superhero"
	// Movie covers both movies and TV series.
	Movie Kind = "movie"
)

// All lists the supported kinds in display order.
var All = []Kind{Superhero, Movie}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Superhero || k == Movie
}

// Parse converts user input into a Kind. Plural tab names are accepted.
func Parse(s string) (Kind, error) {
	switch s {
	case "superhero", "superheroes":
		return Superhero, nil
	case "movie", "movies":
		return Movie, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownKind, s)
	}
}
