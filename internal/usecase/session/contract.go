package session

import (
	"github.com/herohuntr/huntr/internal/usecase/search"
)

// CacheFactory builds the result cache for a new session.
type CacheFactory func() search.Cache
