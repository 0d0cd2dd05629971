package search

import (
	"context"

	"github.com/herohuntr/huntr/internal/domain/search/query"
	"github.com/herohuntr/huntr/internal/domain/search/result"
)

// Fetcher retrieves one result page from the search backend.
// The returned page is always renderable; a non-nil error only explains
// why it is the empty page.
type Fetcher interface {
	Fetch(ctx context.Context, req query.Request) (result.Page, error)
}

// Cache memoizes result pages by query key.
type Cache interface {
	Get(ctx context.Context, key query.Key) (result.Page, bool)
	Put(ctx context.Context, key query.Key, page result.Page)
}
