package query

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/herohuntr/huntr/internal/domain/search/filter"
)

// DefaultPageSize is the number of results requested per page.
const DefaultPageSize = 12

// Normalize trims surrounding whitespace and applies NFC so visually
// identical input maps to the same text.
func Normalize(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// Key identifies one cached result page. It is comparable and can be used
// as a map key directly.
type Key struct {
	Text    string
	Page    int
	Filters string
	// Limit is the page size. Page n at one size is a different slice
	// of results than page n at another.
	Limit int
}

// NewKey derives the cache key for (text, page, filters) at the default
// page size. Text is normalized and filters are reduced to their canonical
// form, so equal inputs always produce equal keys.
func NewKey(text string, page int, filters filter.Set) Key {
	return Key{
		Text:    Normalize(text),
		Page:    page,
		Filters: filters.Canonical(),
		Limit:   DefaultPageSize,
	}
}

// WithLimit returns k for page size limit. Non-positive limits mean the default.
func (k Key) WithLimit(limit int) Key {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	k.Limit = limit
	return k
}

// IsSearchable reports whether the key refers to an actual search.
func (k Key) IsSearchable() bool {
	return k.Text != "" && k.Page >= 1
}

// String returns an unambiguous textual form of the key.
func (k Key) String() string {
	return strconv.Quote(k.Text) + "|" + strconv.Itoa(k.Page) + "|" + strconv.Itoa(k.Limit) + "|" + k.Filters
}

// Digest returns a fixed-length hash of the key for external stores.
func (k Key) Digest() string {
	h := sha256.Sum256([]byte(k.String()))
	return hex.EncodeToString(h[:])
}

// Request is one page request against the search backend.
type Request struct {
	Text     string
	Page     int
	Filters  filter.Set
	PageSize int
}

// Key returns the cache key the request's page is stored under.
func (r Request) Key() Key {
	return NewKey(r.Text, r.Page, r.Filters).WithLimit(r.PageSize)
}
