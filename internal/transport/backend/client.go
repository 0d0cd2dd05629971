package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/herohuntr/huntr/internal/domain"
	"github.com/herohuntr/huntr/internal/domain/search/query"
	"github.com/herohuntr/huntr/internal/domain/search/result"
	"github.com/herohuntr/huntr/internal/metrics"
)

// Defaults for Config.
const (
	DefaultSearchPath = "/api/search"
	DefaultTimeout    = 10 * time.Second
)

// omdbMissing is the placeholder OMDb uses for an absent poster.
const omdbMissing = "N/A"

// Config holds the search backend settings.
type Config struct {
	BaseURL    string
	SearchPath string
	Timeout    time.Duration
	UserAgent  string
	Logger     *zap.Logger
}

// Client fetches combined superhero and movie pages from the search backend.
type Client struct {
	http     *resty.Client
	path     string
	sanitize *bluemonday.Policy
	group    singleflight.Group
	logger   *zap.Logger
}

// NewClient creates a backend client.
func NewClient(cfg *Config) *Client {
	path := cfg.SearchPath
	if path == "" {
		path = DefaultSearchPath
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Client{
		http:     rc,
		path:     path,
		sanitize: bluemonday.StrictPolicy(),
		logger:   logger,
	}
}

// searchResponse mirrors the backend response body.
type searchResponse struct {
	Superheroes []superheroDTO `json:"superheroes"`
	Movies      []movieDTO     `json:"movies"`
	TotalPages  *int           `json:"totalPages"`
}

type superheroDTO struct {
	ID        scalar `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Power     scalar `json:"power"`
	Alignment string `json:"alignment"`
}

type movieDTO struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Poster string `json:"Poster"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
}

// Fetch issues one search request and returns the normalized page.
// On any failure the returned page is result.Empty() and the error says why;
// callers may render the page regardless of the error.
func (c *Client) Fetch(ctx context.Context, req query.Request) (result.Page, error) {
	params := c.params(req)
	flightKey := params.Encode()

	v, err, shared := c.group.Do(flightKey, func() (any, error) {
		return c.fetch(ctx, params)
	})
	if shared {
		metrics.FetchCoalescedTotal.Inc()
	}
	if err != nil {
		return result.Empty(), err
	}
	// Coalesced callers receive the same page value; hand each its own copy.
	return v.(result.Page).Clone(), nil
}

func (c *Client) params(req query.Request) url.Values {
	size := req.PageSize
	if size <= 0 {
		size = query.DefaultPageSize
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	params := req.Filters.Params()
	params.Set("query", strings.TrimSpace(req.Text))
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(size))
	return params
}

func (c *Client) fetch(ctx context.Context, params url.Values) (result.Page, error) {
	start := time.Now()
	log := c.logger.With(zap.String("query", params.Get("query")), zap.String("page", params.Get("page")))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(c.path)

	metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.FetchRequestsTotal.WithLabelValues(metrics.FetchTransportError).Inc()
		log.Warn("Search request failed", zap.Error(err))
		return result.Page{}, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	if !resp.IsSuccess() {
		metrics.FetchRequestsTotal.WithLabelValues(metrics.FetchStatusError).Inc()
		log.Warn("Search request rejected", zap.Int("status", resp.StatusCode()))
		return result.Page{}, fmt.Errorf("%w: %d", domain.ErrBackendStatus, resp.StatusCode())
	}

	page, err := c.decode(resp.Body())
	if err != nil {
		metrics.FetchRequestsTotal.WithLabelValues(metrics.FetchDecodeError).Inc()
		log.Warn("Search response malformed", zap.Error(err))
		return result.Page{}, err
	}

	metrics.FetchRequestsTotal.WithLabelValues(metrics.FetchOK).Inc()
	log.Debug("Search page fetched",
		zap.Int("results", len(page.Items)),
		zap.Int("total_pages", page.TotalPages),
		zap.Duration("duration", time.Since(start)),
	)
	return page, nil
}

// decode tags superheroes then movies and merges them in that order.
func (c *Client) decode(body []byte) (result.Page, error) {
	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return result.Page{}, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	totalPages := 1
	if sr.TotalPages != nil {
		totalPages = *sr.TotalPages
	}

	items := make([]result.Item, 0, len(sr.Superheroes)+len(sr.Movies))
	for _, h := range sr.Superheroes {
		items = append(items, result.NewSuperhero(result.Superhero{
			ID:        string(h.ID),
			Name:      c.clean(h.Name),
			Image:     h.Image,
			Power:     string(h.Power),
			Alignment: h.Alignment,
		}))
	}
	for _, m := range sr.Movies {
		poster := m.Poster
		if poster == omdbMissing {
			poster = ""
		}
		items = append(items, result.NewMovie(result.Movie{
			ImdbID: m.ImdbID,
			Title:  c.clean(m.Title),
			Poster: poster,
			Year:   m.Year,
			Type:   m.Type,
		}))
	}

	return result.NewPage(items, totalPages), nil
}

// scalar accepts a JSON string, number or null and keeps its text form.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = scalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = scalar(n.String())
	return nil
}

// clean strips markup and decodes entities so the text is safe to display verbatim.
func (c *Client) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.sanitize.Sanitize(s)))
}
