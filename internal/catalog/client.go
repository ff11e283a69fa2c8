// Package catalog is the read-only client for the third-party movie
// metadata API. Callers treat it as best effort: a failed lookup never
// blocks the booking flow.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
)

type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Genres      []Genre `json:"genres,omitempty"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Page is one page of a paginated listing.
type Page struct {
	Page       int     `json:"page"`
	Results    []Movie `json:"results"`
	TotalPages int     `json:"total_pages"`
}

type Client struct {
	baseURL   string
	searchURL string
	apiKey    string
	http      *http.Client
	logger    observability.Logger
}

func NewClient(baseURL, searchURL, apiKey string, logger observability.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		searchURL: searchURL,
		apiKey:    apiKey,
		http:      &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
	}
}

// Movie fetches a single movie by id.
func (c *Client) Movie(ctx context.Context, id string) (*Movie, error) {
	var m Movie
	if err := c.get(ctx, fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(id)), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Title returns the movie's title, or "" when the lookup fails. This is the
// fail-open path the seat selection flow uses.
func (c *Client) Title(ctx context.Context, id string) string {
	m, err := c.Movie(ctx, id)
	if err != nil {
		c.logger.WithError(err).WithField("movie_id", id).Warn("title lookup failed")
		return ""
	}
	return m.Title
}

// List fetches one page of a category listing (popular, now_playing,
// top_rated, upcoming).
func (c *Client) List(ctx context.Context, category string, page int) (*Page, error) {
	var p Page
	q := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.get(ctx, fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(category)), q, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Search runs a paginated title search.
func (c *Client) Search(ctx context.Context, query string, page int) (*Page, error) {
	var p Page
	q := url.Values{"query": {query}, "page": {strconv.Itoa(page)}}
	if err := c.get(ctx, c.searchURL, q, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Recommendations fetches movies recommended alongside the given one.
func (c *Client) Recommendations(ctx context.Context, id string, page int) (*Page, error) {
	var p Page
	q := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.get(ctx, fmt.Sprintf("%s/%s/recommendations", c.baseURL, url.PathEscape(id)), q, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) get(ctx context.Context, rawURL string, query url.Values, out interface{}) error {
	start := time.Now()
	defer func() {
		observability.CatalogRequestDuration.Observe(time.Since(start).Seconds())
	}()

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "catalog request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("catalog responded %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
