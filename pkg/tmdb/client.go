package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	defaultLanguage     = "en-US"
	defaultTimeout      = 15 * time.Second
)

// ErrNotFound is returned when the provider has no movie for an id.
var ErrNotFound = errors.New("tmdb: movie not found")

// APIError is a non-success response from the provider.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("tmdb: %s returned %d", e.Endpoint, e.StatusCode)
}

// Config is fixed at construction; the client never mutates it.
type Config struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	// BearerToken takes precedence over APIKey when both are set.
	BearerToken       string
	Language          string
	Timeout           time.Duration
	DetailConcurrency int
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.ImageBaseURL == "" {
		c.ImageBaseURL = defaultImageBaseURL
	}
	if c.Language == "" {
		c.Language = defaultLanguage
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.DetailConcurrency < 1 {
		c.DetailConcurrency = 1
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

// Client talks to the provider API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(cfg Config, log *zap.Logger, opts ...Option) *Client {
	cfg = cfg.withDefaults()
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With(zap.String("client", "tmdb")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPopular returns full details for the first limit movies of a page of
// the popular feed, or of the genre discovery feed when genreID is set.
// Any failure fails the whole call.
func (c *Client) FetchPopular(ctx context.Context, page, limit int, genreID *int) ([]Film, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))

	endpoint := "/movie/popular"
	if genreID != nil {
		endpoint = "/discover/movie"
		q.Set("with_genres", strconv.Itoa(*genreID))
		q.Set("sort_by", "popularity.desc")
	}

	var resp pageResponse
	if err := c.get(ctx, endpoint, q, &resp); err != nil {
		return nil, fmt.Errorf("fetch popular page %d: %w", page, err)
	}

	return c.fetchAll(ctx, firstIDs(resp.Results, limit))
}

// Search runs a free-text title search and returns full details for the
// first limit matches of the page.
func (c *Client) Search(ctx context.Context, query string, page, limit int) ([]Film, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("include_adult", "false")

	var resp pageResponse
	if err := c.get(ctx, "/search/movie", q, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	return c.fetchAll(ctx, firstIDs(resp.Results, limit))
}

// FetchDetails loads one movie with its credits and videos.
func (c *Client) FetchDetails(ctx context.Context, id int64) (*Film, error) {
	q := url.Values{}
	q.Set("append_to_response", "videos,credits")

	var details movieDetails
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), q, &details); err != nil {
		return nil, fmt.Errorf("fetch details %d: %w", id, err)
	}

	film := details.toFilm(c.cfg.ImageBaseURL)
	return &film, nil
}

// fetchAll resolves details for ids, keeping their order. At most
// DetailConcurrency requests are in flight; the first error cancels the rest.
func (c *Client) fetchAll(ctx context.Context, ids []int64) ([]Film, error) {
	films := make([]Film, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.DetailConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			film, err := c.FetchDetails(gctx, id)
			if err != nil {
				return err
			}
			films[i] = *film
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return films, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, dest any) error {
	q.Set("language", c.cfg.Language)
	if c.cfg.BearerToken == "" && c.cfg.APIKey != "" {
		q.Set("api_key", c.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.BearerToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("Provider request",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint}
		var body errorBody
		if raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil && json.Unmarshal(raw, &body) == nil {
			apiErr.Message = body.StatusMessage
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func firstIDs(results []movieSummary, limit int) []int64 {
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	ids := make([]int64, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	return ids
}
