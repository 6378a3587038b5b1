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
)

// Result represents a single TMDB match from search, discover, or a detail
// fetch. Movies populate Title/ReleaseDate, series populate Name/FirstAirDate.
type Result struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	MediaType    string  `json:"media_type"`
	PosterPath   string  `json:"poster_path"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
}

// DisplayTitle returns whichever of Title or Name is populated.
func (r Result) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Response models the TMDB paginated list payload.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// DiscoverOptions filter a discover query to one streaming catalog.
type DiscoverOptions struct {
	WatchProviderID int
	WatchRegion     string
	Page            int
}

// Searcher defines the TMDB operations recognition and catalog builds use.
type Searcher interface {
	SearchMulti(ctx context.Context, query string) (*Response, error)
	GetMovieDetails(ctx context.Context, movieID int64) (*Result, error)
	GetTVDetails(ctx context.Context, showID int64) (*Result, error)
	DiscoverMovies(ctx context.Context, opts DiscoverOptions) (*Response, error)
	DiscoverTV(ctx context.Context, opts DiscoverOptions) (*Response, error)
	PosterImage(ctx context.Context, posterPath string) ([]byte, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithImageBaseURL overrides the poster image host.
func WithImageBaseURL(imageBaseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(imageBaseURL); trimmed != "" {
			c.imageBaseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: "https://image.tmdb.org/t/p/w500",
		language:     strings.TrimSpace(language),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMulti searches movies, series, and people in one query. Callers that
// only want titles filter out person results themselves.
func (c *Client) SearchMulti(ctx context.Context, query string) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)

	var payload Response
	if err := c.getJSON(ctx, "/search/multi", params, &payload); err != nil {
		return nil, fmt.Errorf("tmdb multi search: %w", err)
	}
	return &payload, nil
}

// GetMovieDetails fetches movie details by TMDB ID.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (*Result, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload Result
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", movieID), nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb movie details: %w", err)
	}
	payload.MediaType = "movie"
	return &payload, nil
}

// GetTVDetails fetches TV show details by TMDB ID.
func (c *Client) GetTVDetails(ctx context.Context, showID int64) (*Result, error) {
	if showID <= 0 {
		return nil, errors.New("show id must be positive")
	}
	var payload Result
	if err := c.getJSON(ctx, fmt.Sprintf("/tv/%d", showID), nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb tv details: %w", err)
	}
	payload.MediaType = "tv"
	return &payload, nil
}

// DiscoverMovies lists movies on a watch provider, most popular first.
func (c *Client) DiscoverMovies(ctx context.Context, opts DiscoverOptions) (*Response, error) {
	return c.discover(ctx, "/discover/movie", opts)
}

// DiscoverTV lists series on a watch provider, most popular first.
func (c *Client) DiscoverTV(ctx context.Context, opts DiscoverOptions) (*Response, error) {
	return c.discover(ctx, "/discover/tv", opts)
}

func (c *Client) discover(ctx context.Context, path string, opts DiscoverOptions) (*Response, error) {
	if opts.WatchProviderID <= 0 {
		return nil, errors.New("watch provider id must be positive")
	}
	if opts.WatchRegion == "" {
		return nil, errors.New("watch region required")
	}
	params := url.Values{}
	params.Set("with_watch_providers", strconv.Itoa(opts.WatchProviderID))
	params.Set("watch_region", opts.WatchRegion)
	params.Set("sort_by", "popularity.desc")
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}

	var payload Response
	if err := c.getJSON(ctx, path, params, &payload); err != nil {
		return nil, fmt.Errorf("tmdb discover: %w", err)
	}
	return &payload, nil
}

// PosterImage downloads the poster at posterPath from the image host.
func (c *Client) PosterImage(ctx context.Context, posterPath string) ([]byte, error) {
	posterPath = strings.TrimSpace(posterPath)
	if posterPath == "" {
		return nil, errors.New("poster path must not be empty")
	}
	if !strings.HasPrefix(posterPath, "/") {
		posterPath = "/" + posterPath
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.imageBaseURL+posterPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build poster request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("fetch poster (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poster fetch returned %d (latency=%v)", resp.StatusCode, latency)
	}
	image, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read poster body: %w", err)
	}
	return image, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned %d (latency=%v)", resp.StatusCode, latency)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
