// Package tmdb is a rate-limited client for the TMDB v3 catalog API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/reiverr/reiverr-server/internal/ratelimit"
)

const (
	// DefaultBaseURL is the public catalog API host.
	DefaultBaseURL = "https://api.themoviedb.org"

	defaultRPS     = 20.0
	defaultBurst   = 40
	defaultTimeout = 10 * time.Second

	personAppend = "movie_credits,tv_credits,external_ids"
)

// Config configures a Client. Either APIKey or ReadAccessToken must be set.
type Config struct {
	BaseURL         string
	APIKey          string
	ReadAccessToken string
	// Language is a BCP 47 tag sent with every request, e.g. "en-US".
	Language string
	Timeout  time.Duration
	RPS      float64
	Burst    int
}

// Client is a rate-limited catalog API client.
type Client struct {
	http     *http.Client
	limiter  *ratelimit.KeyedRateLimiter
	logger   *slog.Logger
	baseURL  *url.URL
	apiKey   string
	token    string
	language string
}

// New creates a new catalog client.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" && cfg.ReadAccessToken == "" {
		return nil, errors.New("tmdb: api key or read access token is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("tmdb: parse base url: %w", err)
	}

	lang := ""
	if cfg.Language != "" {
		tag, err := language.Parse(cfg.Language)
		if err != nil {
			return nil, fmt.Errorf("tmdb: invalid language %q: %w", cfg.Language, err)
		}
		lang = tag.String()
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:  ratelimit.New(cfg.RPS, cfg.Burst),
		logger:   logger,
		baseURL:  base,
		apiKey:   cfg.APIKey,
		token:    cfg.ReadAccessToken,
		language: lang,
	}, nil
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// GetPerson fetches a person with movie credits, series credits and external ids.
func (c *Client) GetPerson(ctx context.Context, id int) (*Person, error) {
	if id <= 0 {
		return nil, wrapError("getPerson", id, ErrBadRequest)
	}

	query := url.Values{}
	query.Set("append_to_response", personAppend)

	var person Person
	if err := c.getJSON(ctx, "/3/person/"+strconv.Itoa(id), query, &person); err != nil {
		return nil, wrapError("getPerson", id, err)
	}
	return &person, nil
}

// TrendingPeople returns the first page of trending people for the window.
func (c *Client) TrendingPeople(ctx context.Context, window TimeWindow) ([]PersonSummary, error) {
	var page Page[PersonSummary]
	if err := c.getJSON(ctx, "/3/trending/person/"+string(window), nil, &page); err != nil {
		return nil, wrapError("trendingPeople", 0, err)
	}
	return page.Results, nil
}

// DiscoverMovies returns the first page of movies matching params.
func (c *Client) DiscoverMovies(ctx context.Context, params DiscoverParams) ([]MediaItem, error) {
	var page Page[MediaItem]
	if err := c.getJSON(ctx, "/3/discover/movie", params.values(), &page); err != nil {
		return nil, wrapError("discoverMovies", 0, err)
	}
	return page.Results, nil
}

// DiscoverSeries returns the first page of series matching params.
func (c *Client) DiscoverSeries(ctx context.Context, params DiscoverParams) ([]MediaItem, error) {
	var page Page[MediaItem]
	if err := c.getJSON(ctx, "/3/discover/tv", params.values(), &page); err != nil {
		return nil, wrapError("discoverSeries", 0, err)
	}
	return page.Results, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// doRequest executes a GET request with rate limiting and credentials.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, c.baseURL.Host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	if c.language != "" && query.Get("language") == "" {
		query.Set("language", c.language)
	}
	if c.token == "" {
		query.Set("api_key", c.apiKey)
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Reiverr/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
