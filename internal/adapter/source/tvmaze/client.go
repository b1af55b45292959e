package tvmaze

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

	"golang.org/x/time/rate"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	baseRetryDelay    = 500 * time.Millisecond
	userAgent         = "marquee/1.0"
)

// Options tunes a Client. Zero values select defaults.
type Options struct {
	Country           string        // ISO country code for the country listing
	Timeout           time.Duration // Per-request timeout
	MaxRetries        int           // Retries for 5xx and 429 responses; negative disables
	RequestsPerSecond float64       // Client-side rate limit; 0 disables
	Burst             int
	HTTPClient        *http.Client // Overrides Timeout when set
	RetryDelay        time.Duration
}

// Client implements domain.CatalogClient for the TVMaze REST API
type Client struct {
	baseURL    string
	country    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

var _ domain.CatalogClient = (*Client)(nil)

// NewClient creates a new TVMaze API client
func NewClient(baseURL string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	maxRetries := opts.MaxRetries
	switch {
	case maxRetries < 0:
		maxRetries = 0
	case maxRetries == 0:
		maxRetries = defaultMaxRetries
	}

	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = baseRetryDelay
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		country:    strings.ToUpper(opts.Country),
		httpClient: httpClient,
		limiter:    limiter,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// doRequest performs a GET against the API.
// Retries with exponential backoff on 5xx and 429 responses.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// Wait before retry (exponential backoff)
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1)) // 500ms, 1s, 2s
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "url", reqURL)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		c.logger.Debug("tvmaze request", "url", reqURL, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Error("tvmaze request failed", "error", err, "url", reqURL)
			return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil

		case resp.StatusCode == http.StatusNotFound:
			return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)

		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = domain.ErrRateLimited
			c.logger.Warn("tvmaze rate limited, will retry", "attempt", attempt, "maxRetries", c.maxRetries, "path", path)
			continue

		case resp.StatusCode >= 500:
			lastErr = &domain.StatusError{Code: resp.StatusCode, Body: string(body)}
			c.logger.Warn("tvmaze server error, will retry",
				"status", resp.StatusCode,
				"attempt", attempt,
				"maxRetries", c.maxRetries,
				"path", path,
				"query", query.Encode(),
			)
			continue

		default:
			c.logger.Error("tvmaze request error", "status", resp.StatusCode, "body", string(body))
			return nil, &domain.StatusError{Code: resp.StatusCode, Body: string(body)}
		}
	}

	c.logger.Error("tvmaze request failed after retries", "error", lastErr, "url", reqURL)
	return nil, lastErr
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// GetShows returns one page of the show index (250 shows per page)
func (c *Client) GetShows(ctx context.Context, page int) ([]domain.Entry, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	var entries []domain.Entry
	if err := c.getJSON(ctx, "/shows", query, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetShowsByCountry returns today's schedule for the configured country.
// Schedule items are episodes that carry their show under "show", so the
// result is deduplicated down to one wrapped entry per show. Counts derived
// from it, such as the store's total pages, count shows rather than airings.
func (c *Client) GetShowsByCountry(ctx context.Context) ([]domain.Entry, error) {
	query := url.Values{}
	if c.country != "" {
		query.Set("country", c.country)
	}

	var items []domain.Entry
	if err := c.getJSON(ctx, "/schedule", query, &items); err != nil {
		return nil, err
	}
	return uniqueShows(items), nil
}

// Search returns shows matching the query text
func (c *Client) Search(ctx context.Context, q domain.Query, page int) ([]domain.Entry, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("q", strings.TrimSpace(q.Text))
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}

	var entries []domain.Entry
	if err := c.getJSON(ctx, "/search/shows", query, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetShow returns a single show as a flat entry
func (c *Client) GetShow(ctx context.Context, id string) (domain.Entry, error) {
	if id == "" {
		return domain.Entry{}, errors.New("show id is required")
	}
	var entry domain.Entry
	if err := c.getJSON(ctx, "/shows/"+url.PathEscape(id), nil, &entry); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

// GetCast returns a show's cast in billing order
func (c *Client) GetCast(ctx context.Context, id string) ([]domain.CastMember, error) {
	var cast []domain.CastMember
	if err := c.getJSON(ctx, showPath(id, "cast"), nil, &cast); err != nil {
		return nil, err
	}
	return cast, nil
}

// GetSeasons returns all seasons of a show
func (c *Client) GetSeasons(ctx context.Context, id string) ([]domain.Season, error) {
	var seasons []domain.Season
	if err := c.getJSON(ctx, showPath(id, "seasons"), nil, &seasons); err != nil {
		return nil, err
	}
	return seasons, nil
}

// GetEpisodes returns all episodes of a show
func (c *Client) GetEpisodes(ctx context.Context, id string) ([]domain.Episode, error) {
	var episodes []domain.Episode
	if err := c.getJSON(ctx, showPath(id, "episodes"), nil, &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

func showPath(id, resource string) string {
	return "/shows/" + url.PathEscape(id) + "/" + resource
}

// uniqueShows keeps the first entry per resolved show id, in order
func uniqueShows(items []domain.Entry) []domain.Entry {
	seen := make(map[string]bool, len(items))
	out := make([]domain.Entry, 0, len(items))
	for _, item := range items {
		id := item.ID()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, item)
	}
	return out
}
