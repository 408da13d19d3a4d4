// Package wikipedia provides a client for the encyclopedia endpoints used by
// entity enrichment: open-search, batch extracts, page summaries and raw
// wikitext. All responses are decoded into explicit structs; any shape
// mismatch is reported as an error and treated upstream as "no match".
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTimeout is the maximum time to wait for encyclopedia responses.
const DefaultTimeout = 15 * time.Second

// openSearchLimit bounds how many candidates a search returns; batch extract
// requests are bounded to the same count to keep cost per lookup flat.
const openSearchLimit = 5

// SearchResult is one open-search candidate.
type SearchResult struct {
	Title string
	URL   string
}

// Extract is a short description for one page from a batch extract request.
type Extract struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	Description string `json:"description"`
}

// PageSummary is the summary endpoint response for one page.
type PageSummary struct {
	Title     string  `json:"title"`
	Extract   string  `json:"extract"`
	Thumbnail *string `json:"-"`
}

// Config holds client configuration.
type Config struct {
	// BaseURL serves the action API (/w/api.php) and raw page content.
	BaseURL string
	// RESTBaseURL serves page summaries.
	RESTBaseURL string
	Timeout     time.Duration
	// CacheTTL applies when a Redis cache is attached.
	CacheTTL time.Duration
}

// Client talks to the encyclopedia. A nil cache disables caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	restURL    string
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewClient creates a new encyclopedia client. httpClient may be nil, in which
// case a default client with DefaultTimeout is used. cache may be nil.
func NewClient(cfg *Config, httpClient *http.Client, cache *redis.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		restURL:    strings.TrimSuffix(cfg.RESTBaseURL, "/"),
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
		logger:     logger.Named("wikipedia"),
	}
}

// OpenSearch returns up to five title/URL candidates for the query.
func (c *Client) OpenSearch(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{
		"action":    {"opensearch"},
		"search":    {query},
		"limit":     {fmt.Sprint(openSearchLimit)},
		"namespace": {"0"},
		"format":    {"json"},
	}

	body, err := c.get(ctx, c.baseURL+"/w/api.php?"+params.Encode(), "opensearch:"+query)
	if err != nil {
		return nil, err
	}

	// Open-search convention: [query, [titles...], [descriptions...], [urls...]]
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("malformed opensearch response: %w", err)
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("malformed opensearch response: %d elements", len(raw))
	}

	var titles, urls []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return nil, fmt.Errorf("malformed opensearch titles: %w", err)
	}
	if err := json.Unmarshal(raw[3], &urls); err != nil {
		return nil, fmt.Errorf("malformed opensearch urls: %w", err)
	}

	results := make([]SearchResult, 0, len(titles))
	for i, title := range titles {
		r := SearchResult{Title: title}
		if i < len(urls) {
			r.URL = urls[i]
		}
		results = append(results, r)
	}

	return results, nil
}

// BatchExtracts fetches short extracts and descriptions for up to five titles
// in a single pipe-joined request, keyed by page title.
func (c *Client) BatchExtracts(ctx context.Context, titles []string) (map[string]Extract, error) {
	if len(titles) == 0 {
		return map[string]Extract{}, nil
	}
	if len(titles) > openSearchLimit {
		titles = titles[:openSearchLimit]
	}

	joined := strings.Join(titles, "|")
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts|description"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"exlimit":     {fmt.Sprint(openSearchLimit)},
		"titles":      {joined},
		"format":      {"json"},
		"redirects":   {"1"},
	}

	body, err := c.get(ctx, c.baseURL+"/w/api.php?"+params.Encode(), "extracts:"+joined)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Query struct {
			Pages map[string]Extract `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed extracts response: %w", err)
	}

	extracts := make(map[string]Extract, len(payload.Query.Pages))
	for _, page := range payload.Query.Pages {
		extracts[page.Title] = page
	}

	return extracts, nil
}

// Summary fetches the page summary (lead extract plus optional thumbnail).
func (c *Client) Summary(ctx context.Context, title string) (*PageSummary, error) {
	endpoint := c.restURL + "/page/summary/" + url.PathEscape(title)

	body, err := c.get(ctx, endpoint, "summary:"+title)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Title     string `json:"title"`
		Extract   string `json:"extract"`
		Thumbnail struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed summary response: %w", err)
	}

	summary := &PageSummary{Title: payload.Title, Extract: payload.Extract}
	if payload.Thumbnail.Source != "" {
		summary.Thumbnail = &payload.Thumbnail.Source
	}

	return summary, nil
}

// RawWikitext fetches the raw markup of a page for infobox parsing.
func (c *Client) RawWikitext(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"title":  {title},
		"action": {"raw"},
	}

	body, err := c.get(ctx, c.baseURL+"/w/index.php?"+params.Encode(), "wikitext:"+title)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// get performs a cached GET. Cache failures are logged and ignored; the
// encyclopedia remains the source of truth.
func (c *Client) get(ctx context.Context, endpoint, cacheKey string) ([]byte, error) {
	cacheKey = "wiki:" + cacheKey

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil {
			c.logger.Warn("Cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call encyclopedia: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("encyclopedia returned status %d", resp.StatusCode)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body, c.cacheTTL).Err(); err != nil {
			c.logger.Warn("Cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return body, nil
}
