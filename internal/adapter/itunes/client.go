package itunes

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/mmcdole/storesearch/internal/domain"
)

const (
	// ResultLimit is the fixed result-count ceiling sent with every search
	ResultLimit = 200

	userAgent = "StoreSearch/1.0"
)

// Options configures a Client
type Options struct {
	BaseURL           string
	Country           string
	Lang              string
	Timeout           time.Duration // 0 = transport default (no client timeout)
	RequestsPerMinute int           // <= 0 disables throttling
}

// Client implements domain.SearchClient for the iTunes Search API
type Client struct {
	baseURL    string
	country    string
	lang       string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new iTunes Search API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}

	return &Client{
		baseURL: opts.BaseURL,
		country: opts.Country,
		lang:    opts.Lang,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// SearchURL builds the request URL for a term and category.
// Spaces are sent as %20 rather than the form-encoding '+'.
func (c *Client) SearchURL(term string, category domain.Category) string {
	query := url.Values{}
	query.Set("term", term)
	query.Set("limit", strconv.Itoa(ResultLimit))
	query.Set("entity", category.Entity())
	if c.country != "" {
		query.Set("country", c.country)
	}
	if c.lang != "" {
		query.Set("lang", c.lang)
	}

	// Encode escapes a literal '+' as %2B, so every remaining '+' is a space
	encoded := strings.ReplaceAll(query.Encode(), "+", "%20")
	return c.baseURL + "?" + encoded
}

// Search runs one catalog query
func (c *Client) Search(ctx context.Context, term string, category domain.Category) ([]domain.SearchResult, error) {
	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID)

	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.SearchURL(term, category)
	body, err := c.doRequest(ctx, reqURL, logger)
	if err != nil {
		return nil, err
	}

	results, skipped, err := decodeResults(body)
	if err != nil {
		logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, err
	}
	if skipped > 0 {
		logger.Debug("skipped malformed results", "skipped", skipped)
	}

	logger.Debug("search complete", "term", term, "category", category.String(), "results", len(results))
	return results, nil
}

// doRequest performs the GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, reqURL string, logger *slog.Logger) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	logger.Debug("store request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Error("store request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("store request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	return body, nil
}
