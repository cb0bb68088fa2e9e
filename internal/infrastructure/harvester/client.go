package harvester

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/dealscope/backend/internal/domain"
	"golang.org/x/time/rate"
)

const maxAttempts = 3

// Client talks to the external page-harvester service over HTTP. The
// harvester owns all browser/DOM concerns; this client only moves listings.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new harvester API client
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 90 * time.Second // live scrapes are slow
	}

	// The harvester serializes page loads internally; keep request pressure
	// at roughly one per second with a small burst.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// FetchAnchor retrieves the reference-retailer listing for the query.
func (c *Client) FetchAnchor(ctx context.Context, query string) (*domain.Listing, error) {
	body, err := c.get(ctx, "/v1/anchor", query)
	if err != nil {
		return nil, err
	}

	var wire wireListing
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode anchor response: %w", err)
	}

	listing := MapToListing(&wire)
	if c.debug {
		log.Printf("[HARVESTER] Anchor for %q: ₹%d %q", query, listing.Price, listing.Title)
	}
	return &listing, nil
}

// FetchCandidates retrieves the second retailer's candidate pool for the query.
func (c *Client) FetchCandidates(ctx context.Context, query string) ([]domain.Listing, error) {
	body, err := c.get(ctx, "/v1/candidates", query)
	if err != nil {
		return nil, err
	}

	var wire wireCandidates
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode candidates response: %w", err)
	}

	listings := make([]domain.Listing, 0, len(wire.Candidates))
	for i := range wire.Candidates {
		listings = append(listings, MapToListing(&wire.Candidates[i]))
	}

	if c.debug {
		log.Printf("[HARVESTER] Found %d candidates for %q", len(listings), query)
	}
	return listings, nil
}

// get executes a rate-limited GET with retries against the harvester service.
func (c *Client) get(ctx context.Context, path, query string) ([]byte, error) {
	params := url.Values{}
	params.Add("query", query)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[HARVESTER] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrListingNotFound
		}
		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[HARVESTER] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrHarvesterUnavailable, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		return body, nil
	}

	return nil, lastErr
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "DealScope/1.0")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHarvesterUnavailable, err)
	}

	return resp, nil
}

// exponentialBackoff doubles the wait per attempt: 500ms, 1s, 2s.
func exponentialBackoff(attempt int) time.Duration {
	return 500 * time.Millisecond << (attempt - 1)
}
