// Package remote queries the content index over HTTP. The client fails
// soft: transport errors, non-2xx responses, malformed bodies, and
// cancellations all degrade to an empty result set so the palette can show
// "no results" rather than an error state.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"quickopen/internal/logging"
	"quickopen/internal/logging/events"
)

// Result is one hit from the content index.
type Result struct {
	ID         string  `json:"id"`
	Path       string  `json:"path"`
	RangeStart int     `json:"range_start"`
	RangeEnd   int     `json:"range_end"`
	Score      float64 `json:"score"`
	Snippet    string  `json:"snippet"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

const (
	// DefaultTimeout bounds a single request to the content index.
	DefaultTimeout = 10 * time.Second
	// DefaultLimit is the per-query result cap requested from the index.
	DefaultLimit = 15
	// defaultRate allows a short typing burst through while keeping a
	// sustained flood off the endpoint.
	defaultRate  = rate.Limit(8)
	defaultBurst = 4
)

// Client issues queries to the content index. Exactly one request is in
// flight at a time, paired by generation rather than call order: a search
// for a newer generation cancels the older in-flight request, and a search
// whose goroutine arrives late for an already superseded generation gives
// way without touching the newer request.
type Client struct {
	endpoint string
	limit    int
	client   *http.Client
	limiter  *rate.Limiter

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithLimit sets how many results are requested per query.
func WithLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithLimiter replaces the default request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// NewClient builds a client for the given search endpoint base URL.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		limit:    DefaultLimit,
		client:   &http.Client{Timeout: DefaultTimeout},
		limiter:  rate.NewLimiter(defaultRate, defaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries the content index on behalf of one query generation. An
// older in-flight request is cancelled first; a call that lost the
// goroutine race to a newer generation returns nil without issuing a
// request. The caller still must discard results from a superseded
// generation: transport cancellation is not instantaneous.
func (c *Client) Search(ctx context.Context, gen uint64, query string) []Result {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	if gen <= c.gen {
		c.mu.Unlock()
		cancel()
		events.Remote.Cancelled(query)
		return nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.gen = gen
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	events.Remote.Request(query)
	if err := c.limiter.Wait(ctx); err != nil {
		// Cancelled or superseded while waiting for a slot.
		events.Remote.Cancelled(query)
		return nil
	}

	u := fmt.Sprintf("%s/search?q=%s&limit=%s",
		c.endpoint, url.QueryEscape(query), strconv.Itoa(c.limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		logging.Error(fmt.Errorf("remote search request: %w", err))
		return nil
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			events.Remote.Cancelled(query)
		} else {
			logging.Error(fmt.Errorf("remote search: %w", err))
		}
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Error(fmt.Errorf("remote search: endpoint returned HTTP %d", resp.StatusCode))
		return nil
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if errors.Is(err, context.Canceled) {
			events.Remote.Cancelled(query)
		} else {
			logging.Error(fmt.Errorf("remote search: decode response: %w", err))
		}
		return nil
	}
	events.Remote.Results(query, len(payload.Results))
	return payload.Results
}

// Cancel aborts any in-flight request. Used when the palette closes.
func (c *Client) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
