// Package httpx is the transport layer shared by the geocoding and forecast
// clients: bounded exponential-backoff retries on transient failures, a
// time-bounded response cache keyed by URL, and a request rate limiter.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultRetries  = 5
	defaultBackoff  = 200 * time.Millisecond
	defaultCacheTTL = time.Hour
)

type cacheEntry struct {
	body      []byte
	fetchedAt time.Time
}

type Client struct {
	http     *http.Client
	limiter  *rate.Limiter
	retries  int
	backoff  time.Duration
	cacheTTL time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func New(logger *slog.Logger) *Client {
	return &Client{
		http:     &http.Client{Timeout: defaultTimeout},
		limiter:  rate.NewLimiter(rate.Limit(2), 4),
		retries:  defaultRetries,
		backoff:  defaultBackoff,
		cacheTTL: defaultCacheTTL,
		logger:   logger,
		cache:    make(map[string]cacheEntry),
	}
}

// WithCacheTTL overrides how long identical requests are answered from cache.
// A zero duration disables caching.
func (c *Client) WithCacheTTL(ttl time.Duration) *Client {
	c.cacheTTL = ttl
	return c
}

// WithRetryPolicy overrides the attempt count and initial backoff.
func (c *Client) WithRetryPolicy(retries int, backoff time.Duration) *Client {
	c.retries = retries
	c.backoff = backoff
	return c
}

// GetJSON fetches url and unmarshals the response body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshaling response from %s: %w", url, err)
	}
	return nil
}

// Get fetches url, retrying transient failures and serving repeats of the
// same URL from cache within the TTL window.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	c.mu.Lock()
	entry, found := c.cache[url]
	c.mu.Unlock()
	if found && time.Since(entry.fetchedAt) < c.cacheTTL {
		c.logger.Debug("cache hit", slog.String("url", url))
		return entry.body, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var lastErr error
	backoff := c.backoff
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying request",
				slog.String("url", url),
				slog.Int("attempt", attempt),
				slog.Duration("backoff", backoff))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}

		body, retryable, err := c.get(ctx, url)
		if err == nil {
			c.mu.Lock()
			c.cache[url] = cacheEntry{body: body, fetchedAt: time.Now()}
			c.mu.Unlock()
			return body, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.retries, lastErr)
}

func (c *Client) get(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		// Connection errors and timeouts are worth another attempt,
		// a canceled context is not.
		return nil, !errors.Is(err, context.Canceled), err
	}
	defer res.Body.Close()

	body, err = io.ReadAll(res.Body)
	if err != nil {
		return nil, true, fmt.Errorf("reading response body: %w", err)
	}

	switch {
	case res.StatusCode == http.StatusOK:
		return body, false, nil
	case res.StatusCode >= 500 || res.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("unexpected status %d from %s", res.StatusCode, url)
	default:
		return nil, false, fmt.Errorf("unexpected status %d from %s: %s", res.StatusCode, url, body)
	}
}
