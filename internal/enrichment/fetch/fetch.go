// Package fetch provides the outbound HTTP client used for search and
// website scraping. Third parties rate-limit and fingerprint automated
// traffic, so every request is paced with randomized jitter and carries a
// rotating browser identity.
package fetch

import (
	"context"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
}

// Client paces and disguises outbound requests.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	minDelay   time.Duration
	maxDelay   time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a paced client. minDelay/maxDelay bound the randomized
// inter-request jitter; timeout bounds each individual request.
func New(timeout, minDelay, maxDelay time.Duration) *Client {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	// The limiter is a hard ceiling underneath the jitter, so a burst of
	// zero-jitter calls still cannot hammer a host.
	interval := minDelay
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		minDelay:   minDelay,
		maxDelay:   maxDelay,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Get performs a paced GET with browser-shaped headers and a rotated
// User-Agent. The caller owns the response body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.decorate(req)

	return c.httpClient.Do(req)
}

// wait blocks for the jittered inter-request delay plus the limiter.
func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	delay := c.jitter()
	if delay <= 0 {
		return nil
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) jitter() time.Duration {
	if c.maxDelay <= c.minDelay {
		return c.minDelay
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minDelay + time.Duration(c.rng.Int63n(int64(c.maxDelay-c.minDelay)))
}

func (c *Client) decorate(req *http.Request) {
	c.mu.Lock()
	agent := userAgents[c.rng.Intn(len(userAgents))]
	c.mu.Unlock()

	req.Header.Set("User-Agent", agent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}
