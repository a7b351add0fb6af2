// client.go
// ----------
// The client.go file contains the core Client struct and its methods.
// This is the main entry point of the SDK for users.
//
// Key functionalities include:
// - Constructing a client with NewClient() from a Transport and a Config
// - Retrieving a URL with retry/backoff via FetchWithRetry()
// - Retrieving an allow-listed URL through the proxy chain via FetchWithFallback()
//
// The Client relies on a RequestExecutor to handle retries, backoff, and
// rate-limit waits, ensuring consistent behavior across both entry points.
package resilientfetch

import (
	"context"
	"fmt"
	"sync"
)

type Client struct {
	mu            sync.Mutex
	transport     Transport
	clock         Clock
	allowedHosts  []string
	proxyPrefixes []string
	maxRetries    int
	executor      *RequestExecutor

	Debug bool // If true, print debug info
}

// NewClient builds a Client over the given transport. A nil config selects
// the package defaults (GitHub allow-list, public CORS relays, 3 attempts).
func NewClient(transport Transport, config *Config) *Client {
	c := &Client{
		transport:     transport,
		clock:         realClock{},
		allowedHosts:  DefaultAllowedHosts,
		proxyPrefixes: DefaultProxyPrefixes,
		maxRetries:    DefaultMaxRetries,
	}
	if config != nil {
		if len(config.AllowedHosts) > 0 {
			c.allowedHosts = config.AllowedHosts
		}
		if len(config.ProxyPrefixes) > 0 {
			c.proxyPrefixes = config.ProxyPrefixes
		}
		if config.MaxRetries > 0 {
			c.maxRetries = config.MaxRetries
		}
	}
	c.executor = NewRequestExecutor(c)
	return c
}

// FetchWithRetry retrieves req with the executor's retry/backoff and
// rate-limit policy. It suspends the caller during backoff waits; see
// RequestExecutor.ExecuteWithRetry for the derived delay bound.
func (c *Client) FetchWithRetry(ctx context.Context, req *Request) (*Response, error) {
	return c.executor.ExecuteWithRetry(ctx, req)
}

// SetDebug enables or disables debug logging for the client.
func (c *Client) SetDebug(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Debug = enabled
}

// SetClock replaces the wall clock used for backoff and rate-limit waits.
// Production code never needs this; tests use it to run the retry schedule
// on virtual time.
func (c *Client) SetClock(clock Clock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock = clock
}

// debugf prints debug messages if Debug mode is enabled.
func (c *Client) debugf(format string, args ...interface{}) {
	if c.Debug {
		fmt.Printf("[DEBUG] "+format, args...)
	}
}
