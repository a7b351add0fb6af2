// fallback.go
// ------------
// The proxy fallback chain: one direct attempt against an allow-listed
// origin, then each configured proxy prefix in order, single try per path.
// Any received response wins regardless of status; only transport-level
// failures move the chain forward. There is no backoff here — this path
// tries alternate routes rather than waiting out transient errors, keeping
// latency bounded for interactive callers.
package resilientfetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// FetchWithFallback retrieves target directly, then through each configured
// proxy prefix, returning the first received response. The target must pass
// the origin guard; a disallowed host fails before any network activity with
// ErrDisallowedOrigin.
func (c *Client) FetchWithFallback(ctx context.Context, target string) (*Response, error) {
	if !c.IsAllowed(target) {
		return nil, fmt.Errorf("fetch %s: %w", target, ErrDisallowedOrigin)
	}

	c.debugf("Direct fetch: %s\n", target)
	resp, err := c.transport.Execute(ctx, &Request{Method: http.MethodGet, URL: target})
	if err == nil {
		return resp, nil
	}
	lastErr := err

	escaped := url.QueryEscape(target)
	for i, prefix := range c.proxyPrefixes {
		proxied := prefix + escaped
		c.debugf("Previous path failed (%v); trying proxy %d/%d: %s\n", lastErr, i+1, len(c.proxyPrefixes), proxied)
		resp, err = c.transport.Execute(ctx, &Request{Method: http.MethodGet, URL: proxied})
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	return nil, &ProxyChainError{URL: target, Err: lastErr}
}
