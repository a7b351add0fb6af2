// errors.go
// ----------
// Error taxonomy of the SDK. Transport-level failures, rate-limit refusals,
// and proxy-chain exhaustion are distinct types so callers can branch with
// errors.Is / errors.As; every type that carries a cause implements Unwrap.
package resilientfetch

import (
	"errors"
	"fmt"
	"time"
)

// ErrDisallowedOrigin is returned by FetchWithFallback before any network
// activity when the target host is not on the allow-list.
var ErrDisallowedOrigin = errors.New("not an allow-listed domain")

// TransportError reports that the network layer failed on every attempt of a
// retry loop. Attempts is the number of requests actually issued.
type TransportError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError carries a received-but-unsuccessful status code. It drives
// the mid-loop retry path; a non-ok response on the final attempt is returned
// to the caller as a response, not as this error.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// RateLimitError reports a rate-limit refusal whose reset time falls outside
// the waitable window (already past, or more than a minute away).
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: reset at %s is outside the wait window", e.ResetAt.Format(time.RFC3339))
}

// ProxyChainError reports that the direct attempt and every configured proxy
// failed at the transport level. Err is the last recorded cause.
type ProxyChainError struct {
	URL string
	Err error
}

func (e *ProxyChainError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: all proxies failed", e.URL)
	}
	return fmt.Sprintf("fetch %s: all proxies failed: %v", e.URL, e.Err)
}

func (e *ProxyChainError) Unwrap() error { return e.Err }
