// request_executor.go
// --------------------
// The RequestExecutor owns the retry loop of FetchWithRetry: exponential
// backoff between attempts, rate-limit-aware waiting, and the terminal error
// classification. Attempts are strictly sequential; one request is in flight
// at a time so a struggling origin is never hit with parallel retries.
//
// Backoff is 1s doubling per attempt and capped at 10s, with no jitter. A
// rate-limit wait (403 + zero remaining quota) does not consume an attempt,
// but is never allowed to exceed one minute; a reset further away fails the
// call immediately.
package resilientfetch

import (
	"context"
	"net/http"
	"time"

	"github.com/securedash/resilient-fetch/internal"
)

// RequestExecutor handles retry logic, backoff, and rate-limit waits.
type RequestExecutor struct {
	c *Client
}

func NewRequestExecutor(c *Client) *RequestExecutor {
	return &RequestExecutor{c: c}
}

// ExecuteWithRetry issues req until it yields a response or the attempt
// budget is spent. The derived worst-case added delay is
// sum(min(1s<<i, 10s) for i in 0..maxRetries-2) plus at most one minute of
// rate-limit waiting per rate-limited response; there is no further
// wall-clock deadline beyond ctx.
//
// A non-ok response on the final attempt is returned as-is with a nil error;
// callers inspect the status themselves after exhaustion.
func (re *RequestExecutor) ExecuteWithRetry(ctx context.Context, req *Request) (*Response, error) {
	maxRetries := req.MaxRetries
	if maxRetries <= 0 {
		maxRetries = re.c.maxRetries
	}

	attempts := 0
	for {
		re.c.debugf("Sending %s %s (attempt %d/%d)...\n", methodOf(req), req.URL, attempts+1, maxRetries)
		resp, err := re.c.transport.Execute(ctx, req)
		if err != nil {
			if attempts < maxRetries-1 {
				wait := re.calculateBackoff(attempts)
				re.c.debugf("Transport error: %v. Retrying in %v (attempt %d/%d)...\n", err, wait, attempts+1, maxRetries)
				if serr := re.c.clock.Sleep(ctx, wait); serr != nil {
					return nil, serr
				}
				attempts++
				continue
			}
			re.c.debugf("Max retries reached after transport error: %v\n", err)
			return nil, &TransportError{URL: req.URL, Attempts: attempts + 1, Err: err}
		}

		if resp.StatusCode == http.StatusForbidden && resp.Header("X-RateLimit-Remaining") == "0" {
			resetSecs, _ := internal.ParseUnixSeconds(resp.Header("X-RateLimit-Reset"))
			wait := time.Duration(internal.UnixToMs(resetSecs)-re.c.clock.Now().UnixMilli()) * time.Millisecond
			if wait <= 0 || wait >= maxRateLimitWait {
				re.c.debugf("Rate limit reset at %d is outside the wait window. Giving up.\n", resetSecs)
				return nil, &RateLimitError{ResetAt: time.Unix(resetSecs, 0)}
			}
			// Waiting out the cooldown retries the same attempt slot; the
			// budget is not consumed.
			re.c.debugf("Rate limited. Waiting %v until reset before retrying...\n", wait)
			if serr := re.c.clock.Sleep(ctx, wait); serr != nil {
				return nil, serr
			}
			continue
		}

		if !resp.OK() && attempts < maxRetries-1 {
			cause := &HTTPStatusError{StatusCode: resp.StatusCode}
			wait := re.calculateBackoff(attempts)
			re.c.debugf("%v. Retrying in %v (attempt %d/%d)...\n", cause, wait, attempts+1, maxRetries)
			if serr := re.c.clock.Sleep(ctx, wait); serr != nil {
				return nil, serr
			}
			attempts++
			continue
		}

		if attempts > 0 {
			re.c.debugf("Request finished after %d attempts (status %d).\n", attempts+1, resp.StatusCode)
		}
		return resp, nil
	}
}

func (re *RequestExecutor) calculateBackoff(attempt int) time.Duration {
	backoff := baseBackoff * (1 << attempt) // 1s * 2^attempt
	if backoff <= 0 || backoff > maxBackoff {
		backoff = maxBackoff
	}
	return backoff
}

func methodOf(req *Request) string {
	if req.Method == "" {
		return http.MethodGet
	}
	return req.Method
}
