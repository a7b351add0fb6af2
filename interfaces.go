package resilientfetch

import (
	"context"
	"time"
)

// Transport performs a single HTTP exchange. A returned error means the
// request never produced a response (DNS failure, connection refused,
// timeout); a received response is always returned as a *Response, whatever
// its status code. The distinction drives every retry decision in the SDK.
type Transport interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// Clock abstracts time for backoff and rate-limit waits so tests can run the
// full retry schedule without real sleeping.
type Clock interface {
	Now() time.Time

	// Sleep suspends for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
