package resilientfetch_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resilientfetch "github.com/securedash/resilient-fetch"
	"github.com/securedash/resilient-fetch/mock"
)

// newTestClient wires a scripted transport and a virtual clock into a client.
// The clock starts on a whole second so rate-limit wait arithmetic (which is
// second-granular on the server side) comes out exact.
func newTestClient(outcomes []mock.Outcome, cfg *resilientfetch.Config) (*resilientfetch.Client, *mock.Transport, *mock.Clock) {
	transport := &mock.Transport{Outcomes: outcomes}
	clock := mock.NewClock()
	clock.Current = time.Unix(clock.Current.Unix(), 0)
	c := resilientfetch.NewClient(transport, cfg)
	c.SetClock(clock)
	return c, transport, clock
}

func transportErr(outcome ...error) []mock.Outcome {
	var out []mock.Outcome
	for _, err := range outcome {
		out = append(out, mock.Outcome{Err: err})
	}
	return out
}

func rateLimited(resetAt int64) mock.Outcome {
	return mock.Outcome{Resp: mock.Status(403, map[string]string{
		"X-RateLimit-Remaining": "0",
		"X-RateLimit-Reset":     strconv.FormatInt(resetAt, 10),
	})}
}

func TestFetchWithRetry_TransientFailuresThenSuccess(t *testing.T) {
	boom := errors.New("connection refused")
	c, transport, clock := newTestClient([]mock.Outcome{
		{Err: boom}, {Err: boom}, {Resp: mock.OK()},
	}, nil)

	resp, err := c.FetchWithRetry(context.Background(), &resilientfetch.Request{URL: "https://api.github.com/rate_limit"})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Len(t, transport.Calls, 3)
	// 1s after the first failure, 2s after the second, nothing after success.
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, clock.Slept)
	assert.Equal(t, 3*time.Second, clock.TotalSlept())
}

func TestFetchWithRetry_ExhaustedBudgetSurfacesTransportError(t *testing.T) {
	boom := errors.New("dial tcp: lookup failed")
	c, transport, clock := newTestClient(transportErr(boom, boom, boom), nil)

	resp, err := c.FetchWithRetry(context.Background(), &resilientfetch.Request{URL: "https://api.github.com/x"})

	require.Error(t, err)
	assert.Nil(t, resp)
	var te *resilientfetch.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 3, te.Attempts)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, transport.Calls, 3)
	// No backoff after the final attempt.
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, clock.Slept)
}

func TestFetchWithRetry_RateLimitWaitDoesNotConsumeBudget(t *testing.T) {
	c, transport, clock := newTestClient(nil, nil)
	reset := clock.Now().Unix() + 5
	transport.Outcomes = []mock.Outcome{rateLimited(reset), {Resp: mock.OK()}}

	// A budget of one attempt: the call can only succeed if the rate-limit
	// wait leaves the attempt slot untouched.
	resp, err := c.FetchWithRetry(context.Background(), &resilientfetch.Request{
		URL:        "https://api.github.com/x",
		MaxRetries: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Len(t, transport.Calls, 2)
	assert.Equal(t, []time.Duration{5 * time.Second}, clock.Slept)
}

func TestFetchWithRetry_RateLimitResetTooFarFailsImmediately(t *testing.T) {
	c, transport, clock := newTestClient(nil, nil)
	reset := clock.Now().Unix() + 120
	transport.Outcomes = []mock.Outcome{rateLimited(reset), {Resp: mock.OK()}}

	resp, err := c.FetchWithRetry(context.Background(), &resilientfetch.Request{URL: "https://api.github.com/x"})

	require.Error(t, err)
	assert.Nil(t, resp)
	var rle *resilientfetch.RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, reset, rle.ResetAt.Unix())
	assert.Contains(t, err.Error(), rle.ResetAt.Format(time.RFC3339))
	assert.Len(t, transport.Calls, 1)
	assert.Empty(t, clock.Slept)
}

func TestFetchWithRetry_RateLimitResetInPastFailsImmediately(t *testing.T) {
	c, transport, clock := newTestClient(nil, nil)
	transport.Outcomes = []mock.Outcome{rateLimited(clock.Now().Unix() - 10)}

	_, err := c.FetchWithRetry(context.Background(), &resilientfetch.Request{URL: "https://api.github.com/x"})

	var rle *resilientfetch.RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Empty(t, clock.Slept)
}

func TestFetchWithRetry_ServerErrorRetried(t *testing.T) {
	c, transport, clock := newTestClient([]mock.Outcome{
		{Resp: mock.Status(500, nil)}, {Resp: mock.OK()},
	}, nil)

	resp, err := c.FetchWithRetry(context.Background(), &resilientfetch.Request{URL: "https://api.github.com/x"})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Len(t, transport.Calls, 2)
	assert.Equal(t, []time.Duration{time.Second}, clock.Slept)
}

func TestFetchWithRetry_FinalNonOKResponseReturnedNotRaised(t *testing.T) {
	c, transport, clock := newTestClient([]mock.Outcome{
		{Resp: mock.Status(502, nil)},
		{Resp: mock.Status(502, nil)},
		{Resp: mock.Status(502, nil)},
	}, nil)

	resp, err := c.FetchWithRetry(context.Background(), &resilientfetch.Request{URL: "https://api.github.com/x"})

	// The exhausted-budget response comes back as a response, not an error;
	// the caller inspects the status itself.
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.Len(t, transport.Calls, 3)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, clock.Slept)
}

func TestFetchWithRetry_BackoffDoublesAndCaps(t *testing.T) {
	boom := errors.New("timeout")
	c, _, clock := newTestClient(transportErr(boom, boom, boom, boom, boom, boom), nil)

	_, err := c.FetchWithRetry(context.Background(), &resilientfetch.Request{
		URL:        "https://api.github.com/x",
		MaxRetries: 6,
	})

	require.Error(t, err)
	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		10 * time.Second, // capped
	}, clock.Slept)
}

func TestFetchWithRetry_CancelledContextStopsBackoff(t *testing.T) {
	boom := errors.New("connection reset")
	c, transport, _ := newTestClient(transportErr(boom, boom, boom), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FetchWithRetry(ctx, &resilientfetch.Request{URL: "https://api.github.com/x"})

	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, transport.Calls, 1)
}
