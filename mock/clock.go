package mock

import (
	"context"
	"time"
)

// Clock is a virtual clock for tests: Sleep returns immediately, records the
// requested duration, and advances Now by it, so a whole retry schedule runs
// instantly while staying observable.
type Clock struct {
	Current time.Time
	Slept   []time.Duration
}

// NewClock starts the virtual clock at the current wall time.
func NewClock() *Clock {
	return &Clock{Current: time.Now()}
}

func (c *Clock) Now() time.Time { return c.Current }

func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Slept = append(c.Slept, d)
	c.Current = c.Current.Add(d)
	return nil
}

// TotalSlept sums every recorded sleep.
func (c *Clock) TotalSlept() time.Duration {
	var total time.Duration
	for _, d := range c.Slept {
		total += d
	}
	return total
}
