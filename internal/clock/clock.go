package clock

import "time"

// smoothing is the window of the exponential moving average over the
// instantaneous frame rate.
const smoothing = 30

// Clock measures per-tick deltas from a monotonic time source.
type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time
	avg   float32
	ticks uint64
}

func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource builds a Clock over an arbitrary time source. now must be
// monotonic.
func NewWithSource(now func() time.Time) *Clock {
	t := now()
	return &Clock{now: now, start: t, last: t}
}

// Tick returns the seconds elapsed since the previous Tick (or since the
// Clock was created) and folds the instantaneous rate into the average.
func (c *Clock) Tick() float32 {
	t := c.now()
	delta := float32(t.Sub(c.last).Seconds())
	c.last = t
	c.Observe(delta)
	return delta
}

// Observe folds an externally measured delta into the frame-rate average.
// Non-positive deltas carry no rate information and are ignored.
func (c *Clock) Observe(delta float32) {
	c.ticks++
	if delta <= 0 {
		return
	}
	if c.avg == 0 {
		c.avg = 1 / delta
		return
	}
	c.avg = (c.avg*(smoothing-1) + 1/delta) / smoothing
}

func (c *Clock) FPS() float32 { return c.avg }

func (c *Clock) Ticks() uint64 { return c.ticks }

func (c *Clock) Elapsed() time.Duration { return c.now().Sub(c.start) }
