package core

// PageClock measures the time spent on a page in seconds, derived from
// simulation ticks. It restarts when the page is entered and stands still
// while another page is stacked on top.
type PageClock struct {
	tickRate  int
	ticks     uint64
	suspended bool
}

// NewPageClock creates a clock advancing 1/tickRate seconds per tick.
func NewPageClock(tickRate int) PageClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return PageClock{tickRate: tickRate}
}

// Enter restarts the clock at zero.
func (c *PageClock) Enter() {
	c.ticks = 0
	c.suspended = false
}

// Tick advances the clock by one tick unless it is suspended.
func (c *PageClock) Tick() {
	if !c.suspended {
		c.ticks++
	}
}

// Suspend freezes the clock.
func (c *PageClock) Suspend() {
	c.suspended = true
}

// Resume continues from the frozen time.
func (c *PageClock) Resume() {
	c.suspended = false
}

// Suspended reports whether the clock is frozen.
func (c *PageClock) Suspended() bool {
	return c.suspended
}

// Elapsed returns the seconds since the last Enter.
func (c *PageClock) Elapsed() float64 {
	return float64(c.ticks) / float64(c.tickRate)
}
