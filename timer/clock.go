package timer

// VirtualClock is the ambient collaborator the timer core does not
// implement (spec.md §1): a monotonic nanosecond clock exposing a
// schedule(callback, deadline_ns)/cancel primitive for a single timer
// handle. The host emulator supplies the concrete implementation;
// SimClock below is the minimal reference implementation used by tests
// and the `-timer-sim` CLI demo.
type VirtualClock interface {
	// NowNS returns the current virtual time in nanoseconds.
	NowNS() int64
	// Schedule arms the single timer handle to invoke cb at deadlineNS.
	// A deadline at or before NowNS() fires synchronously, inline,
	// before Schedule returns (spec.md §5: "deadlines in the past fire
	// synchronously during the arming call"). Scheduling again before
	// the handle fires implicitly cancels the previous arm.
	Schedule(deadlineNS int64, cb func())
	// Cancel disarms the pending timer handle, if any. A no-op if
	// nothing is armed.
	Cancel()
}

// IRQLine is the ambient collaborator accepting edge (pulse)
// notifications (spec.md §1).
type IRQLine interface {
	Pulse()
}

// SimClock is a deterministic, single-threaded VirtualClock reference
// implementation: virtual time advances only when Advance is called
// explicitly, never from the wall clock, so tests (and the CLI's
// `-timer-sim` mode) get fully reproducible IRQ timestamps (spec.md §8
// property 5).
type SimClock struct {
	now     int64
	armed   bool
	deadline int64
	cb      func()
}

// NewSimClock creates a SimClock starting at virtual time 0.
func NewSimClock() *SimClock {
	return &SimClock{}
}

// NowNS implements VirtualClock.
func (c *SimClock) NowNS() int64 {
	return c.now
}

// Schedule implements VirtualClock. A deadline at or before the
// current time fires cb synchronously and leaves nothing armed.
func (c *SimClock) Schedule(deadlineNS int64, cb func()) {
	if deadlineNS <= c.now {
		c.armed = false
		cb()
		return
	}
	c.armed = true
	c.deadline = deadlineNS
	c.cb = cb
}

// Cancel implements VirtualClock.
func (c *SimClock) Cancel() {
	c.armed = false
	c.cb = nil
}

// Advance moves virtual time forward by deltaNS, firing the armed
// callback (and any callbacks it re-arms that also fall within the new
// window) in deadline order. Returns the number of callbacks fired.
func (c *SimClock) Advance(deltaNS int64) int {
	target := c.now + deltaNS
	fired := 0
	for c.armed && c.deadline <= target {
		c.now = c.deadline
		cb := c.cb
		c.armed = false
		c.cb = nil
		cb() // may re-arm synchronously via Schedule
		fired++
	}
	c.now = target
	return fired
}
