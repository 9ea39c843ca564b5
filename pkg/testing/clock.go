package testing

import (
	"sync"
	"time"

	"github.com/go-drift/timing/pkg/animation"
)

// FakeClock provides controllable time for deterministic animation tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// FakeAnimation is an [animation.Owner] whose current time follows a
// FakeClock. It starts idle with an unresolved current time.
//
//	clk := timingtest.NewFakeClock()
//	anim := timingtest.NewFakeAnimation(clk)
//	effect.SetOwner(anim)
//	anim.Play()
//	clk.Advance(16 * time.Millisecond)
//	ct := effect.ComputedTiming()
type FakeAnimation struct {
	mu    sync.Mutex
	clock *FakeClock

	resolved bool
	playing  bool
	// hold is the current time at since.
	hold  time.Duration
	since time.Time
	rate  float64

	timeline animation.StickyDuration
	boundary bool
	finished bool
}

// NewFakeAnimation returns an idle animation driven by clock.
func NewFakeAnimation(clock *FakeClock) *FakeAnimation {
	return &FakeAnimation{clock: clock, rate: 1}
}

// current must be called with mu held.
func (a *FakeAnimation) current() time.Duration {
	if !a.playing {
		return a.hold
	}
	elapsed := a.clock.Now().Sub(a.since)
	return a.hold + time.Duration(float64(elapsed)*a.rate)
}

// rebase folds elapsed time into hold. Must be called with mu held.
func (a *FakeAnimation) rebase() {
	a.hold = a.current()
	a.since = a.clock.Now()
}

// Play resumes the animation, resolving its current time if needed.
func (a *FakeAnimation) Play() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.playing {
		return
	}
	a.resolved = true
	a.playing = true
	a.since = a.clock.Now()
}

// Pause holds the current time.
func (a *FakeAnimation) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rebase()
	a.playing = false
}

// Seek sets the current time.
func (a *FakeAnimation) Seek(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resolved = true
	a.hold = d
	a.since = a.clock.Now()
}

// Cancel makes the current time unresolved again.
func (a *FakeAnimation) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resolved = false
	a.playing = false
	a.hold = 0
}

// SetRate changes the playback rate without a jump in current time.
func (a *FakeAnimation) SetRate(rate float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rebase()
	a.rate = rate
}

// SetProgressTimeline switches to a progress-based timeline of duration d,
// or back to a time-based timeline when d is zero.
func (a *FakeAnimation) SetProgressTimeline(d animation.StickyDuration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timeline = d
}

// SetAtBoundary sets the progress-based timeline boundary flag.
func (a *FakeAnimation) SetAtBoundary(b bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.boundary = b
}

// SetFinished sets the finished play state.
func (a *FakeAnimation) SetFinished(f bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.finished = f
}

// CurrentTime implements animation.Owner.
func (a *FakeAnimation) CurrentTime() animation.LocalTime {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.resolved {
		return animation.Unresolved
	}
	return animation.At(a.current())
}

// PlaybackRate implements animation.Owner.
func (a *FakeAnimation) PlaybackRate() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rate
}

// AtProgressTimelineBoundary implements animation.Owner.
func (a *FakeAnimation) AtProgressTimelineBoundary() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.boundary
}

// ProgressTimeline implements animation.Owner.
func (a *FakeAnimation) ProgressTimeline() (animation.StickyDuration, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timeline, a.timeline != 0
}

// Finished implements animation.Owner.
func (a *FakeAnimation) Finished() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.finished
}
