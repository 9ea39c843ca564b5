package animation

import (
	"sync"
)

// Owner is the animation an effect belongs to. It supplies everything the
// engine consumes but does not compute itself.
type Owner interface {
	// CurrentTime returns the animation's current time, unresolved when the
	// animation is idle.
	CurrentTime() LocalTime
	// PlaybackRate returns the animation's playback rate.
	PlaybackRate() float64
	// AtProgressTimelineBoundary reports whether a progress-based timeline
	// sits exactly at one end of its range.
	AtProgressTimelineBoundary() bool
	// ProgressTimeline returns the timeline duration when the timeline is
	// progress-based; ok is false for time-based timelines.
	ProgressTimeline() (duration StickyDuration, ok bool)
	// Finished reports whether the animation's play state is finished.
	Finished() bool
}

// AnimationState is a snapshot of an owning animation. It implements
// [Owner] for embedders that sample effects from their own frame loop.
type AnimationState struct {
	Time             LocalTime
	Rate             float64
	TimelineBoundary bool
	// TimelineDuration is non-zero for progress-based timelines.
	TimelineDuration StickyDuration
	IsFinished       bool
}

// CurrentTime implements Owner.
func (s AnimationState) CurrentTime() LocalTime { return s.Time }

// PlaybackRate implements Owner.
func (s AnimationState) PlaybackRate() float64 { return s.Rate }

// AtProgressTimelineBoundary implements Owner.
func (s AnimationState) AtProgressTimelineBoundary() bool { return s.TimelineBoundary }

// ProgressTimeline implements Owner.
func (s AnimationState) ProgressTimeline() (StickyDuration, bool) {
	return s.TimelineDuration, s.TimelineDuration != 0
}

// Finished implements Owner.
func (s AnimationState) Finished() bool { return s.IsFinished }

// TimingChange is emitted when an effect's specified timing is replaced
// by a structurally different value.
type TimingChange struct {
	Effect *Effect
	Old    *TimingParams
	New    *TimingParams
}

// Effect pairs specified timing with the normalized timing derived from it
// and the owner's timeline.
//
// The normalized timing is cached. The cache is dropped whenever the
// specified timing or the owner is replaced, and when the embedder calls
// [Effect.InvalidateTimeline] after the timeline's duration changed. The
// effect never detects a stale timeline on its own.
//
// Effect is safe for concurrent use. Listeners run on the goroutine that
// changed the timing, after internal locks are released.
type Effect struct {
	mu              sync.RWMutex
	specified       *TimingParams
	normalized      *TimingParams
	normalizedValid bool
	owner           Owner

	listenerMu     sync.Mutex
	listeners      map[int]func(TimingChange)
	nextListenerID int
}

// NewEffect creates an effect with the given specified timing.
func NewEffect(timing *TimingParams) *Effect {
	return &Effect{
		specified: timing,
		listeners: make(map[int]func(TimingChange)),
	}
}

// SpecifiedTiming returns the timing as specified.
func (e *Effect) SpecifiedTiming() *TimingParams {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.specified
}

// SetSpecifiedTiming replaces the specified timing and reports whether it
// actually changed. Listeners are notified only on change.
func (e *Effect) SetSpecifiedTiming(timing *TimingParams) bool {
	e.mu.Lock()
	old := e.specified
	if old.Equal(timing) {
		e.mu.Unlock()
		return false
	}
	e.specified = timing
	e.normalizedValid = false
	e.mu.Unlock()

	e.notify(TimingChange{Effect: e, Old: old, New: timing})
	return true
}

// UpdateTiming merges a partial update into the specified timing.
func (e *Effect) UpdateTiming(update OptionalTiming) (changed bool, err error) {
	merged, err := e.SpecifiedTiming().Merge(update)
	if err != nil {
		return false, err
	}
	return e.SetSpecifiedTiming(merged), nil
}

// SetOwner attaches the effect to an owning animation, or detaches it
// when owner is nil.
func (e *Effect) SetOwner(owner Owner) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.owner = owner
	e.normalizedValid = false
}

// Owner returns the owning animation, or nil.
func (e *Effect) Owner() Owner {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.owner
}

// InvalidateTimeline drops the normalized timing. Call it whenever the
// owner's timeline duration may have changed (e.g. a scroll range was
// re-measured) before sampling again.
func (e *Effect) InvalidateTimeline() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.normalizedValid = false
}

// NormalizedTiming returns the timing expressed in the owner's timeline
// unit, recomputing it if the cache was invalidated.
func (e *Effect) NormalizedTiming() *TimingParams {
	_, n := e.snapshot()
	return n
}

// snapshot returns the owner together with the normalized timing derived
// for that same owner.
func (e *Effect) snapshot() (Owner, *TimingParams) {
	e.mu.RLock()
	if e.normalizedValid {
		owner, n := e.owner, e.normalized
		e.mu.RUnlock()
		return owner, n
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.normalizedValid {
		e.normalized = e.specified
		if e.owner != nil {
			if d, ok := e.owner.ProgressTimeline(); ok {
				e.normalized = Normalize(e.specified, d, true)
			}
		}
		e.normalizedValid = true
	}
	return e.owner, e.normalized
}

// LocalTime returns the owner's current time, unresolved without an owner.
func (e *Effect) LocalTime() LocalTime {
	if owner := e.Owner(); owner != nil {
		return owner.CurrentTime()
	}
	return Unresolved
}

// sample evaluates timing against a single owner, returning the local time
// it read along with the record.
func sample(owner Owner, timing *TimingParams, endpoint EndpointBehavior) (LocalTime, ComputedTiming) {
	local := Unresolved
	opts := SampleOptions{PlaybackRate: 1, Endpoint: endpoint}
	if owner != nil {
		local = owner.CurrentTime()
		opts.PlaybackRate = owner.PlaybackRate()
		opts.AtTimelineBoundary = owner.AtProgressTimelineBoundary()
	}
	return local, ComputeTimingAt(local, timing, opts)
}

// ComputedTiming samples the effect at the owner's current time with
// inclusive endpoints.
func (e *Effect) ComputedTiming() ComputedTiming {
	return e.ComputedTimingWith(EndpointInclusive)
}

// ComputedTimingWith samples the effect at the owner's current time.
func (e *Effect) ComputedTimingWith(endpoint EndpointBehavior) ComputedTiming {
	owner, timing := e.snapshot()
	_, ct := sample(owner, timing, endpoint)
	return ct
}

// IsInEffect reports whether the effect currently applies.
func (e *Effect) IsInEffect() bool {
	return e.ComputedTiming().InEffect()
}

// IsCurrent reports whether the effect is active or will become active
// given the owner's playback direction.
func (e *Effect) IsCurrent() bool {
	owner, timing := e.snapshot()
	if owner == nil || owner.Finished() {
		return false
	}
	_, ct := sample(owner, timing, EndpointInclusive)
	if ct.Phase == PhaseActive {
		return true
	}
	rate := owner.PlaybackRate()
	return (rate > 0 && ct.Phase == PhaseBefore) || (rate < 0 && ct.Phase == PhaseAfter)
}

// AddTimingListener adds a callback that fires whenever the specified
// timing changes. Returns an unsubscribe function.
func (e *Effect) AddTimingListener(fn func(TimingChange)) func() {
	e.listenerMu.Lock()
	defer e.listenerMu.Unlock()
	id := e.nextListenerID
	e.nextListenerID++
	e.listeners[id] = fn
	return func() {
		e.listenerMu.Lock()
		defer e.listenerMu.Unlock()
		delete(e.listeners, id)
	}
}

func (e *Effect) notify(change TimingChange) {
	e.listenerMu.Lock()
	listeners := make([]func(TimingChange), 0, len(e.listeners))
	for _, fn := range e.listeners {
		listeners = append(listeners, fn)
	}
	e.listenerMu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
}
