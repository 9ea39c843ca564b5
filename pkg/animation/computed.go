package animation

import (
	"fmt"
	"math"
	"strconv"
)

// Phase is the position of a local time relative to the active interval.
//
//	        delay              delay + active duration
//	Before ─────────► Active ─────────────────────────► After
//
// PhaseIdle marks a record computed without a resolved local time.
type Phase int

const (
	// PhaseIdle means the effect was not sampled.
	PhaseIdle Phase = iota
	// PhaseBefore means the local time precedes the active interval.
	PhaseBefore
	// PhaseActive means the local time is inside the active interval.
	PhaseActive
	// PhaseAfter means the local time follows the active interval.
	PhaseAfter
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBefore:
		return "before"
	case PhaseActive:
		return "active"
	case PhaseAfter:
		return "after"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Iteration is a zero-based iteration index, or the infinite iteration of
// an effect that repeats forever.
type Iteration struct {
	index    uint64
	infinite bool
}

// InfiniteIteration is the iteration reached at the end of an infinitely
// repeating effect.
var InfiniteIteration = Iteration{infinite: true}

// FiniteIteration returns the iteration with index n.
func FiniteIteration(n uint64) Iteration {
	return Iteration{index: n}
}

// IsInfinite reports whether i is the infinite iteration.
func (i Iteration) IsInfinite() bool { return i.infinite }

// Index returns the iteration index; ok is false for the infinite iteration.
func (i Iteration) Index() (n uint64, ok bool) {
	return i.index, !i.infinite
}

// Float64 returns the index as a number, +Inf for the infinite iteration.
func (i Iteration) Float64() float64 {
	if i.infinite {
		return math.Inf(1)
	}
	return float64(i.index)
}

func (i Iteration) String() string {
	if i.infinite {
		return "infinite"
	}
	return strconv.FormatUint(i.index, 10)
}

// odd reports whether the iteration runs reversed under alternate
// playback. The infinite iteration counts as odd.
func (i Iteration) odd() bool {
	return i.infinite || i.index&1 == 1
}

// prev steps back one iteration. The infinite iteration and iteration
// zero are left as they are.
func (i Iteration) prev() Iteration {
	if i.infinite || i.index == 0 {
		return i
	}
	return Iteration{index: i.index - 1}
}

// NullFloat is a float64 that may be null.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a valid NullFloat holding v.
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// Ptr returns nil for a null value.
func (n NullFloat) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

func (n NullFloat) String() string {
	if !n.Valid {
		return "null"
	}
	return formatFloat(n.Value)
}

// EndpointBehavior selects whether the end of the active interval belongs
// to it. Exclusive sampling puts an exact boundary sample into the phase
// the playback is heading to.
type EndpointBehavior int

const (
	// EndpointInclusive keeps boundary samples in the active phase.
	EndpointInclusive EndpointBehavior = iota
	// EndpointExclusive moves boundary samples out of the active phase,
	// except at the boundary of a progress-based timeline.
	EndpointExclusive
)

func (e EndpointBehavior) String() string {
	switch e {
	case EndpointInclusive:
		return "inclusive"
	case EndpointExclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("EndpointBehavior(%d)", int(e))
	}
}

// SampleOptions carries what the owning animation contributes to a sample.
// The zero value is a forward, inclusive, non-boundary sample.
type SampleOptions struct {
	// PlaybackRate is the owning animation's rate; only its sign matters.
	PlaybackRate float64
	// AtTimelineBoundary is set when a progress-based timeline sits exactly
	// at the start or end of its range.
	AtTimelineBoundary bool
	// Endpoint is the endpoint behavior.
	Endpoint EndpointBehavior
}

// ComputedTiming is the result of sampling an effect. It is a plain value,
// created fresh by every evaluation.
type ComputedTiming struct {
	// Phase is PhaseIdle when the local time was unresolved.
	Phase Phase
	// ActiveTime is the time elapsed within the active interval.
	ActiveTime StickyDuration
	// OverallProgress counts iterations including the iteration start.
	OverallProgress NullFloat
	// SimpleProgress is the directed progress within the current iteration,
	// before easing.
	SimpleProgress NullFloat
	// Progress is the eased progress; null when the effect is not in effect.
	Progress NullFloat
	// CurrentIteration is the zero-based index of the current iteration.
	CurrentIteration Iteration
	// BeforeFlag selects the lower side of a step discontinuity.
	BeforeFlag bool

	Duration       StickyDuration
	Fill           FillMode
	ActiveDuration StickyDuration
	EndTime        StickyDuration
	Iterations     float64
	IterationStart float64
}

// InEffect reports whether the effect applies at the sampled time.
func (c ComputedTiming) InEffect() bool {
	return c.Progress.Valid
}

// FillsForwards reports whether the resolved fill covers the after phase.
func (c ComputedTiming) FillsForwards() bool {
	return c.Fill == FillForwards || c.Fill == FillBoth
}

// FillsBackwards reports whether the resolved fill covers the before phase.
func (c ComputedTiming) FillsBackwards() bool {
	return c.Fill == FillBackwards || c.Fill == FillBoth
}
