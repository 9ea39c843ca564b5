package animation

import (
	"math"

	"github.com/go-drift/timing/pkg/errors"
)

// maxIteration is the first overall progress too large to index.
const maxIteration = float64(math.MaxUint64)

// ComputeTimingAt samples timing at localTime. It is a pure function:
// identical inputs always produce identical records.
//
// timing must already be normalized for the owning timeline (see
// [Normalize]). An unresolved localTime yields an idle record with null
// progress.
func ComputeTimingAt(localTime LocalTime, timing *TimingParams, opts SampleOptions) ComputedTiming {
	const op = "animation.ComputeTimingAt"

	result := ComputedTiming{
		Iterations:     timing.Iterations(),
		IterationStart: timing.IterationStart(),
		ActiveDuration: timing.ActiveDuration(),
		EndTime:        timing.EndTime(),
		Fill:           timing.Fill().resolve(),
	}
	if d, ok := timing.Duration(); ok {
		errors.Assert(d >= 0, op, "iteration duration must be non-negative")
		result.Duration = d
	}
	errors.Assert(result.Iterations >= 0 && !math.IsNaN(result.Iterations), op,
		"iterations must be non-negative")
	errors.Assert(result.IterationStart >= 0, op, "iteration start must be non-negative")

	local, ok := localTime.Value()
	if !ok {
		return result
	}

	delay := timing.Delay()
	beforeActive := timing.BeforeActiveBoundary()
	activeAfter := timing.ActiveAfterBoundary()
	exclusive := opts.Endpoint == EndpointExclusive && !opts.AtTimelineBoundary

	switch {
	case local > activeAfter ||
		(exclusive && opts.PlaybackRate >= 0 && local == activeAfter):
		result.Phase = PhaseAfter
		if !result.FillsForwards() {
			return result
		}
		result.ActiveTime = max(min(local.Sub(delay), result.ActiveDuration), 0)
	case local < beforeActive ||
		(exclusive && opts.PlaybackRate < 0 && local == beforeActive):
		result.Phase = PhaseBefore
		if !result.FillsBackwards() {
			return result
		}
		result.ActiveTime = max(local.Sub(delay), 0)
	default:
		// Progress-based timelines can be active with a zero active duration.
		result.Phase = PhaseActive
		result.ActiveTime = local.Sub(delay)
	}

	var overall float64
	// An empty active interval is complete as soon as it starts. This also
	// covers positive durations whose product with iterations truncates to
	// zero.
	if result.ActiveDuration == 0 {
		if result.Phase != PhaseBefore {
			overall = result.Iterations
		}
	} else {
		overall = result.ActiveTime.Div(result.Duration)
	}
	finite := !math.IsInf(overall, 0) && !math.IsNaN(overall)
	if finite {
		overall += result.IterationStart
	}
	result.OverallProgress = Float(overall)

	if (result.Iterations >= maxIteration && result.Phase == PhaseAfter) || overall >= maxIteration {
		result.CurrentIteration = InfiniteIteration
	} else {
		result.CurrentIteration = FiniteIteration(uint64(max(overall, 0)))
	}

	var progress float64
	if finite {
		progress = math.Mod(overall, 1)
	} else {
		progress = math.Mod(result.IterationStart, 1)
	}

	// At the very end of the active interval report the end of the last
	// iteration, not the start of the next one. Zero-iteration effects
	// stay at zero.
	if progress == 0 &&
		(result.Phase == PhaseActive || result.Phase == PhaseAfter) &&
		result.ActiveTime == result.ActiveDuration &&
		result.Iterations != 0 {
		errors.Assert(result.CurrentIteration != FiniteIteration(0), op,
			"current iteration must be non-zero at the end of a non-empty active interval")
		progress = 1
		result.CurrentIteration = result.CurrentIteration.prev()
	}

	var reverse bool
	switch timing.Direction() {
	case DirectionNormal:
	case DirectionReverse:
		reverse = true
	case DirectionAlternate:
		reverse = result.CurrentIteration.odd()
	case DirectionAlternateReverse:
		reverse = !result.CurrentIteration.odd()
	default:
		errors.Assert(false, op, "unknown playback direction")
	}
	if reverse {
		progress = 1 - progress
	}
	result.SimpleProgress = Float(progress)

	result.BeforeFlag = (result.Phase == PhaseAfter && reverse) ||
		(result.Phase == PhaseBefore && !reverse)

	if fn := timing.Easing(); fn != nil {
		progress = fn.At(progress, result.BeforeFlag)
	}

	errors.Assert(!math.IsInf(progress, 0) && !math.IsNaN(progress), op, "progress must be finite")
	result.Progress = Float(progress)
	return result
}
