// Package animation computes the timing of animation effects: given an
// effect's timing parameters and a local time, it reports the phase, the
// active time, the current iteration and the eased progress.
//
// # Core Components
//
//   - [TimingParams]: Validated, immutable timing (delays, duration,
//     iterations, direction, fill and easing) with a memoized active
//     duration and end time.
//
//   - [ComputeTimingAt]: The pure evaluator. It never allocates shared
//     state and returns a fresh [ComputedTiming] for every sample.
//
//   - [Normalize]: Rescales timing for progress-based timelines (such as
//     scroll timelines) whose full range is expressed as
//     [ProgressTimelineDuration].
//
//   - [Effect]: Holds specified timing, caches its normalized form for the
//     owning animation, and notifies listeners when the timing changes.
//
//   - [TimingFunction]: CSS easing functions, including cubic-bezier and
//     steps(). Use [ParseEasing] for the CSS syntax.
//
//   - [Tween]: Maps eased progress onto values of any type.
//
// # Basic Usage
//
//	timing, err := animation.NewTimingParams(animation.TimingOptions{
//	    Duration:   animation.Ptr(300 * time.Millisecond),
//	    Iterations: 1,
//	    Fill:       animation.FillForwards,
//	    Easing:     animation.EaseOut,
//	})
//	if err != nil {
//	    return err
//	}
//	ct := animation.ComputeTimingAt(animation.At(elapsed), timing,
//	    animation.SampleOptions{PlaybackRate: 1})
//	if ct.InEffect() {
//	    opacity := opacityTween.Evaluate(ct.Progress.Value)
//	    ...
//	}
//
// The package owns no clock. Embedders drive sampling from their own frame
// loop, usually through an [Effect] attached to an [Owner].
package animation
