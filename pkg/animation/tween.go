package animation

import (
	"math"
	"time"
)

// Tween maps an effect's eased progress onto a value of any type.
//
// Progress leaves [0, 1] under overshooting easing functions, so Lerp
// should extrapolate rather than clamp. See ExampleTween and
// ExampleTween_customType.
type Tween[T any] struct {
	// Begin is the value at progress 0.
	Begin T
	// End is the value at progress 1.
	End T
	// Lerp returns the value at progress t between a and b. A nil Lerp
	// jumps straight to End.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the value at progress t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Transform returns the value for a computed sample. ok is false when the
// effect is not in effect and nothing should be applied.
func (tw *Tween[T]) Transform(ct ComputedTiming) (value T, ok bool) {
	if !ct.InEffect() {
		return value, false
	}
	return tw.Evaluate(ct.Progress.Value), true
}

// Sample is Transform applied to the effect's current computed timing.
func (tw *Tween[T]) Sample(e *Effect) (T, bool) {
	return tw.Transform(e.ComputedTiming())
}

// LerpFloat64 interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpDuration interpolates between two durations, rounding to the nearest
// nanosecond.
func LerpDuration(a, b time.Duration, t float64) time.Duration {
	return a + time.Duration(math.Round(float64(b-a)*t))
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenDuration creates a tween for durations.
func TweenDuration(begin, end time.Duration) *Tween[time.Duration] {
	return &Tween[time.Duration]{Begin: begin, End: end, Lerp: LerpDuration}
}
