package animation

import (
	"math"
	"strconv"
	"time"
)

// StickyDuration is a signed span of time with nanosecond resolution whose
// arithmetic saturates at [Forever] and [NegativeForever] instead of
// overflowing. Active durations of infinitely repeating effects are Forever.
type StickyDuration int64

const (
	// Forever is the saturated positive duration.
	Forever StickyDuration = math.MaxInt64
	// NegativeForever is the saturated negative duration.
	NegativeForever StickyDuration = math.MinInt64
)

// Sticky converts a time.Duration. time.Duration's extreme values map onto
// Forever and NegativeForever.
func Sticky(d time.Duration) StickyDuration {
	return StickyDuration(d)
}

// IsForever reports whether d is saturated in either direction.
func (d StickyDuration) IsForever() bool {
	return d == Forever || d == NegativeForever
}

// Add returns d+o. A positive infinity wins over a negative one.
func (d StickyDuration) Add(o StickyDuration) StickyDuration {
	if d == Forever || o == Forever {
		return Forever
	}
	if d == NegativeForever || o == NegativeForever {
		return NegativeForever
	}
	sum := d + o
	// Two's complement overflow flips the sign of the sum.
	if d > 0 && o > 0 && sum < 0 {
		return Forever
	}
	if d < 0 && o < 0 && sum >= 0 {
		return NegativeForever
	}
	return sum
}

// Sub returns d-o.
func (d StickyDuration) Sub(o StickyDuration) StickyDuration {
	return d.Add(o.neg())
}

func (d StickyDuration) neg() StickyDuration {
	switch d {
	case Forever:
		return NegativeForever
	case NegativeForever:
		return Forever
	}
	return -d
}

// MulFloat scales d by f, truncating toward zero.
func (d StickyDuration) MulFloat(f float64) StickyDuration {
	if d == 0 || f == 0 || math.IsNaN(f) {
		return 0
	}
	if d.IsForever() {
		if (d == Forever) == (f > 0) {
			return Forever
		}
		return NegativeForever
	}
	r := float64(d) * f
	switch {
	case r >= math.MaxInt64:
		return Forever
	case r <= math.MinInt64:
		return NegativeForever
	}
	return StickyDuration(r)
}

// Div returns d/o as a ratio. A saturated numerator yields an infinity;
// a finite numerator over a saturated denominator yields zero.
func (d StickyDuration) Div(o StickyDuration) float64 {
	if d.IsForever() {
		inf := math.Inf(1)
		if (d == Forever) != (o > 0) {
			inf = math.Inf(-1)
		}
		return inf
	}
	if o.IsForever() {
		return 0
	}
	return float64(d) / float64(o)
}

// Milliseconds returns d in milliseconds, with ±Inf for saturated values.
func (d StickyDuration) Milliseconds() float64 {
	switch d {
	case Forever:
		return math.Inf(1)
	case NegativeForever:
		return math.Inf(-1)
	}
	return float64(d) / float64(time.Millisecond)
}

// Duration returns d as a time.Duration.
func (d StickyDuration) Duration() time.Duration {
	return time.Duration(d)
}

func (d StickyDuration) String() string {
	switch d {
	case Forever:
		return "forever"
	case NegativeForever:
		return "-forever"
	}
	return time.Duration(d).String()
}

// LocalTime is an effect-relative time sample. The zero value is
// unresolved: the owning animation has no current time.
type LocalTime struct {
	value    StickyDuration
	resolved bool
}

// Unresolved is the local time of an animation without a current time.
var Unresolved = LocalTime{}

// At returns a resolved local time.
func At(d time.Duration) LocalTime {
	return LocalTime{value: Sticky(d), resolved: true}
}

// AtSticky returns a resolved local time, which may be Forever.
func AtSticky(d StickyDuration) LocalTime {
	return LocalTime{value: d, resolved: true}
}

// Value returns the sample and whether it is resolved.
func (t LocalTime) Value() (StickyDuration, bool) {
	return t.value, t.resolved
}

// IsResolved reports whether t carries a time.
func (t LocalTime) IsResolved() bool {
	return t.resolved
}

func (t LocalTime) String() string {
	if !t.resolved {
		return "unresolved"
	}
	return t.value.String()
}

// formatFloat renders numbers the way CSS serializes them.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
