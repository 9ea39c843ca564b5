package animation

import (
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-drift/timing/pkg/errors"
)

// FillMode controls whether an effect applies outside its active interval.
type FillMode int

const (
	// FillNone applies the effect only during the active interval.
	FillNone FillMode = iota
	// FillForwards keeps applying the final value after the active interval.
	FillForwards
	// FillBackwards applies the initial value before the active interval.
	FillBackwards
	// FillBoth combines FillForwards and FillBackwards.
	FillBoth
	// FillAuto resolves to FillNone for effect timing.
	FillAuto
)

var fillModeNames = [...]string{"none", "forwards", "backwards", "both", "auto"}

// String returns the CSS keyword for the fill mode.
func (f FillMode) String() string {
	if f >= 0 && int(f) < len(fillModeNames) {
		return fillModeNames[f]
	}
	return fmt.Sprintf("FillMode(%d)", int(f))
}

// ParseFillMode parses a CSS fill keyword.
func ParseFillMode(s string) (FillMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range fillModeNames {
		if name == key {
			return FillMode(i), nil
		}
	}
	return FillNone, parseError("animation.ParseFillMode", "fill mode", s, "unknown keyword")
}

func (f FillMode) valid() bool {
	return f >= FillNone && f <= FillAuto
}

func (f FillMode) resolve() FillMode {
	if f == FillAuto {
		return FillNone
	}
	return f
}

// PlaybackDirection selects which iterations run backwards.
type PlaybackDirection int

const (
	// DirectionNormal runs every iteration forwards.
	DirectionNormal PlaybackDirection = iota
	// DirectionReverse runs every iteration backwards.
	DirectionReverse
	// DirectionAlternate runs odd iterations backwards.
	DirectionAlternate
	// DirectionAlternateReverse runs even iterations backwards.
	DirectionAlternateReverse
)

var directionNames = [...]string{"normal", "reverse", "alternate", "alternate-reverse"}

// String returns the CSS keyword for the direction.
func (d PlaybackDirection) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("PlaybackDirection(%d)", int(d))
}

// ParsePlaybackDirection parses a CSS direction keyword.
func ParsePlaybackDirection(s string) (PlaybackDirection, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if name == key {
			return PlaybackDirection(i), nil
		}
	}
	return DirectionNormal, parseError("animation.ParsePlaybackDirection", "playback direction", s, "unknown keyword")
}

func (d PlaybackDirection) valid() bool {
	return d >= DirectionNormal && d <= DirectionAlternateReverse
}

// TimingOptions is the specified timing of an effect before validation.
// Use [DefaultTimingOptions] for the Web Animations defaults.
type TimingOptions struct {
	Delay    time.Duration
	EndDelay time.Duration
	// Duration is the iteration duration; nil means auto.
	Duration       *time.Duration
	Iterations     float64
	IterationStart float64
	Direction      PlaybackDirection
	Fill           FillMode
	// Easing is applied to each iteration; nil means linear.
	Easing TimingFunction
}

// DefaultTimingOptions returns one iteration of auto duration with auto fill.
func DefaultTimingOptions() TimingOptions {
	return TimingOptions{
		Iterations: 1,
		Fill:       FillAuto,
	}
}

// Ptr returns a pointer to v, for optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// TimingParams is a validated, immutable set of timing parameters.
// Replace it wholesale to change an effect's timing.
type TimingParams struct {
	delay          StickyDuration
	endDelay       StickyDuration
	duration       StickyDuration
	hasDuration    bool
	iterations     float64
	iterationStart float64
	direction      PlaybackDirection
	fill           FillMode
	easing         TimingFunction

	activeDuration StickyDuration
	endTime        StickyDuration
}

var (
	errNegative = stderrors.New("must be non-negative")
	errNaN      = stderrors.New("must be a number")
	errInfinite = stderrors.New("must be finite")
	errUnknown  = stderrors.New("unknown value")
)

// NewTimingParams validates opts and derives the active duration and end time.
func NewTimingParams(opts TimingOptions) (*TimingParams, error) {
	const op = "animation.NewTimingParams"
	invalid := func(field string, err error) error {
		return &errors.TimingError{Op: op, Kind: errors.KindValidation, Field: field, Err: err}
	}

	p := &TimingParams{
		delay:          Sticky(opts.Delay),
		endDelay:       Sticky(opts.EndDelay),
		iterations:     opts.Iterations,
		iterationStart: opts.IterationStart,
		direction:      opts.Direction,
		fill:           opts.Fill,
		easing:         opts.Easing,
	}
	if opts.Duration != nil {
		if *opts.Duration < 0 {
			return nil, invalid("duration", errNegative)
		}
		p.duration = Sticky(*opts.Duration)
		p.hasDuration = true
	}
	switch {
	case math.IsNaN(opts.Iterations):
		return nil, invalid("iterations", errNaN)
	case opts.Iterations < 0:
		return nil, invalid("iterations", errNegative)
	}
	switch {
	case math.IsNaN(opts.IterationStart):
		return nil, invalid("iterationStart", errNaN)
	case math.IsInf(opts.IterationStart, 0):
		return nil, invalid("iterationStart", errInfinite)
	case opts.IterationStart < 0:
		return nil, invalid("iterationStart", errNegative)
	}
	if !opts.Direction.valid() {
		return nil, invalid("direction", errUnknown)
	}
	if !opts.Fill.valid() {
		return nil, invalid("fill", errUnknown)
	}
	if v, ok := p.easing.(interface{ validate() string }); ok {
		if reason := v.validate(); reason != "" {
			return nil, invalid("easing", stderrors.New(reason))
		}
	}
	if isLinear(p.easing) {
		p.easing = nil
	}
	p.update()
	return p, nil
}

// update recomputes the memoized quantities.
func (p *TimingParams) update() {
	p.activeDuration = calcActiveDuration(p.duration, p.hasDuration, p.iterations)
	p.endTime = max(p.delay.Add(p.activeDuration).Add(p.endDelay), 0)
}

func calcActiveDuration(duration StickyDuration, hasDuration bool, iterations float64) StickyDuration {
	// Zero either way, so that zero times infinity stays defined.
	if !hasDuration || duration == 0 || iterations == 0 {
		return 0
	}
	return duration.MulFloat(iterations)
}

// Delay returns the start delay.
func (p *TimingParams) Delay() StickyDuration { return p.delay }

// EndDelay returns the end delay, which may be negative.
func (p *TimingParams) EndDelay() StickyDuration { return p.endDelay }

// Duration returns the iteration duration; ok is false for auto.
func (p *TimingParams) Duration() (d StickyDuration, ok bool) {
	return p.duration, p.hasDuration
}

// Iterations returns the iteration count, possibly +Inf.
func (p *TimingParams) Iterations() float64 { return p.iterations }

// IterationStart returns the offset into the iteration cycle.
func (p *TimingParams) IterationStart() float64 { return p.iterationStart }

// Direction returns the playback direction.
func (p *TimingParams) Direction() PlaybackDirection { return p.direction }

// Fill returns the specified fill mode (auto is not resolved).
func (p *TimingParams) Fill() FillMode { return p.fill }

// Easing returns the easing function, or nil for linear.
func (p *TimingParams) Easing() TimingFunction { return p.easing }

// ActiveDuration returns duration × iterations, Forever for infinitely
// repeating effects with a non-zero duration.
func (p *TimingParams) ActiveDuration() StickyDuration { return p.activeDuration }

// EndTime returns max(delay + active duration + end delay, 0).
func (p *TimingParams) EndTime() StickyDuration { return p.endTime }

// BeforeActiveBoundary returns the local time at which the active
// interval starts, clipped to [0, end time].
func (p *TimingParams) BeforeActiveBoundary() StickyDuration {
	return max(min(p.delay, p.endTime), 0)
}

// ActiveAfterBoundary returns the local time at which the active
// interval ends, clipped to [0, end time].
func (p *TimingParams) ActiveAfterBoundary() StickyDuration {
	return max(min(p.delay.Add(p.activeDuration), p.endTime), 0)
}

// Equal reports whether p and o specify the same timing. Easing functions
// compare by their serialized form.
func (p *TimingParams) Equal(o *TimingParams) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.delay == o.delay &&
		p.endDelay == o.endDelay &&
		p.hasDuration == o.hasDuration &&
		p.duration == o.duration &&
		p.iterations == o.iterations &&
		p.iterationStart == o.iterationStart &&
		p.direction == o.direction &&
		p.fill == o.fill &&
		easingEqual(p.easing, o.easing)
}

// Options returns the specified timing as options, for building a
// modified copy.
func (p *TimingParams) Options() TimingOptions {
	opts := TimingOptions{
		Delay:          p.delay.Duration(),
		EndDelay:       p.endDelay.Duration(),
		Iterations:     p.iterations,
		IterationStart: p.iterationStart,
		Direction:      p.direction,
		Fill:           p.fill,
		Easing:         p.easing,
	}
	if p.hasDuration {
		opts.Duration = Ptr(p.duration.Duration())
	}
	return opts
}

// SpecifiedDuration is an iteration duration that may be auto.
type SpecifiedDuration struct {
	Auto  bool
	Value time.Duration
}

// OptionalTiming is a partial timing update. Nil fields keep their
// current value.
type OptionalTiming struct {
	Delay          *time.Duration
	EndDelay       *time.Duration
	Duration       *SpecifiedDuration
	Iterations     *float64
	IterationStart *float64
	Direction      *PlaybackDirection
	Fill           *FillMode
	Easing         TimingFunction
}

// Merge returns new parameters with update applied on top of p.
// p itself is left untouched.
func (p *TimingParams) Merge(update OptionalTiming) (*TimingParams, error) {
	opts := p.Options()
	if update.Delay != nil {
		opts.Delay = *update.Delay
	}
	if update.EndDelay != nil {
		opts.EndDelay = *update.EndDelay
	}
	if update.Duration != nil {
		if update.Duration.Auto {
			opts.Duration = nil
		} else {
			opts.Duration = Ptr(update.Duration.Value)
		}
	}
	if update.Iterations != nil {
		opts.Iterations = *update.Iterations
	}
	if update.IterationStart != nil {
		opts.IterationStart = *update.IterationStart
	}
	if update.Direction != nil {
		opts.Direction = *update.Direction
	}
	if update.Fill != nil {
		opts.Fill = *update.Fill
	}
	if update.Easing != nil {
		opts.Easing = update.Easing
	}
	return NewTimingParams(opts)
}

func parseError(op, dataType, input, reason string) error {
	return &errors.TimingError{
		Op:   op,
		Kind: errors.KindParsing,
		Err:  &errors.ParseError{DataType: dataType, Input: input, Reason: reason},
	}
}
