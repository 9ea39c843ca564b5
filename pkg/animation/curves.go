package animation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TimingFunction transforms the simple progress of an iteration into eased
// progress. Results may leave [0, 1] (e.g. overshooting bezier curves).
//
// beforeFlag is set when the sample lies on the "before" side of the
// active interval; step functions use it to pick the lower step at an
// exact boundary.
type TimingFunction interface {
	At(x float64, beforeFlag bool) float64
	String() string
}

// Standard easing functions, equivalent to the CSS keywords.
var (
	// Linear returns progress unchanged.
	Linear TimingFunction = linearFunction{}
	// Ease is CSS ease.
	Ease = CubicBezierFunction{X1: 0.25, Y1: 0.1, X2: 0.25, Y2: 1, keyword: "ease"}
	// EaseIn starts slowly and accelerates. CSS ease-in.
	EaseIn = CubicBezierFunction{X1: 0.42, Y1: 0, X2: 1, Y2: 1, keyword: "ease-in"}
	// EaseOut starts quickly and decelerates. CSS ease-out.
	EaseOut = CubicBezierFunction{X1: 0, Y1: 0, X2: 0.58, Y2: 1, keyword: "ease-out"}
	// EaseInOut starts and ends slowly. CSS ease-in-out.
	EaseInOut = CubicBezierFunction{X1: 0.42, Y1: 0, X2: 0.58, Y2: 1, keyword: "ease-in-out"}
	// StepStart jumps to the end value at the start of the iteration.
	StepStart = StepsFunction{Steps: 1, Position: StepPositionStart}
	// StepEnd holds the start value until the end of the iteration.
	StepEnd = StepsFunction{Steps: 1, Position: StepPositionEnd}
)

type linearFunction struct{}

func (linearFunction) At(x float64, _ bool) float64 { return x }
func (linearFunction) String() string               { return "linear" }

func isLinear(fn TimingFunction) bool {
	if fn == nil {
		return true
	}
	_, ok := fn.(linearFunction)
	return ok
}

func easingEqual(a, b TimingFunction) bool {
	if isLinear(a) || isLinear(b) {
		return isLinear(a) && isLinear(b)
	}
	return a.String() == b.String()
}

// CubicBezierFunction matches CSS cubic-bezier(). The control points
// (X1,Y1) and (X2,Y2) shape a curve from (0,0) to (1,1).
type CubicBezierFunction struct {
	X1, Y1, X2, Y2 float64

	keyword string
}

// CubicBezier returns a cubic-bezier easing function. X1 and X2 must lie
// in [0, 1] for the curve to be a function of time.
func CubicBezier(x1, y1, x2, y2 float64) CubicBezierFunction {
	return CubicBezierFunction{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// At evaluates the curve at t.
func (c CubicBezierFunction) At(t float64, _ bool) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	u := t
	// Newton-Raphson converges quickly for most values.
	for n := 0; n < 8; n++ {
		x := sampleCurve(c.X1, c.X2, u) - t
		if math.Abs(x) < 1e-7 {
			return sampleCurve(c.Y1, c.Y2, clampUnit(u))
		}
		dx := sampleCurveDerivative(c.X1, c.X2, u)
		if math.Abs(dx) < 1e-7 {
			break
		}
		u -= x / dx
	}

	// Fallback to bisection to guarantee a stable solution in [0,1].
	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for n := 0; n < 12; n++ {
		x := sampleCurve(c.X1, c.X2, u) - t
		if math.Abs(x) < 1e-7 {
			break
		}
		if x > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) * 0.5
	}

	return sampleCurve(c.Y1, c.Y2, u)
}

func (c CubicBezierFunction) validate() string {
	for _, v := range [...]float64{c.X1, c.Y1, c.X2, c.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "control points must be finite"
		}
	}
	if c.X1 < 0 || c.X1 > 1 || c.X2 < 0 || c.X2 > 1 {
		return "x coordinates must lie in [0, 1]"
	}
	return ""
}

func (c CubicBezierFunction) String() string {
	if c.keyword != "" {
		return c.keyword
	}
	return fmt.Sprintf("cubic-bezier(%s, %s, %s, %s)",
		formatFloat(c.X1), formatFloat(c.Y1), formatFloat(c.X2), formatFloat(c.Y2))
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// StepPosition selects where the jumps of a step function happen.
type StepPosition int

const (
	// StepPositionJumpEnd jumps at the end of each interval.
	StepPositionJumpEnd StepPosition = iota
	// StepPositionJumpStart jumps at the start of each interval.
	StepPositionJumpStart
	// StepPositionJumpNone jumps only between intervals.
	StepPositionJumpNone
	// StepPositionJumpBoth jumps at both ends.
	StepPositionJumpBoth
	// StepPositionStart behaves like StepPositionJumpStart.
	StepPositionStart
	// StepPositionEnd behaves like StepPositionJumpEnd.
	StepPositionEnd
)

var stepPositionNames = [...]string{"jump-end", "jump-start", "jump-none", "jump-both", "start", "end"}

func (p StepPosition) String() string {
	if p >= 0 && int(p) < len(stepPositionNames) {
		return stepPositionNames[p]
	}
	return fmt.Sprintf("StepPosition(%d)", int(p))
}

// StepsFunction matches CSS steps().
type StepsFunction struct {
	Steps    int
	Position StepPosition
}

// Steps returns a step easing function with n intervals.
func Steps(n int, pos StepPosition) (StepsFunction, error) {
	fn := StepsFunction{Steps: n, Position: pos}
	if err := fn.validate(); err != "" {
		return StepsFunction{}, parseError("animation.Steps", "easing", fn.String(), err)
	}
	return fn, nil
}

func (s StepsFunction) validate() string {
	if s.Position < StepPositionJumpEnd || s.Position > StepPositionEnd {
		return "unknown step position"
	}
	if s.Position == StepPositionJumpNone && s.Steps < 2 {
		return "jump-none needs at least two steps"
	}
	if s.Steps < 1 {
		return "step count must be positive"
	}
	return ""
}

func (s StepsFunction) jumps() float64 {
	switch s.Position {
	case StepPositionJumpBoth:
		return float64(s.Steps + 1)
	case StepPositionJumpNone:
		return float64(s.Steps - 1)
	default:
		return float64(s.Steps)
	}
}

// At evaluates the step function at x. With beforeFlag set, a sample
// exactly on a jump reports the lower step.
func (s StepsFunction) At(x float64, beforeFlag bool) float64 {
	steps := float64(s.Steps)
	current := math.Floor(x * steps)
	if s.Position == StepPositionJumpStart || s.Position == StepPositionStart || s.Position == StepPositionJumpBoth {
		current++
	}
	if beforeFlag && math.Mod(x*steps, 1) == 0 {
		current--
	}
	if x >= 0 && current < 0 {
		current = 0
	}
	jumps := s.jumps()
	if x <= 1 && current > jumps {
		current = jumps
	}
	return current / jumps
}

func (s StepsFunction) String() string {
	if s.Position == StepPositionJumpEnd || s.Position == StepPositionEnd {
		return fmt.Sprintf("steps(%d)", s.Steps)
	}
	return fmt.Sprintf("steps(%d, %s)", s.Steps, s.Position)
}

// ParseEasing parses CSS easing syntax: a keyword (linear, ease, ease-in,
// ease-out, ease-in-out, step-start, step-end), cubic-bezier(x1, y1, x2, y2)
// or steps(n[, position]).
func ParseEasing(s string) (TimingFunction, error) {
	const op = "animation.ParseEasing"
	text := strings.ToLower(strings.TrimSpace(s))

	switch text {
	case "linear":
		return Linear, nil
	case "ease":
		return Ease, nil
	case "ease-in":
		return EaseIn, nil
	case "ease-out":
		return EaseOut, nil
	case "ease-in-out":
		return EaseInOut, nil
	case "step-start":
		return StepStart, nil
	case "step-end":
		return StepEnd, nil
	}

	name, args, ok := splitFunction(text)
	if !ok {
		return nil, parseError(op, "easing", s, "unknown keyword")
	}
	switch name {
	case "cubic-bezier":
		if len(args) != 4 {
			return nil, parseError(op, "easing", s, "cubic-bezier takes four numbers")
		}
		var v [4]float64
		for i, arg := range args {
			f, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, parseError(op, "easing", s, fmt.Sprintf("invalid number %q", arg))
			}
			v[i] = f
		}
		fn := CubicBezier(v[0], v[1], v[2], v[3])
		if reason := fn.validate(); reason != "" {
			return nil, parseError(op, "easing", s, reason)
		}
		return fn, nil
	case "steps":
		if len(args) < 1 || len(args) > 2 {
			return nil, parseError(op, "easing", s, "steps takes a count and an optional position")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, parseError(op, "easing", s, fmt.Sprintf("invalid step count %q", args[0]))
		}
		pos := StepPositionEnd
		if len(args) == 2 {
			pos = -1
			for i, name := range stepPositionNames {
				if name == args[1] {
					pos = StepPosition(i)
				}
			}
		}
		fn := StepsFunction{Steps: n, Position: pos}
		if reason := fn.validate(); reason != "" {
			return nil, parseError(op, "easing", s, reason)
		}
		return fn, nil
	}
	return nil, parseError(op, "easing", s, fmt.Sprintf("unknown function %q", name))
}

// splitFunction splits "name(a, b)" into its name and trimmed arguments.
func splitFunction(s string) (name string, args []string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name = strings.TrimSpace(s[:open])
	body := s[open+1 : len(s)-1]
	for _, arg := range strings.Split(body, ",") {
		args = append(args, strings.TrimSpace(arg))
	}
	return name, args, true
}
