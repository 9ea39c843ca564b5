package animation

// EffectTiming is the specified timing as exposed to scripts and tools:
// times in milliseconds, keywords as strings.
type EffectTiming struct {
	Delay    float64 `yaml:"delay"`
	EndDelay float64 `yaml:"endDelay"`
	// Duration is nil for auto.
	Duration       *float64 `yaml:"duration"`
	Iterations     float64  `yaml:"iterations"`
	IterationStart float64  `yaml:"iterationStart"`
	Direction      string   `yaml:"direction"`
	Fill           string   `yaml:"fill"`
	Easing         string   `yaml:"easing"`
}

// ComputedEffectTiming extends EffectTiming with a computed sample.
type ComputedEffectTiming struct {
	EffectTiming `yaml:",inline"`

	ActiveDuration float64 `yaml:"activeDuration"`
	EndTime        float64 `yaml:"endTime"`
	Phase          string  `yaml:"phase"`
	// LocalTime, Progress and CurrentIteration are nil when unresolved or
	// not in effect.
	LocalTime        *float64 `yaml:"localTime"`
	Progress         *float64 `yaml:"progress"`
	CurrentIteration *float64 `yaml:"currentIteration"`
}

// EffectTimingOf projects specified timing.
func EffectTimingOf(p *TimingParams) EffectTiming {
	t := EffectTiming{
		Delay:          p.Delay().Milliseconds(),
		EndDelay:       p.EndDelay().Milliseconds(),
		Iterations:     p.Iterations(),
		IterationStart: p.IterationStart(),
		Direction:      p.Direction().String(),
		Fill:           p.Fill().String(),
		Easing:         Linear.String(),
	}
	if d, ok := p.Duration(); ok {
		t.Duration = Ptr(d.Milliseconds())
	}
	if fn := p.Easing(); fn != nil {
		t.Easing = fn.String()
	}
	return t
}

// ComputedEffectTimingOf projects a sample of specified timing. The
// duration, fill, active duration and end time come from the computed
// record, so auto values appear resolved.
func ComputedEffectTimingOf(specified *TimingParams, local LocalTime, ct ComputedTiming) ComputedEffectTiming {
	out := ComputedEffectTiming{
		EffectTiming:   EffectTimingOf(specified),
		ActiveDuration: ct.ActiveDuration.Milliseconds(),
		EndTime:        ct.EndTime.Milliseconds(),
		Phase:          ct.Phase.String(),
	}
	out.Duration = Ptr(ct.Duration.Milliseconds())
	out.Fill = ct.Fill.String()
	if d, ok := local.Value(); ok {
		out.LocalTime = Ptr(d.Milliseconds())
	}
	if ct.Progress.Valid {
		out.Progress = ct.Progress.Ptr()
		// The infinite iteration is reported as +Inf, never as a count.
		out.CurrentIteration = Ptr(ct.CurrentIteration.Float64())
	}
	return out
}

// Timing returns the specified timing projection.
func (e *Effect) Timing() EffectTiming {
	return EffectTimingOf(e.SpecifiedTiming())
}

// ComputedTimingDict samples the specified (not normalized) timing at the
// owner's current time and projects the result.
func (e *Effect) ComputedTimingDict() ComputedEffectTiming {
	e.mu.RLock()
	owner, specified := e.owner, e.specified
	e.mu.RUnlock()

	local, ct := sample(owner, specified, EndpointInclusive)
	return ComputedEffectTimingOf(specified, local, ct)
}
