package cmd

import (
	"fmt"
	"time"

	"github.com/go-drift/timing/cmd/animtiming/internal/config"
	"github.com/go-drift/timing/pkg/animation"
)

// maxRows bounds the number of samples a range may produce.
const maxRows = 100_000

// loadEffect reads an effect description and attaches it to an owner.
func loadEffect(path string) (*config.Resolved, *animation.Effect, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	r, err := cfg.Resolve()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid effect %s: %w", path, err)
	}
	effect := animation.NewEffect(r.Timing)
	effect.SetOwner(r.Owner(animation.Unresolved))
	return r, effect, nil
}

// sampleEffect moves the owner to local and samples the effect.
func sampleEffect(r *config.Resolved, effect *animation.Effect, local animation.LocalTime) animation.ComputedTiming {
	effect.SetOwner(r.Owner(local))
	return effect.ComputedTimingWith(r.Endpoint)
}

// sampleRange holds the local times a table or plot covers.
type sampleRange struct {
	from, to, step animation.StickyDuration
}

// defaultRange covers the effect from zero to its end time. Unbounded
// effects show their delay and the first four iterations.
func defaultRange(timing *animation.TimingParams, samples int) sampleRange {
	end := timing.EndTime()
	if end.IsForever() {
		d, _ := timing.Duration()
		end = timing.Delay().Add(max(d, animation.Sticky(time.Millisecond)).MulFloat(4))
	}
	end = max(end, 0)
	step := end.MulFloat(1 / float64(samples))
	if step <= 0 {
		step = animation.Sticky(time.Millisecond)
	}
	return sampleRange{from: 0, to: end, step: step}
}

// parseRangeFlags applies --from, --to and --step to rng and returns the
// remaining arguments.
func parseRangeFlags(r *config.Resolved, args []string, rng *sampleRange) ([]string, error) {
	var rest []string
	for i := 0; i < len(args); i++ {
		matched := false
		for _, f := range []struct {
			name string
			dst  *animation.StickyDuration
		}{
			{"--from", &rng.from},
			{"--to", &rng.to},
			{"--step", &rng.step},
		} {
			value, next, ok, err := flagValue(args, i, f.name)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			lt, err := r.ParseLocalTime(value)
			if err != nil {
				return nil, err
			}
			d, resolved := lt.Value()
			if !resolved {
				return nil, fmt.Errorf("%s must be a resolved time", f.name)
			}
			*f.dst = d
			i = next
			matched = true
			break
		}
		if !matched {
			rest = append(rest, args[i])
		}
	}
	return rest, rng.validate()
}

func (rng sampleRange) validate() error {
	if rng.step <= 0 {
		return fmt.Errorf("--step must be positive, got %v", rng.step)
	}
	if rng.to < rng.from {
		return fmt.Errorf("--to (%v) precedes --from (%v)", rng.to, rng.from)
	}
	if rng.from.IsForever() || rng.to.IsForever() {
		return fmt.Errorf("range must be finite")
	}
	if n := rng.to.Sub(rng.from).Div(rng.step); n >= maxRows {
		return fmt.Errorf("range produces %.0f samples, limit is %d", n, maxRows)
	}
	return nil
}

// times returns the sample times, always including the end of the range.
func (rng sampleRange) times() []animation.LocalTime {
	var out []animation.LocalTime
	for t := rng.from; t < rng.to; t = t.Add(rng.step) {
		out = append(out, animation.AtSticky(t))
	}
	return append(out, animation.AtSticky(rng.to))
}
