package animation

import (
	"math"
	"time"

	"github.com/go-drift/timing/pkg/errors"
)

// ProgressTimelineDuration is the length used to express the full range
// of a progress-based timeline (such as a scroll timeline) as time.
const ProgressTimelineDuration = 100 * time.Second

// Normalize expresses params in the evaluation unit of the timeline.
//
// For a time-based timeline (progressBased false) this is the identity.
// For a progress-based timeline every time-valued field is rescaled so the
// end time spans timelineDuration. An auto duration fills the timeline
// evenly across the iterations and drops both delays, since time and
// proportions cannot be mixed.
func Normalize(params *TimingParams, timelineDuration StickyDuration, progressBased bool) *TimingParams {
	if !progressBased {
		return params
	}
	errors.Assert(timelineDuration > 0 && !timelineDuration.IsForever(),
		"animation.Normalize", "progress-based timeline duration must be positive and finite")

	n := *params
	n.hasDuration = true
	if !params.hasDuration {
		n.delay = 0
		n.endDelay = 0
		n.duration = 0
		if params.iterations > 0 && !math.IsInf(params.iterations, 1) {
			n.duration = timelineDuration.MulFloat(1 / params.iterations)
		}
		n.update()
		return &n
	}

	// An empty or unbounded end time leaves nothing to scale against.
	var scale float64
	if end := params.EndTime(); end > 0 && !end.IsForever() {
		scale = timelineDuration.Div(end)
	}
	n.delay = params.delay.MulFloat(scale)
	n.endDelay = params.endDelay.MulFloat(scale)
	n.duration = params.duration.MulFloat(scale)
	n.update()
	return &n
}
