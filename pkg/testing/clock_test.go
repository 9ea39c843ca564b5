package testing

import (
	"testing"
	"time"

	"github.com/go-drift/timing/pkg/animation"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestFakeAnimation_CurrentTime(t *testing.T) {
	clk := NewFakeClock()
	anim := NewFakeAnimation(clk)

	if anim.CurrentTime().IsResolved() {
		t.Fatal("a new animation should be idle")
	}

	anim.Play()
	clk.Advance(300 * time.Millisecond)
	if got := anim.CurrentTime(); got != animation.At(300*time.Millisecond) {
		t.Errorf("after play: CurrentTime() = %v, want 300ms", got)
	}

	anim.Pause()
	clk.Advance(time.Second)
	if got := anim.CurrentTime(); got != animation.At(300*time.Millisecond) {
		t.Errorf("while paused: CurrentTime() = %v, want 300ms", got)
	}

	anim.SetRate(-2)
	anim.Play()
	clk.Advance(100 * time.Millisecond)
	if got := anim.CurrentTime(); got != animation.At(100*time.Millisecond) {
		t.Errorf("reversed at 2x: CurrentTime() = %v, want 100ms", got)
	}

	anim.Seek(5 * time.Second)
	if got := anim.CurrentTime(); got != animation.At(5*time.Second) {
		t.Errorf("after seek: CurrentTime() = %v, want 5s", got)
	}

	anim.Cancel()
	if anim.CurrentTime().IsResolved() {
		t.Error("a cancelled animation should be idle")
	}
}

func TestFakeAnimation_DrivesEffect(t *testing.T) {
	timing, err := animation.NewTimingParams(animation.TimingOptions{
		Delay:      100 * time.Millisecond,
		Duration:   animation.Ptr(200 * time.Millisecond),
		Iterations: 1,
		Fill:       animation.FillForwards,
	})
	if err != nil {
		t.Fatal(err)
	}

	clk := NewFakeClock()
	anim := NewFakeAnimation(clk)
	effect := animation.NewEffect(timing)
	effect.SetOwner(anim)

	if effect.ComputedTiming().Phase != animation.PhaseIdle {
		t.Error("expected idle before play")
	}

	anim.Play()
	var phases []animation.Phase
	for n := 0; n < 5; n++ {
		phases = append(phases, effect.ComputedTiming().Phase)
		clk.Advance(100 * time.Millisecond)
	}
	want := []animation.Phase{
		animation.PhaseBefore,
		animation.PhaseActive,
		animation.PhaseActive,
		animation.PhaseActive,
		animation.PhaseAfter,
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("frame %d: phase %v, want %v", i, phases[i], want[i])
		}
	}
	if !effect.IsInEffect() {
		t.Error("fill forwards should keep the effect applied")
	}

	anim.SetFinished(true)
	if effect.IsCurrent() {
		t.Error("a finished animation's effect is not current")
	}
}

func TestFakeAnimation_ProgressTimeline(t *testing.T) {
	timing, err := animation.NewTimingParams(animation.TimingOptions{
		Duration:   animation.Ptr(time.Second),
		Iterations: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	anim := NewFakeAnimation(NewFakeClock())
	effect := animation.NewEffect(timing)
	effect.SetOwner(anim)

	anim.SetProgressTimeline(animation.Sticky(animation.ProgressTimelineDuration))
	effect.InvalidateTimeline()
	anim.Seek(animation.ProgressTimelineDuration)

	if ct := effect.ComputedTimingWith(animation.EndpointExclusive); ct.Phase != animation.PhaseAfter {
		t.Errorf("Phase = %v, want after", ct.Phase)
	}
	anim.SetAtBoundary(true)
	if ct := effect.ComputedTimingWith(animation.EndpointExclusive); ct.Phase != animation.PhaseActive {
		t.Errorf("at boundary: Phase = %v, want active", ct.Phase)
	}
}
