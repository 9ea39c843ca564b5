// Package testing provides helpers for testing code built on the animation
// timing engine.
//
// # Controlled Time
//
// [FakeAnimation] is an animation.Owner driven by a [FakeClock], so effects
// can be stepped frame by frame without a real clock:
//
//	clk := timingtest.NewFakeClock()
//	anim := timingtest.NewFakeAnimation(clk)
//	effect.SetOwner(anim)
//	anim.Play()
//	clk.Advance(100 * time.Millisecond)
//	ct := effect.ComputedTiming()
//
// # Snapshot Testing
//
// Capture a trace of samples and compare it with a golden file:
//
//	trace := timingtest.CaptureTrace("fade", timing, opts, 0, 250*time.Millisecond)
//	trace.MatchesFile(t, "testdata/fade.snapshot.json")
//
// Update snapshots with:
//
//	TIMING_UPDATE_SNAPSHOTS=1 go test ./...
package testing
