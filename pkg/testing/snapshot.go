package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-drift/timing/pkg/animation"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Trace is a sequence of timing samples that can be compared against a
// golden file.
type Trace struct {
	Name    string   `json:"name"`
	Samples []Sample `json:"samples"`
}

// Sample is the serialized form of one computed timing.
type Sample struct {
	Time  string `json:"time"`
	Phase string `json:"phase"`
	// Iteration and Progress are omitted when the effect is not in effect.
	Iteration  string   `json:"iteration,omitempty"`
	Progress   *float64 `json:"progress"`
	BeforeFlag bool     `json:"beforeFlag,omitempty"`
}

// progressDigits is the precision progress is rounded to, keeping golden
// files stable across platforms.
const progressDigits = 1e6

// SampleOf serializes a computed timing taken at local.
func SampleOf(local animation.LocalTime, ct animation.ComputedTiming) Sample {
	s := Sample{
		Time:       local.String(),
		Phase:      ct.Phase.String(),
		BeforeFlag: ct.BeforeFlag,
	}
	if ct.InEffect() {
		s.Iteration = ct.CurrentIteration.String()
		p := math.Round(ct.Progress.Value*progressDigits) / progressDigits
		if p == 0 {
			p = 0 // normalize -0
		}
		s.Progress = &p
	}
	return s
}

// CaptureTrace samples timing at each of times.
func CaptureTrace(name string, timing *animation.TimingParams, opts animation.SampleOptions, times ...time.Duration) *Trace {
	trace := &Trace{Name: name}
	for _, d := range times {
		local := animation.At(d)
		trace.Samples = append(trace.Samples, SampleOf(local, animation.ComputeTimingAt(local, timing, opts)))
	}
	return trace
}

// Record appends a sample of effect at its owner's current time.
func (tr *Trace) Record(effect *animation.Effect) {
	tr.Samples = append(tr.Samples, SampleOf(effect.LocalTime(), effect.ComputedTiming()))
}

// MatchesFile compares this trace against a golden file. On mismatch it
// reports a diff and instructions for updating. When TIMING_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (tr *Trace) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("TIMING_UPDATE_SNAPSHOTS") == "1" {
		if err := tr.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadTrace(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: TIMING_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := tr.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: TIMING_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this trace to the given path, creating directories
// as needed.
func (tr *Trace) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalTrace(tr)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this trace and other. Returns
// empty string if equal.
func (tr *Trace) Diff(other *Trace) string {
	a, _ := marshalTrace(tr)
	b, _ := marshalTrace(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func loadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tr Trace
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &tr, nil
}

func marshalTrace(tr *Trace) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
