package cmd

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/timing/pkg/animation"
)

const fadeYAML = `
version: v1
timing:
  duration: 1s
  fill: forwards
  easing: linear
`

const scrollYAML = `
timing:
  duration: 1s
  iterations: 2
  direction: alternate
timeline:
  progress: true
`

// capture redirects command output for the duration of a test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := output
	output = &buf
	t.Cleanup(func() { output = old })
	return &buf
}

func writeEffect(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "effect.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Help(t *testing.T) {
	buf := capture(t)
	if err := run([]string{"--help"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, name := range []string{"sample", "table", "plot", "check"} {
		if !strings.Contains(buf.String(), "  "+name) {
			t.Errorf("help does not list %q", name)
		}
	}
}

func TestRun_Version(t *testing.T) {
	buf := capture(t)
	if err := run([]string{"--version"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), Version) {
		t.Errorf("version output = %q", buf.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	capture(t)
	if err := run([]string{"animate"}); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestRun_CommandHelp(t *testing.T) {
	buf := capture(t)
	if err := run([]string{"sample", "--help"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "animtiming sample <file> <time>...") {
		t.Errorf("command help = %q", buf.String())
	}
}

func TestSample(t *testing.T) {
	buf := capture(t)
	path := writeEffect(t, fadeYAML)
	if err := run([]string{"sample", path, "500ms", "2s", "unresolved"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var records []animation.ComputedEffectTiming
	if err := yaml.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	mid := records[0]
	if mid.Phase != "active" || mid.Progress == nil || *mid.Progress != 0.5 {
		t.Errorf("500ms: phase %q progress %v, want active 0.5", mid.Phase, mid.Progress)
	}
	after := records[1]
	if after.Phase != "after" || after.Progress == nil || *after.Progress != 1 {
		t.Errorf("2s: phase %q progress %v, want after 1", after.Phase, after.Progress)
	}
	if after.CurrentIteration == nil || *after.CurrentIteration != 0 {
		t.Errorf("2s: iteration %v, want 0", after.CurrentIteration)
	}
	idle := records[2]
	if idle.Phase != "idle" || idle.Progress != nil || idle.LocalTime != nil {
		t.Errorf("unresolved: %+v", idle)
	}
}

func TestSample_ProgressTimeline(t *testing.T) {
	buf := capture(t)
	path := writeEffect(t, scrollYAML)
	if err := run([]string{"sample", path, "25%", "75%", "100%"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var records []animation.ComputedEffectTiming
	if err := yaml.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	want := []float64{0.5, 0.5, 0}
	for i, rec := range records {
		if rec.Progress == nil || math.Abs(*rec.Progress-want[i]) > 1e-9 {
			t.Errorf("record %d: progress %v, want %v", i, rec.Progress, want[i])
		}
	}
	// The end of the timeline is a boundary and stays active.
	if records[2].Phase != "active" {
		t.Errorf("100%%: phase %q, want active", records[2].Phase)
	}
}

func TestSample_Errors(t *testing.T) {
	capture(t)
	path := writeEffect(t, fadeYAML)
	tests := [][]string{
		{"sample"},
		{"sample", path},
		{"sample", path, "soon"},
		{"sample", path, "50%"},
		{"sample", filepath.Join(t.TempDir(), "missing.yaml"), "0s"},
		{"sample", writeEffect(t, "timing: {fill: sideways}"), "0s"},
	}
	for _, args := range tests {
		if err := run(args); err == nil {
			t.Errorf("run(%v) should fail", args)
		}
	}
}

func TestTable(t *testing.T) {
	buf := capture(t)
	path := writeEffect(t, fadeYAML)
	if err := run([]string{"table", path}); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want header + 11 rows:\n%s", len(lines), buf.String())
	}
	if got := strings.Fields(lines[0]); got[0] != "TIME" || got[1] != "PHASE" {
		t.Errorf("header = %q", lines[0])
	}
	last := strings.Fields(lines[len(lines)-1])
	want := []string{"1s", "active", "0", "1.0000", "1.0000", "false"}
	if strings.Join(last, " ") != strings.Join(want, " ") {
		t.Errorf("last row = %v, want %v", last, want)
	}
}

func TestTable_Range(t *testing.T) {
	buf := capture(t)
	path := writeEffect(t, fadeYAML)
	if err := run([]string{"table", path, "--from", "-500ms", "--to=1500ms", "--step", "500ms"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")[1:]
	phases := make([]string, len(lines))
	for i, line := range lines {
		phases[i] = strings.Fields(line)[1]
	}
	want := "before active active active after"
	if got := strings.Join(phases, " "); got != want {
		t.Errorf("phases = %q, want %q", got, want)
	}
}

func TestTable_RangeErrors(t *testing.T) {
	capture(t)
	path := writeEffect(t, fadeYAML)
	tests := [][]string{
		{"table", path, "--step", "0s"},
		{"table", path, "--from", "2s", "--to", "1s"},
		{"table", path, "--step", "1ns", "--to", "1h"},
		{"table", path, "--to"},
		{"table", path, "--to", "unresolved"},
		{"table", path, "extra"},
	}
	for _, args := range tests {
		if err := run(args); err == nil {
			t.Errorf("run(%v) should fail", args)
		}
	}
}

func TestPlot(t *testing.T) {
	buf := capture(t)
	path := writeEffect(t, fadeYAML)
	out := filepath.Join(t.TempDir(), "fade.png")
	if err := run([]string{"plot", path, "-o", out, "--width", "200", "--height", "100", "--to", "2s"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "Wrote "+out) {
		t.Errorf("output = %q", buf.String())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("bounds = %v, want 200x100", b)
	}

	curve := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			r, g, _, _ := img.At(x, y).RGBA()
			if r > 0xc000 && g < 0x8000 {
				curve++
			}
		}
	}
	if curve == 0 {
		t.Error("no curve pixels drawn")
	}
}

func TestLabelFace(t *testing.T) {
	face, err := labelFace()
	if err != nil {
		t.Fatalf("labelFace: %v", err)
	}
	if w := font.MeasureString(face, "2s").Ceil(); w <= 0 {
		t.Errorf("MeasureString = %d, want a positive width", w)
	}
	again, _ := labelFace()
	if again != face {
		t.Error("labelFace should parse the font once")
	}
}

func TestPlot_Errors(t *testing.T) {
	capture(t)
	path := writeEffect(t, fadeYAML)
	tests := [][]string{
		{"plot", path},
		{"plot", path, "-o"},
		{"plot", path, "-o", "x.png", "--width", "10"},
		{"plot", path, "-o", "x.png", "--height", "tall"},
	}
	for _, args := range tests {
		if err := run(args); err == nil {
			t.Errorf("run(%v) should fail", args)
		}
	}
}

func TestCheck(t *testing.T) {
	buf := capture(t)
	if err := run([]string{"check", writeEffect(t, fadeYAML)}); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"schema v1.0.0", "active duration:", "1s", "OK"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Normalized") {
		t.Error("time-based effects have no normalized section")
	}

	buf.Reset()
	if err := run([]string{"check", writeEffect(t, scrollYAML)}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "Normalized (progress timeline of 1m40s)") {
		t.Errorf("check output missing normalized section:\n%s", buf.String())
	}
}
