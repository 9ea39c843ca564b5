// Package config loads YAML effect descriptions for the animtiming CLI.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/timing/pkg/animation"
	"github.com/go-drift/timing/pkg/errors"
)

// DefaultVersion is assumed when a file carries no version.
const DefaultVersion = "v1.0.0"

// Config is an effect description as written in YAML.
//
//	version: v1.0.0
//	timing:
//	  delay: 100ms
//	  duration: 1s        # or auto
//	  iterations: 2       # or infinite
//	  direction: alternate
//	  fill: both
//	  easing: ease-in-out
//	timeline:
//	  progress: true      # sample as a scroll-style timeline
//	playback:
//	  rate: -1
//	  endpoint: exclusive
type Config struct {
	Version  string         `yaml:"version,omitempty"`
	Timing   TimingConfig   `yaml:"timing"`
	Timeline TimelineConfig `yaml:"timeline,omitempty"`
	Playback PlaybackConfig `yaml:"playback,omitempty"`
}

// TimingConfig mirrors animation.TimingOptions with textual values.
type TimingConfig struct {
	Delay    string `yaml:"delay,omitempty"`
	EndDelay string `yaml:"endDelay,omitempty"`
	// Duration is a Go duration string; empty or "auto" means auto.
	Duration string `yaml:"duration,omitempty"`
	// Iterations defaults to 1.
	Iterations     *Iterations `yaml:"iterations,omitempty"`
	IterationStart float64     `yaml:"iterationStart,omitempty"`
	Direction      string      `yaml:"direction,omitempty"`
	Fill           string      `yaml:"fill,omitempty"`
	Easing         string      `yaml:"easing,omitempty"`
}

// TimelineConfig describes the owning timeline.
type TimelineConfig struct {
	// Progress selects a progress-based timeline.
	Progress bool `yaml:"progress,omitempty"`
	// Duration overrides animation.ProgressTimelineDuration.
	Duration string `yaml:"duration,omitempty"`
}

// PlaybackConfig describes the owning animation.
type PlaybackConfig struct {
	// Rate defaults to 1. Only its sign is used.
	Rate     *float64 `yaml:"rate,omitempty"`
	Endpoint string   `yaml:"endpoint,omitempty"`
	// Boundary marks a progress-based timeline sitting at an end.
	Boundary bool `yaml:"boundary,omitempty"`
	Finished bool `yaml:"finished,omitempty"`
}

// Iterations is an iteration count that also accepts "infinite".
type Iterations float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (it *Iterations) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: iterations must be a scalar", value.Line)
	}
	if strings.EqualFold(strings.TrimSpace(value.Value), "infinite") {
		*it = Iterations(math.Inf(1))
		return nil
	}
	var f float64
	if err := value.Decode(&f); err != nil {
		return fmt.Errorf("line %d: iterations must be a number or \"infinite\"", value.Line)
	}
	*it = Iterations(f)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (it Iterations) MarshalYAML() (any, error) {
	if math.IsInf(float64(it), 1) {
		return "infinite", nil
	}
	return float64(it), nil
}

// Resolved is a validated configuration.
type Resolved struct {
	Version string
	// Timing is the specified timing.
	Timing *animation.TimingParams
	// Timeline is the progress-based timeline duration, zero for time-based
	// timelines.
	Timeline animation.StickyDuration
	Rate     float64
	Endpoint animation.EndpointBehavior
	Boundary bool
	Finished bool
}

// Load reads and parses the file at path. "-" reads standard input.
func Load(path string) (*Config, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML effect description. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if stderrors.Is(err, io.EOF) {
			err = fmt.Errorf("empty document")
		}
		return nil, &errors.TimingError{Op: "config.Parse", Kind: errors.KindConfig, Err: err}
	}
	return &cfg, nil
}

// Resolve validates the configuration and applies defaults.
func (c *Config) Resolve() (*Resolved, error) {
	version, err := resolveVersion(c.Version)
	if err != nil {
		return nil, err
	}

	timing, err := c.Timing.params()
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Version:  version,
		Timing:   timing,
		Rate:     1,
		Boundary: c.Playback.Boundary,
		Finished: c.Playback.Finished,
	}

	if c.Timeline.Progress {
		r.Timeline = animation.Sticky(animation.ProgressTimelineDuration)
		if c.Timeline.Duration != "" {
			d, err := parseDuration("timeline.duration", c.Timeline.Duration)
			if err != nil {
				return nil, err
			}
			if d <= 0 {
				return nil, configError("timeline.duration", fmt.Errorf("must be positive, got %v", d))
			}
			r.Timeline = animation.Sticky(d)
		}
	} else if c.Timeline.Duration != "" {
		return nil, configError("timeline.duration", fmt.Errorf("only valid with progress: true"))
	}

	if c.Playback.Rate != nil {
		rate := *c.Playback.Rate
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return nil, configError("playback.rate", fmt.Errorf("must be finite"))
		}
		r.Rate = rate
	}

	switch strings.ToLower(strings.TrimSpace(c.Playback.Endpoint)) {
	case "", "inclusive":
		r.Endpoint = animation.EndpointInclusive
	case "exclusive":
		r.Endpoint = animation.EndpointExclusive
	default:
		return nil, configError("playback.endpoint", fmt.Errorf("unknown endpoint behavior %q", c.Playback.Endpoint))
	}

	return r, nil
}

func resolveVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultVersion, nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", configError("version", fmt.Errorf("%q is not a semantic version", v))
	}
	if major := semver.Major(v); major != semver.Major(DefaultVersion) {
		return "", configError("version", fmt.Errorf("unsupported major version %s (want %s)", major, semver.Major(DefaultVersion)))
	}
	return semver.Canonical(v), nil
}

func (t TimingConfig) params() (*animation.TimingParams, error) {
	opts := animation.DefaultTimingOptions()
	var err error

	if opts.Delay, err = parseDuration("timing.delay", t.Delay); err != nil {
		return nil, err
	}
	if opts.EndDelay, err = parseDuration("timing.endDelay", t.EndDelay); err != nil {
		return nil, err
	}
	if s := strings.TrimSpace(t.Duration); s != "" && !strings.EqualFold(s, "auto") {
		d, err := parseDuration("timing.duration", s)
		if err != nil {
			return nil, err
		}
		opts.Duration = &d
	}
	if t.Iterations != nil {
		opts.Iterations = float64(*t.Iterations)
	}
	opts.IterationStart = t.IterationStart

	if t.Direction != "" {
		if opts.Direction, err = animation.ParsePlaybackDirection(t.Direction); err != nil {
			return nil, configError("timing.direction", err)
		}
	}
	if t.Fill != "" {
		if opts.Fill, err = animation.ParseFillMode(t.Fill); err != nil {
			return nil, configError("timing.fill", err)
		}
	}
	if t.Easing != "" {
		if opts.Easing, err = animation.ParseEasing(t.Easing); err != nil {
			return nil, configError("timing.easing", err)
		}
	}

	p, err := animation.NewTimingParams(opts)
	if err != nil {
		return nil, configError("timing", err)
	}
	return p, nil
}

func parseDuration(field, s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, configError(field, err)
	}
	return d, nil
}

func configError(field string, err error) error {
	return &errors.TimingError{
		Op:    "config.Resolve",
		Kind:  errors.KindConfig,
		Field: field,
		Err:   err,
	}
}

// ProgressBased reports whether the timeline is progress-based.
func (r *Resolved) ProgressBased() bool {
	return r.Timeline != 0
}

// Normalized returns the timing normalized for the configured timeline.
func (r *Resolved) Normalized() *animation.TimingParams {
	return animation.Normalize(r.Timing, r.Timeline, r.ProgressBased())
}

// SampleOptions returns the options for sampling at the given local time.
// The timeline boundary flag is also raised for samples at either end of
// a progress-based timeline.
func (r *Resolved) SampleOptions(local animation.LocalTime) animation.SampleOptions {
	return animation.SampleOptions{
		PlaybackRate:       r.Rate,
		AtTimelineBoundary: r.atBoundary(local),
		Endpoint:           r.Endpoint,
	}
}

func (r *Resolved) atBoundary(local animation.LocalTime) bool {
	if r.Boundary {
		return true
	}
	if !r.ProgressBased() {
		return false
	}
	t, ok := local.Value()
	return ok && (t == 0 || t == r.Timeline)
}

// Owner returns an animation snapshot at local time.
func (r *Resolved) Owner(local animation.LocalTime) animation.AnimationState {
	return animation.AnimationState{
		Time:             local,
		Rate:             r.Rate,
		TimelineBoundary: r.atBoundary(local),
		TimelineDuration: r.Timeline,
		IsFinished:       r.Finished,
	}
}

// ParseLocalTime parses a sample time: a Go duration, "unresolved", or for
// progress-based timelines a percentage of the timeline such as "25%".
func (r *Resolved) ParseLocalTime(s string) (animation.LocalTime, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, "unresolved"):
		return animation.Unresolved, nil
	case strings.EqualFold(s, "forever"):
		return animation.AtSticky(animation.Forever), nil
	case strings.HasSuffix(s, "%"):
		if !r.ProgressBased() {
			return animation.Unresolved, parseTimeError(s, "percentages need a progress-based timeline")
		}
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || math.IsNaN(pct) || math.IsInf(pct, 0) {
			return animation.Unresolved, parseTimeError(s, "invalid percentage")
		}
		return animation.AtSticky(r.Timeline.MulFloat(pct / 100)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return animation.Unresolved, parseTimeError(s, "")
	}
	return animation.At(d), nil
}

func parseTimeError(input, reason string) error {
	return &errors.TimingError{
		Op:   "config.ParseLocalTime",
		Kind: errors.KindParsing,
		Err:  &errors.ParseError{DataType: "local time", Input: input, Reason: reason},
	}
}
