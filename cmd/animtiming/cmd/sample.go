package cmd

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/timing/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "sample",
		Short: "Sample an effect at given local times",
		Long: `Sample an effect at one or more local times and print the computed
timing as YAML.

Times are Go durations (250ms, 1.5s, -1s), "forever", or "unresolved".
Effects on progress-based timelines also accept percentages of the
timeline (25%).

Usage:
  animtiming sample fade.yaml 0s 500ms 1s
  animtiming sample scroll.yaml 0% 50% 100%`,
		Usage: "animtiming sample <file> <time>...",
		Run:   runSample,
	})
}

func runSample(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("file and at least one time are required\n\nUsage: animtiming sample <file> <time>...")
	}

	r, effect, err := loadEffect(args[0])
	if err != nil {
		return err
	}

	records := make([]animation.ComputedEffectTiming, 0, len(args)-1)
	for _, arg := range args[1:] {
		local, err := r.ParseLocalTime(arg)
		if err != nil {
			return err
		}
		ct := sampleEffect(r, effect, local)
		records = append(records, animation.ComputedEffectTimingOf(effect.NormalizedTiming(), local, ct))
	}

	enc := yaml.NewEncoder(output)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode samples: %w", err)
	}
	return enc.Close()
}
