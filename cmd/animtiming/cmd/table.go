package cmd

import (
	"fmt"

	"github.com/go-drift/timing/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "table",
		Short: "Print a table of samples over a time range",
		Long: `Print phase, iteration and progress over a range of local times.

The range defaults to the effect's whole lifetime in ten steps.

Flags:
  --from TIME   First sample (default: 0s)
  --to TIME     Last sample (default: the end time)
  --step TIME   Distance between samples

Usage:
  animtiming table fade.yaml
  animtiming table fade.yaml --from 0s --to 2s --step 100ms`,
		Usage: "animtiming table <file> [--from TIME] [--to TIME] [--step TIME]",
		Run:   runTable,
	})
}

func runTable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("file is required\n\nUsage: animtiming table <file>")
	}

	r, effect, err := loadEffect(args[0])
	if err != nil {
		return err
	}

	rng := defaultRange(effect.NormalizedTiming(), 10)
	rest, err := parseRangeFlags(r, args[1:], &rng)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	fmt.Fprintf(output, "%-14s %-7s %-10s %-10s %-10s %s\n", "TIME", "PHASE", "ITERATION", "SIMPLE", "PROGRESS", "BEFORE")
	for _, local := range rng.times() {
		ct := sampleEffect(r, effect, local)
		iteration := "-"
		if ct.InEffect() {
			iteration = ct.CurrentIteration.String()
		}
		fmt.Fprintf(output, "%-14s %-7s %-10s %-10s %-10s %v\n",
			local, ct.Phase, iteration, formatProgress(ct.SimpleProgress), formatProgress(ct.Progress), ct.BeforeFlag)
	}
	return nil
}

func formatProgress(p animation.NullFloat) string {
	if !p.Valid {
		return "-"
	}
	return fmt.Sprintf("%.4f", p.Value)
}
