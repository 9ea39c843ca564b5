package cmd

import (
	"fmt"
	"math"

	"github.com/go-drift/timing/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate an effect and print derived timing",
		Long: `Validate an effect description and print the quantities derived from it:
active duration, end time and the phase boundaries. For progress-based
timelines the normalized timing is shown as well.

Usage:
  animtiming check fade.yaml`,
		Usage: "animtiming check <file>",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one file is required\n\nUsage: animtiming check <file>")
	}

	r, effect, err := loadEffect(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "File: %s (schema %s)\n", args[0], r.Version)
	fmt.Fprintln(output)
	fmt.Fprintln(output, "Specified:")
	printTiming(effect.SpecifiedTiming())

	if r.ProgressBased() {
		fmt.Fprintln(output)
		fmt.Fprintf(output, "Normalized (progress timeline of %v):\n", r.Timeline)
		printTiming(r.Normalized())
	}

	fmt.Fprintln(output)
	fmt.Fprintln(output, "OK")
	return nil
}

func printTiming(p *animation.TimingParams) {
	duration := "auto"
	if d, ok := p.Duration(); ok {
		duration = d.String()
	}
	iterations := fmt.Sprint(p.Iterations())
	if math.IsInf(p.Iterations(), 1) {
		iterations = "infinite"
	}
	easing := "linear"
	if fn := p.Easing(); fn != nil {
		easing = fn.String()
	}

	fmt.Fprintf(output, "  %-18s %v\n", "delay:", p.Delay())
	fmt.Fprintf(output, "  %-18s %s\n", "duration:", duration)
	fmt.Fprintf(output, "  %-18s %v\n", "end delay:", p.EndDelay())
	fmt.Fprintf(output, "  %-18s %s (start %v)\n", "iterations:", iterations, p.IterationStart())
	fmt.Fprintf(output, "  %-18s %v\n", "direction:", p.Direction())
	fmt.Fprintf(output, "  %-18s %v\n", "fill:", p.Fill())
	fmt.Fprintf(output, "  %-18s %s\n", "easing:", easing)
	fmt.Fprintf(output, "  %-18s %v\n", "active duration:", p.ActiveDuration())
	fmt.Fprintf(output, "  %-18s %v\n", "end time:", p.EndTime())
	fmt.Fprintf(output, "  %-18s %v .. %v\n", "active interval:", p.BeforeActiveBoundary(), p.ActiveAfterBoundary())
}
