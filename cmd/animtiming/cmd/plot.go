package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strconv"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-drift/timing/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "plot",
		Short: "Render the progress curve as a PNG",
		Long: `Render the eased progress of an effect over a range of local times.

The background is shaded by phase: before (blue), active (white) and
after (green). Gaps in the curve are times where the effect does not
apply.

Flags:
  -o, --output FILE   Output file (required)
  --width PX          Image width (default: 640)
  --height PX         Image height (default: 320)
  --from, --to        Range, as for the table command

Usage:
  animtiming plot fade.yaml -o fade.png
  animtiming plot fade.yaml -o fade.png --width 1024 --to 3s`,
		Usage: "animtiming plot <file> -o <png> [--width PX] [--height PX] [--from TIME] [--to TIME]",
		Run:   runPlot,
	})
}

const plotMargin = 24

var (
	plotCurve  = color.RGBA{0xd3, 0x2f, 0x2f, 0xff}
	plotAxis   = color.RGBA{0x9e, 0x9e, 0x9e, 0xff}
	plotLabel  = color.RGBA{0x42, 0x42, 0x42, 0xff}
	phaseShade = map[animation.Phase]color.RGBA{
		animation.PhaseBefore: {0xe3, 0xf2, 0xfd, 0xff},
		animation.PhaseActive: {0xff, 0xff, 0xff, 0xff},
		animation.PhaseAfter:  {0xe8, 0xf5, 0xe9, 0xff},
	}
)

type plotOptions struct {
	out           string
	width, height int
}

func runPlot(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("file is required\n\nUsage: animtiming plot <file> -o <png>")
	}

	r, _, err := loadEffect(args[0])
	if err != nil {
		return err
	}
	// Plots sample the pure evaluator directly, one call per column.
	timing := r.Normalized()

	opts := plotOptions{width: 640, height: 320}
	var rest []string
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a file", args[i])
			}
			opts.out = args[i+1]
			i++
		case "--width", "--height":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", args[i])
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 4*plotMargin || n > 8192 {
				return fmt.Errorf("invalid %s %q", args[i], args[i+1])
			}
			if args[i] == "--width" {
				opts.width = n
			} else {
				opts.height = n
			}
			i++
		default:
			rest = append(rest, args[i])
		}
	}
	if opts.out == "" {
		return fmt.Errorf("-o is required")
	}

	// One sample per pixel column; the step is unused.
	rng := defaultRange(timing, opts.width)
	rng.step = animation.Forever
	rest, err = parseRangeFlags(r, rest, &rng)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	samples := make([]animation.ComputedTiming, opts.width-2*plotMargin)
	span := rng.to.Sub(rng.from)
	for i := range samples {
		t := rng.from.Add(span.MulFloat(float64(i) / float64(len(samples)-1)))
		local := animation.AtSticky(t)
		samples[i] = animation.ComputeTimingAt(local, timing, r.SampleOptions(local))
	}

	img, err := renderPlot(samples, opts.width, opts.height, rng)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.out, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", opts.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(output, "Wrote %s (%dx%d, %v to %v)\n", opts.out, opts.width, opts.height, rng.from, rng.to)
	return nil
}

// renderPlot draws one sample per pixel column inside the plot margins.
func renderPlot(samples []animation.ComputedTiming, width, height int, rng sampleRange) (*image.RGBA, error) {
	face, err := labelFace()
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// Overshooting easing leaves [0, 1]; widen the scale to fit.
	lo, hi := 0.0, 1.0
	for _, s := range samples {
		if s.Progress.Valid {
			lo = math.Min(lo, s.Progress.Value)
			hi = math.Max(hi, s.Progress.Value)
		}
	}
	plotH := float64(height - 2*plotMargin)
	y := func(p float64) float32 {
		return float32(plotMargin + plotH*(hi-p)/(hi-lo))
	}
	x := func(i int) float32 {
		return float32(plotMargin + i)
	}

	z := vector.NewRasterizer(width, height)
	fill := func(c color.RGBA) {
		z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
		z.Reset(width, height)
	}

	// Phase bands.
	for start := 0; start < len(samples); {
		end := start
		for end < len(samples) && samples[end].Phase == samples[start].Phase {
			end++
		}
		if c, ok := phaseShade[samples[start].Phase]; ok {
			rect(z, x(start), float32(plotMargin), x(end), float32(height-plotMargin))
			fill(c)
		}
		start = end
	}

	// Progress 0 and 1 guides.
	for _, p := range []float64{0, 1} {
		rect(z, float32(plotMargin), y(p)-0.5, float32(width-plotMargin), y(p)+0.5)
	}
	fill(plotAxis)

	// The curve, as one quad per segment between in-effect samples.
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		if !a.Progress.Valid || !b.Progress.Valid {
			continue
		}
		segment(z, x(i-1), y(a.Progress.Value), x(i), y(b.Progress.Value), 1)
	}
	fill(plotCurve)

	label(img, face, plotMargin, height-plotMargin/3, rng.from.String())
	end := rng.to.String()
	label(img, face, width-plotMargin-font.MeasureString(face, end).Ceil(), height-plotMargin/3, end)
	label(img, face, 2, int(y(1))+4, "1")
	label(img, face, 2, int(y(0))+4, "0")
	return img, nil
}

func rect(z *vector.Rasterizer, x0, y0, x1, y1 float32) {
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
}

// segment adds a line of half-width w from (x0, y0) to (x1, y1).
func segment(z *vector.Rasterizer, x0, y0, x1, y1, w float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*w, dx/l*w
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

// labelFace is Go Regular at 11px, parsed once.
var labelFace = sync.OnceValues(func() (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    11,
		DPI:     72,
		Hinting: font.HintingFull,
	})
})

func label(dst draw.Image, face font.Face, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(plotLabel),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
