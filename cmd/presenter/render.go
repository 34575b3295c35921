package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/presenter"
	"github.com/gogpu/presenter/internal/imageio"
	"github.com/gogpu/presenter/surface"
)

type renderOptions struct {
	output   string
	format   string
	template string
	scale    float64
	jobs     int
	style    styleFlags
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <image>...",
		Short: "Render screenshots onto gradient backgrounds",
		Long: "Render each image with the configured style and write the result. With one image, -o names " +
			"the output file; with several, -o names the output directory.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (one image) or directory (several images)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: png or jpeg (default from -o or config)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Start from a saved template (id or name)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "Pixel ratio of the output (default from config)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Images rendered in parallel")
	opts.style.register(cmd)

	return cmd
}

type renderJob struct {
	input  string
	output string
	seed   float64

	width, height int
	size          int64
}

func runRender(cmd *cobra.Command, a *app, opts *renderOptions, args []string) error {
	settings := a.cfg.StyleSettings()
	fromTemplate := false
	if opts.template != "" {
		store, err := a.openStore()
		if err != nil {
			return err
		}
		tpl, err := store.Find(opts.template)
		if err != nil {
			return err
		}
		settings = tpl.Settings
		fromTemplate = true
	}

	settings, seeded, err := opts.style.apply(cmd, settings)
	if err != nil {
		return err
	}

	format, err := a.exportFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	scale := opts.scale
	if scale == 0 {
		scale = a.cfg.Export.PixelRatio
	}
	if scale < 1 {
		return fmt.Errorf("scale %v is below 1", scale)
	}

	jobs := make([]*renderJob, len(args))
	for i, in := range args {
		j := &renderJob{input: in, seed: settings.GradientSeed}
		if !seeded && !fromTemplate {
			// A newly loaded image rolls a fresh seed.
			j.seed = rand.Float64()
		}
		j.output = outputPath(in, opts.output, a.cfg.Export.Dir, len(args) > 1, format)
		jobs[i] = j
	}

	limit := opts.jobs
	if limit < 1 {
		limit = 1
	}
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(limit)
	for _, j := range jobs {
		g.Go(func() error {
			img, err := imageio.Load(ctx, j.input)
			if err != nil {
				return fmt.Errorf("%s: %w", j.input, err)
			}

			s := settings
			s.GradientSeed = j.seed
			j.width, j.height = presenter.CanvasSize(s, img, scale)
			dst := surface.NewImageSurface(j.width, j.height)
			presenter.Render(dst, s, img)

			if err := presenter.SaveFile(j.output, dst.Image(), format); err != nil {
				return fmt.Errorf("%s: %w", j.output, err)
			}
			info, err := os.Stat(j.output)
			if err != nil {
				return err
			}
			j.size = info.Size()
			presenter.Logger().Info("presenter: rendered", "input", j.input, "output", j.output)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, j := range jobs {
		fmt.Fprintf(out, "%s -> %s (%dx%d, %s)\n", j.input, j.output, j.width, j.height, humanize.Bytes(uint64(j.size)))
	}
	return nil
}

// outputPath picks where the render of input is written. An explicit
// output is a file for a single input and a directory otherwise; without
// one, files go to dir next to a "-presented" suffix.
func outputPath(input, output, dir string, many bool, f presenter.Format) string {
	if output != "" && !many {
		return output
	}
	if output != "" {
		dir = output
	}
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"-presented."+f.Extension())
}

// extension returns the lower-case extension of path without the dot.
func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
