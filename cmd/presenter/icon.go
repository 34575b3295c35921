package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/presenter"
	"github.com/gogpu/presenter/surface"
)

type iconOptions struct {
	output string
	size   int
}

func newIconCmd() *cobra.Command {
	opts := &iconOptions{}

	cmd := &cobra.Command{
		Use:   "icon",
		Short: "Write the application icon as a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.size < 16 {
				return fmt.Errorf("icon size %d is below 16", opts.size)
			}
			dst := surface.NewImageSurface(opts.size, opts.size)
			presenter.RenderIcon(dst)
			if err := presenter.SaveFile(opts.output, dst.Image(), presenter.FormatPNG); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", opts.output, opts.size, opts.size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", filepath.Join("build", "icon.png"), "Output file")
	cmd.Flags().IntVar(&opts.size, "size", presenter.IconSize, "Edge length in pixels")

	return cmd
}
