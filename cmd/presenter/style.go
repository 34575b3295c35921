package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/presenter"
)

// styleFlags override individual style settings. Only flags the user set
// are applied.
type styleFlags struct {
	padding int
	radius  int
	border  int
	opacity float64
	mode    string
	start   string
	end     string
	seed    float64
}

func (f *styleFlags) register(cmd *cobra.Command) {
	d := presenter.DefaultSettings()
	cmd.Flags().IntVar(&f.padding, "padding", d.Padding, "Padding around the screenshot in image pixels")
	cmd.Flags().IntVar(&f.radius, "radius", d.CornerRadius, "Corner radius")
	cmd.Flags().IntVar(&f.border, "border", d.BorderWidth, "Border width")
	cmd.Flags().Float64Var(&f.opacity, "opacity", d.BorderOpacity, "Border opacity in [0, 1]")
	cmd.Flags().StringVar(&f.mode, "mode", d.GradientMode.String(), "Gradient mode: auto or custom")
	cmd.Flags().StringVar(&f.start, "start", d.GradientStart, "Custom gradient start color")
	cmd.Flags().StringVar(&f.end, "end", d.GradientEnd, "Custom gradient end color")
	cmd.Flags().Float64Var(&f.seed, "seed", 0, "Gradient seed in [0, 1); random when unset")
}

// apply returns s with the changed flags applied and reports whether the
// seed was given explicitly.
func (f *styleFlags) apply(cmd *cobra.Command, s presenter.StyleSettings) (presenter.StyleSettings, bool, error) {
	changed := cmd.Flags().Changed
	if changed("padding") {
		s.Padding = f.padding
	}
	if changed("radius") {
		s.CornerRadius = f.radius
	}
	if changed("border") {
		s.BorderWidth = f.border
	}
	if changed("opacity") {
		s.BorderOpacity = f.opacity
	}
	if changed("mode") {
		m, err := presenter.ParseGradientMode(f.mode)
		if err != nil {
			return s, false, err
		}
		s.GradientMode = m
	}
	if changed("start") {
		s.GradientStart = f.start
	}
	if changed("end") {
		s.GradientEnd = f.end
	}
	seeded := changed("seed")
	if seeded {
		s.GradientSeed = f.seed
	}

	if err := s.Validate(); err != nil {
		return s, seeded, err
	}
	if s.GradientMode == presenter.GradientCustom {
		if err := s.ValidateColors(); err != nil {
			return s, seeded, err
		}
	}
	return s, seeded, nil
}
