package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

type hitOptions struct {
	pixel  []float64
	coord  []float64
	output string
}

func newHitCmd(root *rootOptions) *cobra.Command {
	opts := &hitOptions{}
	cmd := &cobra.Command{
		Use:   "hit [project]",
		Short: "Hit-test a project at a pixel or map coordinate",
		Long: `Report the topmost marker under a view pixel or map coordinate and the
resulting highlight state. With --output the frame showing the highlight is
written as PNG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHit(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().Float64SliceVar(&opts.pixel, "pixel", nil, "View pixel x,y")
	cmd.Flags().Float64SliceVar(&opts.coord, "coord", nil, "Map coordinate x,y")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the highlighted frame to this PNG file")

	cmd.MarkFlagsMutuallyExclusive("pixel", "coord")
	cmd.MarkFlagsOneRequired("pixel", "coord")
	return cmd
}

func runHit(cmd *cobra.Command, root *rootOptions, opts *hitOptions, projectPath string) error {
	s, _, err := root.openSession(cmd, projectPath)
	if err != nil {
		return err
	}

	var pixel r2.Vec
	switch {
	case opts.pixel != nil:
		if len(opts.pixel) != 2 {
			return fmt.Errorf("--pixel needs x,y")
		}
		pixel = r2.Vec{X: opts.pixel[0], Y: opts.pixel[1]}
	default:
		if len(opts.coord) != 2 {
			return fmt.Errorf("--coord needs x,y")
		}
		pixel = s.Stack().PixelFromCoordinate(r2.Vec{X: opts.coord[0], Y: opts.coord[1]})
	}

	out := cmd.OutOrStdout()
	g := s.Tap(pixel)
	if g == nil {
		fmt.Fprintln(out, "No marker")
	} else {
		c := g.Coordinate()
		fmt.Fprintf(out, "Marker at %.6f, %.6f (%s)\n", c.X, c.Y, g.Style().Kind())
	}

	l := s.Layer()
	fmt.Fprintf(out, "State: %s\n", l.State())
	if ov := l.Overlay(); ov != nil {
		hs := ov.Graphics()[0].Style()
		fmt.Fprintf(out, "Sector: %.0f-%.0f degrees\n", hs.StartAngle(), hs.EndAngle())
	}

	if opts.output != "" {
		if err := writePNG(opts.output, s.Stack().Render()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", opts.output)
	}
	return nil
}
