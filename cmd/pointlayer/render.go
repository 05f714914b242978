package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render [project]",
		Short: "Render a project to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, log, err := root.openSession(cmd, args[0])
			if err != nil {
				return err
			}

			frame := s.Stack().Render()
			if err := writePNG(output, frame); err != nil {
				return err
			}
			log.Info().Str("output", output).Int("graphics", len(s.Layer().Graphics())).Msg("rendered")
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", output, frame.Bounds().Dx(), frame.Bounds().Dy())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "out.png", "Output PNG file")
	return cmd
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
