// Command pointlayer renders point layer projects and hit-tests them from
// the command line.
package main

import (
	"fmt"
	"os"

	"pointlayer/internal/app"
	"pointlayer/internal/config"
	"pointlayer/internal/logging"
	"pointlayer/internal/version"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	width      int
	height     int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "pointlayer",
		Short: "Render and query point marker layers",
		Long: `pointlayer draws the markers of a project file onto an image and
answers which marker sits under a pointer, including the clover sector that
would be highlighted.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (JSON or YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level, overrides the config file")
	cmd.PersistentFlags().IntVar(&opts.width, "width", 0, "View width in pixels, overrides the config file")
	cmd.PersistentFlags().IntVar(&opts.height, "height", 0, "View height in pixels, overrides the config file")

	cmd.AddCommand(newRenderCmd(opts), newHitCmd(opts), newVersionCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openSession loads settings, applies flag overrides and opens the project.
func (o *rootOptions) openSession(cmd *cobra.Command, projectPath string) (*app.Session, zerolog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.width > 0 {
		cfg.View.Width = o.width
	}
	if o.height > 0 {
		cfg.View.Height = o.height
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.Console)
	s := app.NewSession(cfg, log)
	if err := s.Open(projectPath); err != nil {
		return nil, log, err
	}
	return s, log, nil
}
