// Package main provides the entry point for the point layer viewer.
package main

import (
	"flag"
	"os"

	"pointlayer/internal/app"
	"pointlayer/internal/config"
	"pointlayer/internal/logging"
	"pointlayer/internal/version"
	"pointlayer/ui/mapview"
	"pointlayer/ui/prefs"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r2"
)

const appTitle = "Point Layer"

func main() {
	configPath := flag.String("config", "", "config file (JSON or YAML)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New(os.Stderr, "info", true).Fatal().Err(err).Msg("load config")
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.Console)
	log.Info().Str("version", version.String()).Msg("starting " + appTitle)

	viewerPrefs := prefs.Load(prefs.DefaultPath())
	projectPath := cfg.Project
	if flag.NArg() > 0 {
		projectPath = flag.Arg(0)
	}
	resume := projectPath == "" || projectPath == viewerPrefs.Project()
	if projectPath == "" {
		projectPath = viewerPrefs.Project()
	}

	session := app.NewSession(cfg, log)
	if projectPath != "" {
		if err := session.Open(projectPath); err != nil {
			log.Error().Err(err).Str("path", projectPath).Msg("failed to load project")
		} else if resume {
			stack := session.Stack()
			stack.SetViewport(viewerPrefs.RestoreView(stack.Viewport()))
		}
	}

	a := fyneapp.NewWithID("io.pointlayer.viewer")
	a.Settings().SetTheme(&app.ViewerTheme{})
	win := a.NewWindow(appTitle)

	view := mapview.New(session.Stack())
	view.OnTap(func(pixel r2.Vec) { session.Tap(pixel) })
	session.OnChange(view.Refresh)

	if w := setupWatcher(session, cfg, log, view); w != nil {
		defer w.Stop()
	}

	win.SetOnClosed(func() {
		viewerPrefs.SetProject(session.Path())
		viewerPrefs.RememberView(session.Stack().Viewport())
		if err := viewerPrefs.Save(); err != nil {
			log.Warn().Err(err).Msg("save preferences")
		}
	})

	win.SetContent(view)
	win.Resize(fyne.NewSize(float32(cfg.View.Width), float32(cfg.View.Height)))
	win.ShowAndRun()
}

// setupWatcher reloads the project's graphics when the file changes on disk.
func setupWatcher(session *app.Session, cfg *config.Config, log zerolog.Logger, view *mapview.MapView) *app.Watcher {
	path := session.Path()
	if path == "" || cfg.Watch.Interval <= 0 {
		return nil
	}
	w, err := app.NewWatcher(path, cfg.Watch.Interval)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("project watch disabled")
		return nil
	}
	w.SetLogger(log)
	w.OnChange(func() {
		if err := session.Reload(); err != nil {
			log.Error().Err(err).Msg("reload failed")
			return
		}
		view.Refresh()
	})
	w.Start()
	log.Info().Str("path", w.Path()).Dur("interval", cfg.Watch.Interval).Msg("watching project")
	return w
}
