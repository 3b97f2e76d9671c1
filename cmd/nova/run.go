package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/nova-showcase/engine"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer"
	"github.com/Carmen-Shannon/nova-showcase/engine/window"
	"github.com/Carmen-Shannon/nova-showcase/internal/app"
	"github.com/Carmen-Shannon/nova-showcase/internal/config"
	"github.com/Carmen-Shannon/nova-showcase/internal/page"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive 3D showcase window",
	Long: `Opens the landing page in a window with the hero phone, the exploded layer view and the
floating icon rendered into their canvases.

  wheel, arrows, PgUp/PgDn, Home/End   scroll
  left/right                           move the interface carousel
  L                                    switch language
  P                                    toggle the profiler
  Esc                                  quit

With --config, edits to the file retune the pose solver and the reveal observers live.`,
	Args: cobra.NoArgs,
	RunE: runShowcase,
}

func runShowcase(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithMinSize(360, 480),
	)
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	defer win.Close()

	opts := []renderer.RendererBuilderOption{
		renderer.WithLogger(logger),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Render.MSAA)),
		renderer.WithClearColor(page.ColorBackground),
	}
	if !cfg.Render.VSync {
		opts = append(opts, renderer.WithPresentMode(renderer.PresentModeUncapped))
	}
	rend, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, opts...)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Close()

	eng, err := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(rend),
		engine.WithLogger(logger),
		engine.WithProfiling(cfg.Render.Profiling),
		engine.WithRenderFrameLimit(cfg.Render.FrameLimit),
	)
	if err != nil {
		return err
	}

	a, err := app.New(eng, newStore(), app.WithLogger(logger), app.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	if configPath != "" {
		w, err := config.NewWatcher(configPath, a.Reload, logger)
		if err != nil {
			logger.Warn("config hot reload disabled", zap.Error(err))
		} else {
			defer w.Close()
			if err := w.Start(ctx); err != nil {
				logger.Warn("config hot reload disabled", zap.Error(err))
			}
		}
	}

	logger.Info("showcase started", zap.Int("width", cfg.Window.Width), zap.Int("height", cfg.Window.Height))
	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
