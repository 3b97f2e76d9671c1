package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/nova-showcase/internal/preview"
	"github.com/Carmen-Shannon/nova-showcase/internal/reveal"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Read the landing page in the terminal",
	Long: `Shows the page copy in the terminal. Blocks fade in as they scroll into view.

  arrows, j/k, PgUp/PgDn, space, Home/End, wheel   scroll
  left/right                                       move the interface carousel
  L                                                switch language
  q, Esc                                           quit`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	screen.EnableMouse()

	// Terminal geometry is in rows, so only the threshold and timing carry over from the config.
	tracker := reveal.NewTracker(
		reveal.WithThreshold(cfg.Reveal.Threshold),
		reveal.WithBottomMargin(1),
		reveal.WithDuration(cfg.Reveal.Duration),
		reveal.WithLogger(logger),
	)
	p := preview.New(screen, newStore(), preview.WithLogger(logger), preview.WithTracker(tracker))
	return p.Run(ctx)
}
