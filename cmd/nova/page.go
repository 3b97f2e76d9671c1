package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/nova-showcase/internal/page"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	pageOut  string
	pageAddr string
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Write or serve the landing page as HTML",
	Long: `Renders the landing page in the starting language.

Without flags the document goes to stdout. --out writes it to a file. --addr serves it, picking the
language per request from ?lang= or Accept-Language.`,
	Args: cobra.NoArgs,
	RunE: runPage,
}

func init() {
	pageCmd.Flags().StringVarP(&pageOut, "out", "o", "", "Write the document to this file")
	pageCmd.Flags().StringVar(&pageAddr, "addr", "", "Serve the page on this address, e.g. :8080")
	pageCmd.MarkFlagsMutuallyExclusive("out", "addr")
}

func runPage(cmd *cobra.Command, _ []string) error {
	if pageAddr != "" {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return page.Serve(ctx, pageAddr, page.Handler(catalogs, startingTag(), logger), logger)
	}

	var w io.Writer = cmd.OutOrStdout()
	if pageOut != "" {
		f, err := os.Create(pageOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", pageOut, err)
		}
		defer f.Close()
		w = f
	}
	snap := catalogs.Snapshot(startingTag())
	if err := page.Render(w, snap); err != nil {
		return err
	}
	if pageOut != "" {
		logger.Info("page written", zap.String("path", pageOut), zap.Stringer("lang", snap.Tag))
	}
	return nil
}
