package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/nova-showcase/internal/showcase"
	"github.com/Carmen-Shannon/nova-showcase/internal/snapshot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	snapOut      string
	snapAt       float64
	snapDuration float64
	snapFPS      float64
	snapWidth    int
	snapHeight   int
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write the animated phone display as WebP",
	Long: `Rasterizes the hero phone display at twice the output size and downsamples it.

With --duration the frames from --at to --at+duration are written as an animated WebP.`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "screen.webp", "Output file")
	snapshotCmd.Flags().Float64Var(&snapAt, "at", 0, "Animation time of the first frame in seconds")
	snapshotCmd.Flags().Float64Var(&snapDuration, "duration", 0, "Length of an animated snapshot in seconds")
	snapshotCmd.Flags().Float64Var(&snapFPS, "fps", 20, "Frame rate of an animated snapshot")
	snapshotCmd.Flags().IntVar(&snapWidth, "width", 352, "Output width in pixels")
	snapshotCmd.Flags().IntVar(&snapHeight, "height", 736, "Output height in pixels")
}

func runSnapshot(_ *cobra.Command, _ []string) error {
	if snapWidth <= 0 || snapHeight <= 0 {
		return fmt.Errorf("snapshot size %dx%d must be positive", snapWidth, snapHeight)
	}
	if snapDuration < 0 {
		return errors.New("snapshot duration must not be negative")
	}

	screen := showcase.NewScreen(showcase.WithScreenSize(2*snapWidth, 2*snapHeight), showcase.WithScreenLogger(logger))
	defer screen.Close()
	enc := snapshot.NewEncoder(screen,
		snapshot.WithSize(snapWidth, snapHeight),
		snapshot.WithFrameRate(snapFPS),
		snapshot.WithLogger(logger),
	)

	f, err := os.Create(snapOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", snapOut, err)
	}
	defer f.Close()

	if snapDuration > 0 {
		err = enc.Animation(f, snapAt, snapAt+snapDuration)
	} else {
		err = enc.Still(f, snapAt)
	}
	if err != nil {
		return err
	}
	logger.Info("snapshot written", zap.String("path", snapOut),
		zap.Int("width", snapWidth), zap.Int("height", snapHeight), zap.Float64("duration", snapDuration))
	return nil
}
