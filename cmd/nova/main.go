package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/nova-showcase/internal/config"
	"github.com/Carmen-Shannon/nova-showcase/internal/locale"
	"github.com/Carmen-Shannon/nova-showcase/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool
	lang       string

	// Resolved by the root command before any subcommand runs.
	cfg      config.Config
	logger   *zap.Logger
	catalogs locale.Catalogs
)

var rootCmd = &cobra.Command{
	Use:   "nova",
	Short: "NovaOS showcase: the landing page as a 3D window, a terminal preview, HTML and WebP",
	Long: `nova renders the NovaOS landing page.

  run       open the interactive 3D showcase window
  preview   read the page in the terminal
  page      write or serve the page as HTML
  snapshot  write the animated phone display as WebP`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "Starting language, en or pt-BR (default from config or $LANG)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration, builds the logger and loads the locale catalogs.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	missing := errors.Is(err, config.ErrNoConfig)
	if err != nil && !missing {
		return err
	}

	logger, err = logging.New(logging.Verbose(cfg.Log.Level, verbose), cfg.Log.JSON)
	if err != nil {
		return err
	}
	if missing {
		logger.Warn("configuration file not found, using defaults", zap.String("path", configPath))
	}

	catalogs, err = locale.LoadEmbedded()
	if err != nil {
		return err
	}
	logger.Debug("ready", zap.String("command", cmd.Name()), zap.Stringer("lang", startingTag()))
	return nil
}

// startingTag picks the language from --lang, then the configuration, then $LANG.
func startingTag() locale.Tag {
	for _, pref := range []string{lang, cfg.Locale.Default, os.Getenv("LANG")} {
		if pref != "" {
			return locale.Negotiate(pref)
		}
	}
	return locale.EN
}

// newStore creates the language store at the starting language.
func newStore() *locale.Store {
	return locale.NewStore(catalogs, startingTag(), logger)
}
