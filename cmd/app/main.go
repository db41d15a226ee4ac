// Command notespress converts scanned or rendered note PDFs into
// enhanced, print-friendly PDFs and packs pages into compact n-up
// layouts.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	cfgpkg "github.com/local/notespress/internal/config"
	logpkg "github.com/local/notespress/internal/logger"
	"github.com/local/notespress/internal/metrics"
	"github.com/local/notespress/internal/settings"
)

var (
	cfg   cfgpkg.Config
	store *settings.Store
)

var rootCmd = &cobra.Command{
	Use:   "notespress",
	Short: "Enhance scanned notes and pack them into compact PDFs",
	Long: `notespress converts scanned or rendered document pages into enhanced
or compactly re-laid-out PDFs.

The enhance command inverts dark-background scans, applies contrast,
brightness and sharpness adjustments, and exports the result. The
compact command additionally packs multiple pages onto each output
sheet (2x2, 3x1 or 3x2) with configurable paper size, margins, reading
direction and per-cell borders.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()
	cfg = cfgpkg.FromEnv()

	_ = logpkg.Init(logpkg.Options{
		Level:      cfg.Logging.Level,
		Pretty:     cfg.Logging.Pretty,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})

	metrics.Init()
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			log.Info().Msgf("metrics listening on %s", cfg.Metrics.Addr)
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	store = settings.NewStore(cfg.SettingsFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
