package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akorchagin/pairchat-server/internal/app"
	"github.com/akorchagin/pairchat-server/internal/config"
	"github.com/akorchagin/pairchat-server/internal/log"
)

func main() {
	var (
		configPath string
		overrides  config.Config
	)

	rootCmd := &cobra.Command{
		Use:   "pairchat-server",
		Short: "Direct-messaging backend with a JSON-file document store",
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrapLogger := log.New("info")

			cfg, resolvedPath, err := config.Load(bootstrapLogger, configPath)
			if err != nil {
				return err
			}
			cfg.UpdateFrom(overrides)

			logger := log.New(cfg.LogLevel)
			logger.Info().Str("config", resolvedPath).Str("addr", cfg.Addr).Msg("starting pairchat server")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(&cfg, logger)
			if err != nil {
				return err
			}

			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to config file")
	flags.StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	flags.StringVar(&overrides.DataDir, "data-dir", "", "directory for collection files")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.DurationVar(&overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
