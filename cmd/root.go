package cmd

import (
	"fmt"
	"os"

	"github.com/secret-dreams/fonts/core/config"
	"github.com/secret-dreams/fonts/core/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the fixed semantic version printed by the version command.
const Version = "1.0.4"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "fonts",
	Short: "Web font catalog pipeline",
	Long: `Fonts fetches web font families from an upstream feed, derives preview
assets from them, and upserts the resulting catalog to a remote service.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds a run-tagged logger, the shared
// prologue of every subcommand.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l, uuid.NewString())

	return cfg, l, nil
}
