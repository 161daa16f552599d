package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/soocke/lipstick-ar-go/config"
	"github.com/soocke/lipstick-ar-go/debug"
)

const defaultConfigPath = "lipstick.json"

var (
	configPath string
	presetName string
	logLevel   string
	logFile    string

	logger    *slog.Logger
	logCloser io.Closer
	stopDebug context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   "lipstick-ar",
	Short: "Virtual lipstick overlay driven by face landmarks",
	Long: `lipstick-ar draws a tinted, blurred lipstick overlay onto video frames
using face-mesh landmarks. Lip motion below a threshold is ignored so the
overlay holds still instead of jittering with detector noise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, closer, err := NewLogger(logLevel, logFile)
		if err != nil {
			return err
		}
		logger, logCloser = l, closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if stopDebug != nil {
			stopDebug()
		}
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initEnv)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to the JSON configuration file")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "Apply a named preset on top of the configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotating file instead of stdout")
}

func initEnv() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// loadConfig resolves the effective configuration: file, then environment,
// then --preset. A broken config file is reported and defaults are used.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil && logger != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "error", err)
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if presetName != "" {
		if err := cfg.ApplyPreset(presetName); err != nil {
			return nil, err
		}
	}
	if cfg.Debug && logger != nil && stopDebug == nil {
		ctx, cancel := context.WithCancel(context.Background())
		stopDebug = cancel
		debug.StartGoroutineLogger(ctx, 5*time.Second, logger)
		debug.StartMemLogger(ctx, 5*time.Second, logger)
	}
	return cfg, nil
}
