// Package cli implements the tsvg command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/tsvg/internal/config"
	"github.com/opencode-ai/tsvg/internal/db"
	"github.com/opencode-ai/tsvg/internal/logging"
)

var (
	cfgFile        string
	jsonOutput     bool
	jsonlOutput    bool
	logLevel       string
	nonInteractive bool
	noProgress     bool
	yesFlag        bool

	appConfig *config.Config
	logger    = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "tsvg",
	Short: "Preview SVG templates embedded in source files",
	Long: `tsvg finds template literals marked with /*svg*/, works out their ${}
placeholders and renders them with sensible defaults.

Configuration is read from --config, ./tsvg.yaml or ~/.config/tsvg/config.yaml.
Every key can be overridden with a TSVG_ environment variable, for example
TSVG_PREVIEW_PORT=8080.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./tsvg.yaml or ~/.config/tsvg/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	rootCmd.PersistentFlags().BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; use defaults")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress output")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompts")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appConfig = cfg
	logger = logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Out:    os.Stderr,
	})
	logger.Debug().Str("storage", cfg.Storage.Path).Msg("config loaded")
	return nil
}

// GetConfig returns the loaded configuration, or defaults before loading.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

func openDatabase(ctx context.Context) (*db.DB, error) {
	cfg := GetConfig()
	database, err := db.Open(db.Config{
		Path:   cfg.Storage.Path,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := database.MigrateUp(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}
