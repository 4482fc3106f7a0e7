package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/config"
	logpkg "github.com/kailas-cloud/docsearch/internal/logger"
)

var (
	configPath string
	envName    string
)

var rootCmd = &cobra.Command{
	Use:   "docsearch",
	Short: "Keyword search over a small document index (Elasticsearch or Redis)",
	Long: `docsearch provisions a search index with a fixed mapping, loads a seed set
of documents and answers keyword queries filtered by content type.

Without a subcommand it runs the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		_ = godotenv.Load(".env")
		_ = godotenv.Load("../.env")
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: config/<ENV>.yaml)")
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "environment: local, dev, docker, prod (default: $ENV or local)")
}

// runtimeEnv resolves the environment after .env files are loaded.
func runtimeEnv() string {
	if envName != "" {
		return envName
	}
	return config.GetEnv()
}

// loadConfig reads the config file selected by --config or the environment.
func loadConfig() (config.Config, string, error) {
	env := runtimeEnv()
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return config.Config{}, "", fmt.Errorf("load config: %w", err)
	}
	return cfg, env, nil
}

// bootstrap loads config and builds the process logger.
func bootstrap() (config.Config, *zap.Logger, error) {
	cfg, env, err := loadConfig()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger.With(zap.String("env", env)), nil
}
