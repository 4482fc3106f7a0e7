package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/docsearch/internal/logger"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Recreate the index and load the seed documents",
	Long: `Drops the configured index if it exists, creates it with the document
mapping and bulk-loads the seed set (seed.path, or the built-in documents).`,
	Args: cobra.NoArgs,
	RunE: runProvision,
}

func init() {
	rootCmd.AddCommand(provisionCmd)
}

func runProvision(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	engine, err := connect(ctx, cfg.Search, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	n, err := provisionIndex(ctx, cfg, engine)
	if err != nil {
		logger.Error("Index provisioning failed", zap.Error(err))
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d documents into %s\n", n, cfg.Search.Index)
	return err
}
