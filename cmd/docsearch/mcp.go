package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/docsearch/internal/logger"
	searchrepo "github.com/kailas-cloud/docsearch/internal/repository/search"
	mcpTransport "github.com/kailas-cloud/docsearch/internal/transport/mcp"
	searchuc "github.com/kailas-cloud/docsearch/internal/usecase/search"
	"github.com/kailas-cloud/docsearch/internal/version"
)

var mcpProvision bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the search tool over the Model Context Protocol (stdio)",
	Long: `Starts an MCP server on stdin/stdout exposing a "search" tool.
Logs go to stderr. Use --provision to load the seed set first.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpProvision, "provision", false, "recreate the index and load the seed set before serving")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
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

	if mcpProvision {
		if _, err := provisionIndex(ctx, cfg, engine); err != nil {
			return err
		}
	}

	server, err := mcpTransport.NewServer(
		searchuc.New(searchrepo.New(engine), cfg.Search.Index),
		cfg.Search.PageSize,
		version.Version,
	)
	if err != nil {
		return err
	}

	logger.Info("Serving MCP over stdio", zap.String("index", cfg.Search.Index))
	return server.Run(ctx)
}
