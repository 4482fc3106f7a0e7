package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docsearch/internal/config"
	docsearch "github.com/kailas-cloud/docsearch/pkg/sdk"
)

var (
	searchType    string
	searchJSON    bool
	searchVerbose bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Runs a keyword query against title and content of the configured index.
--type restricts results to one content type: news, tutorial, review or report.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "filter by content type")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "log SDK operations to stderr")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if searchVerbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	client, err := docsearch.New(cmd.Context(), sdkOptions(cfg.Search, logger)...)
	if err != nil {
		return err
	}
	defer client.Close()

	results, err := client.Search(cmd.Context(), args[0], searchType)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, args[0], results)
	}
	outputSearchTable(cmd, results)
	return nil
}

// sdkOptions maps the server configuration onto SDK options.
func sdkOptions(cfg config.SearchConfig, logger *slog.Logger) []docsearch.Option {
	opts := []docsearch.Option{
		docsearch.WithIndex(cfg.Index),
		docsearch.WithPageSize(cfg.PageSize),
		docsearch.WithReadinessTimeout(time.Duration(cfg.ReadinessTimeout) * time.Second),
		docsearch.WithLogger(logger),
	}
	switch cfg.Driver {
	case config.DriverRedis:
		opts = append(opts,
			docsearch.WithRedis(cfg.Addrs[0], cfg.Password),
			docsearch.WithRedisAuth(cfg.Username, cfg.Password),
			docsearch.WithRedisDB(cfg.DB),
		)
	default:
		opts = append(opts,
			docsearch.WithElasticsearch(cfg.Addrs...),
			docsearch.WithElasticsearchAuth(cfg.Username, cfg.Password),
		)
	}
	return opts
}

func outputSearchJSON(cmd *cobra.Command, query string, results []docsearch.Result) error {
	out := struct {
		Query       string             `json:"query"`
		ContentType *string            `json:"content_type_filter"`
		Results     []docsearch.Result `json:"results"`
	}{Query: query, Results: results}
	if searchType != "" {
		out.ContentType = &searchType
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func outputSearchTable(cmd *cobra.Command, results []docsearch.Result) {
	w := cmd.OutOrStdout()
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "No results found.")
		return
	}

	for i := range results {
		// [N] Title (content_type, score)
		_, _ = fmt.Fprintf(w, "  [%d] %s (%s, %.2f)\n", i+1, results[i].Title, results[i].ContentType, results[i].Score)
		_, _ = fmt.Fprintf(w, "      %s\n", results[i].Snippet)
	}
}
