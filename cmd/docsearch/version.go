package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docsearch/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "docsearch %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
