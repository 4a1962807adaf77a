// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [topic]",
	Short: "Search arXiv for recent papers on a topic",
	Long: `Search queries the arXiv API for papers matching a topic, newest
submission first. The topic is lower-cased and its words joined with '+';
parentheses and double quotes are rejected.

Output formats: table (default), json (the arxiv_search tool result), yaml,
and csl (CSL-JSON for citation managers).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", search.DefaultMaxResults, "maximum number of results to return")
	searchCmd.Flags().String("format", "table", "output format: table, json, yaml, csl")
	searchCmd.Flags().String("endpoint", search.DefaultEndpoint, "arXiv API endpoint")
	bindFlag(searchCmd, "search.max_results", "max-results")
	bindFlag(searchCmd, "search.endpoint", "endpoint")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")

	topic := strings.Join(args, " ")
	resp, err := newSearcher(cfg).Search(cmd.Context(), topic, cfg.Search.MaxResults)
	if err != nil {
		return err
	}

	switch format {
	case "table":
		search.FormatTable(resp, os.Stdout)
		return nil
	case "json":
		return search.FormatJSON(resp, os.Stdout)
	case "yaml":
		return search.FormatYAML(resp, os.Stdout)
	case "csl":
		return search.FormatCSL(resp, os.Stdout)
	default:
		return fmt.Errorf("unknown format %q: use table, json, yaml, or csl", format)
	}
}
