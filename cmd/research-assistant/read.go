// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/reader"
)

var readCmd = &cobra.Command{
	Use:   "read [url | arxiv-id | doi]",
	Short: "Download a PDF and print its text",
	Long: `Read fetches a PDF and prints its plain text, page by page, in page
order. The argument may be a direct URL, an arXiv ID (2301.07041), or a DOI.
Bodies larger than reader.max_bytes are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().Int64("max-bytes", 0, "maximum document size in bytes (0 uses config; default 64 MiB)")

	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if n, _ := cmd.Flags().GetInt64("max-bytes"); n > 0 {
		cfg.Reader.MaxBytes = n
	}

	url, err := reader.ResolveURL(args[0])
	if err != nil {
		return err
	}
	text, err := newReader(cfg).ReadPDF(cmd.Context(), url)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
