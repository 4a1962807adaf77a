// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/internal/artifacts"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var rendersCmd = &cobra.Command{
	Use:   "renders",
	Short: "List recorded render attempts",
	Long: `Renders lists entries from the render ledger, newest first: when the
attempt ran, its status, and the source and PDF paths. Use --yaml to include
the captured engine output.`,
	RunE: runRenders,
}

func init() {
	rendersCmd.Flags().String("status", "", "filter by status: succeeded, failed")
	rendersCmd.Flags().Int("limit", 20, "maximum number of entries")
	rendersCmd.Flags().Bool("yaml", false, "output entries as YAML")

	rootCmd.AddCommand(rendersCmd)
}

func runRenders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Render.Ledger == "" {
		return fmt.Errorf("render ledger disabled: set render.ledger")
	}

	status, _ := cmd.Flags().GetString("status")
	switch types.RenderStatus(status) {
	case "", types.RenderSucceeded, types.RenderFailed:
	default:
		return fmt.Errorf("unknown status %q: use succeeded or failed", status)
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := artifacts.Open(cfg.Render.Ledger)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(cmd.Context(), artifacts.ListFilter{
		Status: types.RenderStatus(status),
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	if yamlOutput, _ := cmd.Flags().GetBool("yaml"); yamlOutput {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	}
	return formatRenders(records)
}

func formatRenders(records []types.RenderRecord) error {
	if len(records) == 0 {
		fmt.Println("No renders recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-19s  %-9s  %s\n", "ID", "Created", "Status", "Path")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range records {
		path := r.PDFPath
		if r.Status != types.RenderSucceeded {
			path = r.TexPath
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-19s  %-9s  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Status, path)
	}
	fmt.Fprintf(os.Stdout, "\n%d renders\n", len(records))
	return nil
}
