// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools offered to the agent",
	Long: `Tools prints each tool's name and description, or with --json the full
function-calling definitions including parameter schemas.`,
	RunE: runTools,
}

func init() {
	toolsCmd.Flags().Bool("json", false, "output definitions as JSON")

	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Listing never touches the ledger.
	cfg.Render.Ledger = ""
	reg, closeFn, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reg.Definitions())
	}

	for _, t := range reg.All() {
		fmt.Fprintf(os.Stdout, "%-18s (%s)\n    %s\n", t.Name, t.Input.Name, t.Description)
	}
	return nil
}
