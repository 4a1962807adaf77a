// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/latex"
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize",
	Short: "Print sanitized LaTeX without compiling it",
	Long: `Sanitize applies the same repairs render does (doubled control words,
typographic punctuation, line-leading backslashes, document envelope) and
prints the result. Useful for inspecting what will be sent to the engine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		markup, err := readSource(file)
		if err != nil {
			return err
		}
		fmt.Print(latex.Sanitize(markup))
		return nil
	},
}

func init() {
	sanitizeCmd.Flags().String("file", "", "LaTeX source file (default: stdin)")

	rootCmd.AddCommand(sanitizeCmd)
}
