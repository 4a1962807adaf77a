// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Sanitize LaTeX and compile it to PDF with Tectonic",
	Long: `Render reads LaTeX markup from --file (or stdin), repairs common
generation artifacts, writes a timestamped .tex file to the output directory,
and compiles it with Tectonic. The absolute path of the PDF is printed.

Every attempt is recorded in the render ledger (see the renders command).`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("file", "", "LaTeX source file (default: stdin)")
	renderCmd.Flags().String("output-dir", render.DefaultOutputDir, "directory for generated .tex and .pdf files")
	renderCmd.Flags().String("engine", "", "path to the tectonic executable (default ~/tectonic)")
	renderCmd.Flags().Duration("timeout", render.DefaultTimeout, "maximum time for one engine run")
	bindFlag(renderCmd, "render.output_dir", "output-dir")
	bindFlag(renderCmd, "render.engine_path", "engine")
	bindFlag(renderCmd, "render.timeout", "timeout")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	file, _ := cmd.Flags().GetString("file")
	markup, err := readSource(file)
	if err != nil {
		return err
	}

	r, closeLedger, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	defer closeLedger()

	res, err := r.Render(cmd.Context(), markup)
	if err != nil {
		return err
	}
	fmt.Println(res.PDFPath)
	return nil
}

// readSource returns the contents of path, or of stdin when path is empty.
func readSource(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
