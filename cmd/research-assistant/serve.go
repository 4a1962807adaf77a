// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tools to an agent over the Model Context Protocol",
	Long: `Serve exposes arxiv_search, read_pdf, and render_latex_pdf as MCP tools.
By default it speaks MCP over stdin and stdout; with --http it serves
streamable HTTP on the given address instead.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("http", "", "HTTP listen address (e.g. ':8080'); empty serves stdio")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, closeFn, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	s := mcpserver.NewServer(reg, version, logger)

	if addr, _ := cmd.Flags().GetString("http"); addr != "" {
		logger.Info("starting MCP server", zap.String("transport", "http"), zap.String("addr", addr))
		return mcpserver.ServeHTTP(s, addr)
	}
	logger.Info("starting MCP server", zap.String("transport", "stdio"))
	return mcpserver.ServeStdio(s)
}
