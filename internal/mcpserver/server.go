// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver exposes the tool registry to an LLM agent over the
// Model Context Protocol. Each registered tool becomes an MCP tool with one
// required string parameter; tool failures are returned as MCP error
// results so the agent can see and react to them.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/logging"
	"github.com/pdiddy/research-assistant/internal/tools"
)

// ServerName is reported to clients during initialization.
const ServerName = "research-assistant"

// NewServer creates an MCP server with every tool in reg.
func NewServer(reg *tools.Registry, version string, logger *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
	)

	for _, t := range reg.All() {
		s.AddTool(toolFor(t), handlerFor(reg, t.Name, logger))
	}
	return s
}

// Tools returns the MCP tool descriptions for every tool in reg.
func Tools(reg *tools.Registry) []mcp.Tool {
	all := reg.All()
	out := make([]mcp.Tool, len(all))
	for i, t := range all {
		out[i] = toolFor(t)
	}
	return out
}

func toolFor(t *tools.Tool) mcp.Tool {
	return mcp.NewTool(t.Name,
		mcp.WithDescription(t.Description),
		mcp.WithString(t.Input.Name,
			mcp.Required(),
			mcp.Description(t.Input.Description),
		),
	)
}

func handlerFor(reg *tools.Registry, name string, logger *zap.Logger) server.ToolHandlerFunc {
	logger = logging.OrNop(logger)
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := reg.CallArgs(ctx, name, request.GetArguments())
		if err != nil {
			logger.Debug("mcp tool error", zap.String("tool", name), zap.Error(err))
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", name, err)), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// ServeStdio serves s over stdin and stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// ServeHTTP serves s over streamable HTTP on addr.
func ServeHTTP(s *server.MCPServer, addr string) error {
	return server.NewStreamableHTTPServer(s).Start(addr)
}
