// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call [tool] [json-args]",
	Short: "Invoke a tool by name the way the agent does",
	Long: `Call dispatches a tool call through the same registry the MCP server
uses. Arguments are a JSON object, for example:

  research-assistant call arxiv_search '{"topic":"graph neural networks"}'

The tool's string result is printed to stdout.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, closeFn, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	var raw json.RawMessage
	if len(args) == 2 {
		raw = json.RawMessage(args[1])
	}
	out, err := reg.Call(cmd.Context(), args[0], raw)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
