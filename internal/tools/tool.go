// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tools exposes the research operations to an LLM agent as named,
// described, single-input tool calls. The agent (or the MCP server acting
// for it) dispatches a call by name with JSON arguments and receives a
// string result or an error.
package tools

import "context"

// ExecuteFunc runs a tool with its single string input.
type ExecuteFunc func(ctx context.Context, input string) (string, error)

// Parameter describes the tool's single string input.
type Parameter struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tool is one operation the agent can call.
type Tool struct {
	// Name is the unique identifier the agent calls the tool by.
	Name string

	// Description tells the model what the tool does and returns.
	Description string

	// Input is the single required string argument.
	Input Parameter

	// Execute runs the tool.
	Execute ExecuteFunc
}

// Validate checks if the tool definition is valid.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Execute == nil {
		return ErrToolExecuteNil
	}
	return nil
}

// Definition is the provider-neutral description of a tool, suitable for
// function-calling APIs.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Definition returns the tool's JSON-schema description.
func (t *Tool) Definition() Definition {
	return Definition{
		Name:        t.Name,
		Description: t.Description,
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				t.Input.Name: map[string]any{
					"type":        "string",
					"description": t.Input.Description,
				},
			},
			"required": []string{t.Input.Name},
		},
	}
}
