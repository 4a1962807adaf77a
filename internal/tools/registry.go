// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/logging"
)

// Registry holds the available tools in registration order.
// It is safe for concurrent use by the MCP server's handlers.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]*Tool
	order  []string
	logger *zap.Logger
}

// NewRegistry creates a new empty tool registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		tools:  make(map[string]*Tool),
		logger: logging.OrNop(logger),
	}
}

// Register adds a tool to the registry.
// Returns an error if a tool with the same name already exists.
func (r *Registry) Register(tool *Tool) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, tool.Name)
	}
	r.tools[tool.Name] = tool
	r.order = append(r.order, tool.Name)

	r.logger.Debug("registered tool", zap.String("name", tool.Name))
	return nil
}

// MustRegister registers a tool and panics on error.
func (r *Registry) MustRegister(tool *Tool) {
	if err := r.Register(tool); err != nil {
		panic(fmt.Sprintf("failed to register tool %s: %v", tool.Name, err))
	}
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// All returns all registered tools in registration order.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}
	return result
}

// Definitions returns the definition of every tool in registration order.
func (r *Registry) Definitions() []Definition {
	all := r.All()
	defs := make([]Definition, len(all))
	for i, t := range all {
		defs[i] = t.Definition()
	}
	return defs
}

// Call decodes a JSON object of arguments and runs the named tool.
func (r *Registry) Call(ctx context.Context, name string, rawArgs json.RawMessage) (string, error) {
	args := map[string]any{}
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			return "", fmt.Errorf("%w: arguments must be a JSON object: %v", ErrInvalidArgType, err)
		}
	}
	return r.CallArgs(ctx, name, args)
}

// CallArgs runs the named tool with already-decoded arguments.
func (r *Registry) CallArgs(ctx context.Context, name string, args map[string]any) (string, error) {
	tool := r.Get(name)
	if tool == nil {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	raw, ok := args[tool.Input.Name]
	if !ok || raw == nil {
		return "", fmt.Errorf("%w: %s.%s", ErrMissingRequiredArg, name, tool.Input.Name)
	}
	input, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s must be a string, got %T", ErrInvalidArgType, name, tool.Input.Name, raw)
	}

	log := r.logger.With(zap.String("tool", name), zap.String("call_id", uuid.NewString()))
	log.Info("tool call")
	out, err := tool.Execute(ctx, input)
	if err != nil {
		log.Warn("tool call failed", zap.Error(err))
		return "", err
	}
	log.Debug("tool call finished", zap.Int("result_len", len(out)))
	return out, nil
}
