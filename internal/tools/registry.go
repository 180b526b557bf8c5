// Package tools implements the auxiliary tool service: a registry of
// callable tools backed by public APIs with deterministic mock
// fallbacks, cached in Redis, and exposed over a small JSON envelope.
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"prospect-pipeline/internal/common/apierror"
	"prospect-pipeline/internal/common/validation"
)

// ExecuteFunc runs a tool against validated parameters.
type ExecuteFunc func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Tool pairs a parameter schema with its implementation.
type Tool struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Schema      validation.JSONSchema `json:"inputSchema"`
	Execute     ExecuteFunc           `json:"-"`
}

// Registry holds the available tools. Registration happens at startup;
// lookups are concurrent.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns the registered tools sorted by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call validates the parameters against the tool's schema and runs it.
func (r *Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	tool, ok := r.Get(name)
	if !ok {
		return nil, apierror.New(apierror.ErrCodeToolNotFound, fmt.Sprintf("unknown tool %q", name))
	}

	if params == nil {
		params = map[string]interface{}{}
	}
	if result := validation.ValidateInput(params, tool.Schema); !result.Valid {
		first := result.Errors[0]
		return nil, apierror.New(apierror.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid parameter %q: %s", first.Field, first.Message))
	}

	return tool.Execute(ctx, params)
}
