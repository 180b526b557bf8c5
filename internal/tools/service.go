package tools

import (
	"context"
	"time"

	"prospect-pipeline/internal/common/config"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/common/validation"
)

// Service owns the registry and the per-tool services.
type Service struct {
	registry  *Registry
	startedAt time.Time
	version   string
	logger    logger.Logger
}

// NewService registers every tool, including the introspection
// builtins, against one shared cache.
func NewService(cfg config.ToolsConfig, version string, cache *Cache, log logger.Logger) *Service {
	s := &Service{
		registry:  NewRegistry(),
		startedAt: time.Now(),
		version:   version,
		logger:    log.WithFields(map[string]interface{}{"component": "tools"}),
	}

	s.registry.Register(NewWeatherService(cfg, cache, log).Tool())
	s.registry.Register(NewRandomUserService(cfg, log).Tool())
	s.registry.Register(NewTimeService(cfg, log).Tool())
	s.registry.Register(s.listToolsTool())
	s.registry.Register(s.serverStatusTool())

	return s
}

func (s *Service) Registry() *Registry {
	return s.registry
}

// Call dispatches to a registered tool by name.
func (s *Service) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	s.logger.Debug("tool call", map[string]interface{}{"tool": name})
	return s.registry.Call(ctx, name, params)
}

func (s *Service) listToolsTool() Tool {
	return Tool{
		Name:        "list_tools",
		Description: "List every registered tool with its schema",
		Schema:      validation.JSONSchema{Type: "object", Properties: map[string]validation.Property{}},
		Execute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			return s.registry.List(), nil
		},
	}
}

func (s *Service) serverStatusTool() Tool {
	return Tool{
		Name:        "server_status",
		Description: "Service uptime and version",
		Schema:      validation.JSONSchema{Type: "object", Properties: map[string]validation.Property{}},
		Execute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			return map[string]interface{}{
				"version":       s.version,
				"uptimeSeconds": int(time.Since(s.startedAt).Seconds()),
				"toolCount":     len(s.registry.List()),
			}, nil
		},
	}
}
