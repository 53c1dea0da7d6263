// Package workflow orchestrates building and rendering a provisioning plan.
package workflow

import (
	"context"
	"fmt"

	"github.com/codebypatrickleung/boxprov/internal/config"
	"github.com/codebypatrickleung/boxprov/internal/logger"
)

// Manager runs the handler registered for the configured target.
type Manager struct {
	config  *config.Config
	logger  *logger.Logger
	handler Handler
	version string
}

// NewManager creates a new workflow manager.
func NewManager(cfg *config.Config, log *logger.Logger, version string) (*Manager, error) {
	registry := NewRegistry()

	if err := registry.Register(NewVagrantHandler()); err != nil {
		return nil, fmt.Errorf("failed to register Vagrant handler: %w", err)
	}

	handler, err := registry.Get(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow handler: %w", err)
	}

	if err := handler.Initialize(cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize workflow handler: %w", err)
	}

	return &Manager{
		config:  cfg,
		logger:  log,
		handler: handler,
		version: version,
	}, nil
}

// Run executes the workflow by delegating to the registered handler.
func (m *Manager) Run(ctx context.Context) error {
	m.logger.Info("=========================================")
	m.logger.Infof("boxprov v%s", m.version)
	m.logger.Info("=========================================")
	m.logger.Infof("Target: %s", m.config.Target)
	m.logger.Infof("Nodes: %d", len(m.config.NodeRoles))
	m.logger.Info("=========================================")

	if err := m.handler.Execute(ctx); err != nil {
		m.logger.Error(fmt.Sprintf("Workflow failed: %v", err))
		return err
	}

	return nil
}
