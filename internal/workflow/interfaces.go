// Package workflow defines interfaces for workflow abstraction.
package workflow

import (
	"context"

	"github.com/codebypatrickleung/boxprov/internal/config"
	"github.com/codebypatrickleung/boxprov/internal/logger"
)

// Handler defines the interface for a workflow handler that produces one output target.
type Handler interface {
	// Name returns the name of the workflow (e.g., "Vagrant Docker Nodes")
	Name() string

	// Target returns the output target identifier (e.g., "vagrant")
	Target() string

	// Initialize prepares the workflow handler with configuration and logger
	Initialize(cfg *config.Config, log *logger.Logger) error

	// Execute runs the complete workflow
	Execute(ctx context.Context) error
}
