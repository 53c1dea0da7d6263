// Package os defines the per-family configurator contract.
package os

import (
	"github.com/codebypatrickleung/boxprov/internal/vm"
)

// Configurator describes how Docker is installed on one OS family.
type Configurator interface {
	// Name returns the name of this configurator (e.g., "Ubuntu Docker Configurator")
	Name() string

	// Family returns the OS family this configurator handles
	Family() Family

	// Steps returns the ordered provisioning steps that install and start Docker.
	// Each call returns a new slice.
	Steps() []vm.Step
}
