// Package os provides the registry of OS family configurators.
package os

import (
	"fmt"
	"sort"
	"sync"

	"github.com/codebypatrickleung/boxprov/internal/vm"
)

// ConfiguratorRegistry manages Docker configurators keyed by OS family.
type ConfiguratorRegistry struct {
	configurators map[Family]Configurator
	mu            sync.RWMutex
}

// NewConfiguratorRegistry creates a new configurator registry.
func NewConfiguratorRegistry() *ConfiguratorRegistry {
	return &ConfiguratorRegistry{
		configurators: make(map[Family]Configurator),
	}
}

// Register registers a configurator under its family.
// FamilyUnknown cannot be registered; unknown boxes never get install steps.
func (r *ConfiguratorRegistry) Register(configurator Configurator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	family := configurator.Family()
	if family == FamilyUnknown {
		return fmt.Errorf("configurator %q cannot be registered for the unknown family", configurator.Name())
	}
	if _, exists := r.configurators[family]; exists {
		return fmt.Errorf("configurator for %s already registered", family)
	}

	r.configurators[family] = configurator
	return nil
}

// Get retrieves the configurator for the given family.
func (r *ConfiguratorRegistry) Get(family Family) (Configurator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	configurator, exists := r.configurators[family]
	if !exists {
		return nil, fmt.Errorf("no configurator registered for %s", family)
	}

	return configurator, nil
}

// List returns all registered configurators ordered by family.
func (r *ConfiguratorRegistry) List() []Configurator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	configurators := make([]Configurator, 0, len(r.configurators))
	for _, configurator := range r.configurators {
		configurators = append(configurators, configurator)
	}
	sort.Slice(configurators, func(i, j int) bool {
		return configurators[i].Family() < configurators[j].Family()
	})
	return configurators
}

// DefaultConfiguratorRegistry is the global configurator registry.
var DefaultConfiguratorRegistry = NewConfiguratorRegistry()

// GetConfigurator is a convenience function to get a configurator from the default registry.
func GetConfigurator(family Family) (Configurator, error) {
	return DefaultConfiguratorRegistry.Get(family)
}

// RegisterConfigurator is a convenience function to register a configurator to the default registry.
func RegisterConfigurator(configurator Configurator) error {
	return DefaultConfiguratorRegistry.Register(configurator)
}

// FamilySteps returns the install steps for family from the default registry.
// It returns nil for families without a configurator.
func FamilySteps(family Family) []vm.Step {
	configurator, err := GetConfigurator(family)
	if err != nil {
		return nil
	}
	return configurator.Steps()
}

func mustRegister(configurator Configurator) {
	if err := RegisterConfigurator(configurator); err != nil {
		panic(err)
	}
}
