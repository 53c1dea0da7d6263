// Package template renders provisioning plans into Vagrant, YAML and libvirt files.
package template

import (
	"github.com/codebypatrickleung/boxprov/internal/vm"
)

// Plan is the full set of machine definitions produced by one run.
type Plan struct {
	ID         string     `json:"id"`
	NodeMemory int        `json:"nodeMemory"`
	Env        string     `json:"env"`
	Nodes      []NodePlan `json:"nodes"`
}

// NodePlan is the rendered form of one vm.Definition.
type NodePlan struct {
	Name      string                         `json:"name"`
	Role      string                         `json:"role"`
	Box       string                         `json:"box"`
	Family    string                         `json:"family"`
	Address   string                         `json:"address,omitempty"`
	Providers map[string]vm.ProviderSettings `json:"providers"`
	Steps     []vm.Step                      `json:"steps"`
}

// NewNodePlan snapshots a definition.
func NewNodePlan(d *vm.Definition, family string) NodePlan {
	return NodePlan{
		Name:      d.Name,
		Role:      d.Role,
		Box:       d.Box(),
		Family:    family,
		Address:   d.Address,
		Providers: d.ProviderSettings(),
		Steps:     d.Steps(),
	}
}

// NeedsReloadPlugin reports whether any node uses a reload step.
func (p *Plan) NeedsReloadPlugin() bool {
	for _, n := range p.Nodes {
		for _, s := range n.Steps {
			if s.Kind == vm.StepReload {
				return true
			}
		}
	}
	return false
}
