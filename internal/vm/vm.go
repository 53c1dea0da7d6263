// Package vm models the Vagrant machine definitions that provisioning steps are recorded against.
package vm

import (
	"sort"
)

// StepKind identifies the Vagrant provisioner used for a step.
type StepKind string

const (
	// StepShell runs inline shell on the guest.
	StepShell StepKind = "shell"
	// StepReload restarts the guest through the vagrant-reload plugin.
	StepReload StepKind = "reload"
)

// RunOnce is the Vagrant run mode for steps that execute only on the first provision pass.
const RunOnce = "once"

// Step is a single recorded provisioning action.
type Step struct {
	Name   string   `json:"name,omitempty"`
	Kind   StepKind `json:"type"`
	Inline string   `json:"inline,omitempty"`
	Run    string   `json:"run,omitempty"`
}

// Shell returns an unnamed shell step running the given inline command.
func Shell(inline string) Step {
	return Step{Kind: StepShell, Inline: inline}
}

// Reload returns a named reload step with the given run mode.
func Reload(name, run string) Step {
	return Step{Name: name, Kind: StepReload, Run: run}
}

// Machine is the handle a provisioner mutates. Implementations own the storage;
// provisioners only describe what should happen later.
type Machine interface {
	// Box returns the identifier of the base image (e.g. "generic/ubuntu2004").
	Box() string

	// SetProviderMemory sets the memory in MB for the named provider.
	SetProviderMemory(provider string, mb int)

	// Provision appends a step. Steps are never reordered or removed.
	Provision(step Step)
}

// ProviderSettings holds the per-provider overrides of a definition.
type ProviderSettings struct {
	Memory int `json:"memory"`
}

// Definition is the in-memory Machine used to build a Vagrantfile.
type Definition struct {
	Name    string
	BoxName string
	Role    string
	Address string

	providers map[string]ProviderSettings
	steps     []Step
}

// NewDefinition creates an empty definition for the named node.
func NewDefinition(name, box string) *Definition {
	return &Definition{
		Name:      name,
		BoxName:   box,
		providers: make(map[string]ProviderSettings),
	}
}

// Box returns the box identifier.
func (d *Definition) Box() string {
	return d.BoxName
}

// SetProviderMemory sets the memory for the named provider.
func (d *Definition) SetProviderMemory(provider string, mb int) {
	if d.providers == nil {
		d.providers = make(map[string]ProviderSettings)
	}
	s := d.providers[provider]
	s.Memory = mb
	d.providers[provider] = s
}

// Provision appends a step.
func (d *Definition) Provision(step Step) {
	d.steps = append(d.steps, step)
}

// Steps returns a copy of the recorded steps in append order.
func (d *Definition) Steps() []Step {
	steps := make([]Step, len(d.steps))
	copy(steps, d.steps)
	return steps
}

// ProviderMemory returns the memory recorded for provider, if any.
func (d *Definition) ProviderMemory(provider string) (int, bool) {
	s, ok := d.providers[provider]
	return s.Memory, ok
}

// Providers returns the configured provider names in sorted order.
func (d *Definition) Providers() []string {
	names := make([]string, 0, len(d.providers))
	for name := range d.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProviderSettings returns a copy of the provider settings map.
func (d *Definition) ProviderSettings() map[string]ProviderSettings {
	out := make(map[string]ProviderSettings, len(d.providers))
	for k, v := range d.providers {
		out[k] = v
	}
	return out
}
