// Package provision records the Docker install for a Vagrant machine.
package provision

import (
	"github.com/codebypatrickleung/boxprov/internal/logger"
	boxos "github.com/codebypatrickleung/boxprov/internal/os"
	"github.com/codebypatrickleung/boxprov/internal/vm"
)

const (
	// MemoryOverheadMB is added to the node memory to leave room for the Docker daemon.
	MemoryOverheadMB = 1024

	// ProviderLibvirt and ProviderVirtualBox are both configured on every machine;
	// Vagrant only applies the block of the provider that actually runs it.
	ProviderLibvirt    = "libvirt"
	ProviderVirtualBox = "virtualbox"

	// DockerUser is the guest account added to the docker group.
	DockerUser = "vagrant"
)

// Providers lists the providers whose memory is set by DockerInstall.
var Providers = []string{ProviderLibvirt, ProviderVirtualBox}

// DockerGroupStep returns the final step shared by every family.
func DockerGroupStep() vm.Step {
	return vm.Shell("usermod -aG docker " + DockerUser)
}

// MachineMemory returns the provider memory for a node with the given base memory.
func MachineMemory(nodeMemory int) int {
	return nodeMemory + MemoryOverheadMB
}

// DockerInstall sizes the machine and records the steps that install Docker on it.
//
// The OS family is derived from the box name. Boxes of an unknown family get no
// install steps; the docker group step is appended regardless and is always last.
// Nothing is executed here and nothing is deduplicated: calling DockerInstall twice
// on the same machine records the steps twice.
func DockerInstall(m vm.Machine, nodeMemory int, log *logger.Logger) boxos.Family {
	memory := MachineMemory(nodeMemory)
	for _, provider := range Providers {
		m.SetProviderMemory(provider, memory)
	}

	box := m.Box()
	family := boxos.Classify(box)
	steps := boxos.FamilySteps(family)
	if log != nil {
		if family == boxos.FamilyUnknown {
			log.Warningf("Box %q matches no known OS family, Docker will not be installed", box)
		} else {
			log.Debugf("Box %q classified as %s (%d install steps)", box, family, len(steps))
		}
	}

	for _, step := range steps {
		m.Provision(step)
	}
	m.Provision(DockerGroupStep())

	return family
}
