// Package os provides the Docker configurator for Rocky Linux 8 and 9 boxes.
package os

import (
	"github.com/codebypatrickleung/boxprov/internal/vm"
)

// DockerCERepoURL is the upstream Docker CE repository used on EL based boxes.
const DockerCERepoURL = "https://download.docker.com/linux/centos/docker-ce.repo"

// RockyConfigurator installs docker-ce from the upstream Docker repository.
type RockyConfigurator struct{}

// NewRockyConfigurator creates a new Rocky Linux configurator.
func NewRockyConfigurator() *RockyConfigurator {
	return &RockyConfigurator{}
}

// Name returns the name of this configurator.
func (c *RockyConfigurator) Name() string {
	return "Rocky Linux Docker Configurator"
}

// Family returns the OS family.
func (c *RockyConfigurator) Family() Family {
	return FamilyRocky
}

// Steps returns add-repo, then install.
func (c *RockyConfigurator) Steps() []vm.Step {
	return []vm.Step{
		vm.Shell("dnf config-manager --add-repo " + DockerCERepoURL),
		vm.Shell("dnf install -y docker-ce"),
	}
}

func init() {
	mustRegister(NewRockyConfigurator())
}
