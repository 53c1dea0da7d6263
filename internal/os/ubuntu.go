// Package os provides the Docker configurator for Ubuntu boxes.
package os

import (
	"github.com/codebypatrickleung/boxprov/internal/vm"
)

// UbuntuConfigurator installs docker.io from the Ubuntu archive.
type UbuntuConfigurator struct{}

// NewUbuntuConfigurator creates a new Ubuntu configurator.
func NewUbuntuConfigurator() *UbuntuConfigurator {
	return &UbuntuConfigurator{}
}

// Name returns the name of this configurator.
func (c *UbuntuConfigurator) Name() string {
	return "Ubuntu Docker Configurator"
}

// Family returns the OS family.
func (c *UbuntuConfigurator) Family() Family {
	return FamilyUbuntu
}

// Steps returns the apt based install.
func (c *UbuntuConfigurator) Steps() []vm.Step {
	return []vm.Step{
		vm.Shell("apt update; apt install -y docker.io"),
	}
}

func init() {
	mustRegister(NewUbuntuConfigurator())
}
