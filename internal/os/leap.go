// Package os provides the Docker configurator for openSUSE Leap boxes.
package os

import (
	"github.com/codebypatrickleung/boxprov/internal/vm"
)

// LeapConfigurator installs Docker and the AppArmor parser with zypper.
type LeapConfigurator struct{}

// NewLeapConfigurator creates a new Leap configurator.
func NewLeapConfigurator() *LeapConfigurator {
	return &LeapConfigurator{}
}

// Name returns the name of this configurator.
func (c *LeapConfigurator) Name() string {
	return "openSUSE Leap Docker Configurator"
}

// Family returns the OS family.
func (c *LeapConfigurator) Family() Family {
	return FamilyLeap
}

// Steps returns the zypper based install.
func (c *LeapConfigurator) Steps() []vm.Step {
	return []vm.Step{
		vm.Shell("zypper install -y docker apparmor-parser"),
	}
}

func init() {
	mustRegister(NewLeapConfigurator())
}
