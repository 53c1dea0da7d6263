// Package os provides the Docker configurator for openSUSE MicroOS boxes.
package os

import (
	"github.com/codebypatrickleung/boxprov/internal/vm"
)

// MicroOSReloadStep is the name of the reload step that activates the new snapshot.
const MicroOSReloadStep = "docker-reload"

// MicroOSConfigurator installs Docker through transactional-update. The package only
// becomes visible after a reboot into the new snapshot, so the service is enabled
// after a run-once reload.
type MicroOSConfigurator struct{}

// NewMicroOSConfigurator creates a new MicroOS configurator.
func NewMicroOSConfigurator() *MicroOSConfigurator {
	return &MicroOSConfigurator{}
}

// Name returns the name of this configurator.
func (c *MicroOSConfigurator) Name() string {
	return "openSUSE MicroOS Docker Configurator"
}

// Family returns the OS family.
func (c *MicroOSConfigurator) Family() Family {
	return FamilyMicroOS
}

// Steps returns install, reload, enable.
func (c *MicroOSConfigurator) Steps() []vm.Step {
	return []vm.Step{
		vm.Shell("transactional-update pkg install -y docker apparmor-parser"),
		vm.Reload(MicroOSReloadStep, vm.RunOnce),
		vm.Shell("systemctl enable --now docker"),
	}
}

func init() {
	mustRegister(NewMicroOSConfigurator())
}
