// Package workflow provides the handler that renders Docker-ready Vagrant nodes.
package workflow

import (
	"context"
	"fmt"

	"github.com/codebypatrickleung/boxprov/internal/common"
	"github.com/codebypatrickleung/boxprov/internal/config"
	"github.com/codebypatrickleung/boxprov/internal/logger"
	"github.com/codebypatrickleung/boxprov/internal/provision"
	"github.com/codebypatrickleung/boxprov/internal/template"
	"github.com/codebypatrickleung/boxprov/internal/vm"
	"github.com/google/uuid"
)

// VagrantHandler builds one definition per configured node and writes the Vagrant files.
type VagrantHandler struct {
	config  *config.Config
	logger  *logger.Logger
	nodes   []*vm.Definition
	plan    *template.Plan
	written []string
}

// NewVagrantHandler creates a handler for the "vagrant" target.
func NewVagrantHandler() *VagrantHandler { return &VagrantHandler{} }

// Name returns the display name used in log banners.
func (h *VagrantHandler) Name() string { return "Vagrant Docker Nodes" }

// Target returns the TARGET value this handler is registered under.
func (h *VagrantHandler) Target() string { return "vagrant" }

// Plan returns the plan built by the last Execute, or nil before it runs.
func (h *VagrantHandler) Plan() *template.Plan { return h.plan }

// Written returns the paths of the files written by the last Execute.
func (h *VagrantHandler) Written() []string { return h.written }

// Initialize validates cfg and stores it with the logger for Execute.
func (h *VagrantHandler) Initialize(cfg *config.Config, log *logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	h.config, h.logger = cfg, log
	return nil
}

// Execute defines the nodes, records their Docker install steps, writes the
// output files and optionally runs vagrant validate. It stops at the first
// failed step or when ctx is done.
func (h *VagrantHandler) Execute(ctx context.Context) error {
	h.logger.Info("=========================================")
	h.logger.Infof("Executing: %s", h.Name())
	h.logger.Info("=========================================")

	steps := []struct {
		skip    bool
		skipMsg string
		errMsg  string
		fn      func(context.Context) error
	}{
		{false, "", "defining nodes failed", h.defineNodes},
		{false, "", "recording Docker install failed", h.installDocker},
		{false, "", "file generation failed", h.generateFiles},
		{!h.config.VagrantValidate, "Skipping vagrant validate (VALIDATE=false)", "validation failed", h.validate},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if step.skip {
			h.logger.Debug(step.skipMsg)
			continue
		}
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", step.errMsg, err)
		}
	}

	h.logger.Success("=========================================")
	h.logger.Successf("Plan %s written to %s", h.plan.ID, h.config.OutputDir)
	h.logger.Success("=========================================")
	return nil
}

func (h *VagrantHandler) defineNodes(ctx context.Context) error {
	h.logger.Step(1, "Defining Nodes")
	h.nodes = h.nodes[:0]
	for _, node := range h.config.Nodes() {
		d := vm.NewDefinition(node.Name, node.Box)
		d.Role = node.Role
		d.Address = node.Address
		h.nodes = append(h.nodes, d)
		h.logger.Infof("%s (%s): box %s, address %s", node.Name, node.Role, node.Box, node.Address)
	}
	return nil
}

func (h *VagrantHandler) installDocker(ctx context.Context) error {
	h.logger.Step(2, "Recording Docker Installation")
	h.plan = &template.Plan{
		ID:         uuid.NewString(),
		NodeMemory: h.config.NodeMemory,
		Env:        common.NodeEnv(h.config.NodeRoles, h.config.NodeBoxes),
		Nodes:      make([]template.NodePlan, 0, len(h.nodes)),
	}
	for _, d := range h.nodes {
		family := provision.DockerInstall(d, h.config.NodeMemory, h.logger)
		h.plan.Nodes = append(h.plan.Nodes, template.NewNodePlan(d, family.String()))
		h.logger.Successf("✓ %s: %s family, %d steps, %d MB", d.Name, family, len(d.Steps()), provision.MachineMemory(h.config.NodeMemory))
	}
	return nil
}

func (h *VagrantHandler) generateFiles(ctx context.Context) error {
	h.logger.Step(3, "Generating Files")
	written, err := template.NewVagrantGenerator(h.config, h.logger, h.plan).Generate()
	h.written = written
	return err
}

func (h *VagrantHandler) validate(ctx context.Context) error {
	h.logger.Step(4, "Validating Vagrantfile")
	return template.NewVagrantGenerator(h.config, h.logger, h.plan).ValidateVagrantfile()
}
