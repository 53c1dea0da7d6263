// Package template provides file generation for a provisioning plan.
package template

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codebypatrickleung/boxprov/internal/common"
	"github.com/codebypatrickleung/boxprov/internal/config"
	"github.com/codebypatrickleung/boxprov/internal/logger"
	"github.com/codebypatrickleung/boxprov/internal/provision"
	"github.com/codebypatrickleung/boxprov/internal/vm"
	"libvirt.org/go/libvirtxml"
	"sigs.k8s.io/yaml"
)

const (
	VagrantfileName = "Vagrantfile"
	PlanFileName    = "plan.yaml"
	ReadmeFileName  = "README.md"

	libvirtXMLSuffix = ".libvirt.xml"
	reloadPlugin     = "vagrant-reload"
	defaultVCPUs     = 2
)

// VagrantGenerator writes the files describing a plan into the configured output directory.
type VagrantGenerator struct {
	config *config.Config
	logger *logger.Logger
	plan   *Plan
}

// NewVagrantGenerator creates a new generator for plan.
func NewVagrantGenerator(cfg *config.Config, log *logger.Logger, plan *Plan) *VagrantGenerator {
	return &VagrantGenerator{
		config: cfg,
		logger: log,
		plan:   plan,
	}
}

// Generate writes every enabled output file and returns their paths.
func (g *VagrantGenerator) Generate() ([]string, error) {
	if err := common.EnsureDir(g.config.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	g.logger.Infof("Generating files in: %s", g.config.OutputDir)

	generators := []struct {
		skip bool
		gen  func() ([]string, error)
	}{
		{g.config.SkipVagrantfile, g.generateVagrantfile},
		{g.config.SkipPlan, g.generatePlan},
		{g.config.SkipLibvirtXML, g.generateLibvirtXML},
		{false, g.generateReadme},
	}

	var written []string
	for _, gen := range generators {
		if gen.skip {
			continue
		}
		paths, err := gen.gen()
		if err != nil {
			return written, err
		}
		written = append(written, paths...)
	}
	g.logger.Successf("Generated %d files in %s", len(written), g.config.OutputDir)
	return written, nil
}

// ValidateVagrantfile runs `vagrant validate` against the generated Vagrantfile.
// A missing vagrant binary is reported as a warning, not an error.
func (g *VagrantGenerator) ValidateVagrantfile() error {
	if g.config.SkipVagrantfile {
		g.logger.Warning("Vagrantfile generation skipped, nothing to validate")
		return nil
	}
	if err := common.CheckCommand("vagrant"); err != nil {
		g.logger.Warningf("Skipping validation: %v", err)
		return nil
	}
	g.logger.Info("Running vagrant validate...")
	out, err := common.RunCommandInDir(g.config.OutputDir, "vagrant", "validate")
	if err != nil {
		return fmt.Errorf("vagrant validate failed: %w\nOutput: %s", err, out)
	}
	g.logger.Success("Vagrantfile is valid")
	return nil
}

func (g *VagrantGenerator) write(name string, content []byte) (string, error) {
	path := filepath.Join(g.config.OutputDir, name)
	if err := common.WriteFile(path, content); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	g.logger.Debugf("Wrote %s (%d bytes)", path, len(content))
	return path, nil
}

func (g *VagrantGenerator) generateVagrantfile() ([]string, error) {
	path, err := g.write(VagrantfileName, []byte(RenderVagrantfile(g.plan)))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (g *VagrantGenerator) generatePlan() ([]string, error) {
	data, err := yaml.Marshal(g.plan)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}
	path, err := g.write(PlanFileName, data)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (g *VagrantGenerator) generateLibvirtXML() ([]string, error) {
	var paths []string
	for _, node := range g.plan.Nodes {
		xml, err := RenderLibvirtDomain(node)
		if err != nil {
			return paths, err
		}
		path, err := g.write(node.Name+libvirtXMLSuffix, []byte(xml))
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (g *VagrantGenerator) generateReadme() ([]string, error) {
	var b strings.Builder
	b.WriteString("# Vagrant environment\n\n")
	b.WriteString("This directory was generated by boxprov. Plan `" + g.plan.ID + "`.\n\n")
	b.WriteString("## Nodes\n\n")
	b.WriteString("| Node | Box | Family | Address | Steps |\n")
	b.WriteString("|------|-----|--------|---------|-------|\n")
	for _, n := range g.plan.Nodes {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n", n.Name, n.Box, n.Family, n.Address, len(n.Steps))
	}
	b.WriteString("\n## Usage\n\n```bash\n")
	b.WriteString(g.plan.Env + " vagrant up\n")
	b.WriteString("```\n")
	if g.plan.NeedsReloadPlugin() {
		b.WriteString("\nThe `" + reloadPlugin + "` plugin is required: `vagrant plugin install " + reloadPlugin + "`.\n")
	}
	path, err := g.write(ReadmeFileName, []byte(b.String()))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// RenderVagrantfile renders the plan as a Vagrantfile. Provider blocks are written in
// sorted order and provisioners in the order they were recorded.
func RenderVagrantfile(plan *Plan) string {
	var b strings.Builder
	b.WriteString("# -*- mode: ruby -*-\n# vi: set ft=ruby :\n")
	fmt.Fprintf(&b, "# Generated by boxprov, plan %s.\n", plan.ID)
	if plan.Env != "" {
		fmt.Fprintf(&b, "# %s\n", plan.Env)
	}
	b.WriteString("\nVagrant.configure(\"2\") do |config|\n")
	if plan.NeedsReloadPlugin() {
		fmt.Fprintf(&b, "  config.vagrant.plugins = [%s]\n", rubyString(reloadPlugin))
	}
	for _, n := range plan.Nodes {
		fmt.Fprintf(&b, "  config.vm.define %s do |node|\n", rubyString(n.Name))
		fmt.Fprintf(&b, "    node.vm.box = %s\n", rubyString(n.Box))
		fmt.Fprintf(&b, "    node.vm.hostname = %s\n", rubyString(n.Name))
		if n.Address != "" {
			fmt.Fprintf(&b, "    node.vm.network \"private_network\", ip: %s\n", rubyString(n.Address))
		}
		providers := make([]string, 0, len(n.Providers))
		for name := range n.Providers {
			providers = append(providers, name)
		}
		sort.Strings(providers)
		for _, name := range providers {
			fmt.Fprintf(&b, "    node.vm.provider %s do |v|\n", rubyString(name))
			fmt.Fprintf(&b, "      v.memory = %d\n", n.Providers[name].Memory)
			b.WriteString("    end\n")
		}
		for _, s := range n.Steps {
			b.WriteString("    " + provisionLine(s) + "\n")
		}
		b.WriteString("  end\n")
	}
	b.WriteString("end\n")
	return b.String()
}

// provisionLine renders one node.vm.provision call.
func provisionLine(s vm.Step) string {
	var args []string
	switch {
	case s.Name != "":
		args = append(args, rubyString(s.Name), "type: "+rubyString(string(s.Kind)))
	default:
		args = append(args, rubyString(string(s.Kind)))
	}
	if s.Inline != "" {
		args = append(args, "inline: "+rubyString(s.Inline))
	}
	if s.Run != "" {
		args = append(args, "run: "+rubyString(s.Run))
	}
	return "node.vm.provision " + strings.Join(args, ", ")
}

var rubyEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`#`, `\#`,
	"\n", `\n`,
	"\t", `\t`,
)

// rubyString returns s as a double-quoted Ruby literal with interpolation disabled.
func rubyString(s string) string {
	return `"` + rubyEscaper.Replace(s) + `"`
}

// RenderLibvirtDomain renders a libvirt domain preview carrying the node's libvirt memory.
func RenderLibvirtDomain(node NodePlan) (string, error) {
	settings, ok := node.Providers[provision.ProviderLibvirt]
	if !ok {
		return "", fmt.Errorf("node %s has no libvirt provider settings", node.Name)
	}
	domain := &libvirtxml.Domain{
		Type:        "kvm",
		Name:        node.Name,
		Description: "box " + node.Box,
		Memory: &libvirtxml.DomainMemory{
			Value: uint(settings.Memory),
			Unit:  "MiB",
		},
		CurrentMemory: &libvirtxml.DomainCurrentMemory{
			Value: uint(settings.Memory),
			Unit:  "MiB",
		},
		VCPU: &libvirtxml.DomainVCPU{
			Value: defaultVCPUs,
		},
		OS: &libvirtxml.DomainOS{
			Type: &libvirtxml.DomainOSType{
				Arch: "x86_64",
				Type: "hvm",
			},
		},
	}
	xml, err := domain.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to marshal libvirt domain for %s: %w", node.Name, err)
	}
	return xml, nil
}
