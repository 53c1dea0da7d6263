// Package config handles configuration loading from files, environment variables, and flags.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/codebypatrickleung/boxprov/internal/common"
	"github.com/spf13/viper"
)

const (
	defaultNodeMemory    = 2048
	defaultNodeOS        = "generic/ubuntu2004"
	defaultOutputDir     = "./vagrant-output"
	defaultNetworkPrefix = "10.10.10."
	defaultFirstHost     = 100
	defaultTarget        = "vagrant"

	// maxHost is the highest host number in the /24 that NETWORK_PREFIX names.
	maxHost = 254
)

// Config holds all configuration for boxprov.
type Config struct {
	Target          string
	NodeMemory      int
	NodeRoles       []string
	NodeBoxes       []string
	NodeOS          string
	ServerCount     int
	AgentCount      int
	NetworkPrefix   string
	FirstHost       int
	OutputDir       string
	SkipVagrantfile bool
	SkipPlan        bool
	SkipLibvirtXML  bool
	VagrantValidate bool
	Debug           bool
}

// Node is one machine of the generated environment.
type Node struct {
	Name    string
	Role    string
	Box     string
	Address string
}

// Load initializes configuration from file, environment variables, and flags.
// Explicit E2E_NODE_ROLES / E2E_NODE_BOXES take precedence over NODE_OS and the node counts.
func Load(configFile string) (*Config, error) {
	viper.SetDefault("target", defaultTarget)
	viper.SetDefault("node_memory", defaultNodeMemory)
	viper.SetDefault("node_os", defaultNodeOS)
	viper.SetDefault("server_count", 1)
	viper.SetDefault("agent_count", 1)
	viper.SetDefault("network_prefix", defaultNetworkPrefix)
	viper.SetDefault("first_host", defaultFirstHost)
	viper.SetDefault("output_dir", defaultOutputDir)

	viper.AutomaticEnv()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Target:          viper.GetString("target"),
		NodeMemory:      viper.GetInt("node_memory"),
		NodeRoles:       common.SplitList(viper.GetString("e2e_node_roles")),
		NodeBoxes:       common.SplitList(viper.GetString("e2e_node_boxes")),
		NodeOS:          strings.TrimSpace(viper.GetString("node_os")),
		ServerCount:     viper.GetInt("server_count"),
		AgentCount:      viper.GetInt("agent_count"),
		NetworkPrefix:   viper.GetString("network_prefix"),
		FirstHost:       viper.GetInt("first_host"),
		OutputDir:       viper.GetString("output_dir"),
		SkipVagrantfile: viper.GetBool("skip_vagrantfile"),
		SkipPlan:        viper.GetBool("skip_plan"),
		SkipLibvirtXML:  viper.GetBool("skip_libvirt_xml"),
		VagrantValidate: viper.GetBool("validate"),
		Debug:           viper.GetBool("debug"),
	}

	if cfg.ServerCount < 0 {
		return nil, fmt.Errorf("server_count must not be negative, got %d", cfg.ServerCount)
	}
	if cfg.AgentCount < 0 {
		return nil, fmt.Errorf("agent_count must not be negative, got %d", cfg.AgentCount)
	}
	if len(cfg.NodeRoles) == 0 {
		servers, agents := common.NodeNames(cfg.ServerCount, cfg.AgentCount)
		cfg.NodeRoles = append(servers, agents...)
	}
	if len(cfg.NodeBoxes) == 0 {
		cfg.NodeBoxes = common.RepeatBox(cfg.NodeOS, len(cfg.NodeRoles))
	}

	return cfg, nil
}

// Validate checks that the configuration describes a usable node set.
func (c *Config) Validate() error {
	if c.NodeMemory <= 0 {
		return fmt.Errorf("node_memory must be positive, got %d", c.NodeMemory)
	}
	if len(c.NodeRoles) == 0 {
		return fmt.Errorf("at least one node is required")
	}
	if len(c.NodeRoles) != len(c.NodeBoxes) {
		return fmt.Errorf("e2e_node_roles has %d entries but e2e_node_boxes has %d", len(c.NodeRoles), len(c.NodeBoxes))
	}
	seen := make(map[string]bool, len(c.NodeRoles))
	for i, role := range c.NodeRoles {
		if common.SanitizeName(role) != role {
			return fmt.Errorf("node name %q must be lowercase alphanumeric with '-' or '_'", role)
		}
		if seen[role] {
			return fmt.Errorf("duplicate node name %q", role)
		}
		seen[role] = true
		if c.NodeBoxes[i] == "" {
			return fmt.Errorf("node %q has no box", role)
		}
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return c.validateAddresses()
}

// validateAddresses checks that every node gets a usable IPv4 host address.
func (c *Config) validateAddresses() error {
	last := c.FirstHost + len(c.NodeRoles) - 1
	if c.FirstHost < 1 || last > maxHost {
		return fmt.Errorf("first_host %d with %d nodes gives host numbers %d-%d, must stay within 1-%d",
			c.FirstHost, len(c.NodeRoles), c.FirstHost, last, maxHost)
	}
	for i, role := range c.NodeRoles {
		addr := common.NodeAddress(c.NetworkPrefix, c.FirstHost, i)
		if ip := net.ParseIP(addr); ip == nil || ip.To4() == nil {
			return fmt.Errorf("node %q address %q is not a valid IPv4 address, check network_prefix %q", role, addr, c.NetworkPrefix)
		}
	}
	return nil
}

// Nodes returns the configured nodes in order, with their private addresses.
func (c *Config) Nodes() []Node {
	nodes := make([]Node, len(c.NodeRoles))
	for i, name := range c.NodeRoles {
		nodes[i] = Node{
			Name:    name,
			Role:    roleOf(name),
			Box:     c.NodeBoxes[i],
			Address: common.NodeAddress(c.NetworkPrefix, c.FirstHost, i),
		}
	}
	return nodes
}

// roleOf strips the numeric suffix from a node name ("server-0" -> "server").
func roleOf(name string) string {
	if i := strings.LastIndex(name, "-"); i > 0 {
		return name[:i]
	}
	return name
}

// LoadConfig loads configuration using the global Viper instance.
func LoadConfig() (*Config, error) {
	return Load("")
}
