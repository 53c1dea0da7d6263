// Package main provides the entry point for the boxprov CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/codebypatrickleung/boxprov/internal/config"
	"github.com/codebypatrickleung/boxprov/internal/logger"
	boxos "github.com/codebypatrickleung/boxprov/internal/os"
	"github.com/codebypatrickleung/boxprov/internal/provision"
	"github.com/codebypatrickleung/boxprov/internal/vm"
	"github.com/codebypatrickleung/boxprov/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logFile bool
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "boxprov",
	Short:   "boxprov - Docker-ready Vagrant node generator",
	Long:    `boxprov generates Vagrant definitions for test nodes that need Docker, picking install steps from the OS family of each box.`,
	Version: version,
	RunE:    run,
}

var classifyCmd = &cobra.Command{
	Use:   "classify BOX...",
	Short: "Show the OS family and Docker install steps recorded for each box",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return classifyBoxes(cmd.OutOrStdout(), args, viper.GetInt("NODE_MEMORY"))
	},
}

var familiesCmd = &cobra.Command{
	Use:   "families [FAMILY]",
	Short: "List the known OS families, or the Docker install steps of one family",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, c := range boxos.DefaultConfiguratorRegistry.List() {
				fmt.Fprintf(out, "%-8s %s (%d steps)\n", c.Family(), c.Name(), len(c.Steps()))
			}
			return nil
		}
		family, err := boxos.ParseFamily(args[0])
		if err != nil {
			return err
		}
		c, err := boxos.GetConfigurator(family)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, c.Name())
		printSteps(out, c.Steps())
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./boxprov-config.env)")
	rootCmd.PersistentFlags().Int("node-memory", 2048, "base node memory in MB (providers get +1024)")
	rootCmd.Flags().BoolVar(&logFile, "log-file", false, "also write the log to boxprov-<timestamp>.log")

	flags := []struct {
		name, usage, defaultValue string
	}{
		{"target", "Output target", "vagrant"},
		{"node-roles", "Node names, space or comma separated (overrides the counts)", ""},
		{"node-boxes", "Box per node, space or comma separated (overrides --node-os)", ""},
		{"node-os", "Box used for every node when --node-boxes is not set", "generic/ubuntu2004"},
		{"network-prefix", "Private network prefix for node addresses", "10.10.10."},
		{"output-dir", "Directory for generated files", "./vagrant-output"},
	}
	for _, f := range flags {
		rootCmd.Flags().String(f.name, f.defaultValue, f.usage)
	}

	intFlags := []struct {
		name, usage  string
		defaultValue int
	}{
		{"server-count", "Number of server nodes", 1},
		{"agent-count", "Number of agent nodes", 1},
		{"first-host", "Host number of the first node address", 100},
	}
	for _, f := range intFlags {
		rootCmd.Flags().Int(f.name, f.defaultValue, f.usage)
	}

	boolFlags := []struct {
		name, usage string
	}{
		{"skip-vagrantfile", "Skip Vagrantfile generation"},
		{"skip-plan", "Skip plan.yaml generation"},
		{"skip-libvirt-xml", "Skip libvirt domain previews"},
		{"validate", "Run vagrant validate on the generated Vagrantfile"},
		{"debug", "Enable debug logging"},
	}
	for _, f := range boolFlags {
		rootCmd.Flags().Bool(f.name, false, f.usage)
	}

	bindings := map[string]string{
		"TARGET":           "target",
		"E2E_NODE_ROLES":   "node-roles",
		"E2E_NODE_BOXES":   "node-boxes",
		"NODE_OS":          "node-os",
		"NETWORK_PREFIX":   "network-prefix",
		"OUTPUT_DIR":       "output-dir",
		"SERVER_COUNT":     "server-count",
		"AGENT_COUNT":      "agent-count",
		"FIRST_HOST":       "first-host",
		"SKIP_VAGRANTFILE": "skip-vagrantfile",
		"SKIP_PLAN":        "skip-plan",
		"SKIP_LIBVIRT_XML": "skip-libvirt-xml",
		"VALIDATE":         "validate",
		"DEBUG":            "debug",
	}
	for env, flag := range bindings {
		if err := viper.BindPFlag(env, rootCmd.Flags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to bind flag %s to env %s: %v\n", flag, env, err)
		}
	}
	if err := viper.BindPFlag("NODE_MEMORY", rootCmd.PersistentFlags().Lookup("node-memory")); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flag node-memory to env NODE_MEMORY: %v\n", err)
	}

	rootCmd.AddCommand(classifyCmd, familiesCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("boxprov-config")
		viper.SetConfigType("env")
	}
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.Debug)
	if logFile {
		logFileName := fmt.Sprintf("boxprov-%s.log", logger.GetTimestamp())
		if log, err = logger.NewWithFile(cfg.Debug, logFileName); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log.Infof("Log file: %s", logFileName)
	}
	defer log.Close()

	mgr, err := workflow.NewManager(cfg, log, version)
	if err != nil {
		return fmt.Errorf("failed to create workflow manager: %w", err)
	}

	return mgr.Run(context.Background())
}

// classifyBoxes prints the classification of every box, sized from nodeMemory.
func classifyBoxes(w io.Writer, boxes []string, nodeMemory int) error {
	if nodeMemory <= 0 {
		return fmt.Errorf("node_memory must be positive, got %d", nodeMemory)
	}
	for _, box := range boxes {
		printClassification(w, box, nodeMemory)
	}
	return nil
}

// printClassification shows what DockerInstall records for box.
func printClassification(w io.Writer, box string, nodeMemory int) {
	d := vm.NewDefinition("preview", box)
	family := provision.DockerInstall(d, nodeMemory, nil)

	fmt.Fprintf(w, "%s: %s\n", box, family)
	for _, provider := range d.Providers() {
		mem, _ := d.ProviderMemory(provider)
		fmt.Fprintf(w, "  provider %s: memory %d\n", provider, mem)
	}
	printSteps(w, d.Steps())
}

func printSteps(w io.Writer, steps []vm.Step) {
	for i, s := range steps {
		detail := s.Inline
		if s.Kind == vm.StepReload {
			detail = strings.TrimSpace(s.Name + " run=" + s.Run)
		}
		fmt.Fprintf(w, "  %d. %s: %s\n", i+1, s.Kind, detail)
	}
}
