// Package workflow provides tests for workflow registry and the Vagrant handler.
package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codebypatrickleung/boxprov/internal/config"
	"github.com/codebypatrickleung/boxprov/internal/logger"
)

// MockHandler is a mock workflow handler for testing.
type MockHandler struct {
	name           string
	target         string
	initCalled     bool
	executeCalled  bool
	shouldFailExec bool
}

func (m *MockHandler) Name() string   { return m.name }
func (m *MockHandler) Target() string { return m.target }

func (m *MockHandler) Initialize(cfg *config.Config, log *logger.Logger) error {
	m.initCalled = true
	return nil
}

func (m *MockHandler) Execute(ctx context.Context) error {
	m.executeCalled = true
	if m.shouldFailExec {
		return &testError{"mock execute error"}
	}
	return nil
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func testConfig(t *testing.T, roles, boxes []string) *config.Config {
	t.Helper()
	return &config.Config{
		Target:        "vagrant",
		NodeMemory:    2048,
		NodeRoles:     roles,
		NodeBoxes:     boxes,
		NetworkPrefix: "10.10.10.",
		FirstHost:     100,
		OutputDir:     filepath.Join(t.TempDir(), "out"),
	}
}

func TestWorkflowRegistry(t *testing.T) {
	t.Run("Register and Get", func(t *testing.T) {
		registry := NewRegistry()
		handler := &MockHandler{name: "Test Handler", target: "test-target"}

		if err := registry.Register(handler); err != nil {
			t.Fatalf("Failed to register handler: %v", err)
		}

		retrieved, err := registry.Get("test-target")
		if err != nil {
			t.Fatalf("Failed to get handler: %v", err)
		}

		if retrieved != handler {
			t.Error("Retrieved handler is not the same as registered handler")
		}
	})

	t.Run("Register Duplicate", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&MockHandler{target: "target1"})
		err := registry.Register(&MockHandler{target: "target1"})

		if err == nil {
			t.Error("Expected error when registering duplicate handler")
		}
	})

	t.Run("Get Nonexistent", func(t *testing.T) {
		registry := NewRegistry()

		if _, err := registry.Get("nonexistent"); err == nil {
			t.Error("Expected error when getting nonexistent handler")
		}
	})

	t.Run("List Handlers", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&MockHandler{target: "b"})
		registry.Register(&MockHandler{target: "a"})

		if handlers := registry.List(); len(handlers) != 2 {
			t.Errorf("Expected 2 handlers, got %d", len(handlers))
		}
		if targets := registry.Targets(); len(targets) != 2 || targets[0] != "a" {
			t.Errorf("Expected sorted targets [a b], got %v", targets)
		}
	})
}

func TestWorkflowManager(t *testing.T) {
	t.Run("Create Manager with Vagrant target", func(t *testing.T) {
		cfg := testConfig(t, []string{"server-0"}, []string{"generic/ubuntu2004"})

		manager, err := NewManager(cfg, logger.New(false), "0.1.0")
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.handler == nil {
			t.Error("Handler is nil")
		}
	})

	t.Run("Create Manager with Unsupported Target", func(t *testing.T) {
		cfg := testConfig(t, []string{"server-0"}, []string{"generic/ubuntu2004"})
		cfg.Target = "terraform"

		if _, err := NewManager(cfg, logger.New(false), "0.1.0"); err == nil {
			t.Error("Expected error for unsupported target")
		}
	})

	t.Run("Create Manager with Invalid Config", func(t *testing.T) {
		cfg := testConfig(t, []string{"server-0", "agent-0"}, []string{"generic/ubuntu2004"})

		if _, err := NewManager(cfg, logger.New(false), "0.1.0"); err == nil {
			t.Error("Expected error for mismatched roles and boxes")
		}
	})

	t.Run("Run propagates handler failure", func(t *testing.T) {
		manager := &Manager{
			config:  testConfig(t, nil, nil),
			logger:  logger.New(false),
			handler: &MockHandler{shouldFailExec: true},
		}
		if err := manager.Run(context.Background()); err == nil {
			t.Error("Expected error from failing handler")
		}
	})
}

func TestVagrantHandlerExecute(t *testing.T) {
	cfg := testConfig(t,
		[]string{"server-0", "agent-0", "agent-1"},
		[]string{"generic/ubuntu2004", "dweomer/microos.amd64", "generic/debian12"},
	)

	manager, err := NewManager(cfg, logger.New(false), "0.1.0")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	if err := manager.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	handler := manager.handler.(*VagrantHandler)
	plan := handler.Plan()
	if plan == nil || plan.ID == "" {
		t.Fatal("Expected a plan with an ID")
	}
	if len(plan.Nodes) != 3 {
		t.Fatalf("Expected 3 nodes, got %d", len(plan.Nodes))
	}

	families := []string{"ubuntu", "microos", "unknown"}
	stepCounts := []int{2, 4, 1}
	for i, node := range plan.Nodes {
		if node.Family != families[i] {
			t.Errorf("node %s: expected family %s, got %s", node.Name, families[i], node.Family)
		}
		if len(node.Steps) != stepCounts[i] {
			t.Errorf("node %s: expected %d steps, got %d", node.Name, stepCounts[i], len(node.Steps))
		}
		for _, provider := range []string{"libvirt", "virtualbox"} {
			if node.Providers[provider].Memory != 3072 {
				t.Errorf("node %s: expected %s memory 3072, got %d", node.Name, provider, node.Providers[provider].Memory)
			}
		}
	}
	if plan.Nodes[2].Address != "10.10.10.102" {
		t.Errorf("Expected third node address 10.10.10.102, got %s", plan.Nodes[2].Address)
	}

	if len(handler.Written()) != 6 {
		t.Errorf("Expected 6 files written, got %d: %v", len(handler.Written()), handler.Written())
	}
	vagrantfile, err := os.ReadFile(filepath.Join(cfg.OutputDir, "Vagrantfile"))
	if err != nil {
		t.Fatalf("Failed to read Vagrantfile: %v", err)
	}
	if !strings.Contains(string(vagrantfile), plan.ID) {
		t.Error("Expected Vagrantfile to reference the plan ID")
	}
}

func TestVagrantHandlerCanceled(t *testing.T) {
	cfg := testConfig(t, []string{"server-0"}, []string{"generic/rocky9"})
	handler := NewVagrantHandler()
	if err := handler.Initialize(cfg, logger.New(false)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := handler.Execute(ctx); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(cfg.OutputDir); !os.IsNotExist(err) {
		t.Error("Expected no output to be written after cancellation")
	}
}

func TestVagrantHandler(t *testing.T) {
	handler := NewVagrantHandler()

	if handler.Name() != "Vagrant Docker Nodes" {
		t.Errorf("Expected name 'Vagrant Docker Nodes', got '%s'", handler.Name())
	}
	if handler.Target() != "vagrant" {
		t.Errorf("Expected target 'vagrant', got '%s'", handler.Target())
	}
	if handler.Plan() != nil {
		t.Error("Expected no plan before Execute")
	}
}

func TestVagrantHandlerInitializeRejectsAddressOverflow(t *testing.T) {
	cfg := testConfig(t, []string{"server-0", "agent-0"}, []string{"generic/rocky9", "generic/rocky9"})
	cfg.FirstHost = 254

	if err := NewVagrantHandler().Initialize(cfg, logger.New(false)); err == nil {
		t.Error("Expected Initialize to reject node addresses past .254")
	}
}
