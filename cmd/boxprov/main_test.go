package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintClassification(t *testing.T) {
	var buf bytes.Buffer
	printClassification(&buf, "dweomer/microos.amd64", 2048)

	expected := `dweomer/microos.amd64: microos
  provider libvirt: memory 3072
  provider virtualbox: memory 3072
  1. shell: transactional-update pkg install -y docker apparmor-parser
  2. reload: docker-reload run=once
  3. shell: systemctl enable --now docker
  4. shell: usermod -aG docker vagrant
`
	assert.Equal(t, expected, buf.String())
}

func TestPrintClassificationUnknown(t *testing.T) {
	var buf bytes.Buffer
	printClassification(&buf, "generic/alpine319", 1024)

	assert.Contains(t, buf.String(), "generic/alpine319: unknown")
	assert.Contains(t, buf.String(), "  1. shell: usermod -aG docker vagrant\n")
	assert.NotContains(t, buf.String(), "  2.")
}

func TestClassifyBoxesRejectsNonPositiveMemory(t *testing.T) {
	for _, memory := range []int{0, -512} {
		var buf bytes.Buffer
		err := classifyBoxes(&buf, []string{"generic/ubuntu2004"}, memory)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "node_memory must be positive")
		assert.Empty(t, buf.String())
	}
}

func TestClassifyBoxes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, classifyBoxes(&buf, []string{"generic/ubuntu2004", "generic/rocky9"}, 512))

	out := buf.String()
	assert.Contains(t, out, "generic/ubuntu2004: ubuntu\n")
	assert.Contains(t, out, "generic/rocky9: rocky\n")
	assert.Contains(t, out, "  provider libvirt: memory 1536\n")
}

func TestFamiliesCommand(t *testing.T) {
	var buf bytes.Buffer
	familiesCmd.SetOut(&buf)
	require.NoError(t, familiesCmd.RunE(familiesCmd, nil))

	out := buf.String()
	for _, family := range []string{"ubuntu", "leap", "microos", "rocky"} {
		assert.Contains(t, out, family)
	}
}

func TestFamiliesCommandSingleFamily(t *testing.T) {
	var buf bytes.Buffer
	familiesCmd.SetOut(&buf)
	require.NoError(t, familiesCmd.RunE(familiesCmd, []string{"Rocky"}))

	assert.Equal(t, `Rocky Linux Docker Configurator
  1. shell: dnf config-manager --add-repo https://download.docker.com/linux/centos/docker-ce.repo
  2. shell: dnf install -y docker-ce
`, buf.String())

	assert.Error(t, familiesCmd.RunE(familiesCmd, []string{"unknown"}))
	assert.Error(t, familiesCmd.RunE(familiesCmd, []string{"debian"}))
}
