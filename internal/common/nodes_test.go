package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeNames(t *testing.T) {
	servers, agents := NodeNames(2, 1)
	assert.Equal(t, []string{"server-0", "server-1"}, servers)
	assert.Equal(t, []string{"agent-0"}, agents)

	servers, agents = NodeNames(1, 0)
	assert.Equal(t, []string{"server-0"}, servers)
	assert.Empty(t, agents)
}

func TestNodeNamesNegativeCounts(t *testing.T) {
	var servers, agents []string
	assert.NotPanics(t, func() { servers, agents = NodeNames(-1, -3) })
	assert.Empty(t, servers)
	assert.Empty(t, agents)
}

func TestNodeEnv(t *testing.T) {
	env := NodeEnv(
		[]string{"server-0", "agent-0"},
		RepeatBox("generic/ubuntu2004", 2),
	)
	assert.Equal(t, `E2E_NODE_ROLES="server-0 agent-0" E2E_NODE_BOXES="generic/ubuntu2004 generic/ubuntu2004"`, env)
}

func TestNodeAddress(t *testing.T) {
	assert.Equal(t, "10.10.10.100", NodeAddress("10.10.10.", 100, 0))
	assert.Equal(t, "10.10.10.101", NodeAddress("10.10.10.", 100, 1))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"server-0", "agent-0", "agent-1"}, SplitList(" server-0,agent-0  agent-1 "))
	assert.Empty(t, SplitList(""))
}
