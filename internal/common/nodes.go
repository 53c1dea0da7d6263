// Package common provides node naming helpers shared by config and templates.
package common

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeNames returns server-0..server-(n-1) and agent-0..agent-(m-1).
func NodeNames(serverCount, agentCount int) (servers, agents []string) {
	servers = make([]string, 0, max(serverCount, 0))
	for i := 0; i < serverCount; i++ {
		servers = append(servers, "server-"+strconv.Itoa(i))
	}
	agents = make([]string, 0, max(agentCount, 0))
	for i := 0; i < agentCount; i++ {
		agents = append(agents, "agent-"+strconv.Itoa(i))
	}
	return servers, agents
}

// RepeatBox returns box n times.
func RepeatBox(box string, n int) []string {
	boxes := make([]string, n)
	for i := range boxes {
		boxes[i] = box
	}
	return boxes
}

// NodeEnv renders the environment prefix consumed by the generated Vagrantfile,
// e.g. E2E_NODE_ROLES="server-0 agent-0" E2E_NODE_BOXES="generic/ubuntu2004 generic/ubuntu2004".
func NodeEnv(roles, boxes []string) string {
	return fmt.Sprintf(`E2E_NODE_ROLES="%s" E2E_NODE_BOXES="%s"`,
		strings.Join(roles, " "), strings.Join(boxes, " "))
}

// NodeAddress returns the private network address of the i-th node.
func NodeAddress(prefix string, firstHost, i int) string {
	return prefix + strconv.Itoa(firstHost+i)
}

// SplitList splits a whitespace or comma separated list, dropping empty items.
func SplitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
