package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "client", "opsManager", "serviceAgent"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.Equal(t, Role(valid), role)
	}
	_, ok := ParseRole("superuser")
	assert.False(t, ok)
}

func TestUserValidateAgentIDInvariant(t *testing.T) {
	agentID := "AGENT_ravi"

	agent := &User{Username: "ravi", Role: RoleServiceAgent, AgentID: &agentID}
	assert.NoError(t, agent.Validate())

	agentMissingID := &User{Username: "ravi", Role: RoleServiceAgent}
	assert.ErrorIs(t, agentMissingID.Validate(), ErrAgentIDRequired)

	clientWithID := &User{Username: "asha", Role: RoleClient, AgentID: &agentID}
	assert.ErrorIs(t, clientWithID.Validate(), ErrAgentIDForbidden)

	client := &User{Username: "asha", Role: RoleClient}
	assert.NoError(t, client.Validate())
}
