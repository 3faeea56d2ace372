package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

func TestUpdateTicketRequestPatchPointerSemantics(t *testing.T) {
	var req UpdateTicketRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Closed","remarks":""}`), &req))

	patch := req.Patch()
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.TicketStatusClosed, *patch.Status)
	require.NotNil(t, patch.Remarks)
	assert.Empty(t, *patch.Remarks)
	assert.Nil(t, patch.Call)
	assert.Nil(t, patch.AssignedTo)
}

// A JSON null is indistinguishable from an omitted field on a pointer, so
// both leave the assignment untouched; clearing goes through a present empty
// string, which the engine normalizes to the sentinel.
func TestUpdateTicketRequestAssignedToNullMeansAbsent(t *testing.T) {
	var withNull UpdateTicketRequest
	require.NoError(t, json.Unmarshal([]byte(`{"assignedTo":null}`), &withNull))
	assert.Nil(t, withNull.Patch().AssignedTo)

	var withEmpty UpdateTicketRequest
	require.NoError(t, json.Unmarshal([]byte(`{"assignedTo":""}`), &withEmpty))
	empty := withEmpty.Patch().AssignedTo
	require.NotNil(t, empty)

	ticket := domain.Ticket{Status: domain.TicketStatusOpen, AssignedTo: "AGENT_kale"}
	ticket.ApplyPatch(withEmpty.Patch(), "ops.rane", ticket.UpdatedAt)
	assert.Equal(t, domain.AssignedToNone, ticket.AssignedTo)
}
