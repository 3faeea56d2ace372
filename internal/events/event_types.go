package events

import (
	"time"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventTicketUpdated  EventType = "ticket_updated"
	EventTicketAssigned EventType = "ticket_assigned"
	EventTicketResolved EventType = "ticket_resolved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TrackingID   string                `json:"tracking_id"`
	CustomerName string                `json:"customer_name"`
	Priority     domain.TicketPriority `json:"priority"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	Status          domain.TicketStatus `json:"status"`
	HistoryAppended bool                `json:"history_appended"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AgentID  string                `json:"agent_id"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	TrackingID string `json:"tracking_id"`
}
