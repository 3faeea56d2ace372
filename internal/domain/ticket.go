package domain

import "time"

// TicketStatus enumerates lifecycle states for repair tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityNormal TicketPriority = "Normal"
	TicketPriorityHigh   TicketPriority = "High"
)

// CallType classifies the nature of the service call.
type CallType string

const (
	CallTypeUnselected CallType = "Unselected"
	CallTypeHardware   CallType = "Hardware Call"
	CallTypeSoftware   CallType = "Software Call"
)

// TicketType classifies the requested resolution.
type TicketType string

const (
	TicketTypeReplacement TicketType = "Replacement"
	TicketTypeRepair      TicketType = "Repair"
	TicketTypeNotReceived TicketType = "Not Received"
	TicketTypeReceived    TicketType = "Received"
)

// AssignedToNone is the sentinel stored instead of an empty assignment;
// assignedTo is never empty after creation.
const AssignedToNone = "Not Assigned"

// Turnaround category labels bucketed over elapsed days.
const (
	Turnaround0To2  = "0-2 days"
	Turnaround3To7  = "3-7 days"
	Turnaround8To14 = "8-14 days"
	Turnaround14Up  = "14+ days"
)

// Ticket is the aggregate for repair/service requests. The history ledger is
// embedded and persisted with the ticket as one document.
type Ticket struct {
	ID         string
	TrackingID string

	// Immutable after creation.
	CustomerName  string
	SerialNumber  string
	Description   string
	ContactNumber string
	BillReference string
	Email         string
	ProductType   string
	ModelType     string
	Address       string
	City          string
	State         string

	// Current-state fields; changes are not independently audited.
	Call       CallType
	Type       TicketType
	PartName   string
	Priority   TicketPriority
	AssignedTo string

	// History-tracked fields; every change appends a ledger entry.
	Status  TicketStatus
	Remarks string

	History Ledger

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidStatus reports whether s is one of the enumerated statuses.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the enumerated priorities.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityNormal, TicketPriorityHigh:
		return true
	}
	return false
}

// ValidCall reports whether c is one of the enumerated call types.
func ValidCall(c CallType) bool {
	switch c {
	case CallTypeUnselected, CallTypeHardware, CallTypeSoftware:
		return true
	}
	return false
}

// ValidTicketType reports whether t is one of the enumerated ticket types.
func ValidTicketType(t TicketType) bool {
	switch t {
	case TicketTypeReplacement, TicketTypeRepair, TicketTypeNotReceived, TicketTypeReceived:
		return true
	}
	return false
}

// TurnaroundCategory buckets the elapsed days between creation and the last
// update. Unresolved tickets measure against now instead of UpdatedAt. The
// label is derived on demand and never stored.
func (t *Ticket) TurnaroundCategory(now time.Time) string {
	end := t.UpdatedAt
	if t.Status != TicketStatusResolved && t.Status != TicketStatusClosed {
		end = now
	}
	if end.Before(t.CreatedAt) {
		end = t.CreatedAt
	}
	days := end.Sub(t.CreatedAt).Hours() / 24

	switch {
	case days <= 2:
		return Turnaround0To2
	case days <= 7:
		return Turnaround3To7
	case days <= 14:
		return Turnaround8To14
	default:
		return Turnaround14Up
	}
}

// NormalizeAssignee maps empty assignments to the sentinel.
func NormalizeAssignee(agentID string) string {
	if agentID == "" {
		return AssignedToNone
	}
	return agentID
}
