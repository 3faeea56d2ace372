package dto

import (
	"time"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	CustomerName  string `json:"customerName"`
	SerialNumber  string `json:"serialNumber"`
	Description   string `json:"description"`
	ContactNumber string `json:"contactNumber"`
	BillReference string `json:"billReference"`
	Email         string `json:"email"`
	ProductType   string `json:"productType"`
	ModelType     string `json:"modelType"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
}

// UpdateTicketRequest is a partial update; omitted fields stay nil so the
// engine can tell absent apart from present-but-empty.
type UpdateTicketRequest struct {
	Status     *domain.TicketStatus   `json:"status"`
	Remarks    *string                `json:"remarks"`
	Call       *domain.CallType       `json:"call"`
	Type       *domain.TicketType     `json:"type"`
	PartName   *string                `json:"partName"`
	Priority   *domain.TicketPriority `json:"priority"`
	AssignedTo *string                `json:"assignedTo"`
}

// Patch converts the request into the engine's patch structure.
func (r UpdateTicketRequest) Patch() domain.TicketPatch {
	return domain.TicketPatch{
		Status:     r.Status,
		Remarks:    r.Remarks,
		Call:       r.Call,
		Type:       r.Type,
		PartName:   r.PartName,
		Priority:   r.Priority,
		AssignedTo: r.AssignedTo,
	}
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	AgentID string `json:"agentId"`
}

// HistoryEntryResponse is one ledger entry.
type HistoryEntryResponse struct {
	Status    domain.TicketStatus `json:"status"`
	Remarks   string              `json:"remarks"`
	Username  string              `json:"username"`
	Timestamp time.Time           `json:"timestamp"`
}

// TicketResponse provides full ticket info.
type TicketResponse struct {
	ID            string                 `json:"id"`
	TrackingID    string                 `json:"trackingId"`
	CustomerName  string                 `json:"customerName"`
	SerialNumber  string                 `json:"serialNumber"`
	Description   string                 `json:"description"`
	ContactNumber string                 `json:"contactNumber"`
	BillReference string                 `json:"billReference"`
	Email         string                 `json:"email"`
	ProductType   string                 `json:"productType"`
	ModelType     string                 `json:"modelType"`
	Address       string                 `json:"address"`
	City          string                 `json:"city"`
	State         string                 `json:"state"`
	Call          domain.CallType        `json:"call"`
	Type          domain.TicketType      `json:"type"`
	PartName      string                 `json:"partName"`
	Priority      domain.TicketPriority  `json:"priority"`
	AssignedTo    string                 `json:"assignedTo"`
	Status        domain.TicketStatus    `json:"status"`
	Remarks       string                 `json:"remarks"`
	Turnaround    string                 `json:"turnaround"`
	History       []HistoryEntryResponse `json:"history"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(t *domain.Ticket, now time.Time) TicketResponse {
	history := make([]HistoryEntryResponse, 0, len(t.History))
	for _, entry := range t.History {
		history = append(history, HistoryEntryResponse{
			Status:    entry.Status,
			Remarks:   entry.Remarks,
			Username:  entry.Username,
			Timestamp: entry.Timestamp,
		})
	}
	return TicketResponse{
		ID:            t.ID,
		TrackingID:    t.TrackingID,
		CustomerName:  t.CustomerName,
		SerialNumber:  t.SerialNumber,
		Description:   t.Description,
		ContactNumber: t.ContactNumber,
		BillReference: t.BillReference,
		Email:         t.Email,
		ProductType:   t.ProductType,
		ModelType:     t.ModelType,
		Address:       t.Address,
		City:          t.City,
		State:         t.State,
		Call:          t.Call,
		Type:          t.Type,
		PartName:      t.PartName,
		Priority:      t.Priority,
		AssignedTo:    t.AssignedTo,
		Status:        t.Status,
		Remarks:       t.Remarks,
		Turnaround:    t.TurnaroundCategory(now),
		History:       history,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
