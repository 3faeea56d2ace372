package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/events"
	"github.com/spec-kit/repair-tracker/internal/repository"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

const (
	// Bounded regenerate-and-retry on trackingId collision.
	maxTrackingAttempts = 5
	// Bounded reload-and-reapply on concurrent update.
	maxUpdateRetries = 3
)

// TicketService coordinates the ticket lifecycle: creation, the update
// engine, assignment, search and tracking.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	cache      *repository.TicketCache
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Cache      *repository.TicketCache
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes a validated ticket submission. All fields are
// immutable once the ticket exists.
type TicketCreateInput struct {
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
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket validates the submission, generates a unique trackingId and
// persists the ticket with its ledger seeded at the initial status.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if err := validateCreateInput(&input); err != nil {
		return nil, err
	}

	now := time.Now()
	ticket := &domain.Ticket{
		CustomerName:  input.CustomerName,
		SerialNumber:  input.SerialNumber,
		Description:   input.Description,
		ContactNumber: input.ContactNumber,
		BillReference: input.BillReference,
		Email:         input.Email,
		ProductType:   input.ProductType,
		ModelType:     input.ModelType,
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		Call:          domain.CallTypeUnselected,
		Type:          domain.TicketTypeRepair,
		Priority:      domain.TicketPriorityNormal,
		AssignedTo:    domain.AssignedToNone,
		Status:        domain.TicketStatusOpen,
	}
	ticket.History.Append(domain.HistoryEntry{
		Status:    ticket.Status,
		Timestamp: now,
	})

	for attempt := 0; ; attempt++ {
		ticket.TrackingID = generateTrackingID()
		err := s.tickets.Create(ctx, ticket)
		if err == nil {
			break
		}
		if repository.IsUniqueViolation(err) && attempt < maxTrackingAttempts-1 {
			continue
		}
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("could not allocate a unique tracking id", nil)
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			TrackingID:   ticket.TrackingID,
			CustomerName: ticket.CustomerName,
			Priority:     ticket.Priority,
		},
	})
	return ticket, nil
}

// UpdateTicket applies a partial update through the update engine. Field
// mutations and the ledger append persist atomically in a single guarded
// write; on a concurrent-update conflict the load-apply-save loop reruns a
// bounded number of times, which is safe because unchanged fields are no-ops.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, patch domain.TicketPatch, actingUsername string) (*domain.Ticket, error) {
	if err := validateTicketID(id); err != nil {
		return nil, err
	}
	if bad := patch.Validate(); len(bad) > 0 {
		details := make(map[string]any, len(bad))
		for _, field := range bad {
			details[field] = "value outside the allowed set"
		}
		return nil, apperrors.NewValidationError("invalid field values", details)
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		ticket, err := s.tickets.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
			}
			return nil, apperrors.NewPersistenceError(err)
		}

		outcome := ticket.ApplyPatch(patch, actingUsername, time.Now())
		if !outcome.Changed {
			return ticket, nil
		}

		if err := s.tickets.Update(ctx, ticket, ticket.Version); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				continue
			}
			return nil, apperrors.NewPersistenceError(err)
		}

		s.invalidateCache(ctx, ticket.TrackingID)
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketUpdated,
			TicketID: ticket.ID,
			Actor:    actingUsername,
			Payload: events.TicketUpdatedPayload{
				Status:          ticket.Status,
				HistoryAppended: outcome.HistoryAppended,
			},
		})
		return ticket, nil
	}
	return nil, apperrors.NewConflict("ticket is being updated concurrently", map[string]any{"id": id})
}

// AssignTicket sets assignedTo to the given agent. Assignment is a
// current-state change and never appends to the ledger; the agent is notified
// through the dispatcher.
func (s *TicketService) AssignTicket(ctx context.Context, id, agentID, actingUsername string) (*domain.Ticket, error) {
	if strings.TrimSpace(agentID) == "" {
		return nil, apperrors.NewValidationError("agentId is required", map[string]any{"agentId": "required"})
	}
	ticket, err := s.UpdateTicket(ctx, id, domain.TicketPatch{AssignedTo: &agentID}, actingUsername)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    actingUsername,
		Payload: events.TicketAssignedPayload{
			AgentID:  agentID,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// UnassignTicket resets assignedTo to the sentinel.
func (s *TicketService) UnassignTicket(ctx context.Context, id, actingUsername string) (*domain.Ticket, error) {
	empty := ""
	return s.UpdateTicket(ctx, id, domain.TicketPatch{AssignedTo: &empty}, actingUsername)
}

// ResolveTicket forces status to Resolved through the history-tracked path.
func (s *TicketService) ResolveTicket(ctx context.Context, id, actingUsername string) (*domain.Ticket, error) {
	resolved := domain.TicketStatusResolved
	ticket, err := s.UpdateTicket(ctx, id, domain.TicketPatch{Status: &resolved}, actingUsername)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketResolved,
		TicketID: ticket.ID,
		Actor:    actingUsername,
		Payload:  events.TicketResolvedPayload{TrackingID: ticket.TrackingID},
	})
	return ticket, nil
}

// GetTicket fetches one ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	if err := validateTicketID(id); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return ticket, nil
}

// ListTickets returns all tickets.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return tickets, nil
}

// SearchTickets matches the query case-insensitively against customerName,
// serialNumber and description. An empty query is a usage error and performs
// no store access.
func (s *TicketService) SearchTickets(ctx context.Context, query string) ([]domain.Ticket, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewValidationError("search query is required", map[string]any{"q": "required"})
	}
	tickets, err := s.tickets.Search(ctx, query)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return tickets, nil
}

// ListTicketsByAgent returns tickets assigned to an agent; no matches is a
// not-found condition.
func (s *TicketService) ListTicketsByAgent(ctx context.Context, agentID string) ([]domain.Ticket, error) {
	if strings.TrimSpace(agentID) == "" {
		return nil, apperrors.NewValidationError("agentId is required", map[string]any{"agentId": "required"})
	}
	tickets, err := s.tickets.ListByAssignee(ctx, agentID)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if len(tickets) == 0 {
		return nil, apperrors.NewNotFound("tickets assigned to agent", map[string]any{"agentId": agentID})
	}
	return tickets, nil
}

// TrackTicket is the public tracking lookup, served from the cache when warm.
func (s *TicketService) TrackTicket(ctx context.Context, trackingID string) (*domain.Ticket, error) {
	if strings.TrimSpace(trackingID) == "" {
		return nil, apperrors.NewValidationError("trackingId is required", map[string]any{"trackingId": "required"})
	}
	if cached, err := s.cache.Get(ctx, trackingID); err == nil && cached != nil {
		return cached, nil
	}
	ticket, err := s.tickets.GetByTrackingID(ctx, trackingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"trackingId": trackingID})
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	_ = s.cache.Set(ctx, ticket)
	return ticket, nil
}

// DeleteTicket is a plain administrative removal.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return apperrors.NewPersistenceError(err)
	}
	s.invalidateCache(ctx, ticket.TrackingID)
	return nil
}

// UsersByRole returns all users holding the requested role. The role must be
// one of the four enumerated roles.
func (s *TicketService) UsersByRole(ctx context.Context, roleStr string) ([]domain.User, error) {
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		return nil, apperrors.NewValidationError("invalid role specified", map[string]any{"role": roleStr})
	}
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFound(fmt.Sprintf("users with role %s", role), nil)
	}
	return users, nil
}

func (s *TicketService) invalidateCache(ctx context.Context, trackingID string) {
	_ = s.cache.Invalidate(ctx, trackingID)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateTicketID(id string) error {
	if uuid.Validate(id) != nil {
		return apperrors.NewInvalidID("invalid ticket id")
	}
	return nil
}

func generateTrackingID() string {
	return fmt.Sprintf("TICKET-%d-%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
