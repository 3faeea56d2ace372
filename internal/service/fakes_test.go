package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/repository"
)

// fakeTicketRepo is an in-memory stand-in honoring the repository contract,
// including version CAS and unique-violation signalling.
type fakeTicketRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Ticket

	createCalls       int
	getCalls          int
	searchCalls       int
	uniqueFailsLeft   int
	conflictsToInject int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{byID: map[string]*domain.Ticket{}}
}

func copyTicket(t *domain.Ticket) *domain.Ticket {
	clone := *t
	clone.History = append(domain.Ledger(nil), t.History...)
	return &clone
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.uniqueFailsLeft > 0 {
		r.uniqueFailsLeft--
		return &pgconn.PgError{Code: "23505", ConstraintName: "tickets_tracking_id_key"}
	}
	now := time.Now()
	ticket.ID = uuid.NewString()
	ticket.Version = 1
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.byID[ticket.ID] = copyTicket(ticket)
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflictsToInject > 0 {
		r.conflictsToInject--
		return repository.ErrVersionConflict
	}
	stored, ok := r.byID[ticket.ID]
	if !ok || stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	clone := copyTicket(ticket)
	clone.Version = expectedVersion + 1
	r.byID[ticket.ID] = clone
	ticket.Version = clone.Version
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	stored, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return copyTicket(stored), nil
}

func (r *fakeTicketRepo) GetByTrackingID(_ context.Context, trackingID string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.byID {
		if stored.TrackingID == trackingID {
			return copyTicket(stored), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, stored := range r.byID {
		result = append(result, *copyTicket(stored))
	}
	return result, nil
}

func (r *fakeTicketRepo) Search(_ context.Context, query string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchCalls++
	needle := strings.ToLower(query)
	var result []domain.Ticket
	for _, stored := range r.byID {
		if strings.Contains(strings.ToLower(stored.CustomerName), needle) ||
			strings.Contains(strings.ToLower(stored.SerialNumber), needle) ||
			strings.Contains(strings.ToLower(stored.Description), needle) {
			result = append(result, *copyTicket(stored))
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) ListByAssignee(_ context.Context, agentID string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, stored := range r.byID {
		if stored.AssignedTo == agentID {
			result = append(result, *copyTicket(stored))
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.byID {
		if stored.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.byID {
		if stored.Email == email {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, stored := range r.byID {
		if stored.Role == role {
			result = append(result, *stored)
		}
	}
	return result, nil
}

type fakeFeedbackRepo struct {
	mu    sync.Mutex
	items []domain.Feedback
}

func (r *fakeFeedbackRepo) Create(_ context.Context, feedback *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	feedback.ID = uuid.NewString()
	feedback.CreatedAt = time.Now()
	r.items = append(r.items, *feedback)
	return nil
}

func (r *fakeFeedbackRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Feedback
	for _, item := range r.items {
		if item.TicketID == ticketID {
			result = append(result, item)
		}
	}
	return result, nil
}
