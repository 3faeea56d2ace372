package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

// ErrVersionConflict signals a concurrent update won the compare-and-swap.
var ErrVersionConflict = errors.New("ticket version conflict")

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// TicketRepository encapsulates ticket persistence. A ticket row embeds its
// history ledger, so a single-row write persists field mutations and ledger
// appends atomically.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	// Update writes the mutated fields and the embedded ledger in one
	// statement, guarded by the version the caller loaded. ErrVersionConflict
	// means the row changed underneath; reload and reapply.
	Update(ctx context.Context, ticket *domain.Ticket, expectedVersion int64) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	Search(ctx context.Context, query string) ([]domain.Ticket, error)
	ListByAssignee(ctx context.Context, agentID string) ([]domain.Ticket, error)
	Delete(ctx context.Context, id string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, tracking_id, customer_name, serial_number, description, contact_number,
               bill_reference, email, product_type, model_type, address, city, state,
               call_type, ticket_type, part_name, priority, assigned_to, status, remarks,
               history, version, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (tracking_id, customer_name, serial_number, description, contact_number,
            bill_reference, email, product_type, model_type, address, city, state,
            call_type, ticket_type, part_name, priority, assigned_to, status, remarks, history)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
        RETURNING id, version, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TrackingID,
		ticket.CustomerName,
		ticket.SerialNumber,
		ticket.Description,
		ticket.ContactNumber,
		ticket.BillReference,
		ticket.Email,
		ticket.ProductType,
		ticket.ModelType,
		ticket.Address,
		ticket.City,
		ticket.State,
		ticket.Call,
		ticket.Type,
		ticket.PartName,
		ticket.Priority,
		ticket.AssignedTo,
		ticket.Status,
		ticket.Remarks,
		ticket.History,
	).Scan(&ticket.ID, &ticket.Version, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket, expectedVersion int64) error {
	const query = `
        UPDATE tickets SET call_type=$1, ticket_type=$2, part_name=$3, priority=$4, assigned_to=$5,
            status=$6, remarks=$7, history=$8, version=version+1, updated_at=$9
        WHERE id=$10 AND version=$11`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Call,
		ticket.Type,
		ticket.PartName,
		ticket.Priority,
		ticket.AssignedTo,
		ticket.Status,
		ticket.Remarks,
		ticket.History,
		ticket.UpdatedAt,
		ticket.ID,
		expectedVersion,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	ticket.Version = expectedVersion + 1
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByTrackingID(ctx context.Context, trackingID string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE tracking_id=$1`
	return r.fetchSingle(ctx, query, trackingID)
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) Search(ctx context.Context, query string) ([]domain.Ticket, error) {
	const stmt = `SELECT ` + ticketColumns + ` FROM tickets
        WHERE LOWER(customer_name) LIKE $1 OR LOWER(serial_number) LIKE $1 OR LOWER(description) LIKE $1
        ORDER BY created_at DESC`
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := r.pool.Query(ctx, stmt, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListByAssignee(ctx context.Context, agentID string) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE assigned_to=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.TrackingID,
		&ticket.CustomerName,
		&ticket.SerialNumber,
		&ticket.Description,
		&ticket.ContactNumber,
		&ticket.BillReference,
		&ticket.Email,
		&ticket.ProductType,
		&ticket.ModelType,
		&ticket.Address,
		&ticket.City,
		&ticket.State,
		&ticket.Call,
		&ticket.Type,
		&ticket.PartName,
		&ticket.Priority,
		&ticket.AssignedTo,
		&ticket.Status,
		&ticket.Remarks,
		&ticket.History,
		&ticket.Version,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TrackingID,
			&ticket.CustomerName,
			&ticket.SerialNumber,
			&ticket.Description,
			&ticket.ContactNumber,
			&ticket.BillReference,
			&ticket.Email,
			&ticket.ProductType,
			&ticket.ModelType,
			&ticket.Address,
			&ticket.City,
			&ticket.State,
			&ticket.Call,
			&ticket.Type,
			&ticket.PartName,
			&ticket.Priority,
			&ticket.AssignedTo,
			&ticket.Status,
			&ticket.Remarks,
			&ticket.History,
			&ticket.Version,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
