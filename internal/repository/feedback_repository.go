package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

// FeedbackRepository stores customer ratings.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository builds repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (ticket_id, rating, comments)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		feedback.TicketID,
		feedback.Rating,
		feedback.Comments,
	).Scan(&feedback.ID, &feedback.CreatedAt)
}

func (r *feedbackRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Feedback, error) {
	const query = `
        SELECT id, ticket_id, rating, comments, created_at
        FROM feedback WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.TicketID, &fb.Rating, &fb.Comments, &fb.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}
