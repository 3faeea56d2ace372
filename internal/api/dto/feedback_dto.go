package dto

import (
	"time"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

// CreateFeedbackRequest payload.
type CreateFeedbackRequest struct {
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

// FeedbackResponse response.
type FeedbackResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticketId"`
	Rating    int       `json:"rating"`
	Comments  string    `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewFeedbackResponse maps a domain feedback record.
func NewFeedbackResponse(f *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID,
		TicketID:  f.TicketID,
		Rating:    f.Rating,
		Comments:  f.Comments,
		CreatedAt: f.CreatedAt,
	}
}
