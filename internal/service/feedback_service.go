package service

import (
	"context"
	"strings"

	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/repository"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

// FeedbackService records customer ratings against tickets.
type FeedbackService struct {
	feedback repository.FeedbackRepository
	tickets  *TicketService
}

// NewFeedbackService builds the service.
func NewFeedbackService(feedback repository.FeedbackRepository, tickets *TicketService) *FeedbackService {
	return &FeedbackService{feedback: feedback, tickets: tickets}
}

// Submit validates and stores a rating for an existing ticket.
func (s *FeedbackService) Submit(ctx context.Context, ticketID string, rating int, comments string) (*domain.Feedback, error) {
	comments = strings.TrimSpace(comments)
	details := map[string]any{}
	if !domain.ValidRating(rating) {
		details["rating"] = "rating must be between 1 and 5"
	}
	if comments == "" {
		details["comments"] = "comments are required"
	} else if len(comments) > 500 {
		details["comments"] = "comments cannot exceed 500 characters"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("feedback failed validation", details)
	}

	ticket, err := s.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	fb := &domain.Feedback{
		TicketID: ticket.ID,
		Rating:   rating,
		Comments: comments,
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return fb, nil
}

// ListByTicket returns all feedback recorded for a ticket.
func (s *FeedbackService) ListByTicket(ctx context.Context, ticketID string) ([]domain.Feedback, error) {
	if _, err := s.tickets.GetTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	items, err := s.feedback.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return items, nil
}
