package domain

import "time"

// Feedback is a customer rating attached to a ticket after service.
type Feedback struct {
	ID        string
	TicketID  string
	Rating    int
	Comments  string
	CreatedAt time.Time
}

// ValidRating reports whether r is within the accepted 1..5 range.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
