package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedbackService(t *testing.T) (*FeedbackService, *TicketService) {
	t.Helper()
	tickets, _, _ := newTicketService(t)
	return NewFeedbackService(&fakeFeedbackRepo{}, tickets), tickets
}

func TestSubmitFeedback(t *testing.T) {
	svc, tickets := newFeedbackService(t)
	created, err := tickets.CreateTicket(context.Background(), validCreateInput())
	require.NoError(t, err)

	fb, err := svc.Submit(context.Background(), created.ID, 4, "quick turnaround, friendly agent")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fb.TicketID)
	assert.Equal(t, 4, fb.Rating)

	items, err := svc.ListByTicket(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "quick turnaround, friendly agent", items[0].Comments)
}

func TestSubmitFeedbackValidation(t *testing.T) {
	svc, tickets := newFeedbackService(t)
	created, err := tickets.CreateTicket(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), created.ID, 0, "fine")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = svc.Submit(context.Background(), created.ID, 3, "  ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = svc.Submit(context.Background(), created.ID, 3, strings.Repeat("x", 501))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestSubmitFeedbackUnknownTicket(t *testing.T) {
	svc, _ := newFeedbackService(t)

	_, err := svc.Submit(context.Background(), uuid.NewString(), 5, "great service overall")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}
