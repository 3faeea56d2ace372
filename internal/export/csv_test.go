package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

func TestWriteCSVHeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Columns, records[0])
}

func TestWriteCSVRows(t *testing.T) {
	created := time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{
			TrackingID:    "TICKET-1709548200000-042",
			CustomerName:  "Priya Sharma",
			SerialNumber:  "SN-4451-AB",
			Description:   "Display flickers, needs panel swap",
			ContactNumber: "9876543210",
			Email:         "priya.sharma@example.com",
			ProductType:   "Laptop",
			ModelType:     "XPS 13",
			Address:       "14 Lake View Road",
			City:          "Pune",
			State:         "Maharashtra",
			Call:          domain.CallTypeHardware,
			Type:          domain.TicketTypeRepair,
			Priority:      domain.TicketPriorityHigh,
			AssignedTo:    "AGENT_kale",
			Status:        domain.TicketStatusInProgress,
			Remarks:       "part ordered",
			CreatedAt:     created,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tickets))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	require.Len(t, row, len(Columns))
	assert.Equal(t, "2026-03-04T10:30:00Z", row[0])
	assert.Equal(t, "TICKET-1709548200000-042", row[1])
	assert.Equal(t, "Priya Sharma", row[2])
	assert.Equal(t, "In Progress", row[12])
	assert.Equal(t, "Hardware Call", row[13])
	assert.Equal(t, "AGENT_kale", row[15])
	assert.Equal(t, "part ordered", row[16])
}
