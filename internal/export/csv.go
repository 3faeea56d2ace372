// Package export renders tickets as downloadable tabular artifacts.
package export

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

// Columns is the fixed header of the ticket export table.
var Columns = []string{
	"createdAt", "trackingId", "customerName", "serialNumber", "description",
	"contactNumber", "email", "productType", "modelType", "address", "city",
	"state", "status", "call", "type", "assignedTo", "remarks",
}

// WriteCSV streams the tickets as CSV with the fixed column set.
func WriteCSV(w io.Writer, tickets []domain.Ticket) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for i := range tickets {
		if err := cw.Write(row(&tickets[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(t *domain.Ticket) []string {
	return []string{
		t.CreatedAt.Format(time.RFC3339),
		t.TrackingID,
		t.CustomerName,
		t.SerialNumber,
		t.Description,
		t.ContactNumber,
		t.Email,
		t.ProductType,
		t.ModelType,
		t.Address,
		t.City,
		t.State,
		string(t.Status),
		string(t.Call),
		string(t.Type),
		t.AssignedTo,
		t.Remarks,
	}
}
