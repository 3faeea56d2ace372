package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

func validationDetails(t *testing.T, err error) map[string]any {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	return de.Details
}

func TestValidateCreateInputAccepts(t *testing.T) {
	input := validCreateInput()
	require.NoError(t, validateCreateInput(&input))
}

func TestValidateCreateInputTrimsFields(t *testing.T) {
	input := validCreateInput()
	input.CustomerName = "  Priya Sharma  "
	input.City = " Pune "

	require.NoError(t, validateCreateInput(&input))
	assert.Equal(t, "Priya Sharma", input.CustomerName)
	assert.Equal(t, "Pune", input.City)
}

func TestValidateCreateInputFieldErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TicketCreateInput)
		field  string
	}{
		{"missing customer name", func(i *TicketCreateInput) { i.CustomerName = "" }, "customerName"},
		{"numeric customer name", func(i *TicketCreateInput) { i.CustomerName = "Priya 2" }, "customerName"},
		{"long customer name", func(i *TicketCreateInput) { i.CustomerName = strings.Repeat("a", 51) }, "customerName"},
		{"short description", func(i *TicketCreateInput) { i.Description = "too short" }, "description"},
		{"long description", func(i *TicketCreateInput) { i.Description = strings.Repeat("x", 501) }, "description"},
		{"short contact", func(i *TicketCreateInput) { i.ContactNumber = "12345" }, "contactNumber"},
		{"alpha contact", func(i *TicketCreateInput) { i.ContactNumber = "98765golum" }, "contactNumber"},
		{"bad email", func(i *TicketCreateInput) { i.Email = "not-an-email" }, "email"},
		{"short address", func(i *TicketCreateInput) { i.Address = "short" }, "address"},
		{"short city", func(i *TicketCreateInput) { i.City = "P" }, "city"},
		{"short state", func(i *TicketCreateInput) { i.State = "M" }, "state"},
		{"missing product type", func(i *TicketCreateInput) { i.ProductType = "" }, "productType"},
		{"missing model type", func(i *TicketCreateInput) { i.ModelType = "" }, "modelType"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(&input)

			err := validateCreateInput(&input)
			require.Error(t, err)
			assert.Contains(t, validationDetails(t, err), tc.field)
		})
	}
}

func TestValidateCreateInputCollectsAllOffendingFields(t *testing.T) {
	input := TicketCreateInput{}
	err := validateCreateInput(&input)
	require.Error(t, err)

	details := validationDetails(t, err)
	for _, field := range []string{"customerName", "description", "contactNumber", "email", "address", "city", "state", "productType", "modelType"} {
		assert.Contains(t, details, field)
	}
}
