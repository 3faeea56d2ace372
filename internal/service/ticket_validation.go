package service

import (
	"regexp"
	"strings"

	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

var (
	alphabeticPattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	contactPattern    = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// validateCreateInput checks a raw submission field by field and trims it in
// place. On failure it returns a ValidationError whose details map names
// every offending field.
func validateCreateInput(input *TicketCreateInput) error {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.SerialNumber = strings.TrimSpace(input.SerialNumber)
	input.Description = strings.TrimSpace(input.Description)
	input.ContactNumber = strings.TrimSpace(input.ContactNumber)
	input.Email = strings.TrimSpace(input.Email)
	input.Address = strings.TrimSpace(input.Address)
	input.City = strings.TrimSpace(input.City)
	input.State = strings.TrimSpace(input.State)
	input.ProductType = strings.TrimSpace(input.ProductType)
	input.ModelType = strings.TrimSpace(input.ModelType)

	details := map[string]any{}

	switch {
	case input.CustomerName == "":
		details["customerName"] = "Customer Name is required"
	case len(input.CustomerName) > 50:
		details["customerName"] = "Customer Name cannot exceed 50 characters"
	case !alphabeticPattern.MatchString(input.CustomerName):
		details["customerName"] = "Customer Name must only contain alphabets"
	}

	if n := len(input.Description); n < 10 {
		details["description"] = "Description must be at least 10 characters long"
	} else if n > 500 {
		details["description"] = "Description cannot exceed 500 characters"
	}

	if !contactPattern.MatchString(input.ContactNumber) {
		details["contactNumber"] = "Contact Number must be exactly 10 digits"
	}

	if !emailPattern.MatchString(input.Email) {
		details["email"] = "Invalid email format"
	} else if len(input.Email) > 100 {
		details["email"] = "Email cannot exceed 100 characters"
	}

	if n := len(input.Address); n < 10 {
		details["address"] = "Address must be at least 10 characters long"
	} else if n > 200 {
		details["address"] = "Address cannot exceed 200 characters"
	}

	if n := len(input.City); n < 2 {
		details["city"] = "City is required and must be at least 2 characters long"
	} else if n > 50 {
		details["city"] = "City cannot exceed 50 characters"
	}

	if n := len(input.State); n < 2 {
		details["state"] = "State is required and must be at least 2 characters long"
	} else if n > 50 {
		details["state"] = "State cannot exceed 50 characters"
	}

	if input.ProductType == "" {
		details["productType"] = "Product Type is required"
	} else if len(input.ProductType) > 50 {
		details["productType"] = "Product Type cannot exceed 50 characters"
	}

	if input.ModelType == "" {
		details["modelType"] = "Model Type is required"
	} else if len(input.ModelType) > 50 {
		details["modelType"] = "Model Type cannot exceed 50 characters"
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("ticket submission failed validation", details)
	}
	return nil
}
