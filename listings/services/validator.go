package services

import (
	"regexp"

	"listings-backend/db/models"
)

const (
	maxMLSNumberLength   = 50
	minAddressLength     = 5
	maxAddressLength     = 500
	maxPrice             = 999_999_999
	maxDescriptionLength = 2000
)

var mlsNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// FieldViolation names the field that failed and a human-readable reason.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CandidateListing is a fully validated listing payload, ready for
// reconciliation against the store. Timestamps and IDs are assigned there.
type CandidateListing struct {
	MLSNumber   string
	Address     string
	Price       int64
	Status      models.ListingStatus
	Description *string
}

// ValidateListing checks a normalized row against the field constraints and
// returns either a candidate or the ordered list of violations. No partial
// record is ever returned alongside violations.
func ValidateListing(n NormalizedListing) (*CandidateListing, []FieldViolation) {
	var violations []FieldViolation

	switch {
	case n.MLSNumber == "":
		violations = append(violations, FieldViolation{FieldMLSNumber, "MLS Number is required"})
	case len(n.MLSNumber) > maxMLSNumberLength:
		violations = append(violations, FieldViolation{FieldMLSNumber, "MLS Number must be less than 50 characters"})
	case !mlsNumberPattern.MatchString(n.MLSNumber):
		violations = append(violations, FieldViolation{FieldMLSNumber, "MLS Number can only contain letters, numbers, and hyphens"})
	}

	switch {
	case len(n.Address) < minAddressLength:
		violations = append(violations, FieldViolation{FieldAddress, "Address must be at least 5 characters"})
	case len(n.Address) > maxAddressLength:
		violations = append(violations, FieldViolation{FieldAddress, "Address must be less than 500 characters"})
	}

	// A coerced 0 means the price was missing or unparseable; it is rejected
	// here, never silently defaulted.
	switch {
	case n.Price < 1:
		violations = append(violations, FieldViolation{FieldPrice, "Valid price is required"})
	case n.Price > maxPrice:
		violations = append(violations, FieldViolation{FieldPrice, "Price must be less than $1 billion"})
	}

	// Case-sensitive on the canonical value: "active" is not "Active".
	status := models.ListingStatus(n.Status)
	if status != models.ActiveListingStatus && status != models.PendingListingStatus && status != models.SoldListingStatus {
		violations = append(violations, FieldViolation{FieldStatus, "Status must be Active, Pending, or Sold"})
	}

	if n.Description != nil && len(*n.Description) > maxDescriptionLength {
		violations = append(violations, FieldViolation{FieldDescription, "Description must be less than 2000 characters"})
	}

	if len(violations) > 0 {
		return nil, violations
	}

	return &CandidateListing{
		MLSNumber:   n.MLSNumber,
		Address:     n.Address,
		Price:       n.Price,
		Status:      status,
		Description: n.Description,
	}, nil
}
