package services

import (
	"strings"

	"listings-backend/db/models"
)

// Canonical field names for a listing row.
const (
	FieldMLSNumber   = "mlsNumber"
	FieldAddress     = "address"
	FieldPrice       = "price"
	FieldStatus      = "status"
	FieldDescription = "description"
)

// RawRow is one row of the source export: arbitrary string headers mapped to
// raw cell values. Row order within a batch is carried by the slice position.
type RawRow map[string]string

// NormalizedListing is the output of header/value normalization. It is not yet
// validated; a zero price or a bad status survives to this point on purpose so
// the validator owns every user-facing error message.
type NormalizedListing struct {
	MLSNumber   string
	Address     string
	Price       int64
	Status      string
	Description *string
}

// headerAliases maps lowercased, whitespace-trimmed header labels from known
// MLS export formats (PrimeAgent, flexmls CSV, hand-edited sheets) onto the
// canonical field set. Unrecognized headers are ignored downstream.
var headerAliases = map[string]string{
	"mlsnumber":      FieldMLSNumber,
	"mls number":     FieldMLSNumber,
	"mls_number":     FieldMLSNumber,
	"mls":            FieldMLSNumber,
	"mls #":          FieldMLSNumber,
	"mls no":         FieldMLSNumber,
	"listing number": FieldMLSNumber,

	"address":          FieldAddress,
	"property address": FieldAddress,
	"street address":   FieldAddress,
	"location":         FieldAddress,

	"price":         FieldPrice,
	"list price":    FieldPrice,
	"listing price": FieldPrice,
	"asking price":  FieldPrice,

	"status":         FieldStatus,
	"listing status": FieldStatus,

	"description":    FieldDescription,
	"desc":           FieldDescription,
	"remarks":        FieldDescription,
	"public remarks": FieldDescription,
	"notes":          FieldDescription,
}

// CanonicalizeHeader resolves one raw header label to its canonical field
// name. Matching is case-insensitive and trims surrounding whitespace; labels
// that resolve to nothing are returned trimmed but otherwise verbatim.
func CanonicalizeHeader(header string) string {
	trimmed := strings.TrimSpace(header)
	if canonical, ok := headerAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// NormalizeRow maps a raw row onto the canonical field set and coerces the
// values. It never fails: garbage values come out as their zero forms
// (price 0, status verbatim) and are rejected by the validator instead, so
// normalization stays a pure transformation.
func NormalizeRow(raw RawRow) NormalizedListing {
	fields := make(map[string]string, len(raw))
	for header, value := range raw {
		fields[CanonicalizeHeader(header)] = strings.TrimSpace(value)
	}

	normalized := NormalizedListing{
		MLSNumber: fields[FieldMLSNumber],
		Address:   fields[FieldAddress],
		Price:     coercePrice(fields[FieldPrice]),
		Status:    fields[FieldStatus],
	}

	// Blank status means the export omitted the column; default it. A present
	// but wrong-cased value (e.g. "active") is kept for the validator.
	if normalized.Status == "" {
		normalized.Status = string(models.ActiveListingStatus)
	}

	// Blank description coerces to absent, not empty string.
	if description := fields[FieldDescription]; description != "" {
		normalized.Description = &description
	}

	return normalized
}

// coercePrice strips every non-digit character before parsing, so "$324,900"
// becomes 324900. A missing or unparseable price coerces to 0, which the
// validator rejects as "Valid price is required".
func coercePrice(value string) int64 {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	var price int64
	for _, r := range digits.String() {
		price = price*10 + int64(r-'0')
		if price > 1_000_000_000_000 {
			// Far beyond the valid range already; stop before overflow and let
			// the validator report it.
			return price
		}
	}
	return price
}
