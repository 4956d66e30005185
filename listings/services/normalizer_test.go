package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"exact canonical", "mlsNumber", FieldMLSNumber},
		{"spaced variant", "MLS Number", FieldMLSNumber},
		{"snake case", "mls_number", FieldMLSNumber},
		{"short form", "MLS", FieldMLSNumber},
		{"hash form", "mls #", FieldMLSNumber},
		{"listing number", "Listing Number", FieldMLSNumber},
		{"property address", "Property Address", FieldAddress},
		{"list price", "List Price", FieldPrice},
		{"listing status", "Listing Status", FieldStatus},
		{"public remarks", "Public Remarks", FieldDescription},
		{"surrounding whitespace", "  price  ", FieldPrice},
		{"unknown header stays verbatim", " Lot Size ", "Lot Size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalizeHeader(tt.header))
		})
	}
}

func TestNormalizeRow_AliasEquivalence(t *testing.T) {
	rows := []RawRow{
		{"mlsNumber": "A-100", "address": "305 Theresa St", "price": "324900", "status": "Active"},
		{"MLS Number": "A-100", "Property Address": "305 Theresa St", "List Price": "324900", "Listing Status": "Active"},
		{"mls_number": "A-100", "location": "305 Theresa St", "asking price": "324900", "status": "Active"},
	}

	expected := NormalizeRow(rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, expected, NormalizeRow(row))
	}
}

func TestNormalizeRow_PriceCoercion(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		expected int64
	}{
		{"plain digits", "324900", 324900},
		{"currency formatting", "$324,900", 324900},
		{"decimal point dropped", "324900.00", 32490000},
		{"spaces", " 199 000 ", 199000},
		{"empty", "", 0},
		{"not a number", "call for price", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := RawRow{"mlsNumber": "A-1", "address": "305 Theresa St", "price": tt.price}
			assert.Equal(t, tt.expected, NormalizeRow(row).Price)
		})
	}
}

func TestNormalizeRow_StatusDefault(t *testing.T) {
	missing := NormalizeRow(RawRow{"mlsNumber": "A-1", "address": "305 Theresa St", "price": "100"})
	assert.Equal(t, "Active", missing.Status)

	blank := NormalizeRow(RawRow{"mlsNumber": "A-1", "address": "305 Theresa St", "price": "100", "status": "   "})
	assert.Equal(t, "Active", blank.Status)

	// Wrong casing is preserved for the validator to reject
	lowercase := NormalizeRow(RawRow{"mlsNumber": "A-1", "address": "305 Theresa St", "price": "100", "status": "active"})
	assert.Equal(t, "active", lowercase.Status)
}

func TestNormalizeRow_Description(t *testing.T) {
	blank := NormalizeRow(RawRow{"mlsNumber": "A-1", "description": "   "})
	assert.Nil(t, blank.Description)

	present := NormalizeRow(RawRow{"mlsNumber": "A-1", "description": "  Cozy starter home  "})
	require.NotNil(t, present.Description)
	assert.Equal(t, "Cozy starter home", *present.Description)
}

func TestNormalizeRow_TrimsValues(t *testing.T) {
	normalized := NormalizeRow(RawRow{
		"mlsNumber": "  A-100  ",
		"address":   "  305 Theresa St  ",
	})
	assert.Equal(t, "A-100", normalized.MLSNumber)
	assert.Equal(t, "305 Theresa St", normalized.Address)
}
