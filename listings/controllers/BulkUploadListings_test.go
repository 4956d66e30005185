package controllers

import (
	"testing"

	"listings-backend/db/models"
	"listings-backend/listings/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBatchBody(t *testing.T) {
	body := []byte(`[
		{"mlsNumber": "A-1", "address": "305 Theresa St", "price": 324900, "status": "Active"},
		{"MLS Number": "A-2", "price": "289,900", "vacant": true, "notes": null}
	]`)

	rows, err := decodeBatchBody(body)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Numbers keep their textual form, no float mangling of large values
	assert.Equal(t, "324900", rows[0]["price"])
	assert.Equal(t, "A-1", rows[0]["mlsNumber"])

	assert.Equal(t, "289,900", rows[1]["price"])
	assert.Equal(t, "true", rows[1]["vacant"])
	assert.Equal(t, "", rows[1]["notes"])
}

func TestDecodeBatchBody_RejectsNonArray(t *testing.T) {
	for _, body := range []string{`{"mlsNumber": "A-1"}`, `"A-1"`, `not json`} {
		_, err := decodeBatchBody([]byte(body))
		assert.ErrorIs(t, err, errBadBatchBody, body)
	}
}

func TestRowsFromSheet(t *testing.T) {
	sheet := [][]string{
		{"MLS Number", "Address", "Price", "Status"},
		{"A-1", "305 Theresa St", "324900", "Active"},
		{"A-2", "228 Fremont St", "279900"}, // short row, status cell absent
	}

	rows, err := rowsFromSheet(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "A-1", rows[0]["MLS Number"])
	assert.Equal(t, "324900", rows[0]["Price"])

	_, hasStatus := rows[1]["Status"]
	assert.False(t, hasStatus)
}

func TestRowsFromSheet_RequiresDataRows(t *testing.T) {
	_, err := rowsFromSheet([][]string{{"MLS Number", "Address"}})
	assert.Error(t, err)

	_, err = rowsFromSheet(nil)
	assert.Error(t, err)
}

func TestClassifyRowError(t *testing.T) {
	assert.Equal(t, models.DuplicateErrorType, classifyRowError("MLS number already exists"))
	assert.Equal(t, models.ReconciliationErrorType, classifyRowError("Invalid data format"))
	assert.Equal(t, models.ValidationErrorType, classifyRowError("Valid price is required"))
}

func TestBuildErrorRows(t *testing.T) {
	rowErrors := []services.RowError{
		{
			Row:       3,
			MLSNumber: "A-3",
			Error:     "Valid price is required",
			RawRow:    services.RawRow{"mlsNumber": "A-3", "price": "free"},
		},
	}

	rows := buildErrorRows(rowErrors, models.BulkAddedViaType, "admin@example.com")
	require.Len(t, rows, 1)

	assert.Equal(t, "A-3", rows[0].MLSNumber)
	assert.Equal(t, 3, rows[0].RowIndex)
	assert.Equal(t, models.ValidationErrorType, rows[0].ErrorType)
	assert.Equal(t, models.BulkAddedViaType, rows[0].AddedVia)
	assert.Equal(t, "admin@example.com", rows[0].CreatedBy)
	assert.JSONEq(t, `{"mlsNumber": "A-3", "price": "free"}`, string(rows[0].RawRow))
}
