package services

import (
	"strings"
	"testing"

	"listings-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validNormalized() NormalizedListing {
	return NormalizedListing{
		MLSNumber: "1929100",
		Address:   "305 Theresa St, Watertown, WI 53094",
		Price:     324900,
		Status:    "Active",
	}
}

func firstViolationMessage(t *testing.T, n NormalizedListing) string {
	t.Helper()
	candidate, violations := ValidateListing(n)
	require.Nil(t, candidate)
	require.NotEmpty(t, violations)
	return violations[0].Message
}

func TestValidateListing_Valid(t *testing.T) {
	candidate, violations := ValidateListing(validNormalized())
	require.Empty(t, violations)
	require.NotNil(t, candidate)
	assert.Equal(t, "1929100", candidate.MLSNumber)
	assert.Equal(t, models.ActiveListingStatus, candidate.Status)
	assert.Equal(t, int64(324900), candidate.Price)
}

func TestValidateListing_MLSNumber(t *testing.T) {
	n := validNormalized()
	n.MLSNumber = ""
	assert.Equal(t, "MLS Number is required", firstViolationMessage(t, n))

	n.MLSNumber = strings.Repeat("A", 51)
	assert.Equal(t, "MLS Number must be less than 50 characters", firstViolationMessage(t, n))

	n.MLSNumber = strings.Repeat("A", 50)
	_, violations := ValidateListing(n)
	assert.Empty(t, violations)

	for _, bad := range []string{"MLS 100", "MLS#100", "MLS.100", "ÖL-100"} {
		n.MLSNumber = bad
		assert.Equal(t, "MLS Number can only contain letters, numbers, and hyphens", firstViolationMessage(t, n))
	}

	n.MLSNumber = "ABC-123-xyz"
	_, violations = ValidateListing(n)
	assert.Empty(t, violations)
}

func TestValidateListing_Address(t *testing.T) {
	n := validNormalized()
	n.Address = "1234"
	assert.Equal(t, "Address must be at least 5 characters", firstViolationMessage(t, n))

	n.Address = "12345"
	_, violations := ValidateListing(n)
	assert.Empty(t, violations)

	n.Address = strings.Repeat("a", 501)
	assert.Equal(t, "Address must be less than 500 characters", firstViolationMessage(t, n))

	n.Address = strings.Repeat("a", 500)
	_, violations = ValidateListing(n)
	assert.Empty(t, violations)
}

func TestValidateListing_Price(t *testing.T) {
	n := validNormalized()

	// A coerced zero (missing or garbage price) reports as missing, not as zero
	n.Price = 0
	assert.Equal(t, "Valid price is required", firstViolationMessage(t, n))

	n.Price = -5
	assert.Equal(t, "Valid price is required", firstViolationMessage(t, n))

	n.Price = 1
	_, violations := ValidateListing(n)
	assert.Empty(t, violations)

	n.Price = 999_999_999
	_, violations = ValidateListing(n)
	assert.Empty(t, violations)

	n.Price = 1_000_000_000
	assert.Equal(t, "Price must be less than $1 billion", firstViolationMessage(t, n))
}

func TestValidateListing_Status(t *testing.T) {
	n := validNormalized()

	for _, ok := range []string{"Active", "Pending", "Sold"} {
		n.Status = ok
		_, violations := ValidateListing(n)
		assert.Empty(t, violations, ok)
	}

	// Case-sensitive: lowercase is rejected, not silently fixed
	for _, bad := range []string{"active", "PENDING", "sold", "Withdrawn"} {
		n.Status = bad
		assert.Equal(t, "Status must be Active, Pending, or Sold", firstViolationMessage(t, n))
	}
}

func TestValidateListing_Description(t *testing.T) {
	n := validNormalized()

	long := strings.Repeat("d", 2001)
	n.Description = &long
	assert.Equal(t, "Description must be less than 2000 characters", firstViolationMessage(t, n))

	max := strings.Repeat("d", 2000)
	n.Description = &max
	_, violations := ValidateListing(n)
	assert.Empty(t, violations)

	n.Description = nil
	_, violations = ValidateListing(n)
	assert.Empty(t, violations)
}

func TestValidateListing_CollectsAllViolations(t *testing.T) {
	_, violations := ValidateListing(NormalizedListing{Status: "Active"})

	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{FieldMLSNumber, FieldAddress, FieldPrice}, fields)
}
