package services

import (
	"testing"

	"listings-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockListingStore struct {
	mock.Mock
}

func (m *MockListingStore) FindByMLSNumber(mlsNumber string) (*models.Listing, error) {
	args := m.Called(mlsNumber)
	if listing := args.Get(0); listing != nil {
		return listing.(*models.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListingStore) CreateListing(listing *models.Listing) (*models.Listing, error) {
	args := m.Called(listing)
	if created := args.Get(0); created != nil {
		return created.(*models.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListingStore) UpdateListing(listing *models.Listing) (*models.Listing, error) {
	args := m.Called(listing)
	if updated := args.Get(0); updated != nil {
		return updated.(*models.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func validRow(mlsNumber string) RawRow {
	return RawRow{
		"mlsNumber": mlsNumber,
		"address":   "305 Theresa St, Watertown, WI 53094",
		"price":     "324900",
		"status":    "Active",
	}
}

func echoListing(args mock.Arguments) *models.Listing {
	return args.Get(0).(*models.Listing)
}

func TestProcessBatch_CreatesAndUpdates(t *testing.T) {
	store := new(MockListingStore)

	// A-1 is new, A-2 already exists
	store.On("FindByMLSNumber", "A-1").Return(nil, ErrListingNotFound).Once()
	store.On("CreateListing", mock.AnythingOfType("*models.Listing")).
		Return(&models.Listing{MLSNumber: "A-1"}, nil).Once()

	existing := &models.Listing{MLSNumber: "A-2", Address: "old address", Price: 1}
	store.On("FindByMLSNumber", "A-2").Return(existing, nil).Once()
	store.On("UpdateListing", mock.AnythingOfType("*models.Listing")).
		Return(existing, nil).Once()

	processor := NewBatchProcessor(store)
	result, err := processor.ProcessBatch([]RawRow{validRow("A-1"), validRow("A-2")})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Errors)
	assert.False(t, result.Incomplete)
	store.AssertExpectations(t)
}

func TestProcessBatch_UpdateOverwritesAllFields(t *testing.T) {
	store := new(MockListingStore)

	existing := &models.Listing{MLSNumber: "A-2", Address: "old address", Price: 1, Status: models.SoldListingStatus}
	store.On("FindByMLSNumber", "A-2").Return(existing, nil).Once()

	var written *models.Listing
	store.On("UpdateListing", mock.AnythingOfType("*models.Listing")).
		Run(func(args mock.Arguments) { written = echoListing(args) }).
		Return(existing, nil).Once()

	processor := NewBatchProcessor(store)
	row := validRow("A-2")
	delete(row, "description")
	_, err := processor.ProcessBatch([]RawRow{row})

	require.NoError(t, err)
	require.NotNil(t, written)
	assert.Equal(t, "305 Theresa St, Watertown, WI 53094", written.Address)
	assert.Equal(t, int64(324900), written.Price)
	assert.Equal(t, models.ActiveListingStatus, written.Status)
	// Absent description overwrites to absent, it does not keep the old value
	assert.Nil(t, written.Description)
}

func TestProcessBatch_RepeatedKeyCreatesThenUpdates(t *testing.T) {
	store := new(MockListingStore)

	created := &models.Listing{MLSNumber: "A-1"}
	store.On("FindByMLSNumber", "A-1").Return(nil, ErrListingNotFound).Once()
	store.On("CreateListing", mock.AnythingOfType("*models.Listing")).Return(created, nil).Once()

	// The second occurrence must observe the first row's write
	store.On("FindByMLSNumber", "A-1").Return(created, nil).Once()
	store.On("UpdateListing", mock.AnythingOfType("*models.Listing")).Return(created, nil).Once()

	processor := NewBatchProcessor(store)
	result, err := processor.ProcessBatch([]RawRow{validRow("A-1"), validRow("A-1")})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Errors)
	store.AssertExpectations(t)
}

func TestProcessBatch_RowIsolationAndOrdering(t *testing.T) {
	store := new(MockListingStore)

	store.On("FindByMLSNumber", mock.AnythingOfType("string")).Return(nil, ErrListingNotFound)
	store.On("CreateListing", mock.AnythingOfType("*models.Listing")).
		Return(&models.Listing{}, nil)

	processor := NewBatchProcessor(store)

	badAddress := validRow("A-2")
	badAddress["address"] = "1234"
	badPrice := validRow("A-4")
	badPrice["price"] = "free"

	result, err := processor.ProcessBatch([]RawRow{
		validRow("A-1"),
		badAddress,
		validRow("A-3"),
		badPrice,
	})

	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)
	require.Len(t, result.Errors, 2)

	// Errors carry the 1-based row number, ascending
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "Address")
	assert.Equal(t, "A-2", result.Errors[0].MLSNumber)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Equal(t, "Valid price is required", result.Errors[1].Error)

	// total == created + updated + errors
	assert.Equal(t, result.Total, result.Created+result.Updated+len(result.Errors))
}

func TestProcessBatch_SizeBounds(t *testing.T) {
	store := new(MockListingStore)
	processor := NewBatchProcessor(store)

	result, err := processor.ProcessBatch(nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrBatchSize)

	oversized := make([]RawRow, MaxBatchSize+1)
	for i := range oversized {
		oversized[i] = validRow("A-1")
	}
	result, err = processor.ProcessBatch(oversized)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrBatchSize)

	// No row was attempted
	store.AssertNotCalled(t, "FindByMLSNumber", mock.Anything)
	store.AssertNotCalled(t, "CreateListing", mock.Anything)
}

func TestProcessBatch_DuplicateConflictIsRowError(t *testing.T) {
	store := new(MockListingStore)

	// The lookup misses but the create loses to a concurrent writer
	store.On("FindByMLSNumber", "A-1").Return(nil, ErrListingNotFound).Once()
	store.On("CreateListing", mock.AnythingOfType("*models.Listing")).
		Return(nil, ErrDuplicateMLSNumber).Once()

	processor := NewBatchProcessor(store)
	result, err := processor.ProcessBatch([]RawRow{validRow("A-1")})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "MLS number already exists", result.Errors[0].Error)

	// The conflict is reported, never retried as an update
	store.AssertNotCalled(t, "UpdateListing", mock.Anything)
}

func TestProcessBatch_StoreUnavailableAborts(t *testing.T) {
	store := new(MockListingStore)

	store.On("FindByMLSNumber", "A-1").Return(nil, ErrListingNotFound).Once()
	store.On("CreateListing", mock.AnythingOfType("*models.Listing")).
		Return(&models.Listing{MLSNumber: "A-1"}, nil).Once()

	// The store goes away on the second row
	store.On("FindByMLSNumber", "A-2").Return(nil, ErrStoreUnavailable).Once()

	processor := NewBatchProcessor(store)
	result, err := processor.ProcessBatch([]RawRow{validRow("A-1"), validRow("A-2"), validRow("A-3")})

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	require.NotNil(t, result)
	assert.True(t, result.Incomplete)

	// Total reflects only the rows that completed, keeping the tally invariant
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, result.Total, result.Created+result.Updated+len(result.Errors))

	// Row three was never attempted
	store.AssertNotCalled(t, "FindByMLSNumber", "A-3")
}

func TestProcessSingle(t *testing.T) {
	store := new(MockListingStore)
	store.On("FindByMLSNumber", "A-1").Return(nil, ErrListingNotFound).Once()
	store.On("CreateListing", mock.AnythingOfType("*models.Listing")).
		Return(&models.Listing{MLSNumber: "A-1"}, nil).Once()

	processor := NewBatchProcessor(store)

	action, listing, violations, err := processor.ProcessSingle(validRow("A-1"))
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Equal(t, RowCreated, action)
	assert.Equal(t, "A-1", listing.MLSNumber)

	bad := validRow("")
	delete(bad, "mlsNumber")
	action, listing, violations, err = processor.ProcessSingle(bad)
	require.NoError(t, err)
	assert.Nil(t, listing)
	assert.Empty(t, action)
	require.NotEmpty(t, violations)
	assert.Equal(t, "MLS Number is required", violations[0].Message)
}
