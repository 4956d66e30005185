package services

import (
	"errors"
	"sync"

	"listings-backend/db/models"
)

// Sentinel errors the store implementation must translate its driver errors
// into. The reconciler only ever branches on these.
var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrDuplicateMLSNumber = errors.New("MLS number already exists")
	ErrInvalidListingData = errors.New("invalid data format")
	ErrStoreUnavailable   = errors.New("listing store unavailable")
)

// ListingStore is the key-addressed repository the reconciler writes through.
// FindByMLSNumber returns ErrListingNotFound when the key is absent;
// CreateListing must surface a unique-key conflict as ErrDuplicateMLSNumber.
type ListingStore interface {
	FindByMLSNumber(mlsNumber string) (*models.Listing, error)
	CreateListing(listing *models.Listing) (*models.Listing, error)
	UpdateListing(listing *models.Listing) (*models.Listing, error)
}

// RowAction is the terminal classification of a reconciled row.
type RowAction string

const (
	RowCreated RowAction = "created"
	RowUpdated RowAction = "updated"
)

// Reconciler decides create-vs-update for one candidate at a time, keyed by
// MLS number. The lookup and the write are serialized per key so two batches
// carrying the same MLS number cannot both observe "absent" and both create;
// the store's unique index remains the backstop for writers outside this
// process, and a losing create is reported as a conflict, never retried as an
// update.
type Reconciler struct {
	store ListingStore

	mu       sync.Mutex
	keyLocks map[string]*sync.Mutex
}

func NewReconciler(store ListingStore) *Reconciler {
	return &Reconciler{
		store:    store,
		keyLocks: make(map[string]*sync.Mutex),
	}
}

func (r *Reconciler) lockKey(mlsNumber string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.keyLocks[mlsNumber]
	if !ok {
		lock = &sync.Mutex{}
		r.keyLocks[mlsNumber] = lock
	}
	return lock
}

// Reconcile executes exactly one create or update for the candidate and
// returns the written listing. Store failures come back as errors for the
// caller to record against the row; ErrStoreUnavailable is the only one that
// should abort a batch.
func (r *Reconciler) Reconcile(candidate *CandidateListing) (RowAction, *models.Listing, error) {
	lock := r.lockKey(candidate.MLSNumber)
	lock.Lock()
	defer lock.Unlock()

	existing, err := r.store.FindByMLSNumber(candidate.MLSNumber)
	if err != nil && !errors.Is(err, ErrListingNotFound) {
		return "", nil, err
	}

	if existing == nil || errors.Is(err, ErrListingNotFound) {
		created, err := r.store.CreateListing(&models.Listing{
			MLSNumber:   candidate.MLSNumber,
			Address:     candidate.Address,
			Price:       candidate.Price,
			Status:      candidate.Status,
			Description: candidate.Description,
		})
		if err != nil {
			return "", nil, err
		}
		return RowCreated, created, nil
	}

	// Full overwrite of the replaceable fields; MLS number, ID, createdAt and
	// the geocoded coordinates are untouched.
	existing.Address = candidate.Address
	existing.Price = candidate.Price
	existing.Status = candidate.Status
	existing.Description = candidate.Description

	updated, err := r.store.UpdateListing(existing)
	if err != nil {
		return "", nil, err
	}
	return RowUpdated, updated, nil
}

// ReconcileErrorMessage converts a store error into the row-level message the
// report contract requires.
func ReconcileErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateMLSNumber):
		return "MLS number already exists"
	case errors.Is(err, ErrInvalidListingData):
		return "Invalid data format"
	default:
		return err.Error()
	}
}
