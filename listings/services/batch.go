package services

import (
	"errors"

	"listings-backend/db/models"
)

// MaxBatchSize bounds one bulk submission. Larger exports are rejected
// wholesale before any row is touched.
const MaxBatchSize = 1000

// ErrBatchSize is the structural rejection for an out-of-bounds batch.
var ErrBatchSize = errors.New("batch must contain between 1 and 1000 listings")

// RowError is one row-level failure in the batch report. Row numbering is the
// pipeline's 1-based row index (first data row is row 1), not a file line
// number. RawRow rides along for the persisted error log but stays out of the
// JSON payload.
type RowError struct {
	Row       int    `json:"row"`
	MLSNumber string `json:"mlsNumber"`
	Error     string `json:"error"`

	RawRow RawRow `json:"-"`
}

// AppliedRow is one successfully written row, kept so callers can index,
// cache-invalidate and geocode what actually landed.
type AppliedRow struct {
	Row     int
	Action  RowAction
	Listing *models.Listing
}

// BatchResult is the aggregate outcome of one bulk submission.
// Total == Created + Updated + len(Errors) always holds; when Incomplete is
// set the store became unreachable mid-batch and Total counts only the rows
// attempted before the fault.
type BatchResult struct {
	Total      int        `json:"total"`
	Created    int        `json:"created"`
	Updated    int        `json:"updated"`
	Errors     []RowError `json:"errors"`
	Incomplete bool       `json:"incomplete,omitempty"`

	Applied []AppliedRow `json:"-"`
}

// BatchProcessor drives rows through normalize -> validate -> reconcile
// strictly in input order, isolating per-row failures. It holds no state
// across batches beyond the reconciler's per-key locks.
type BatchProcessor struct {
	reconciler *Reconciler
}

func NewBatchProcessor(store ListingStore) *BatchProcessor {
	return &BatchProcessor{reconciler: NewReconciler(store)}
}

// ProcessBatch runs the whole batch to completion. Row failures are recorded
// and the loop continues; only a structural rejection (nil result) or the
// store becoming unreachable (partial result, Incomplete set, and
// ErrStoreUnavailable returned) stop processing.
func (p *BatchProcessor) ProcessBatch(rows []RawRow) (*BatchResult, error) {
	if len(rows) == 0 || len(rows) > MaxBatchSize {
		return nil, ErrBatchSize
	}

	result := &BatchResult{
		Total:  len(rows),
		Errors: []RowError{},
	}

	// Rows are processed sequentially so a later row's create-vs-update
	// decision observes the writes of earlier rows in the same batch (an
	// export that repeats an MLS number updates what it just created).
	for i, raw := range rows {
		rowNumber := i + 1
		normalized := NormalizeRow(raw)

		candidate, violations := ValidateListing(normalized)
		if len(violations) > 0 {
			result.Errors = append(result.Errors, RowError{
				Row:       rowNumber,
				MLSNumber: normalized.MLSNumber,
				Error:     violations[0].Message,
				RawRow:    raw,
			})
			continue
		}

		action, listing, err := p.reconciler.Reconcile(candidate)
		if err != nil {
			if errors.Is(err, ErrStoreUnavailable) {
				// Further rows cannot be meaningfully attempted. Report what
				// completed and flag the result instead of blaming this row.
				result.Total = i
				result.Incomplete = true
				return result, ErrStoreUnavailable
			}
			result.Errors = append(result.Errors, RowError{
				Row:       rowNumber,
				MLSNumber: candidate.MLSNumber,
				Error:     ReconcileErrorMessage(err),
				RawRow:    raw,
			})
			continue
		}

		switch action {
		case RowCreated:
			result.Created++
		case RowUpdated:
			result.Updated++
		}
		result.Applied = append(result.Applied, AppliedRow{Row: rowNumber, Action: action, Listing: listing})
	}

	return result, nil
}

// ProcessSingle handles the degenerate one-row submission: same normalization,
// validation and reconciliation rules, with a direct outcome instead of an
// aggregate tally. Violations are returned separately from store errors so the
// caller can answer 400 vs 409/503 correctly.
func (p *BatchProcessor) ProcessSingle(raw RawRow) (RowAction, *models.Listing, []FieldViolation, error) {
	normalized := NormalizeRow(raw)
	candidate, violations := ValidateListing(normalized)
	if len(violations) > 0 {
		return "", nil, violations, nil
	}

	action, listing, err := p.reconciler.Reconcile(candidate)
	if err != nil {
		return "", nil, nil, err
	}
	return action, listing, nil, nil
}
