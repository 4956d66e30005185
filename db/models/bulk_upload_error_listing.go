package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BulkUploadErrorType classifies why a row was rejected during a bulk upload.
type BulkUploadErrorType string

const (
	ValidationErrorType     BulkUploadErrorType = "Validation"
	DuplicateErrorType      BulkUploadErrorType = "Duplicate"
	ReconciliationErrorType BulkUploadErrorType = "Reconciliation"
)

type AddedViaType string

const (
	SingleAddedViaType AddedViaType = "Single"
	BulkAddedViaType   AddedViaType = "Bulk"
	FileAddedViaType   AddedViaType = "File"
)

// BulkUploadErrorListing is the persisted audit record for one rejected row.
// RawRow keeps the row exactly as it arrived so the operator can see what the
// export actually contained, not just our interpretation of it.
type BulkUploadErrorListing struct {
	ID        uuid.UUID           `gorm:"type:uuid;primary_key;" json:"id"`
	MLSNumber string              `gorm:"column:mls_number;index" json:"mlsNumber"`
	RowIndex  int                 `json:"row"`
	Reason    string              `json:"reason"`
	RawRow    datatypes.JSON      `json:"raw_row"`
	ErrorType BulkUploadErrorType `json:"error_type"`
	AddedVia  AddedViaType        `json:"added_via"`
	CreatedBy string              `json:"created_by"`
	CreatedAt time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}
