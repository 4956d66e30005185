package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListingStatus is the market status of a listing. Values are case-sensitive.
type ListingStatus string

const (
	ActiveListingStatus  ListingStatus = "Active"
	PendingListingStatus ListingStatus = "Pending"
	SoldListingStatus    ListingStatus = "Sold"
)

// Listing represents one MLS property listing. The MLS number is the natural
// key: it is unique, immutable after creation, and every update is addressed
// by it.
type Listing struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	MLSNumber string    `gorm:"column:mls_number;unique;not null;index" json:"mlsNumber"`

	Address     string        `gorm:"not null" json:"address"`
	Price       int64         `gorm:"not null" json:"price"`
	Status      ListingStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Description *string       `gorm:"type:text" json:"description"`

	// Geographic Information, backfilled by the geocoding worker
	Latitude  *decimal.Decimal `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude *decimal.Decimal `gorm:"type:decimal(11,8)" json:"longitude"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
