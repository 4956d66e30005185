package repositories

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"time"

	"listings-backend/db/models"
	"listings-backend/listings/services"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListingRepository interface {
	services.ListingStore

	UpdateListingCoordinates(mlsNumber string, latitude, longitude decimal.Decimal) error
	GetFilteredListings(filters map[string]string, limit int) ([]models.Listing, error)
	GetAllListings() ([]models.Listing, error)
	CountListings() (int64, error)

	LogBulkUploadErrors(rows []models.BulkUploadErrorListing) error
	GetFilteredUploadErrors(pageSize int, offset int, filters map[string]string) ([]models.BulkUploadErrorListing, int64, error)
	PurgeUploadErrorsBefore(cutoff time.Time) (int64, error)

	LogEmailSent(emailLog *models.EmailLog) error
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{
		db: db,
	}
}

func (r *listingRepository) FindByMLSNumber(mlsNumber string) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.First(&listing, "mls_number = ?", mlsNumber).Error
	if err != nil {
		return nil, translateListingError(err)
	}
	return &listing, nil
}

func (r *listingRepository) CreateListing(listing *models.Listing) (*models.Listing, error) {
	if err := r.db.Create(listing).Error; err != nil {
		return nil, translateListingError(err)
	}
	return listing, nil
}

// UpdateListing overwrites the replaceable fields of the listing addressed by
// its MLS number. The map form is deliberate: a nil description must clear the
// column, which a struct update would skip.
func (r *listingRepository) UpdateListing(listing *models.Listing) (*models.Listing, error) {
	updates := map[string]interface{}{
		"address":     listing.Address,
		"price":       listing.Price,
		"status":      listing.Status,
		"description": listing.Description,
	}
	err := r.db.Model(&models.Listing{}).
		Where("mls_number = ?", listing.MLSNumber).
		Updates(updates).Error
	if err != nil {
		return nil, translateListingError(err)
	}

	var updated models.Listing
	if err := r.db.First(&updated, "mls_number = ?", listing.MLSNumber).Error; err != nil {
		return nil, translateListingError(err)
	}
	return &updated, nil
}

func (r *listingRepository) UpdateListingCoordinates(mlsNumber string, latitude, longitude decimal.Decimal) error {
	err := r.db.Model(&models.Listing{}).
		Where("mls_number = ?", mlsNumber).
		Updates(map[string]interface{}{
			"latitude":  latitude,
			"longitude": longitude,
		}).Error
	return translateListingError(err)
}

func (r *listingRepository) GetAllListings() ([]models.Listing, error) {
	var listings []models.Listing
	if err := r.db.Find(&listings).Error; err != nil {
		return nil, translateListingError(err)
	}
	return listings, nil
}

func (r *listingRepository) CountListings() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Listing{}).Count(&total).Error; err != nil {
		return 0, translateListingError(err)
	}
	return total, nil
}

func (r *listingRepository) LogBulkUploadErrors(rows []models.BulkUploadErrorListing) error {
	if len(rows) == 0 {
		return nil
	}
	return translateListingError(r.db.Create(&rows).Error)
}

func (r *listingRepository) GetFilteredUploadErrors(pageSize int, offset int, filters map[string]string) ([]models.BulkUploadErrorListing, int64, error) {
	var errorRows []models.BulkUploadErrorListing
	var total int64

	db := r.db.Model(&models.BulkUploadErrorListing{})

	for key, value := range filters {
		switch key {
		case "mls_number":
			db = db.Where("mls_number ILIKE ?", "%"+value+"%")
		case "error_type":
			db = db.Where("error_type = ?", value)
		case "added_via":
			db = db.Where("added_via = ?", value)
		case "created_by":
			db = db.Where("created_by ILIKE ?", "%"+value+"%")
		case "start_date":
			db = db.Where("DATE(created_at) >= ?", value)
		case "end_date":
			db = db.Where("DATE(created_at) <= ?", value)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, translateListingError(err)
	}

	if err := db.Limit(pageSize).Offset(offset).Order("created_at DESC").Find(&errorRows).Error; err != nil {
		return nil, 0, translateListingError(err)
	}

	return errorRows, total, nil
}

func (r *listingRepository) PurgeUploadErrorsBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.BulkUploadErrorListing{})
	if result.Error != nil {
		return 0, translateListingError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *listingRepository) LogEmailSent(emailLog *models.EmailLog) error {
	return translateListingError(r.db.Create(emailLog).Error)
}

// translateListingError maps driver-level failures onto the pipeline's
// sentinel errors so callers never string-match Postgres messages.
func translateListingError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return services.ErrListingNotFound
	}
	if isUnavailable(err) {
		return services.ErrStoreUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return services.ErrDuplicateMLSNumber
		case pgErr.Code == "23502", strings.HasPrefix(pgErr.Code, "22"):
			// Not-null violations and data exceptions (bad cast, value too
			// long) are malformed input, not infrastructure.
			return services.ErrInvalidListingData
		}
	}
	return err
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exceptions; class 57: operator intervention
		// (shutdown, crash recovery).
		if strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57") {
			return true
		}
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
