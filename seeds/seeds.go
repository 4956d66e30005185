package seeds

import (
	"errors"
	"fmt"

	"listings-backend/config"
	"listings-backend/db/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func coordPtr(value string) *decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil
	}
	return &d
}

// sampleListings covers the Watertown, WI area that the demo site serves.
var sampleListings = []models.Listing{
	{
		MLSNumber:   "1929100",
		Address:     "305 Theresa St, Watertown, WI 53094",
		Price:       324900,
		Status:      models.ActiveListingStatus,
		Description: stringPtr("Beautiful 3BR/2BA home with updated kitchen and hardwood floors"),
		Latitude:    coordPtr("43.1945"),
		Longitude:   coordPtr("-88.7289"),
	},
	{
		MLSNumber:   "1934327",
		Address:     "228 Fremont St, Watertown, WI 53098",
		Price:       279900,
		Status:      models.ActiveListingStatus,
		Description: stringPtr("Charming 2BR/2BA cottage with fenced yard and deck"),
		Latitude:    coordPtr("43.2012"),
		Longitude:   coordPtr("-88.7156"),
	},
	{
		MLSNumber:   "1941234",
		Address:     "1425 N 4th St, Watertown, WI 53094",
		Price:       425000,
		Status:      models.PendingListingStatus,
		Description: stringPtr("Spacious 4BR/3BA colonial with 2-car garage and finished basement"),
		Latitude:    coordPtr("43.1898"),
		Longitude:   coordPtr("-88.7423"),
	},
	{
		MLSNumber:   "1956789",
		Address:     "567 E Main St, Watertown, WI 53094",
		Price:       198500,
		Status:      models.SoldListingStatus,
		Description: stringPtr("Cozy 2BR/1BA starter home with updated electrical"),
		Latitude:    coordPtr("43.1967"),
		Longitude:   coordPtr("-88.7201"),
	},
	{
		MLSNumber:   "1965432",
		Address:     "890 S 2nd St, Watertown, WI 53098",
		Price:       365000,
		Status:      models.ActiveListingStatus,
		Description: stringPtr("Modern 3BR/2.5BA townhouse with attached garage"),
		Latitude:    coordPtr("43.1823"),
		Longitude:   coordPtr("-88.7356"),
	},
	{
		MLSNumber:   "1978901",
		Address:     "1234 W Cady St, Watertown, WI 53094",
		Price:       289900,
		Status:      models.ActiveListingStatus,
		Description: stringPtr("Well-maintained 3BR/2BA ranch with large lot"),
		Latitude:    coordPtr("43.2056"),
		Longitude:   coordPtr("-88.7123"),
	},
	{
		MLSNumber:   "1987654",
		Address:     "456 N 8th St, Watertown, WI 53098",
		Price:       512000,
		Status:      models.PendingListingStatus,
		Description: stringPtr("Luxury 4BR/3.5BA home with pool and 3-car garage"),
		Latitude:    coordPtr("43.1778"),
		Longitude:   coordPtr("-88.7489"),
	},
	{
		MLSNumber:   "1990123",
		Address:     "789 E Oak St, Watertown, WI 53094",
		Price:       245000,
		Status:      models.ActiveListingStatus,
		Description: stringPtr("Updated 2BR/1.5BA bungalow with new roof and windows"),
		Latitude:    coordPtr("43.1912"),
		Longitude:   coordPtr("-88.7245"),
	},
	{
		MLSNumber:   "2003456",
		Address:     "321 S 6th St, Watertown, WI 53098",
		Price:       398000,
		Status:      models.SoldListingStatus,
		Description: stringPtr("Stunning 3BR/2BA contemporary with vaulted ceilings"),
		Latitude:    coordPtr("43.1867"),
		Longitude:   coordPtr("-88.7312"),
	},
	{
		MLSNumber:   "2016789",
		Address:     "654 W Johnson St, Watertown, WI 53094",
		Price:       275000,
		Status:      models.ActiveListingStatus,
		Description: stringPtr("Cute 2BR/2BA home with updated kitchen and bath"),
		Latitude:    coordPtr("43.2034"),
		Longitude:   coordPtr("-88.7198"),
	},
}

// SeedSampleListings inserts the demo listings, skipping any MLS number that
// already exists so re-running the seeder never clobbers real data.
func SeedSampleListings(db *gorm.DB) error {
	config.Logger.Info("Starting sample listings seeding...")

	createdCount := 0
	skippedCount := 0

	for _, listing := range sampleListings {
		var existing models.Listing
		result := db.Where("mls_number = ?", listing.MLSNumber).First(&existing)

		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				listing.ID = uuid.New()
				if err := db.Create(&listing).Error; err != nil {
					config.Logger.Error("Failed to create sample listing",
						zap.String("mls_number", listing.MLSNumber),
						zap.Error(err))
					return fmt.Errorf("failed to create listing %s: %w", listing.MLSNumber, err)
				}
				createdCount++
				continue
			}
			config.Logger.Error("Error checking for existing listing",
				zap.String("mls_number", listing.MLSNumber),
				zap.Error(result.Error))
			return fmt.Errorf("failed to check listing %s: %w", listing.MLSNumber, result.Error)
		}
		skippedCount++
	}

	config.Logger.Info("Sample listings seeding completed",
		zap.Int("created", createdCount),
		zap.Int("skipped", skippedCount),
	)
	return nil
}
