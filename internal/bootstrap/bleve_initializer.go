package bootstrap

import (
	"context"

	bleveRepositories "listings-backend/bleve/repositories"
	"listings-backend/config"
	listings_repositories "listings-backend/listings/repositories"

	"go.uber.org/zap"
)

// IndexBleveData rebuilds the search index from the database at boot so the
// index never drifts from the source of truth across restarts.
func IndexBleveData(
	ctx context.Context,
	listingRepo listings_repositories.ListingRepository,
	bleveRepo bleveRepositories.BleveRepositoryInterface,
) {
	listings, err := listingRepo.GetAllListings()
	if err != nil {
		config.Logger.Error("Error fetching listings for Bleve indexing", zap.Error(err))
		return
	}

	if err := bleveRepo.IndexExistingListings(listings); err != nil {
		config.Logger.Error("Failed to index listings into Bleve", zap.Error(err))
	}
}
