package repositories

import (
	bleveindex "listings-backend/bleve/services"
	"listings-backend/db/models"

	"github.com/blevesearch/bleve/v2"
)

const listingsIndexName = "listings"

type BleveRepository struct {
	indexer bleveindex.IndexingServiceInterface
}

type BleveRepositoryInterface interface {
	IndexSingleListing(listing models.Listing) error
	IndexExistingListings(listings []models.Listing) error
	SearchListings(queryString string, status string, size int) (*bleve.SearchResult, error)
	DeleteListing(listingID string) error
}

// Constructor returning both the struct and the interface
func NewBleveRepository(indexer bleveindex.IndexingServiceInterface) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}
