package repositories

import (
	"strings"

	"listings-backend/config"
	"listings-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

// bleveListingDoc is the minimal document structure indexed for search; the
// database stays the source of truth for everything else.
type bleveListingDoc struct {
	ID          string `json:"id"`
	MLSNumber   string `json:"mls_number"`
	Address     string `json:"address"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Price       int64  `json:"price"`
}

func newBleveListingDoc(listing models.Listing) bleveListingDoc {
	var description string
	if listing.Description != nil {
		description = *listing.Description
	}
	return bleveListingDoc{
		ID:          listing.ID.String(),
		MLSNumber:   listing.MLSNumber,
		Address:     listing.Address,
		Description: description,
		Status:      string(listing.Status),
		Price:       listing.Price,
	}
}

func (r *BleveRepository) IndexSingleListing(listing models.Listing) error {
	err := r.indexer.IndexDocument(listingsIndexName, listing.ID.String(), newBleveListingDoc(listing))
	if err != nil {
		config.Logger.Error("Failed to index listing into Bleve",
			zap.Error(err),
			zap.String("listing_id", listing.ID.String()))
		return err
	}
	return nil
}

func (r *BleveRepository) IndexExistingListings(listings []models.Listing) error {
	docs := make(map[string]interface{}, len(listings))
	for _, listing := range listings {
		docs[listing.ID.String()] = newBleveListingDoc(listing)
	}

	if len(docs) == 0 {
		config.Logger.Info("No listings to index into Bleve.")
		return nil
	}

	if err := r.indexer.BulkIndexDocuments(listingsIndexName, docs); err != nil {
		config.Logger.Error("Failed to bulk index listings into Bleve", zap.Error(err))
		return err
	}
	config.Logger.Info("Bulk indexed listings into Bleve", zap.Int("count", len(docs)))
	return nil
}

func (r *BleveRepository) SearchListings(queryString string, status string, size int) (*bleve.SearchResult, error) {
	queryString = strings.TrimSpace(queryString)
	queryStringLower := strings.ToLower(queryString)

	booleanQuery := bleve.NewBooleanQuery()

	if queryString != "" {
		textQuery := bleve.NewBooleanQuery()

		// Exact MLS number wins over everything
		mlsExact := bleve.NewTermQuery(queryString)
		mlsExact.SetField("mls_number")
		mlsExact.SetBoost(10.0)
		textQuery.AddShould(mlsExact)

		mlsPrefix := bleve.NewPrefixQuery(queryStringLower)
		mlsPrefix.SetField("mls_number")
		mlsPrefix.SetBoost(6.0)
		textQuery.AddShould(mlsPrefix)

		addressMatch := bleve.NewMatchQuery(queryString)
		addressMatch.SetField("address")
		addressMatch.SetBoost(5.0)
		textQuery.AddShould(addressMatch)

		descriptionMatch := bleve.NewMatchQuery(queryString)
		descriptionMatch.SetField("description")
		descriptionMatch.SetBoost(2.0)
		textQuery.AddShould(descriptionMatch)

		// Fuzzy match on the address for typos
		addressFuzzy := bleve.NewFuzzyQuery(queryStringLower)
		addressFuzzy.SetField("address")
		addressFuzzy.SetFuzziness(1)
		textQuery.AddShould(addressFuzzy)

		booleanQuery.AddMust(textQuery)
	} else {
		booleanQuery.AddMust(bleve.NewMatchAllQuery())
	}

	if status != "" {
		statusQuery := bleve.NewTermQuery(strings.ToLower(status))
		statusQuery.SetField("status")
		booleanQuery.AddMust(statusQuery)
	}

	return r.indexer.SearchIndex(listingsIndexName, booleanQuery, size)
}

func (r *BleveRepository) DeleteListing(listingID string) error {
	if err := r.indexer.DeleteDocument(listingsIndexName, listingID); err != nil {
		config.Logger.Error("Failed to delete listing from Bleve",
			zap.Error(err),
			zap.String("listing_id", listingID))
		return err
	}
	return nil
}
