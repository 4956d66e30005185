package repositories

import (
	"strconv"

	"listings-backend/db/models"

	"gorm.io/gorm"
)

// listingsQueryBuilder builds queries for public listing filtering
type listingsQueryBuilder struct {
	query   *gorm.DB
	filters map[string]string
}

func newListingsQueryBuilder(db *gorm.DB, filters map[string]string) *listingsQueryBuilder {
	return &listingsQueryBuilder{
		query:   db.Model(&models.Listing{}),
		filters: filters,
	}
}

func (lqb *listingsQueryBuilder) applyStatusFilter() *listingsQueryBuilder {
	if status, ok := lqb.filters["status"]; ok && status != "" {
		lqb.query = lqb.query.Where("status = ?", status)
	}
	return lqb
}

func (lqb *listingsQueryBuilder) applyPriceRangeFilter() *listingsQueryBuilder {
	if minPrice, ok := lqb.filters["min_price"]; ok && minPrice != "" {
		if value, err := strconv.ParseInt(minPrice, 10, 64); err == nil {
			lqb.query = lqb.query.Where("price >= ?", value)
		}
	}
	if maxPrice, ok := lqb.filters["max_price"]; ok && maxPrice != "" {
		if value, err := strconv.ParseInt(maxPrice, 10, 64); err == nil {
			lqb.query = lqb.query.Where("price <= ?", value)
		}
	}
	return lqb
}

func (lqb *listingsQueryBuilder) applySearchFilter() *listingsQueryBuilder {
	if search, ok := lqb.filters["search"]; ok && search != "" {
		pattern := "%" + search + "%"
		lqb.query = lqb.query.Where(
			"address ILIKE ? OR mls_number ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	return lqb
}

func (lqb *listingsQueryBuilder) applySiteOrder() *listingsQueryBuilder {
	// Active before Pending before Sold, priciest first within each
	lqb.query = lqb.query.Order("status ASC").Order("price DESC")
	return lqb
}

// GetFilteredListings returns listings for the public site: optional status,
// price range and free-text search filters, site ordering, optional limit.
func (r *listingRepository) GetFilteredListings(filters map[string]string, limit int) ([]models.Listing, error) {
	lqb := newListingsQueryBuilder(r.db, filters).
		applyStatusFilter().
		applyPriceRangeFilter().
		applySearchFilter().
		applySiteOrder()

	if limit > 0 {
		lqb.query = lqb.query.Limit(limit)
	}

	var listings []models.Listing
	if err := lqb.query.Find(&listings).Error; err != nil {
		return nil, translateListingError(err)
	}
	return listings, nil
}
