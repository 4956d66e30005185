package controllers

import (
	"listings-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SearchListings serves typo-tolerant full-text search over the listings
// index. Hits come back from the index's stored fields, ranked by relevance;
// the database is not touched.
func (lc *ListingController) SearchListings(c *fiber.Ctx) error {
	queryString := c.Query("q")
	status := c.Query("status")
	size := c.QueryInt("limit", 25)
	if size < 1 || size > 100 {
		size = 25
	}

	searchResult, err := lc.BleveRepo.SearchListings(queryString, status, size)
	if err != nil {
		config.Logger.Error("Listing search failed",
			zap.String("query", queryString),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Search failed",
			"error":   "An internal server error occurred.",
		})
	}

	hits := make([]fiber.Map, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		hits = append(hits, fiber.Map{
			"id":     hit.ID,
			"score":  hit.Score,
			"fields": hit.Fields,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Search completed successfully",
		"data": fiber.Map{
			"total":   searchResult.Total,
			"took_ms": searchResult.Took.Milliseconds(),
			"hits":    hits,
		},
	})
}
