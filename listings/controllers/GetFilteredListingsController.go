package controllers

import (
	"encoding/json"
	"time"

	"listings-backend/config"
	"listings-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const listingsCacheTTL = 5 * time.Minute

// GetFilteredListings serves the public listings page: optional status, price
// range and free-text filters, ordered Active first then price descending.
// Responses are cached per filter combination until the next write.
func (lc *ListingController) GetFilteredListings(c *fiber.Ctx) error {
	filters := map[string]string{
		"status":    c.Query("status"),
		"min_price": c.Query("min_price"),
		"max_price": c.Query("max_price"),
		"search":    c.Query("search"),
	}
	limit := c.QueryInt("limit", 0)

	cacheKey := utils.GenerateQueryHash("listings", filters, limit)
	if lc.RedisClient != nil {
		cached, err := utils.GetCachedResponse(lc.Ctx, lc.RedisClient, cacheKey)
		if err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(cached)
		}
		if err != redis.Nil {
			config.Logger.Warn("Listings cache read failed", zap.Error(err))
		}
	}

	listings, err := lc.ListingRepo.GetFilteredListings(filters, limit)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered listings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch listings",
			"error":   "An internal server error occurred.",
		})
	}

	response := fiber.Map{
		"success": true,
		"message": "Listings fetched successfully",
		"data": fiber.Map{
			"listings": listings,
			"count":    len(listings),
		},
	}

	if lc.RedisClient != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := utils.CacheResponse(lc.Ctx, lc.RedisClient, cacheKey, string(payload), listingsCacheTTL); err != nil {
				config.Logger.Warn("Listings cache write failed", zap.Error(err))
			}
		}
	}

	return c.JSON(response)
}
