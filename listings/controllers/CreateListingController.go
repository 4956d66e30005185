package controllers

import (
	"errors"
	"fmt"

	"listings-backend/config"
	"listings-backend/listings/services"
	"listings-backend/utils"

	"listings-backend/internal/tasks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CreateListing handles the single listing form. The same normalization and
// validation rules as bulk upload apply; an existing MLS number means the
// listing is overwritten, not rejected.
func (lc *ListingController) CreateListing(c *fiber.Ctx) error {
	var body map[string]string
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
			"error":   "Invalid request format.",
		})
	}

	action, listing, violations, err := lc.Batch.ProcessSingle(services.RawRow(body))
	if len(violations) > 0 {
		fields := make(map[string]string, len(violations))
		for _, violation := range violations {
			if _, seen := fields[violation.Field]; !seen {
				fields[violation.Field] = violation.Message
			}
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": violations[0].Message,
			"errors":  fields,
		})
	}
	if err != nil {
		if errors.Is(err, services.ErrStoreUnavailable) {
			return storeUnavailableResponse(c, nil)
		}
		if errors.Is(err, services.ErrDuplicateMLSNumber) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "MLS number already exists",
				"error":   "MLS number already exists",
			})
		}
		config.Logger.Error("Failed to save listing", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong",
			"error":   "An internal server error occurred.",
		})
	}

	if lc.BleveRepo != nil {
		if indexErr := lc.BleveRepo.IndexSingleListing(*listing); indexErr != nil {
			config.Logger.Warn("Failed to index listing",
				zap.String("mls_number", listing.MLSNumber),
				zap.Error(indexErr),
			)
		}
	}
	if lc.AsynqClient != nil && action == services.RowCreated {
		tasks.EnqueueGeocodeListing(lc.AsynqClient, listing.MLSNumber)
	}
	if lc.RedisClient != nil {
		utils.InvalidateCacheAsync(lc.RedisClient, "listings")
	}

	status := fiber.StatusOK
	if action == services.RowCreated {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Listing %s successfully", action),
		"data": fiber.Map{
			"action":  action,
			"listing": listing,
		},
	})
}
