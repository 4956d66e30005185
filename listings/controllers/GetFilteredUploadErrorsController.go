package controllers

import (
	"listings-backend/config"
	"listings-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetFilteredUploadErrors pages through the persisted bulk upload rejections,
// filterable by MLS number, error type, source and date range.
func (lc *ListingController) GetFilteredUploadErrors(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid pagination parameters",
			"error":   err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize
	errorRows, total, err := lc.ListingRepo.GetFilteredUploadErrors(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch upload errors", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch upload errors",
			"error":   "An internal server error occurred.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Upload errors fetched successfully",
		"data":    pagination.NewPaginatedResponse(c, errorRows, total, params),
	})
}
