package controllers

import (
	"errors"

	"listings-backend/config"
	"listings-backend/mortgage/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MortgageController struct{}

// CalculateMortgage estimates the monthly cost of buying a listing. Stateless,
// nothing is persisted.
func (mc *MortgageController) CalculateMortgage(c *fiber.Ctx) error {
	var input services.MortgageInput
	if err := c.BodyParser(&input); err != nil {
		config.Logger.Debug("Error parsing mortgage request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
			"error":   "Invalid request format.",
		})
	}

	breakdown, err := services.CalculateMortgage(input)
	if err != nil {
		if errors.Is(err, services.ErrNoPrincipal) ||
			errors.Is(err, services.ErrBadTerm) ||
			errors.Is(err, services.ErrBadRate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid mortgage parameters",
				"error":   err.Error(),
			})
		}
		config.Logger.Error("Mortgage calculation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong",
			"error":   "An internal server error occurred.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Mortgage calculated successfully",
		"data":    breakdown,
	})
}
