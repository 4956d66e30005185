package router

import (
	"listings-backend/mortgage/controllers"

	"github.com/gofiber/fiber/v2"
)

func InitMortgageRoutes(app *fiber.App) {
	mortgageController := &controllers.MortgageController{}

	mortgageRoutes := app.Group("/api/mortgage")
	{
		mortgageRoutes.Post("/calculate", mortgageController.CalculateMortgage)
	}
}
