package router

import (
	"context"

	"listings-backend/auth/controllers"
	"listings-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func InitAuthRoutes(
	app *fiber.App,
	ctx context.Context,
	redisClient *redis.Client,
	tokenMaker token.Maker,
) {
	loginController := &controllers.LoginController{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	authRoutes := app.Group("/api/auth")
	{
		authRoutes.Post("/login", loginController.LoginAdmin)
		authRoutes.Post("/logout", loginController.LogoutAdmin)
	}
}
