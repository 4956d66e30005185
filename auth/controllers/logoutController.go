package controllers

import (
	"listings-backend/config"
	"listings-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (lc *LoginController) LogoutAdmin(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken != "" {
		err := lc.RedisClient.Del(lc.Ctx, "refresh_token:"+refreshToken).Err()
		if err != nil {
			config.Logger.Error("Failed to delete refresh token from Redis during logout", zap.Error(err))
		}
	} else {
		config.Logger.Debug("No refresh token found in cookies during logout attempt")
	}

	middleware.ClearAuthCookies(c)

	config.Logger.Info("Admin logged out", zap.String("client_ip", c.IP()))

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
		"data":    nil,
		"error":   nil,
	})
}
