package controllers

import (
	"context"
	"sync"

	"listings-backend/config"
	"listings-backend/middleware"
	"listings-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

const (
	accessTokenDuration  = middleware.AccessTokenDuration
	refreshTokenDuration = middleware.RefreshTokenDuration
)

// LoginController authenticates the site admin against credentials from the
// environment. There is a single admin account, no user table.
type LoginController struct {
	PasetoMaker token.Maker
	Ctx         context.Context
	RedisClient *redis.Client

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// limiterFor returns the per-IP login rate limiter, 5 attempts per minute.
func (lc *LoginController) limiterFor(ip string) *rate.Limiter {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if lc.limiters == nil {
		lc.limiters = make(map[string]*rate.Limiter)
	}
	limiter, ok := lc.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(5.0/60.0), 5)
		lc.limiters[ip] = limiter
	}
	return limiter
}

func checkAdminPassword(password string) bool {
	if hash := config.GetEnv("ADMIN_PASSWORD_HASH"); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return password != "" && password == config.GetEnv("ADMIN_PASSWORD")
}

func (lc *LoginController) LoginAdmin(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if !lc.limiterFor(c.IP()).Allow() {
		config.Logger.Warn("Login rate limit exceeded", zap.String("client_ip", c.IP()))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message": "Too many attempts",
			"data":    nil,
			"error":   "Too many login attempts. Please try again later.",
		})
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Error parsing login request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	adminEmail := config.GetEnv("ADMIN_EMAIL")
	if req.Email != adminEmail || !checkAdminPassword(req.Password) {
		config.Logger.Warn("Login attempt: invalid credentials",
			zap.String("email", req.Email),
			zap.String("client_ip", c.IP()),
		)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"data":    nil,
			"error":   "Invalid email or password.",
		})
	}

	accessToken, err := lc.PasetoMaker.CreateToken(adminEmail, accessTokenDuration)
	if err != nil {
		config.Logger.Error("Could not generate access token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	refreshToken, err := lc.PasetoMaker.CreateToken(adminEmail, refreshTokenDuration)
	if err != nil {
		config.Logger.Error("Could not generate refresh token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	err = lc.RedisClient.Set(lc.Ctx, "refresh_token:"+refreshToken, adminEmail, refreshTokenDuration).Err()
	if err != nil {
		config.Logger.Error("Error storing refresh token in Redis", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	middleware.SetAuthCookies(c, accessToken, refreshToken)

	config.Logger.Info("Admin logged in", zap.String("client_ip", c.IP()))

	return c.JSON(fiber.Map{
		"message": "Logged in successfully",
		"data": fiber.Map{
			"email": adminEmail,
		},
		"error": nil,
	})
}
