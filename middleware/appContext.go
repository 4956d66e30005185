package middleware

import (
	"context"

	"listings-backend/token"

	"github.com/redis/go-redis/v9"
)

// AppContext bundles the dependencies shared by route middleware.
type AppContext struct {
	PasetoMaker token.Maker
	Ctx         context.Context
	RedisClient *redis.Client
}
