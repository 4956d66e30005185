package router

import (
	"context"

	bleve_repositories "listings-backend/bleve/repositories"
	"listings-backend/listings/controllers"
	"listings-backend/listings/repositories"
	"listings-backend/listings/services"
	"listings-backend/middleware"
	"listings-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

func InitListingRoutes(
	app *fiber.App,
	listingRepo repositories.ListingRepository,
	ctx context.Context,
	redisClient *redis.Client,
	tokenMaker token.Maker,
	bleveRepo bleve_repositories.BleveRepositoryInterface,
	asynqClient *asynq.Client,
) {
	listingController := &controllers.ListingController{
		ListingRepo: listingRepo,
		Batch:       services.NewBatchProcessor(listingRepo),
		Ctx:         ctx,
		RedisClient: redisClient,
		BleveRepo:   bleveRepo,
		AsynqClient: asynqClient,
	}

	appContext := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	// Public site routes
	publicRoutes := app.Group("/api/listings")
	{
		publicRoutes.Get("/", listingController.GetFilteredListings)
		publicRoutes.Get("/search", listingController.SearchListings)
	}

	// Admin routes
	protectedRoutes := app.Group("/api/listings")
	protectedRoutes.Use(middleware.ProtectedRoute(appContext))
	{
		protectedRoutes.Post("/", listingController.CreateListing)
		protectedRoutes.Post("/bulk", listingController.BulkUploadListings)
		protectedRoutes.Post("/bulk/file", listingController.BulkUploadListingsFile)
		protectedRoutes.Get("/upload-errors", listingController.GetFilteredUploadErrors)
	}
}
