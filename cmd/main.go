package main

import (
	"context"

	"listings-backend/config"
	"listings-backend/middleware"
	"listings-backend/token"
	"listings-backend/utils"

	"listings-backend/internal/bootstrap"
	internal_services "listings-backend/internal/services"
	"listings-backend/internal/tasks"
	"listings-backend/seeds"

	// Repositories
	bleveRepositories "listings-backend/bleve/repositories"
	bleveServices "listings-backend/bleve/services"
	listings_repositories "listings-backend/listings/repositories"

	// Routes
	auth_routes "listings-backend/auth/routes"
	listing_routes "listings-backend/listings/routes"
	mortgage_routes "listings-backend/mortgage/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file loaded, relying on process environment", zap.Error(err))
	}

	app := fiber.New()

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	redisClient := config.InitRedisServer(ctx)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     config.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
		Password: config.GetEnv("REDIS_PASSWORD"),
		DB:       0,
	}
	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	tokenMaker, err := token.NewPasetoMaker(config.GetEnv("TOKEN_SYMMETRIC_KEY"))
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	indexPath := config.GetEnvOrDefault("BLEVE_INDEX_PATH", "./bleve_data")

	// Timezone for user-facing timestamps
	utils.InitializeDateLocation()

	// Initialize the mailer for bulk upload error reports
	utils.InitializeMailer()

	// Serve generated error reports
	app.Static("/public", "./public")

	// Repositories
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	_, bleveRepo := bleveRepositories.NewBleveRepository(bleveIndexingService)
	listingRepo := listings_repositories.NewListingRepository(db)

	// Rebuild the search index from the database
	bootstrap.IndexBleveData(ctx, listingRepo, bleveRepo)

	// Routes
	auth_routes.InitAuthRoutes(app, ctx, redisClient, tokenMaker)
	listing_routes.InitListingRoutes(app, listingRepo, ctx, redisClient, tokenMaker, bleveRepo, asynqClient)
	mortgage_routes.InitMortgageRoutes(app)

	// Geocoding worker
	geocoder, err := internal_services.NewGeocodingService(
		config.GetEnvOrDefault("GEOCODING_BASE_URL", "https://nominatim.openstreetmap.org"),
		config.GetEnv("GEOCODING_USER_AGENT"),
	)
	if err != nil {
		config.Logger.Fatal("Cannot create geocoding service", zap.Error(err))
	}
	geocodeWorker := tasks.StartGeocodeWorker(asynqRedisOpt, &tasks.GeocodeListingProcessor{
		ListingRepo: listingRepo,
		Geocoder:    geocoder,
	})
	defer geocodeWorker.Shutdown()

	// Background cleanup tasks
	cleanupCron := utils.RunScheduledCleanup(listingRepo, redisClient)
	defer cleanupCron.Stop()

	// Seed demo listings on an empty database
	if config.GetEnv("SEED_SAMPLE_LISTINGS") == "true" {
		if count, err := listingRepo.CountListings(); err != nil {
			config.Logger.Error("Failed to count listings before seeding", zap.Error(err))
		} else if count == 0 {
			if err := seeds.SeedSampleListings(db); err != nil {
				config.Logger.Error("Database seeding failed", zap.Error(err))
			} else {
				bootstrap.IndexBleveData(ctx, listingRepo, bleveRepo)
			}
		}
	}

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
