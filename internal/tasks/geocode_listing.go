package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listings-backend/config"
	"listings-backend/internal/services"
	"listings-backend/listings/repositories"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeGeocodeListing = "listing:geocode"

// GeocodeListingPayload carries only the natural key; the handler reloads the
// listing so it geocodes the current address, not the one at enqueue time.
type GeocodeListingPayload struct {
	MLSNumber string `json:"mls_number"`
}

// NewGeocodeListingTask builds the queue task for one listing.
func NewGeocodeListingTask(mlsNumber string) (*asynq.Task, error) {
	payload, err := json.Marshal(GeocodeListingPayload{MLSNumber: mlsNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal geocode payload: %w", err)
	}
	return asynq.NewTask(TypeGeocodeListing, payload,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueGeocodeListing schedules geocoding without blocking the write path.
// Failures are logged and swallowed; coordinates are a progressive enhancement
// and must never fail an upload.
func EnqueueGeocodeListing(client *asynq.Client, mlsNumber string) {
	task, err := NewGeocodeListingTask(mlsNumber)
	if err != nil {
		config.Logger.Error("Failed to build geocode task",
			zap.String("mls_number", mlsNumber),
			zap.Error(err),
		)
		return
	}
	if _, err := client.Enqueue(task, asynq.Queue("geocoding")); err != nil {
		config.Logger.Warn("Failed to enqueue geocode task",
			zap.String("mls_number", mlsNumber),
			zap.Error(err),
		)
	}
}

// GeocodeListingProcessor handles queued geocode tasks.
type GeocodeListingProcessor struct {
	ListingRepo repositories.ListingRepository
	Geocoder    services.Geocoder
}

func (p *GeocodeListingProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload GeocodeListingPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal geocode payload: %v: %w", err, asynq.SkipRetry)
	}

	listing, err := p.ListingRepo.FindByMLSNumber(payload.MLSNumber)
	if err != nil {
		// The listing may have been removed between enqueue and processing
		return fmt.Errorf("failed to load listing %s: %w", payload.MLSNumber, err)
	}

	latitude, longitude, err := p.Geocoder.Geocode(ctx, listing.Address)
	if err != nil {
		return fmt.Errorf("failed to geocode listing %s: %w", payload.MLSNumber, err)
	}

	if err := p.ListingRepo.UpdateListingCoordinates(payload.MLSNumber, latitude, longitude); err != nil {
		return fmt.Errorf("failed to store coordinates for listing %s: %w", payload.MLSNumber, err)
	}

	config.Logger.Info("Geocoded listing",
		zap.String("mls_number", payload.MLSNumber),
		zap.String("latitude", latitude.String()),
		zap.String("longitude", longitude.String()),
	)
	return nil
}

// StartGeocodeWorker runs the asynq server for the geocoding queue in a
// goroutine and returns it so main can Shutdown on exit.
func StartGeocodeWorker(redisOpt asynq.RedisClientOpt, processor *GeocodeListingProcessor) *asynq.Server {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			"geocoding": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.Handle(TypeGeocodeListing, processor)

	go func() {
		if err := srv.Run(mux); err != nil {
			config.Logger.Error("Geocode worker stopped", zap.Error(err))
		}
	}()

	return srv
}
