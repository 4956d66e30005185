package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"listings-backend/config"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	reportFileTTL       = 7 * 24 * time.Hour  // generated error reports
	uploadErrorRowsTTL  = 90 * 24 * time.Hour // persisted rejection rows
	reportFilesDir      = "./public/files"
	listingsCachePrefix = "listings"
)

// UploadErrorPurger is the slice of the listing repository the cleanup job needs.
type UploadErrorPurger interface {
	PurgeUploadErrorsBefore(cutoff time.Time) (int64, error)
}

// CleanupExpiredFiles removes the file when it is older than the TTL.
func CleanupExpiredFiles(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
	}
	return nil
}

// CleanupAllExpired removes stale report files, old rejection rows and the
// listings response cache.
func CleanupAllExpired(purger UploadErrorPurger, redisClient *redis.Client) error {
	files, err := os.ReadDir(reportFilesDir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error reading files directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filePath := fmt.Sprintf("%s/%s", reportFilesDir, file.Name())
		if err := CleanupExpiredFiles(filePath, reportFileTTL); err != nil {
			config.Logger.Warn("Error cleaning up report file", zap.String("path", filePath), zap.Error(err))
		}
	}

	purged, err := purger.PurgeUploadErrorsBefore(time.Now().Add(-uploadErrorRowsTTL))
	if err != nil {
		return fmt.Errorf("error purging old upload error rows: %v", err)
	}
	if purged > 0 {
		config.Logger.Info("Purged old bulk upload error rows", zap.Int64("count", purged))
	}

	if err := InvalidateCache(context.Background(), redisClient, listingsCachePrefix); err != nil {
		return fmt.Errorf("error cleaning up cache: %v", err)
	}

	return nil
}

// RunScheduledCleanup runs the cleanup task daily at 1 AM.
func RunScheduledCleanup(purger UploadErrorPurger, redisClient *redis.Client) *cron.Cron {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		config.Logger.Info("Running scheduled cleanup task")
		if err := CleanupAllExpired(purger, redisClient); err != nil {
			config.Logger.Error("Scheduled cleanup failed", zap.Error(err))
		}
	})

	c.Start()
	return c
}
