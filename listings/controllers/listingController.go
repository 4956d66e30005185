package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"listings-backend/config"
	"listings-backend/db/models"
	"listings-backend/internal/tasks"
	bleve_repositories "listings-backend/bleve/repositories"
	"listings-backend/listings/repositories"
	"listings-backend/listings/services"
	"listings-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ListingController carries the dependencies shared by the listing endpoints.
type ListingController struct {
	ListingRepo repositories.ListingRepository
	Batch       *services.BatchProcessor
	Ctx         context.Context
	RedisClient *redis.Client
	BleveRepo   bleve_repositories.BleveRepositoryInterface
	AsynqClient *asynq.Client
}

// classifyRowError buckets a report message into the persisted error types.
func classifyRowError(message string) models.BulkUploadErrorType {
	if message == "MLS number already exists" {
		return models.DuplicateErrorType
	}
	if message == "Invalid data format" || message == services.ErrStoreUnavailable.Error() {
		return models.ReconciliationErrorType
	}
	return models.ValidationErrorType
}

// buildErrorRows converts the batch report's row errors into audit records.
func buildErrorRows(rowErrors []services.RowError, addedVia models.AddedViaType, createdBy string) []models.BulkUploadErrorListing {
	rows := make([]models.BulkUploadErrorListing, 0, len(rowErrors))
	for _, rowErr := range rowErrors {
		var rawRow []byte
		if rowErr.RawRow != nil {
			if encoded, err := json.Marshal(rowErr.RawRow); err == nil {
				rawRow = encoded
			}
		}
		rows = append(rows, models.BulkUploadErrorListing{
			ID:        uuid.New(),
			MLSNumber: rowErr.MLSNumber,
			RowIndex:  rowErr.Row,
			Reason:    rowErr.Error,
			RawRow:    rawRow,
			ErrorType: classifyRowError(rowErr.Error),
			AddedVia:  addedVia,
			CreatedBy: createdBy,
		})
	}
	return rows
}

// errorReportRow flattens a row error for the generated Excel report.
type errorReportRow struct {
	Row       int
	MLSNumber string
	Reason    string
}

// reportBatchErrors persists the rejected rows, generates the Excel report and
// emails it to the uploader. Every step is best effort; a report failure never
// fails the upload that produced it.
func (lc *ListingController) reportBatchErrors(c *fiber.Ctx, result *services.BatchResult, addedVia models.AddedViaType, uploaderEmail string) string {
	if len(result.Errors) == 0 {
		return ""
	}

	errorRows := buildErrorRows(result.Errors, addedVia, uploaderEmail)
	if err := lc.ListingRepo.LogBulkUploadErrors(errorRows); err != nil {
		config.Logger.Warn("Failed to log bulk upload error rows", zap.Error(err))
	}

	reportRows := make([]errorReportRow, 0, len(result.Errors))
	for _, rowErr := range result.Errors {
		reportRows = append(reportRows, errorReportRow{
			Row:       rowErr.Row,
			MLSNumber: rowErr.MLSNumber,
			Reason:    rowErr.Error,
		})
	}

	filePath, err := utils.GenerateExcel(reportRows, "listing_upload_errors", []string{"Row", "MLSNumber", "Reason"})
	if err != nil {
		config.Logger.Warn("Failed to generate error report Excel", zap.Error(err))
		return ""
	}

	downloadLink := utils.GetDownloadURL(c, filePath)

	if uploaderEmail == "" {
		return downloadLink
	}

	subject := "Listing Upload Errors - " + time.Now().Format("2006-01-02 15:04:05")
	message := "Please find the attached report with the listing rows that failed to process."
	if err := utils.SendEmail(uploaderEmail, message, subject, downloadLink); err != nil {
		config.Logger.Warn("Failed to send error report email", zap.Error(err))
		return downloadLink
	}

	active := true
	emailLog := models.EmailLog{
		ID:             uuid.New(),
		Recipient:      uploaderEmail,
		Subject:        subject,
		Message:        message,
		SentAt:         utils.Today(),
		Active:         &active,
		AttachmentPath: downloadLink,
	}
	if err := lc.ListingRepo.LogEmailSent(&emailLog); err != nil {
		config.Logger.Warn("Failed to log error report email", zap.Error(err))
	}

	return downloadLink
}

// afterBatchWrites indexes the applied rows, schedules geocoding for creates
// and drops the cached listing responses. None of it can fail the request.
func (lc *ListingController) afterBatchWrites(result *services.BatchResult) {
	for _, applied := range result.Applied {
		if lc.BleveRepo != nil {
			if err := lc.BleveRepo.IndexSingleListing(*applied.Listing); err != nil {
				config.Logger.Warn("Failed to index listing after batch write",
					zap.String("mls_number", applied.Listing.MLSNumber),
					zap.Error(err),
				)
			}
		}
		if lc.AsynqClient != nil && applied.Action == services.RowCreated {
			tasks.EnqueueGeocodeListing(lc.AsynqClient, applied.Listing.MLSNumber)
		}
	}

	if len(result.Applied) > 0 && lc.RedisClient != nil {
		utils.InvalidateCacheAsync(lc.RedisClient, "listings")
	}
}

// storeUnavailableResponse is the distinct infrastructure-failure reply. The
// partial tallies ride along so the caller knows how far the batch got.
func storeUnavailableResponse(c *fiber.Ctx, result *services.BatchResult) error {
	payload := fiber.Map{
		"success": false,
		"message": "Listing store unavailable. Bulk upload aborted.",
		"error":   services.ErrStoreUnavailable.Error(),
	}
	if result != nil {
		payload["data"] = result
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(payload)
}

var errBadBatchBody = errors.New("request body must be a JSON array of listing objects")
