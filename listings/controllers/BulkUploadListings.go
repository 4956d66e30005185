package controllers

import (
	"bytes"
	"encoding/json"
	"errors"

	"listings-backend/config"
	"listings-backend/db/models"
	"listings-backend/listings/services"
	"listings-backend/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// uploaderEmail resolves who to report errors to: the authenticated admin.
func uploaderEmail(c *fiber.Ctx) string {
	if payload, ok := c.Locals("user").(*token.Payload); ok {
		return payload.Email
	}
	return ""
}

// decodeBatchBody parses a JSON array of listing objects into raw rows. Every
// scalar is stringified so the normalization rules treat JSON input exactly
// like spreadsheet cells; numbers keep their textual form via json.Number.
func decodeBatchBody(body []byte) ([]services.RawRow, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var rawObjects []map[string]interface{}
	if err := decoder.Decode(&rawObjects); err != nil {
		return nil, errBadBatchBody
	}

	rows := make([]services.RawRow, 0, len(rawObjects))
	for _, obj := range rawObjects {
		row := make(services.RawRow, len(obj))
		for key, value := range obj {
			switch v := value.(type) {
			case string:
				row[key] = v
			case json.Number:
				row[key] = v.String()
			case bool:
				if v {
					row[key] = "true"
				} else {
					row[key] = "false"
				}
			case nil:
				row[key] = ""
			default:
				// Nested objects and arrays have no listing field meaning;
				// their JSON form is passed through for the error report.
				if encoded, err := json.Marshal(v); err == nil {
					row[key] = string(encoded)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// BulkUploadListings ingests a JSON array of listings, creating or updating
// each row by MLS number and reporting per-row failures.
func (lc *ListingController) BulkUploadListings(c *fiber.Ctx) error {
	rows, err := decodeBatchBody(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	result, err := lc.Batch.ProcessBatch(rows)
	if err != nil {
		if errors.Is(err, services.ErrBatchSize) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": services.ErrBatchSize.Error(),
				"error":   services.ErrBatchSize.Error(),
			})
		}
		if errors.Is(err, services.ErrStoreUnavailable) {
			// Report whatever completed before the store went away
			lc.afterBatchWrites(result)
			lc.reportBatchErrors(c, result, models.BulkAddedViaType, uploaderEmail(c))
			return storeUnavailableResponse(c, result)
		}
		config.Logger.Error("Bulk upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong",
			"error":   "An internal server error occurred.",
		})
	}

	lc.afterBatchWrites(result)
	downloadLink := lc.reportBatchErrors(c, result, models.BulkAddedViaType, uploaderEmail(c))

	success, message := services.SummarizeBatch(result)
	status := fiber.StatusOK
	if !success {
		status = fiber.StatusBadRequest
	}

	response := fiber.Map{
		"success": success,
		"message": message,
		"data":    result,
	}
	if downloadLink != "" {
		response["download_link"] = downloadLink
	}
	return c.Status(status).JSON(response)
}
