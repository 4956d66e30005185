package controllers

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"listings-backend/db/models"
	"listings-backend/listings/services"
	"listings-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// rowsFromSheet zips the header row with each data row. Headers pass through
// the alias table later, here they are kept verbatim; short rows leave their
// trailing fields absent rather than blank.
func rowsFromSheet(sheet [][]string) ([]services.RawRow, error) {
	if len(sheet) < 2 {
		return nil, fmt.Errorf("spreadsheet must contain a header row and at least one data row")
	}

	headers := sheet[0]
	rows := make([]services.RawRow, 0, len(sheet)-1)
	for _, cells := range sheet[1:] {
		row := make(services.RawRow, len(headers))
		for i, header := range headers {
			if strings.TrimSpace(header) == "" {
				continue
			}
			if i < len(cells) {
				row[header] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// BulkUploadListingsFile ingests an Excel export of listings. The first sheet
// is read, its header row mapped through the same alias rules as JSON keys,
// and every data row goes through the shared batch pipeline.
func (lc *ListingController) BulkUploadListingsFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to get file",
			"error":   "A spreadsheet file is required in the 'file' field.",
		})
	}

	tempFilePath := fmt.Sprintf("./tmp/%s", file.Filename)
	if err := utils.EnsureDirectoryExists(tempFilePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save file",
			"error":   "An internal server error occurred.",
		})
	}
	if err := c.SaveFile(file, tempFilePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save file",
			"error":   "An internal server error occurred.",
		})
	}
	defer os.Remove(tempFilePath)

	sheet, err := utils.ReadExcelRows(tempFilePath)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to read spreadsheet",
			"error":   err.Error(),
		})
	}

	rows, err := rowsFromSheet(sheet)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid spreadsheet",
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
			lc.afterBatchWrites(result)
			lc.reportBatchErrors(c, result, models.FileAddedViaType, uploaderEmail(c))
			return storeUnavailableResponse(c, result)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong",
			"error":   "An internal server error occurred.",
		})
	}

	lc.afterBatchWrites(result)
	downloadLink := lc.reportBatchErrors(c, result, models.FileAddedViaType, uploaderEmail(c))

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
