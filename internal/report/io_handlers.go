package report

import (
	"fmt"
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/authctx"
	"github.com/cdktrenggalek/sihutan-backend/internal/dto"
	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"github.com/gofiber/fiber/v2"
)

// ExportBuilder produces the CSV document for one module. year == 0 means
// no year filter.
type ExportBuilder func(year int) ([]byte, error)

// ImportRunner maps parsed rows to records and persists the valid ones.
type ImportRunner func(rows []Row, actor workflow.Actor) (*ImportResult, error)

// CSVExportHandler returns the shared export endpoint: final records only,
// optional ?year= filter, attachment download.
func CSVExportHandler(module string, build ExportBuilder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := ParsePeriodQuery(c.Query("year"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}

		csvBytes, err := build(year)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to generate export"})
		}

		filename := fmt.Sprintf("%s-%s.csv", module, time.Now().Format("2006-01-02"))
		if year != 0 {
			filename = fmt.Sprintf("%s-%d.csv", module, year)
		}

		c.Set("Content-Type", "text/csv")
		c.Set("Content-Disposition", "attachment; filename="+filename)
		c.Set("Cache-Control", "no-cache")
		return c.Send(csvBytes)
	}
}

// CSVImportHandler returns the shared import endpoint: multipart "file"
// upload, row-independent processing, per-row error report.
func CSVImportHandler(run ImportRunner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := authctx.GetActor(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "file upload is required"})
		}
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "failed to open uploaded file"})
		}
		defer file.Close()

		rows, err := ParseCSV(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		if len(rows) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "file contains no data rows"})
		}

		result, err := run(rows, actor)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Import failed"})
		}
		return c.JSON(result)
	}
}
