package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/haldorr/pennywise-backend/internal/porting"
	"github.com/haldorr/pennywise-backend/internal/repository/storage"
	"github.com/haldorr/pennywise-backend/internal/store"
)

// maxImportSize caps uploaded CSV files at 5 MiB.
const maxImportSize = 5 << 20

// PortingHandler handles CSV import and export requests
type PortingHandler struct {
	storeAccessor
	archive storage.ArchiveRepository
	logger  zerolog.Logger
}

// NewPortingHandler creates a new PortingHandler
func NewPortingHandler(stores *store.Manager, archive storage.ArchiveRepository, logger zerolog.Logger) *PortingHandler {
	return &PortingHandler{
		storeAccessor: storeAccessor{stores: stores},
		archive:       archive,
		logger:        logger,
	}
}

// ExportResponseHeaderArchiveURL carries the S3 location of an archived export.
const ExportResponseHeaderArchiveURL = "X-Archive-Url"

// ImportTransactions handles POST /api/v1/porting/import
//
// The CSV file is expected in the multipart form field "file".
func (h *PortingHandler) ImportTransactions(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: "A CSV file is required in the 'file' form field"},
		})
	}
	if fileHeader.Size > maxImportSize {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: "File exceeds the 5 MiB import limit"},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Stringer("user_id", s.UserID()).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	importer := porting.NewImporter(s, h.logger)
	summary, err := importer.Import(file)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: fmt.Sprintf("Malformed CSV: %v", err)},
		})
	}

	log.Info().
		Stringer("user_id", s.UserID()).
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Msg("Transactions imported")

	return c.JSON(http.StatusOK, summary)
}

// ExportTransactions handles GET /api/v1/porting/export
//
// The response is a CSV attachment. With ?archive=true a copy is uploaded to
// the archive store and its URL returned in the X-Archive-Url header.
func (h *PortingHandler) ExportTransactions(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	var buf bytes.Buffer
	if err := porting.Export(&buf, s.Transactions(), s.Accounts(), s.Categories()); err != nil {
		log.Error().Err(err).Stringer("user_id", s.UserID()).Msg("Failed to export transactions")
		return NewInternalError(c, "Failed to export transactions")
	}

	exportedAt := time.Now().UTC()

	if c.QueryParam("archive") == "true" {
		objectPath := storage.GenerateObjectPath(s.UserID(), exportedAt)
		url, err := h.archive.Upload(c.Request().Context(), objectPath, bytes.NewReader(buf.Bytes()), "text/csv", int64(buf.Len()))
		if err != nil {
			log.Error().Err(err).Stringer("user_id", s.UserID()).Str("object_path", objectPath).Msg("Failed to archive export")
			return NewInternalError(c, "Failed to archive export")
		}
		if url != "" {
			c.Response().Header().Set(ExportResponseHeaderArchiveURL, url)
		}
	}

	filename := fmt.Sprintf("transactions_%s.csv", exportedAt.Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
