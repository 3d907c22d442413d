package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/leadpilot/leadpilot/pkg/api/errors"
	"github.com/leadpilot/leadpilot/pkg/export"
	"github.com/leadpilot/leadpilot/pkg/metrics"
	"github.com/leadpilot/leadpilot/pkg/models"
)

// ExportHandler handles listing exports
type ExportHandler struct {
	exportService *export.Service
	metrics       *metrics.Metrics
	validator     *validator.Validate
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *export.Service, m *metrics.Metrics) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		metrics:       m,
		validator:     validator.New(),
	}
}

// Create godoc
// @Summary Export the filtered listing to CSV or Excel
// @Tags Exports
// @Accept json
// @Produce json
// @Param request body models.ExportRequest true "Export parameters"
// @Success 201 {object} models.ExportResponse "Export artifact"
// @Router /exports [post]
func (h *ExportHandler) Create(c echo.Context) error {
	var req models.ExportRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	resp, err := h.exportService.Export(c.Request().Context(), req)
	if err != nil {
		return errors.InternalError(c, err)
	}

	h.metrics.ExportsCreated.Inc()
	return c.JSON(http.StatusCreated, resp)
}

// Download godoc
// @Summary Download a previously exported file
// @Tags Exports
// @Produce octet-stream
// @Param file path string true "Export filename"
// @Success 200 {file} file "Export file"
// @Failure 404 {object} models.ErrorResponse "File not found"
// @Router /exports/{file} [get]
func (h *ExportHandler) Download(c echo.Context) error {
	path := h.exportService.FilePath(c.Param("file"))
	return c.Attachment(path, c.Param("file"))
}
