package googlesheets

import (
	"context"
	"net/http"

	"inventory/internal/inventory/reports"
	"inventory/pkg/models"
	"inventory/pkg/notify"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Exporter interface {
	Export(ctx context.Context, assets []models.Asset) (*ExportResult, error)
}

// AssetSource reads the active set and reports backend failures.
type AssetSource interface {
	LoadActive(ctx context.Context) ([]models.Asset, error)
}

type GoogleSheetsHandler struct {
	exporter Exporter
	assets   AssetSource
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewGoogleSheetsHandler(exporter Exporter, assets AssetSource, notifier notify.Notifier, logger *zap.Logger) *GoogleSheetsHandler {
	if notifier == nil {
		notifier = notify.Nop()
	}
	return &GoogleSheetsHandler{
		exporter: exporter,
		assets:   assets,
		notifier: notifier,
		logger:   logger,
	}
}

func (h *GoogleSheetsHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/reports/sheets", h.exportAssets)
}

func (h *GoogleSheetsHandler) exportAssets(c *gin.Context) {
	var query reports.Query
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&query); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}
	}

	selection, err := query.Resolve()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range", "details": err.Error()})
		return
	}

	active, err := h.assets.LoadActive(c.Request.Context())
	if err != nil {
		h.logger.Error("Error loading assets for export", zap.Error(err))
		h.notifier.Notify(notify.Failure("Export failed", "The inventory could not be loaded, the spreadsheet was left unchanged."))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Unable to load assets", "details": err.Error()})
		return
	}

	assets := selection.Apply(active)
	result, err := h.exporter.Export(c.Request.Context(), assets)
	if err != nil {
		h.logger.Error("Error exporting assets to Google Sheets", zap.Error(err))
		h.notifier.Notify(notify.Failure("Export failed", "The inventory could not be exported to Google Sheets."))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to export assets", "details": err.Error()})
		return
	}

	h.notifier.Notify(notify.Success("Export complete", "The inventory has been exported to Google Sheets."))
	c.JSON(http.StatusOK, result)
}
