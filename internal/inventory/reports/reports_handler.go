package reports

import (
	"context"
	"net/http"

	"inventory/pkg/models"

	"github.com/gin-gonic/gin"
)

type AssetLister interface {
	ListActive(ctx context.Context) []models.Asset
}

type ReportsHandler struct {
	assets AssetLister
}

func NewReportsHandler(assets AssetLister) *ReportsHandler {
	return &ReportsHandler{assets: assets}
}

func (h *ReportsHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/reports/assets", h.GetAssetsReport)
}

// GetAssetsReport returns the active assets updated within the requested range, ready
// to be handed to a file exporter.
func (h *ReportsHandler) GetAssetsReport(c *gin.Context) {
	var query Query
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	selection, err := query.Resolve()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range", "details": err.Error()})
		return
	}

	assets := selection.Apply(h.assets.ListActive(c.Request.Context()))
	c.JSON(http.StatusOK, gin.H{
		"range":  selection.Range,
		"count":  len(assets),
		"assets": assets,
	})
}
