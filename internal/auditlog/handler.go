package auditlog

import (
	"context"
	"net/http"

	"inventory/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HistoryReader interface {
	GetResourceLog(ctx context.Context, id string, resourceType string) ([]models.AuditLog, error)
}

// HistoryHandler serves the lifecycle history of an asset, oldest entry first.
type HistoryHandler struct {
	reader HistoryReader
	logger *zap.Logger
}

func NewHistoryHandler(reader HistoryReader, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{reader: reader, logger: logger}
}

func (h *HistoryHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/assets/:id/history", h.GetAssetHistory)
}

func (h *HistoryHandler) GetAssetHistory(c *gin.Context) {
	id := c.Param("id")
	logs, err := h.reader.GetResourceLog(c.Request.Context(), id, "asset")
	if err != nil {
		h.logger.Error("Unable to load asset history", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Unable to load asset history", "details": err.Error()})
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, logs)
}
