package assets

import (
	"errors"
	"net/http"

	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type AssetsHandler struct {
	service *AssetService
}

func NewAssetsHandler(service *AssetService) *AssetsHandler {
	return &AssetsHandler{service: service}
}

func (h *AssetsHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/assets", h.GetAssets)
	router.POST("/assets", h.CreateAsset)
	router.GET("/assets/:id", h.GetAsset)
	router.PUT("/assets/:id", h.UpdateAsset)
	router.DELETE("/assets/:id", h.SoftDeleteAsset)
	router.PUT("/assets/:id/licenses", h.SetLicenseAssignments)

	router.GET("/trash", h.GetTrash)
	router.POST("/trash/:id/restore", h.RestoreAsset)
	router.DELETE("/trash/:id", h.PurgeAsset)

	router.GET("/statistics", h.GetStatistics)
}

func (h *AssetsHandler) GetAssets(c *gin.Context) {
	var filter Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	assets := h.service.Search(c.Request.Context(), filter)
	c.JSON(http.StatusOK, lo.Map(assets, func(asset models.Asset, _ int) models.AssetView {
		return asset.View()
	}))
}

func (h *AssetsHandler) GetAsset(c *gin.Context) {
	asset, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err, "Unable to get asset")
		return
	}

	c.JSON(http.StatusOK, asset.View())
}

func (h *AssetsHandler) CreateAsset(c *gin.Context) {
	var req models.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err, "Failed to create asset")
		return
	}

	c.JSON(http.StatusCreated, asset.View())
}

func (h *AssetsHandler) UpdateAsset(c *gin.Context) {
	var req models.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err, "Failed to update asset")
		return
	}

	c.JSON(http.StatusOK, asset.View())
}

func (h *AssetsHandler) SoftDeleteAsset(c *gin.Context) {
	if err := h.service.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err, "Failed to move asset to trash")
		return
	}

	c.Status(http.StatusNoContent)
}

type licenseAssignmentsRequest struct {
	Usernames []string `json:"usernames"`
}

func (h *AssetsHandler) SetLicenseAssignments(c *gin.Context) {
	var req licenseAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.service.SetLicenseAssignments(c.Request.Context(), c.Param("id"), req.Usernames)
	if err != nil {
		AbortWithError(c, err, "Failed to update license assignments")
		return
	}

	c.JSON(http.StatusOK, asset.View())
}

func (h *AssetsHandler) GetTrash(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListTrashed(c.Request.Context()))
}

func (h *AssetsHandler) RestoreAsset(c *gin.Context) {
	if err := h.service.Restore(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err, "Failed to restore asset")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AssetsHandler) PurgeAsset(c *gin.Context) {
	if err := h.service.Purge(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err, "Failed to delete asset")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AssetsHandler) GetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Statistics(c.Request.Context()))
}

// AbortWithError writes the JSON error body for err with the status code its kind
// maps to.
func AbortWithError(c *gin.Context, err error, message string) {
	c.AbortWithStatusJSON(StatusCode(err), gin.H{"error": message, "details": err.Error()})
}

func StatusCode(err error) int {
	var uniqueErr *custom_error.UniqueViolationError
	switch {
	case errors.Is(err, custom_error.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, custom_error.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &uniqueErr):
		return http.StatusConflict
	case custom_error.IsBackendError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
