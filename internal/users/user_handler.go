package users

import (
	"context"
	"net/http"
	"strings"

	"inventory/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type AssigneeReader interface {
	AssigneeSummaries(ctx context.Context) []models.Assignee
	AssetsForAssignee(ctx context.Context, name string) []models.Asset
}

type UsersHandler struct {
	assets AssigneeReader
}

func NewUsersHandler(assets AssigneeReader) *UsersHandler {
	return &UsersHandler{assets: assets}
}

func (h *UsersHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/users", h.GetUsers)
	router.GET("/users/:name/assets", h.GetUserAssets)
}

func (h *UsersHandler) GetUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.assets.AssigneeSummaries(c.Request.Context()))
}

func (h *UsersHandler) GetUserAssets(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind user name"})
		return
	}

	assets := h.assets.AssetsForAssignee(c.Request.Context(), name)
	c.JSON(http.StatusOK, gin.H{
		"name": name,
		"assets": lo.Map(assets, func(asset models.Asset, _ int) models.AssetView {
			return asset.View()
		}),
	})
}
