package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotificationsHandler struct {
	feed *Feed
}

func NewNotificationsHandler(feed *Feed) *NotificationsHandler {
	return &NotificationsHandler{feed: feed}
}

func (h *NotificationsHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/notifications", h.GetNotifications)
}

func (h *NotificationsHandler) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.Recent())
}
