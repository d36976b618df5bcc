package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AYATON2/shoes-sub000/models"
	"github.com/AYATON2/shoes-sub000/services"
)

type NotificationController struct {
	notificationService *services.NotificationService
}

func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List handles GET /notifications.
func (nc *NotificationController) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter := models.NotificationFilter{
		UnreadOnly: c.Query("unread") == "true",
		Page:       page,
		PageSize:   pageSize,
	}

	notifications, total, svcErr := nc.notificationService.List(c.Request.Context(), actor, filter)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
	})
}

// MarkRead handles PUT /notifications/:id/read.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if svcErr := nc.notificationService.MarkRead(c.Request.Context(), actor, id); svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead handles PUT /notifications/read-all.
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if svcErr := nc.notificationService.MarkAllRead(c.Request.Context(), actor); svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// Delete handles DELETE /notifications/:id.
func (nc *NotificationController) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if svcErr := nc.notificationService.Delete(c.Request.Context(), actor, id); svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
