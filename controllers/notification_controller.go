package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dediosardie/dns-maynilad-vmms/services"
	"github.com/dediosardie/dns-maynilad-vmms/utils"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (nc *NotificationController) GetNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := nc.notifications.ListForUser(c.GetString("user_id"), limit)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (nc *NotificationController) GetStats(c *gin.Context) {
	stats, err := nc.notifications.Stats(c.GetString("user_id"))
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch notification stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	if err := nc.notifications.MarkRead(c.GetString("user_id"), c.Param("id")); err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to mark notification as read")
		return
	}
	utils.SendSuccess(c, "Notification marked as read", nil)
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	if err := nc.notifications.MarkAllRead(c.GetString("user_id")); err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to mark notifications as read")
		return
	}
	utils.SendSuccess(c, "All notifications marked as read", nil)
}
