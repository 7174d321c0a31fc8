// Package controllers file: controllers/notification_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"
	"go-student-dashboard/websocket"
)

// NotificationController upgrades /notifications to the toast websocket.
type NotificationController struct {
	Hub *websocket.Hub
}

// Serve attaches the connection to the logged-in user.
func (nc *NotificationController) Serve(c *gin.Context) {
	nc.Hub.ServeWs(c.Writer, c.Request, currentUser(c))
}
