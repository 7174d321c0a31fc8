// Package controllers file: controllers/page_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go-student-dashboard/logger"
	"go-student-dashboard/services"
)

// NavLink is one entry of the sidebar navigation.
type NavLink struct {
	Path  string
	Title string
}

// ---------------- Page Controller ----------------

// PageController renders the layout-wrapped dashboard pages.
type PageController struct {
	ApplicationURL string
	WebsocketURL   string
	Nav            []NavLink
}

// NewPageController creates a PageController.
func NewPageController(appURL, wsURL string, nav []NavLink) *PageController {
	logger.Debug.Printf("NewPageController: ApplicationURL=%s, WebsocketURL=%s", appURL, wsURL)
	return &PageController{ApplicationURL: appURL, WebsocketURL: wsURL, Nav: nav}
}

// Layout returns the data every page inside the main layout needs.
// Pending toasts are drained from the session.
func (pc *PageController) Layout(c *gin.Context, title string) gin.H {
	return gin.H{
		"Title":        title,
		"Path":         c.Request.URL.Path,
		"Nav":          pc.Nav,
		"User":         currentUser(c),
		"Toasts":       services.PopFlashes(sessions.Default(c)),
		"WebsocketURL": pc.WebsocketURL,
	}
}

// RenderPage returns a handler that renders a placeholder page titled title.
func (pc *PageController) RenderPage(title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "page.html", pc.Layout(c, title))
	}
}

// NotFound renders the catch-all view whatever the session state.
func (pc *PageController) NotFound(c *gin.Context) {
	logger.Debug.Printf("NotFound: %s %s", c.Request.Method, c.Request.URL.Path)
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{
		"Title": "Page not found",
		"Path":  c.Request.URL.Path,
	})
}

// Health answers liveness probes.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// GetQRCode serves a PNG QR code linking to the dashboard.
func (pc *PageController) GetQRCode(c *gin.Context) {
	logger.Info.Println("GetQRCode: Generating QR code")

	qrBytes, err := services.GenerateQRCode(pc.ApplicationURL, 300, 300, nil)
	if err != nil {
		logger.Error.Printf("GetQRCode: Error generating QR code: %v", err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}

	c.Header("Content-Disposition", "inline; filename=\"qrcode.png\"")
	c.Data(http.StatusOK, "image/png", qrBytes)
}
