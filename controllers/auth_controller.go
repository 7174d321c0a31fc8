// Package controllers controllers/auth_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go-student-dashboard/logger"
	"go-student-dashboard/middleware"
	"go-student-dashboard/services"
)

// userKey holds the logged-in username; records are kept per user.
const userKey = "user"

// ---------------- Auth Controller ----------------

// AuthController handles the login view, login submission and logout.
type AuthController struct {
	Credentials services.CredentialServiceInterface
	Metrics     services.MetricsPublisher
	GateFn      middleware.GateFunc
}

// NewAuthController wires the auth handlers. A nil publisher disables metrics.
func NewAuthController(creds services.CredentialServiceInterface, metrics services.MetricsPublisher, gateFn middleware.GateFunc) *AuthController {
	if metrics == nil {
		metrics = services.NoopPublisher{}
	}
	return &AuthController{Credentials: creds, Metrics: metrics, GateFn: gateFn}
}

// ShowLoginPage renders the login form.
func (ac *AuthController) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// PerformLogin checks the submitted credentials and raises the logged-in flag.
func (ac *AuthController) PerformLogin(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		logger.Warn.Println("PerformLogin: Missing username or password")
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Title":    "Login",
			"Username": username,
			"Error":    "Please fill in all fields.",
		})
		return
	}

	if !ac.Credentials.Authenticate(username, password) {
		logger.Warn.Printf("PerformLogin: Invalid login attempt for user %s", username)
		ac.Metrics.PublishLogin(false)
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Title":    "Login",
			"Username": username,
			"Error":    "Invalid username or password.",
		})
		return
	}

	session := sessions.Default(c)
	session.Set(userKey, username)
	if err := middleware.Gate(c, ac.GateFn).Login(); err != nil {
		logger.Error.Printf("PerformLogin: Failed to save session: %v", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Title": "Login",
			"Error": "Internal error, please try again.",
		})
		return
	}

	ac.Metrics.PublishLogin(true)
	logger.Info.Printf("PerformLogin: User %s logged in", username)
	c.Redirect(http.StatusFound, "/")
}

// Logout lowers the logged-in flag and returns to the login view.
func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	user, _ := session.Get(userKey).(string)
	session.Delete(userKey)

	if err := middleware.Gate(c, ac.GateFn).Logout(); err != nil {
		logger.Error.Printf("Logout: Error saving session during logout: %v", err)
	} else {
		logger.Info.Printf("Logout: User %q logged out", user)
	}
	c.Redirect(http.StatusFound, "/login")
}

// currentUser returns the username stored at login, or "" when absent.
func currentUser(c *gin.Context) string {
	user, _ := sessions.Default(c).Get(userKey).(string)
	return user
}
