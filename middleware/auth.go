// Package middleware provides request filters for the dashboard.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go-student-dashboard/logger"
	"go-student-dashboard/services"
)

// gateContextKey caches the request's gate so handlers see the same instance.
const gateContextKey = "sessionGate"

// GateFunc builds the session gate for a request.
type GateFunc func(c *gin.Context) services.SessionGate

// CookieGate reads the logged-in flag from the request's cookie session.
func CookieGate(c *gin.Context) services.SessionGate {
	return services.NewSessionGate(services.NewCookieStore(sessions.Default(c)))
}

// Gate returns the gate for this request, building it once with gateFn.
func Gate(c *gin.Context, gateFn GateFunc) services.SessionGate {
	if g, ok := c.Get(gateContextKey); ok {
		if gate, ok := g.(services.SessionGate); ok {
			return gate
		}
	}
	if gateFn == nil {
		gateFn = CookieGate
	}
	gate := gateFn(c)
	c.Set(gateContextKey, gate)
	return gate
}

// -------------- authentication middleware --------------

// AuthRequired redirects to /login unless the session is logged in.
//
//	protected := router.Group("/", AuthRequired(CookieGate))
func AuthRequired(gateFn GateFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Gate(c, gateFn).IsAuthenticated() {
			logger.Debug.Printf("[AuthRequired] Not logged in; redirecting %s to /login", c.Request.URL.Path)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GuestOnly sends logged-in visitors of the login view to the dashboard home.
func GuestOnly(gateFn GateFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Gate(c, gateFn).IsAuthenticated() {
			logger.Debug.Println("[GuestOnly] Already logged in; redirecting to /")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
