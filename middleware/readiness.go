// File: middleware/readiness.go
package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go-student-dashboard/logger"
)

// loadingPage is inlined so it renders before templates are trusted.
const loadingPage = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><meta http-equiv="refresh" content="2">
<title>Loading…</title></head>
<body><div class="loading" role="status">Loading…</div></body></html>`

// Readiness is a one-way startup latch.
type Readiness struct {
	once  sync.Once
	ready atomic.Bool
}

// NewReadiness returns a latch in the loading state.
func NewReadiness() *Readiness {
	return &Readiness{}
}

// MarkReady leaves the loading state. Later calls do nothing.
func (r *Readiness) MarkReady() {
	r.once.Do(func() {
		r.ready.Store(true)
		logger.Info.Println("[Readiness] Startup complete; serving requests")
	})
}

// IsReady reports whether MarkReady has run.
func (r *Readiness) IsReady() bool {
	return r.ready.Load()
}

// LoadingGate answers every request with the loading placeholder until r is
// ready. /health is always passed through.
func LoadingGate(r *Readiness) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.IsReady() || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		c.Header("Retry-After", "2")
		c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", []byte(loadingPage))
		c.Abort()
	}
}
