// file: router/router.go
package router

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go-student-dashboard/config"
	"go-student-dashboard/controllers"
	"go-student-dashboard/logger"
	"go-student-dashboard/middleware"
	"go-student-dashboard/services"
	"go-student-dashboard/websocket"
)

// Deps are the collaborators the engine is built from.
type Deps struct {
	Config      config.Config
	Credentials services.CredentialServiceInterface
	Records     services.RecordRepositoryInterface
	Files       services.FileStore
	Metrics     services.MetricsPublisher
	Hub         *websocket.Hub
	Readiness   *middleware.Readiness

	// GateFn defaults to the cookie-backed gate.
	GateFn middleware.GateFunc
}

// New builds the engine: sessions, the loading gate, templates, the route
// table behind the login guard and the not-found fallback.
func New(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config
	gateFn := deps.GateFn
	if gateFn == nil {
		gateFn = middleware.CookieGate
	}
	readiness := deps.Readiness
	if readiness == nil {
		readiness = middleware.NewReadiness()
	}

	var push controllers.UserNotifiers
	if deps.Hub != nil {
		push = deps.Hub
	}
	pages := controllers.NewPageController(cfg.ApplicationURL, cfg.WebsocketURL, NavLinks())
	auth := controllers.NewAuthController(deps.Credentials, deps.Metrics, gateFn)
	achievements := controllers.NewAchievementController(deps.Records, deps.Files, deps.Metrics, push, pages)

	routes := Routes(auth, pages, achievements)
	if err := Validate(routes); err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	// Paths match exactly; /Coding and /coding/ fall through to not-found.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	engine.Use(sessions.Sessions(cfg.SessionName, store))
	engine.Use(middleware.LoadingGate(readiness))

	engine.SetFuncMap(controllers.TemplateFuncs())
	templates := filepath.Join(cfg.TemplatesDir, "*.html")
	logger.Debug.Printf("[router] Loading templates from %s", templates)
	engine.LoadHTMLGlob(templates)
	engine.Static("/static", cfg.StaticDir)

	engine.GET("/health", controllers.Health)
	engine.POST("/login", auth.PerformLogin)
	engine.GET("/logout", auth.Logout)

	protected := engine.Group("/", middleware.AuthRequired(gateFn))
	for _, r := range routes {
		if r.Protected {
			protected.GET(r.Path, r.Page)
			continue
		}
		engine.GET(r.Path, middleware.GuestOnly(gateFn), r.Page)
	}

	protected.GET("/achievements/new", achievements.NewForm)
	protected.POST("/achievements/new", achievements.Submit)
	protected.GET("/api/achievements", achievements.APIList)
	protected.Static("/uploads", cfg.UploadDir)
	protected.GET("/qrcode", pages.GetQRCode)
	if deps.Hub != nil {
		notifications := &controllers.NotificationController{Hub: deps.Hub}
		protected.GET("/notifications", notifications.Serve)
	}

	engine.NoRoute(pages.NotFound)
	logger.Info.Printf("[router] Registered %d dashboard routes", len(routes))
	return engine, nil
}
