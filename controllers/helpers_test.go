// file: controllers/helpers_test.go
package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go-student-dashboard/middleware"
	"go-student-dashboard/services"
	"golang.org/x/crypto/bcrypt"
)

const testSessionName = "testsession"

// setupTestRouter creates a new Gin engine with session middleware and fake HTML templates.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions(testSessionName, store))

	// Create minimal templates to avoid panics during testing.
	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))
	return router
}

// createDummyTemplates writes a set of minimal HTML templates to the provided directory.
func createDummyTemplates(dir string) error {
	templates := map[string]string{
		"login.html":     `<html><body>login {{.Error}}</body></html>`,
		"page.html":      `<html><body>page {{.Title}}{{range .Toasts}} toast:{{.}}{{end}}</body></html>`,
		"not_found.html": `<html><body>not found {{.Path}}</body></html>`,
		"achievements.html": `<html><body>achievements` +
			`{{range .Hackathons}} hackathon:{{.Name}}{{end}}` +
			`{{range .Competitions}} competition:{{.Name}}{{end}}` +
			`{{range .Papers}} paper:{{.Title}}{{end}}` +
			`{{range .Toasts}} toast:{{.}}{{end}}</body></html>`,
		"achievement_form.html": `<html><body>form {{.Type}} accept={{.Accept}}` +
			`{{if .ShowTeamName}} teamName{{end}}` +
			`{{range $k, $v := .Errors}} error:{{$k}}={{$v}}{{end}}</body></html>`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// SetSession sets the given key/value pairs in the session using a helper route
// and returns the session cookie that can be attached to subsequent test requests.
func SetSession(router *gin.Engine, route string, data map[string]interface{}) *http.Cookie {
	router.GET(route, func(c *gin.Context) {
		session := sessions.Default(c)
		for key, value := range data {
			session.Set(key, value)
		}
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return sessionCookie(w)
}

// loggedInSession is the session a successful login leaves behind.
func loggedInSession(router *gin.Engine, user string) *http.Cookie {
	return SetSession(router, "/test/login-as-"+user, map[string]interface{}{
		services.LoggedInKey: "true",
		userKey:              user,
	})
}

// sessionCookie returns the last session cookie written, which carries the
// final state when a handler saved more than once.
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == testSessionName {
			found = c
		}
	}
	return found
}

// serve runs req through router, attaching cookie when non-nil.
func serve(router *gin.Engine, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// guarded registers handler behind the cookie-backed login guard.
func guarded(router *gin.Engine, method, path string, handler gin.HandlerFunc) {
	router.Handle(method, path, middleware.AuthRequired(middleware.CookieGate), handler)
}

// hashPassword hashes the given password using bcrypt.
// This helper function is used by tests to prepare expected hashed values.
func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic("failed to hash password: " + err.Error())
	}
	return string(hashed)
}
