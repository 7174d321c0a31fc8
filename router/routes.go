// Package router assembles the dashboard's gin engine.
// file: router/routes.go
package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go-student-dashboard/controllers"
)

// Route is one navigable path of the dashboard.
type Route struct {
	Path      string
	Title     string
	Protected bool
	Page      gin.HandlerFunc
}

// dashboardPages lists the pages rendered inside the main layout, in sidebar order.
var dashboardPages = []controllers.NavLink{
	{Path: "/", Title: "Dashboard"},
	{Path: "/coding", Title: "Coding Platform"},
	{Path: "/learning", Title: "Learning"},
	{Path: "/github", Title: "GitHub"},
	{Path: "/achievements", Title: "Achievements"},
	{Path: "/academics", Title: "Academics"},
	{Path: "/resume", Title: "Resume"},
	{Path: "/swot", Title: "SWOT"},
	{Path: "/calendar", Title: "Calendar"},
	{Path: "/ai-guidance", Title: "AI Guidance"},
	{Path: "/pomodoro", Title: "Pomodoro"},
	{Path: "/todo", Title: "To-Do List"},
	{Path: "/certifications", Title: "Certifications"},
	{Path: "/internships", Title: "Internships"},
	{Path: "/resources", Title: "Learning Resources"},
	{Path: "/interviews", Title: "Mock Interviews"},
	{Path: "/opportunities", Title: "Opportunities"},
	{Path: "/settings", Title: "Settings"},
	{Path: "/learning-hub", Title: "Learning Hub"},
}

// NavLinks returns the sidebar entries.
func NavLinks() []controllers.NavLink {
	out := make([]controllers.NavLink, len(dashboardPages))
	copy(out, dashboardPages)
	return out
}

// Routes builds the route table: the public login view followed by every
// protected dashboard page.
func Routes(auth *controllers.AuthController, pages *controllers.PageController, achievements *controllers.AchievementController) []Route {
	routes := []Route{{Path: "/login", Title: "Login", Page: auth.ShowLoginPage}}
	for _, p := range dashboardPages {
		page := pages.RenderPage(p.Title)
		if p.Path == "/achievements" {
			page = achievements.List
		}
		routes = append(routes, Route{Path: p.Path, Title: p.Title, Protected: true, Page: page})
	}
	return routes
}

// Validate rejects tables with empty, duplicate or handler-less entries.
func Validate(routes []Route) error {
	seen := make(map[string]bool, len(routes))
	for _, r := range routes {
		if r.Path == "" || r.Path[0] != '/' {
			return fmt.Errorf("route %q: path must start with /", r.Path)
		}
		if seen[r.Path] {
			return fmt.Errorf("route %q: duplicate path", r.Path)
		}
		if r.Page == nil {
			return fmt.Errorf("route %q: no page handler", r.Path)
		}
		seen[r.Path] = true
	}
	return nil
}
