package api

import (
	"github.com/gofiber/fiber/v2"
	"modconsole.com/internal/api/middleware"
	"modconsole.com/internal/config"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/engine"
	"modconsole.com/internal/modapi"
	"modconsole.com/internal/model"
)

// Router registers every console route.
type Router struct {
	app *fiber.App
	cfg *config.Config
	eng *engine.Engine
}

func NewRouter(app *fiber.App, cfg *config.Config, eng *engine.Engine) *Router {
	return &Router{app: app, cfg: cfg, eng: eng}
}

func (r *Router) RegisterRoutes() {
	client := r.eng.GetClient()
	sessions := r.eng.GetSessionStore()
	recorder := r.eng.GetRecorder()
	cookieName := r.cfg.Session.CookieName

	authHandler := NewAuthHandler(client, sessions, recorder, r.cfg.Session)
	dashboardHandler := NewDashboardHandler(sessions, r.eng.GetAuditService(), recorder, cookieName)
	users := NewResourceHandler[model.User](model.UserKind, func(conn *modapi.Conn) domain.ResourceAPI[model.User] {
		return modapi.Users(conn)
	}, sessions, recorder)
	employees := NewResourceHandler[model.Employee](model.EmployeeKind, func(conn *modapi.Conn) domain.ResourceAPI[model.Employee] {
		return modapi.Employees(conn)
	}, sessions, recorder)

	// Public
	r.app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Service is healthy",
		})
	})
	r.app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	})
	r.app.Get("/signin", authHandler.ShowSignIn)
	r.app.Post("/signin", authHandler.SignIn)

	// Protected
	protected := r.app.Group("", middleware.RequireSession(sessions, client, cookieName))

	protected.Get("/dashboard", dashboardHandler.Show)
	protected.Post("/dashboard/user/:id/ban", dashboardHandler.BanUser)
	protected.Post("/dashboard/user/:id/unban", dashboardHandler.UnbanUser)
	protected.Post("/logout", dashboardHandler.Logout)

	users.Register(protected)
	employees.Register(protected)

	media := protected.Group("/media")
	media.Get("/user/:file", NewMediaHandler(client, model.UserKind).Image)
	media.Get("/employee/:file", NewMediaHandler(client, model.EmployeeKind).Image)
}
