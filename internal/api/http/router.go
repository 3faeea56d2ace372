package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repair-tracker/internal/api/http/handlers"
	"github.com/spec-kit/repair-tracker/internal/auth"
	"github.com/spec-kit/repair-tracker/internal/domain"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Feedback       *handlers.FeedbackHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Submissions, search and public tracking
// are open; every mutation requires an authenticated principal so history
// entries carry the acting username.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Users.Signup)
	authGroup.Post("/login", cfg.Users.Login)

	userGroup := app.Group("/user", cfg.AuthMiddleware.Handle)
	userGroup.Get("/profile", cfg.Users.Profile)

	tickets := app.Group("/tickets")
	tickets.Post("/create", cfg.Tickets.Create)
	tickets.Get("/ticket/search", cfg.Tickets.Search)
	tickets.Get("/ticket", cfg.Tickets.List)
	tickets.Get("/track/:trackingId", cfg.Tickets.Track)
	tickets.Post("/:ticketId/feedback", cfg.Feedback.Submit)
	tickets.Get("/:ticketId/feedback", cfg.Feedback.List)

	protected := tickets.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/export", auth.RequireRole(domain.RoleAdmin, domain.RoleOpsManager), cfg.Tickets.Export)
	protected.Get("/assigned/:agentId", cfg.Tickets.Assigned)
	protected.Get("/role/:role", cfg.Tickets.Role)
	protected.Put("/update/:id", cfg.Tickets.Update)
	protected.Put("/assign/:ticketId", auth.RequireRole(domain.RoleAdmin, domain.RoleOpsManager), cfg.Tickets.Assign)
	protected.Put("/unassign/:ticketId", auth.RequireRole(domain.RoleAdmin, domain.RoleOpsManager), cfg.Tickets.Unassign)
	protected.Put("/resolve/:ticketId", cfg.Tickets.Resolve)
	protected.Delete("/delete/:id", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("route", map[string]any{"path": c.Path()})
	})
}
