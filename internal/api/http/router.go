package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-board/internal/api/http/handlers"
	"github.com/spec-kit/ticket-board/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The auth middleware resolves the
// principal on every route; RequireUser guards the authenticated surface.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.AuthMiddleware.Resolve)

	authGroup := app.Group("/auth")
	authGroup.Post("/sign-up", cfg.Auth.SignUp)
	authGroup.Post("/sign-in", cfg.Auth.SignIn)
	authGroup.Post("/sign-out", cfg.Auth.SignOut)

	tickets := app.Group("/tickets", auth.RequireUser())
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", cfg.Tickets.Update)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Delete("/:id", cfg.Tickets.Delete)
	// form-friendly aliases for clients without PUT/DELETE
	tickets.Post("/:id", cfg.Tickets.Update)
	tickets.Post("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Post("/:id/delete", cfg.Tickets.Delete)

	tickets.Get("/:id/comments", cfg.Comments.List)
	tickets.Post("/:id/comments", cfg.Comments.Create)

	comments := app.Group("/comments", auth.RequireUser())
	comments.Delete("/:id", cfg.Comments.Delete)
	comments.Post("/:id/delete", cfg.Comments.Delete)
}
