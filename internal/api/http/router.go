package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gambler-service/internal/api/http/handlers"
	"github.com/spec-kit/gambler-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Users      *handlers.UsersHandler
	JWTGuard   *auth.Guard[auth.JWTGuard]
	TokenGuard *auth.Guard[auth.TokenSubject]
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/logout", cfg.JWTGuard.Middleware(nil), cfg.Auth.Logout)
	authGroup.Get("/token", cfg.TokenGuard.Middleware(nil), cfg.Auth.Token)

	users := app.Group("/users", cfg.JWTGuard.Middleware(nil))
	users.Get("/me", cfg.Users.Me)
}
