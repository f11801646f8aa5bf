package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"

	"github.com/quillpress/identity/internal/api/http/handler"
	"github.com/quillpress/identity/internal/logger"
)

// Router wires identity endpoints and middleware into an echo instance.
type Router struct {
	resolver handler.IdentityResolver
	logger   *logger.Logger
}

// New creates a new Router instance.
func New(resolver handler.IdentityResolver, logger *logger.Logger) *Router {
	return &Router{
		resolver: resolver,
		logger:   logger,
	}
}

// Register builds the echo server with request logging, recovery and all
// identity routes.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(slogecho.New(r.logger.Logger))
	e.Use(middleware.Recover())

	identityHandler := handler.NewIdentity(r.resolver, r.logger)

	api := e.Group("/api")
	api.GET("/users", identityHandler.ListUsers)
	api.GET("/users/:handle", identityHandler.GetUser)
	api.HEAD("/users/:handle", identityHandler.UserExists)
	api.DELETE("/cache", identityHandler.ClearCache)

	e.GET("/_health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return e
}
