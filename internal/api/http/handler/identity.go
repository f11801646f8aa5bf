package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quillpress/identity/internal/logger"
	"github.com/quillpress/identity/internal/model"
	"github.com/quillpress/identity/internal/service"
)

// IdentityResolver defines the resolution operations the API exposes.
type IdentityResolver interface {
	Resolve(ctx context.Context, handle string) (*model.Identity, error)
	Exists(ctx context.Context, handle string) (bool, error)
	ListAllHandles(ctx context.Context) ([]string, error)
	ClearCache()
}

// Identity handles HTTP endpoints for identity resolution.
type Identity struct {
	resolver IdentityResolver
	logger   *logger.Logger
}

// NewIdentity creates a new Identity handler.
func NewIdentity(resolver IdentityResolver, logger *logger.Logger) *Identity {
	return &Identity{
		resolver: resolver,
		logger:   logger,
	}
}

// ListUsers returns every known handle across all sources.
func (h *Identity) ListUsers(c echo.Context) error {
	handles, err := h.resolver.ListAllHandles(c.Request().Context())
	if err != nil {
		return h.handleError(err)
	}

	return c.JSON(http.StatusOK, map[string][]string{"handles": handles})
}

// GetUser resolves a single handle. Reserved route segments are rejected
// before the resolver is consulted.
func (h *Identity) GetUser(c echo.Context) error {
	handle := c.Param("handle")

	if service.IsReserved(handle) {
		return echo.NewHTTPError(http.StatusNotFound, "reserved route segment")
	}

	identity, err := h.resolver.Resolve(c.Request().Context(), handle)
	if err != nil {
		return h.handleError(err)
	}
	if identity == nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	return c.JSON(http.StatusOK, identity)
}

// UserExists answers existence checks without a response body. It costs a
// full resolution; there is no cheaper existence-only path.
func (h *Identity) UserExists(c echo.Context) error {
	handle := c.Param("handle")

	if service.IsReserved(handle) {
		return c.NoContent(http.StatusNotFound)
	}

	exists, err := h.resolver.Exists(c.Request().Context(), handle)
	if err != nil {
		return h.handleError(err)
	}
	if !exists {
		return c.NoContent(http.StatusNotFound)
	}

	return c.NoContent(http.StatusOK)
}

// ClearCache drops all cached profile resolutions.
func (h *Identity) ClearCache(c echo.Context) error {
	h.resolver.ClearCache()
	h.logger.Info("Identity handler: profile cache cleared")

	return c.NoContent(http.StatusNoContent)
}

func (h *Identity) handleError(err error) error {
	if errors.Is(err, model.ErrNotConfigured) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "identity sources not configured")
	}

	h.logger.Error("Identity handler: request failed",
		"error", err.Error())
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
