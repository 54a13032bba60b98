package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "muthurwa/internal/delivery/context"
	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the bearer token into the request caller.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the access token and stores the caller on the
// request context, where handlers and use cases read it.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WithDetails("Authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			return domainerrors.ErrUnauthorized.WithDetails("Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			return domainerrors.ErrUnauthorized.WithDetails("Invalid or expired token")
		}

		ctx := deliverycontext.WithCaller(c.Request().Context(), claims.Caller(), m.logger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole rejects callers without the given role. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := deliverycontext.CallerFrom(c.Request().Context())
			if !ok {
				return domainerrors.ErrUnauthorized
			}
			if caller.Role != role {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}
