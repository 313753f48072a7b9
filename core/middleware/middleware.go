package middleware

import (
	"net/http"
	"strings"

	"meetsync/core/config"
	"meetsync/core/constants"
	"meetsync/core/controller"
	"meetsync/core/errors"
	"meetsync/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles the route-level middleware used by module routers
type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// AuthMiddleware validates the Bearer token on private routes and stores the
// parsed claims under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrMissingAuthorizationHeader, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrInvalidTokenFormat, "authorization header must be 'Bearer {token}'")
			}

			cfg, ok := config.GetSafe()
			if !ok {
				return controller.NewErrorResponse(http.StatusInternalServerError,
					errors.ErrInternalServer, "config not initialized")
			}

			claims, err := utils.ValidateToken(parts[1], cfg.Auth.JWTSecret, constants.ScopeTokenAccess)
			if err != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrUnauthorized, "invalid token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
