package router

import (
	"meetsync/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter handles auth routes
type AuthRouter struct {
	AuthController *controller.AuthController
}

// NewAuthRouter creates a new router
func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

// Setup registers auth routes
func (r *AuthRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	authRoutes := v1.Group("/auth")

	authRoutes.POST("/token", r.AuthController.IssueToken)
}
