package router

import (
	"meetsync/core/middleware"
	"meetsync/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

// ScheduleRouter handles scheduling routes
type ScheduleRouter struct {
	ScheduleController *controller.ScheduleController
}

// NewScheduleRouter creates a new router
func NewScheduleRouter(scheduleController *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{
		ScheduleController: scheduleController,
	}
}

// Setup registers scheduling routes
func (r *ScheduleRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	scheduleRoutes := privateRoutes.Group("/schedule", mw.AuthMiddleware())

	// Synchronous pipeline
	scheduleRoutes.POST("", r.ScheduleController.Schedule)

	// Async batch tasks
	scheduleRoutes.POST("/tasks", r.ScheduleController.EnqueueTask)
	scheduleRoutes.GET("/tasks/:id", r.ScheduleController.GetTask)
}
