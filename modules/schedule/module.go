package schedule

import (
	"time"

	"meetsync/core/cache"
	"meetsync/core/config"
	"meetsync/core/llm"
	"meetsync/core/middleware"
	"meetsync/modules/schedule/controller"
	"meetsync/modules/schedule/router"
	"meetsync/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the schedule module and registers routes
func Init(e *echo.Echo, extractor llm.Extractor, enqueuer service.TaskEnqueuer, c cache.Cache, mw *middleware.Middleware) {
	cfg := config.Get()

	svc := service.NewScheduleService(extractor)
	tasks := service.NewTaskService(enqueuer, c, cfg.Worker.Queue,
		time.Duration(cfg.Redis.ResultTTLMinutes)*time.Minute)
	ctrl := controller.NewScheduleController(svc, tasks)
	rtr := router.NewScheduleRouter(ctrl)

	rtr.Setup(e, mw)
}
