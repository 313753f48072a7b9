package controller

import (
	"meetsync/core/controller"
	"meetsync/core/errors"
	"meetsync/modules/schedule/dto"
	"meetsync/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// ScheduleController handles scheduling HTTP requests
type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
	TaskService     service.TaskServiceInterface
}

// NewScheduleController creates a new controller
func NewScheduleController(svc service.ScheduleServiceInterface, tasks service.TaskServiceInterface) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: svc,
		TaskService:     tasks,
	}
}

// Schedule handles POST /schedule
// @Summary Recommend meeting times
// @Description Extracts each participant's availability from free text and returns the common slots ranked by preference
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ScheduleRequest true "One availability message per participant"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} errors.AppError
// @Failure 502 {object} errors.AppError
// @Router /private/schedule [post]
func (c *ScheduleController) Schedule(ctx echo.Context) error {
	req, httpErr := c.bindRequest(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.ScheduleService.Schedule(ctx.Request().Context(), req.Messages)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// EnqueueTask handles POST /schedule/tasks
// @Summary Queue a batch scheduling task
// @Description Enqueues the extraction and matching pipeline and returns a task handle immediately
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ScheduleRequest true "One availability message per participant"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} errors.AppError
// @Router /private/schedule/tasks [post]
func (c *ScheduleController) EnqueueTask(ctx echo.Context) error {
	req, httpErr := c.bindRequest(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.TaskService.Enqueue(ctx.Request().Context(), req.Messages)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Task queued")
}

// GetTask handles GET /schedule/tasks/:id
// @Summary Get a scheduling task
// @Description Returns the task status and, once completed, the ranked recommendation list
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} errors.AppError
// @Router /private/schedule/tasks/{id} [get]
func (c *ScheduleController) GetTask(ctx echo.Context) error {
	taskID := ctx.Param("id")
	if taskID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing task ID")
	}

	result, appErr := c.TaskService.GetTask(ctx.Request().Context(), taskID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// bindRequest decodes the batch body. The messages field must be present and a
// list; an empty list is valid and yields an empty recommendation.
func (c *ScheduleController) bindRequest(ctx echo.Context) (*dto.ScheduleRequest, *echo.HTTPError) {
	var req dto.ScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return nil, c.BadRequest(errors.ErrInvalidRequestData, `"messages" must be a list of strings`)
	}
	if req.Messages == nil {
		return nil, c.BadRequest(errors.ErrInvalidRequestData, `Missing "messages" list in request body`)
	}
	return &req, nil
}
