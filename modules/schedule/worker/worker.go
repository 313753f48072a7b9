package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"meetsync/core/cache"
	"meetsync/core/config"
	"meetsync/core/constants"
	"meetsync/core/logger"
	"meetsync/modules/schedule/dto"
	"meetsync/modules/schedule/service"

	"github.com/hibiken/asynq"
)

// Handler processes async batch scheduling tasks
type Handler struct {
	scheduleService service.ScheduleServiceInterface
	cache           cache.Cache
	resultTTL       time.Duration
}

// NewHandler creates a task handler
func NewHandler(svc service.ScheduleServiceInterface, c cache.Cache, resultTTL time.Duration) *Handler {
	return &Handler{
		scheduleService: svc,
		cache:           c,
		resultTTL:       resultTTL,
	}
}

// HandleScheduleBatch runs the extract-then-match pipeline for a queued batch
// and writes the outcome back onto the task record. A pipeline failure is
// recorded on the task and returned so asynq can retry transient LLM problems.
func (h *Handler) HandleScheduleBatch(ctx context.Context, task *asynq.Task) error {
	var payload service.ScheduleTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// Malformed payloads can never succeed, skip retries
		return fmt.Errorf("failed to decode task payload: %w: %v", asynq.SkipRetry, err)
	}

	h.updateRecord(ctx, &dto.TaskResponse{TaskID: payload.TaskID, Status: dto.TaskStatusRunning})
	logger.Info("Worker:HandleScheduleBatch:Start", "task_id", payload.TaskID, "participants", len(payload.Messages))

	result, appErr := h.scheduleService.Schedule(ctx, payload.Messages)
	if appErr != nil {
		h.updateRecord(ctx, &dto.TaskResponse{
			TaskID: payload.TaskID,
			Status: dto.TaskStatusFailed,
			Error:  appErr.Message,
		})
		return appErr
	}

	h.updateRecord(ctx, &dto.TaskResponse{
		TaskID: payload.TaskID,
		Status: dto.TaskStatusCompleted,
		Result: result,
	})
	logger.Info("Worker:HandleScheduleBatch:Done", "task_id", payload.TaskID)
	return nil
}

func (h *Handler) updateRecord(ctx context.Context, record *dto.TaskResponse) {
	if err := h.cache.SetJSON(ctx, constants.CacheKeyTask+record.TaskID, record, h.resultTTL); err != nil {
		logger.Error("Worker:UpdateRecord", "task_id", record.TaskID, "error", err)
	}
}

// Run starts the asynq server and blocks until the context is cancelled.
func Run(ctx context.Context, handler *Handler) error {
	cfg := config.Get()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues:      map[string]int{cfg.Worker.Queue: 1},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(service.TypeScheduleBatch, handler.HandleScheduleBatch)

	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}
	logger.Info("Worker:Run:Started", "queue", cfg.Worker.Queue, "concurrency", cfg.Worker.Concurrency)

	<-ctx.Done()
	srv.Shutdown()
	logger.Info("Worker:Run:Stopped")
	return nil
}
