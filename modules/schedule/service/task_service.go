package service

import (
	"context"
	"encoding/json"
	"time"

	"meetsync/core/cache"
	"meetsync/core/constants"
	"meetsync/core/errors"
	"meetsync/core/logger"
	"meetsync/core/utils"
	"meetsync/modules/schedule/dto"

	"github.com/hibiken/asynq"
)

// TypeScheduleBatch is the asynq task type for async batch scheduling
const TypeScheduleBatch = "schedule:batch"

// ScheduleTaskPayload is the asynq task payload
type ScheduleTaskPayload struct {
	TaskID   string   `json:"task_id"`
	Messages []string `json:"messages"`
}

// TaskEnqueuer is the subset of asynq.Client the task service needs
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskServiceInterface defines the async scheduling contract
type TaskServiceInterface interface {
	Enqueue(ctx context.Context, messages []string) (*dto.TaskResponse, *errors.AppError)
	GetTask(ctx context.Context, taskID string) (*dto.TaskResponse, *errors.AppError)
}

// TaskService enqueues batch scheduling work and tracks task state in redis.
// Task records are transient: they expire with the configured result TTL.
type TaskService struct {
	enqueuer  TaskEnqueuer
	cache     cache.Cache
	queue     string
	resultTTL time.Duration
}

// NewTaskService creates a task service
func NewTaskService(enqueuer TaskEnqueuer, c cache.Cache, queue string, resultTTL time.Duration) TaskServiceInterface {
	return &TaskService{
		enqueuer:  enqueuer,
		cache:     c,
		queue:     queue,
		resultTTL: resultTTL,
	}
}

// Enqueue registers a queued task record and hands the batch to the worker
func (s *TaskService) Enqueue(ctx context.Context, messages []string) (*dto.TaskResponse, *errors.AppError) {
	taskID := utils.GenerateTaskID()
	record := &dto.TaskResponse{TaskID: taskID, Status: dto.TaskStatusQueued}

	if err := s.cache.SetJSON(ctx, taskKey(taskID), record, s.resultTTL); err != nil {
		logger.Error("TaskService:Enqueue:SaveRecord", "task_id", taskID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to register task", err)
	}

	payload, err := json.Marshal(ScheduleTaskPayload{TaskID: taskID, Messages: messages})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to encode task payload", err)
	}

	_, err = s.enqueuer.EnqueueContext(ctx,
		asynq.NewTask(TypeScheduleBatch, payload),
		asynq.Queue(s.queue),
		asynq.MaxRetry(3),
		asynq.Timeout(constants.DefaultRequestTimeout*time.Duration(len(messages)+1)),
	)
	if err != nil {
		logger.Error("TaskService:Enqueue:EnqueueContext", "task_id", taskID, "error", err)
		return nil, errors.NewAppError(errors.ErrTaskEnqueueFailed, "failed to enqueue scheduling task", err)
	}

	logger.Info("TaskService:Enqueue:Queued", "task_id", taskID, "participants", len(messages))
	return record, nil
}

// GetTask returns the current task record, including the result once completed
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*dto.TaskResponse, *errors.AppError) {
	var record dto.TaskResponse
	found, err := s.cache.GetJSON(ctx, taskKey(taskID), &record)
	if err != nil {
		logger.Error("TaskService:GetTask:LoadRecord", "task_id", taskID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load task", err)
	}
	if !found {
		return nil, errors.NewAppError(errors.ErrNotFound, "task not found or expired", nil)
	}
	return &record, nil
}

func taskKey(taskID string) string {
	return constants.CacheKeyTask + taskID
}
