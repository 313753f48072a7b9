package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"meetsync/core/constants"
	apperrors "meetsync/core/errors"
	"meetsync/modules/schedule/dto"
	"meetsync/modules/schedule/service"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Close() error { return nil }

func (m *memoryCache) record(t *testing.T, taskID string) *dto.TaskResponse {
	t.Helper()
	var rec dto.TaskResponse
	raw, ok := m.data[constants.CacheKeyTask+taskID]
	require.True(t, ok, "task record missing")
	require.NoError(t, json.Unmarshal(raw, &rec))
	return &rec
}

type fakeScheduleService struct {
	resp *dto.ScheduleResponse
	err  *apperrors.AppError
}

func (f *fakeScheduleService) Schedule(_ context.Context, _ []string) (*dto.ScheduleResponse, *apperrors.AppError) {
	return f.resp, f.err
}

func newTask(t *testing.T, payload service.ScheduleTaskPayload) *asynq.Task {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(service.TypeScheduleBatch, raw)
}

func TestHandleScheduleBatchSuccess(t *testing.T) {
	c := newMemoryCache()
	svc := &fakeScheduleService{resp: &dto.ScheduleResponse{
		RecommendedTimes: []dto.RankedSlotDTO{{Day: "Monday", Hour: 9, Score: 1, Window: "09:00 - 10:00"}},
		Participants:     2,
	}}
	h := NewHandler(svc, c, time.Hour)

	task := newTask(t, service.ScheduleTaskPayload{TaskID: "t1", Messages: []string{"a", "b"}})
	require.NoError(t, h.HandleScheduleBatch(context.Background(), task))

	rec := c.record(t, "t1")
	assert.Equal(t, dto.TaskStatusCompleted, rec.Status)
	require.NotNil(t, rec.Result)
	assert.Len(t, rec.Result.RecommendedTimes, 1)
}

func TestHandleScheduleBatchFailureMarksTask(t *testing.T) {
	c := newMemoryCache()
	svc := &fakeScheduleService{err: apperrors.NewAppError(apperrors.ErrExtractionFailed,
		"failed to extract schedule for participant 1: model down", nil)}
	h := NewHandler(svc, c, time.Hour)

	task := newTask(t, service.ScheduleTaskPayload{TaskID: "t2", Messages: []string{"a"}})
	err := h.HandleScheduleBatch(context.Background(), task)
	require.Error(t, err)

	rec := c.record(t, "t2")
	assert.Equal(t, dto.TaskStatusFailed, rec.Status)
	assert.Contains(t, rec.Error, "participant 1")
	assert.Nil(t, rec.Result)
}

func TestHandleScheduleBatchMalformedPayloadSkipsRetry(t *testing.T) {
	h := NewHandler(&fakeScheduleService{}, newMemoryCache(), time.Hour)

	task := asynq.NewTask(service.TypeScheduleBatch, []byte("not json"))
	err := h.HandleScheduleBatch(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
