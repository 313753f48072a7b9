package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meetsync/core/errors"
	"meetsync/modules/schedule/dto"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleService struct {
	resp *dto.ScheduleResponse
	err  *errors.AppError
}

func (f *fakeScheduleService) Schedule(_ context.Context, _ []string) (*dto.ScheduleResponse, *errors.AppError) {
	return f.resp, f.err
}

type fakeTaskService struct {
	enqueueResp *dto.TaskResponse
	getResp     *dto.TaskResponse
	err         *errors.AppError
}

func (f *fakeTaskService) Enqueue(_ context.Context, _ []string) (*dto.TaskResponse, *errors.AppError) {
	return f.enqueueResp, f.err
}

func (f *fakeTaskService) GetTask(_ context.Context, _ string) (*dto.TaskResponse, *errors.AppError) {
	return f.getResp, f.err
}

func newTestServer(svc *fakeScheduleService, tasks *fakeTaskService) *echo.Echo {
	e := echo.New()
	ctrl := NewScheduleController(svc, tasks)
	e.POST("/schedule", ctrl.Schedule)
	e.POST("/schedule/tasks", ctrl.EnqueueTask)
	e.GET("/schedule/tasks/:id", ctrl.GetTask)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestScheduleSuccess(t *testing.T) {
	svc := &fakeScheduleService{resp: &dto.ScheduleResponse{
		RecommendedTimes: []dto.RankedSlotDTO{
			{Day: "Monday", Hour: 9, Score: 2, Window: "09:00 - 10:00"},
		},
		Participants: 2,
	}}
	e := newTestServer(svc, &fakeTaskService{})

	rec := doJSON(e, http.MethodPost, "/schedule", `{"messages": ["a", "b"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"recommended_times"`)
	assert.Contains(t, rec.Body.String(), `"Monday"`)
}

func TestScheduleMissingMessages(t *testing.T) {
	e := newTestServer(&fakeScheduleService{}, &fakeTaskService{})

	rec := doJSON(e, http.MethodPost, "/schedule", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "messages")
}

func TestScheduleWrongTypedMessages(t *testing.T) {
	e := newTestServer(&fakeScheduleService{}, &fakeTaskService{})

	rec := doJSON(e, http.MethodPost, "/schedule", `{"messages": "not a list"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleExtractionFailure(t *testing.T) {
	svc := &fakeScheduleService{err: errors.NewAppError(errors.ErrExtractionFailed,
		"failed to extract schedule for participant 2: model unreachable", nil)}
	e := newTestServer(svc, &fakeTaskService{})

	rec := doJSON(e, http.MethodPost, "/schedule", `{"messages": ["a", "b"]}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "participant 2")
}

func TestScheduleEmptyMessagesList(t *testing.T) {
	// An empty list is a valid batch and produces an empty recommendation
	svc := &fakeScheduleService{resp: &dto.ScheduleResponse{RecommendedTimes: []dto.RankedSlotDTO{}}}
	e := newTestServer(svc, &fakeTaskService{})

	rec := doJSON(e, http.MethodPost, "/schedule", `{"messages": []}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnqueueTask(t *testing.T) {
	tasks := &fakeTaskService{enqueueResp: &dto.TaskResponse{TaskID: "abc123", Status: dto.TaskStatusQueued}}
	e := newTestServer(&fakeScheduleService{}, tasks)

	rec := doJSON(e, http.MethodPost, "/schedule/tasks", `{"messages": ["a"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"abc123"`)
	assert.Contains(t, rec.Body.String(), dto.TaskStatusQueued)
}

func TestGetTaskNotFound(t *testing.T) {
	tasks := &fakeTaskService{err: errors.NewAppError(errors.ErrNotFound, "task not found or expired", nil)}
	e := newTestServer(&fakeScheduleService{}, tasks)

	rec := doJSON(e, http.MethodGet, "/schedule/tasks/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTaskCompleted(t *testing.T) {
	tasks := &fakeTaskService{getResp: &dto.TaskResponse{
		TaskID: "abc123",
		Status: dto.TaskStatusCompleted,
		Result: &dto.ScheduleResponse{
			RecommendedTimes: []dto.RankedSlotDTO{{Day: "Tuesday", Hour: 10, Score: 1, Window: "10:00 - 11:00"}},
			Participants:     1,
		},
	}}
	e := newTestServer(&fakeScheduleService{}, tasks)

	rec := doJSON(e, http.MethodGet, "/schedule/tasks/abc123", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), dto.TaskStatusCompleted)
	assert.Contains(t, rec.Body.String(), `"Tuesday"`)
}
