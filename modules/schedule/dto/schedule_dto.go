package dto

import (
	"fmt"

	"meetsync/modules/schedule/entity"
)

// ===================== Request DTOs =====================

// ScheduleRequest carries one free-text availability message per participant
type ScheduleRequest struct {
	Messages []string `json:"messages"`
}

// ===================== Response DTOs =====================

// RankedSlotDTO is one recommended meeting slot
type RankedSlotDTO struct {
	Day    string `json:"day"`
	Hour   int    `json:"hour"`
	Score  int    `json:"score"`
	Window string `json:"window"`
}

// ScheduleResponse is the ranked recommendation list
type ScheduleResponse struct {
	RecommendedTimes []RankedSlotDTO `json:"recommended_times"`
	Participants     int             `json:"participants"`
}

// Task statuses for async batch scheduling
const (
	TaskStatusQueued    = "queued"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)

// TaskResponse reports an async scheduling task and, once completed, its result
type TaskResponse struct {
	TaskID string            `json:"task_id"`
	Status string            `json:"status"`
	Error  string            `json:"error,omitempty"`
	Result *ScheduleResponse `json:"result,omitempty"`
}

// ===================== Mapper Functions =====================

// ToScheduleResponse maps ranked slots to the response DTO
func ToScheduleResponse(ranked []entity.RankedSlot, participants int) *ScheduleResponse {
	times := make([]RankedSlotDTO, 0, len(ranked))
	for _, r := range ranked {
		times = append(times, RankedSlotDTO{
			Day:    string(r.Day),
			Hour:   r.Hour,
			Score:  r.Score,
			Window: fmt.Sprintf("%02d:00 - %02d:00", r.Hour, r.Hour+1),
		})
	}
	return &ScheduleResponse{
		RecommendedTimes: times,
		Participants:     participants,
	}
}
