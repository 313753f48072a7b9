package service

import (
	"context"
	"fmt"

	"meetsync/core/errors"
	"meetsync/core/llm"
	"meetsync/core/logger"
	"meetsync/modules/schedule/dto"
	"meetsync/modules/schedule/entity"
)

// ScheduleServiceInterface defines the scheduling contract
type ScheduleServiceInterface interface {
	Schedule(ctx context.Context, messages []string) (*dto.ScheduleResponse, *errors.AppError)
}

// ScheduleService runs the extract-then-match pipeline
type ScheduleService struct {
	extractor llm.Extractor
	matcher   *Matcher
}

// NewScheduleService creates a schedule service
func NewScheduleService(extractor llm.Extractor) ScheduleServiceInterface {
	return &ScheduleService{
		extractor: extractor,
		matcher:   NewMatcher(),
	}
}

// Schedule extracts each participant's message in input order and matches the
// batch. A failed extraction aborts the whole batch before matching; an empty
// intersection is a successful empty result, not an error.
func (s *ScheduleService) Schedule(ctx context.Context, messages []string) (*dto.ScheduleResponse, *errors.AppError) {
	schedules := make([]entity.ParticipantSchedule, 0, len(messages))
	for i, msg := range messages {
		data, err := s.extractor.ExtractSchedule(ctx, msg)
		if err != nil {
			logger.Error("ScheduleService:Schedule:ExtractSchedule", "participant", i+1, "error", err)
			return nil, errors.NewAppError(errors.ErrExtractionFailed,
				fmt.Sprintf("failed to extract schedule for participant %d: %v", i+1, err), err)
		}
		schedules = append(schedules, toParticipantSchedule(data))
	}

	ranked := s.matcher.FindBestTimes(schedules)
	logger.Info("ScheduleService:Schedule:Done",
		"participants", len(schedules),
		"candidates", len(ranked),
	)
	return dto.ToScheduleResponse(ranked, len(schedules)), nil
}

// toParticipantSchedule converts extracted slot data into the matcher's value
// types. Hours and preference/availability consistency are deliberately not
// validated here.
func toParticipantSchedule(data *llm.ScheduleData) entity.ParticipantSchedule {
	return entity.ParticipantSchedule{
		AvailableSlots: toSlots(data.AvailableSlots),
		PreferredSlots: toSlots(data.PreferredSlots),
	}
}

func toSlots(in []llm.SlotData) []entity.Slot {
	out := make([]entity.Slot, 0, len(in))
	for _, s := range in {
		out = append(out, entity.Slot{Day: entity.Day(s.Day), Hour: s.Hour})
	}
	return out
}
