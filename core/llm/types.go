package llm

import "context"

// SlotData is one extracted (day, hour) pair as returned by the model.
type SlotData struct {
	Day  string `json:"day"`
	Hour int    `json:"hour"`
}

// ScheduleData is the extraction schema: the slots a participant claims to be
// free during, and the slots they favor. Preferred slots are not required to be
// a subset of available slots and are never validated against them.
type ScheduleData struct {
	AvailableSlots []SlotData `json:"available_slots"`
	PreferredSlots []SlotData `json:"preferred_slots"`
}

// Extractor converts one participant's free-text availability statement into a
// structured schedule.
type Extractor interface {
	ExtractSchedule(ctx context.Context, text string) (*ScheduleData, error)
}
