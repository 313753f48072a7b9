package service

import (
	"sort"

	"meetsync/modules/schedule/entity"
)

// Matcher computes the meeting slots common to all participants, ranked by how
// many participants prefer each slot. It is stateless and safe for concurrent use.
type Matcher struct{}

// NewMatcher creates a matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// FindBestTimes intersects every participant's available slots and ranks the
// survivors by preference count, highest first. Ties break on earlier weekday,
// then earlier hour. An empty input or an empty intersection yields an empty,
// non-nil result.
func (m *Matcher) FindBestTimes(schedules []entity.ParticipantSchedule) []entity.RankedSlot {
	ranked := []entity.RankedSlot{}
	if len(schedules) == 0 {
		return ranked
	}

	// 1. Running intersection of available slots, in input order
	common := slotSet(schedules[0].AvailableSlots)
	for _, s := range schedules[1:] {
		common = intersect(common, slotSet(s.AvailableSlots))
		// Later participants cannot restore an empty candidate set
		if len(common) == 0 {
			return ranked
		}
	}

	// 2. Score every preferred slot once, then read off the candidates
	scores := m.scoreSlots(schedules)
	for slot := range common {
		ranked = append(ranked, entity.RankedSlot{
			Day:   slot.Day,
			Hour:  slot.Hour,
			Score: scores[slot],
		})
	}

	// 3. Highest score first, then earliest weekday, then earliest hour.
	// Days outside the weekday table share a rank, so break that tie on the
	// day name itself to keep equal-score orderings deterministic.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		ri, rj := ranked[i].Day.Rank(), ranked[j].Day.Rank()
		if ri != rj {
			return ri < rj
		}
		if ranked[i].Day != ranked[j].Day {
			return ranked[i].Day < ranked[j].Day
		}
		return ranked[i].Hour < ranked[j].Hour
	})

	return ranked
}

// scoreSlots counts, per slot, how many participants prefer it. Each participant
// contributes at most 1 per slot even if their preference list repeats it.
func (m *Matcher) scoreSlots(schedules []entity.ParticipantSchedule) map[entity.Slot]int {
	scores := make(map[entity.Slot]int)
	for _, s := range schedules {
		for slot := range slotSet(s.PreferredSlots) {
			scores[slot]++
		}
	}
	return scores
}

func slotSet(slots []entity.Slot) map[entity.Slot]struct{} {
	set := make(map[entity.Slot]struct{}, len(slots))
	for _, s := range slots {
		set[s] = struct{}{}
	}
	return set
}

func intersect(a, b map[entity.Slot]struct{}) map[entity.Slot]struct{} {
	out := make(map[entity.Slot]struct{})
	for s := range a {
		if _, ok := b[s]; ok {
			out[s] = struct{}{}
		}
	}
	return out
}
