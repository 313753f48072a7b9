package entity

// Day is a workweek day. Days are ordered Monday through Friday for ranking.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
)

// Workday bounds. HourMax is the last valid one-hour block start: the day ends
// at 17:00 so a block starting at 16 is the final one.
const (
	HourMin = 9
	HourMax = 16
)

var dayRanks = map[Day]int{
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
}

// Rank returns the day's ordinal for sort ordering, Monday=1 through Friday=5.
// Unknown days rank after Friday so extractor passthrough data still sorts
// deterministically.
func (d Day) Rank() int {
	if r, ok := dayRanks[d]; ok {
		return r
	}
	return len(dayRanks) + 1
}

// ParseDay maps a day name onto its Day value.
func ParseDay(s string) (Day, bool) {
	d := Day(s)
	_, ok := dayRanks[d]
	return d, ok
}

// Slot is a one-hour meeting window. The (Day, Hour) pair is its identity.
type Slot struct {
	Day  Day `json:"day"`
	Hour int `json:"hour"`
}

// ParticipantSchedule is one participant's extracted availability. Preferred
// slots are not required to be a subset of available slots; the extraction is
// taken at face value.
type ParticipantSchedule struct {
	AvailableSlots []Slot `json:"available_slots"`
	PreferredSlots []Slot `json:"preferred_slots"`
}

// RankedSlot is a candidate meeting slot with its aggregate preference score:
// the number of participants whose preferred slots contain it.
type RankedSlot struct {
	Day   Day `json:"day"`
	Hour  int `json:"hour"`
	Score int `json:"score"`
}
