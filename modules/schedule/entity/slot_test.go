package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayRank(t *testing.T) {
	assert.Equal(t, 1, Monday.Rank())
	assert.Equal(t, 2, Tuesday.Rank())
	assert.Equal(t, 3, Wednesday.Rank())
	assert.Equal(t, 4, Thursday.Rank())
	assert.Equal(t, 5, Friday.Rank())

	// Unrecognized days order after Friday
	assert.Equal(t, 6, Day("Saturday").Rank())
	assert.Equal(t, 6, Day("").Rank())
}

func TestParseDay(t *testing.T) {
	d, ok := ParseDay("Wednesday")
	assert.True(t, ok)
	assert.Equal(t, Wednesday, d)

	_, ok = ParseDay("wednesday")
	assert.False(t, ok)

	_, ok = ParseDay("Sunday")
	assert.False(t, ok)
}

func TestSlotIdentity(t *testing.T) {
	// Slots are comparable values, the (day, hour) pair is the whole identity
	a := Slot{Day: Monday, Hour: 9}
	b := Slot{Day: Monday, Hour: 9}
	c := Slot{Day: Monday, Hour: 10}

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	set := map[Slot]struct{}{a: {}}
	_, ok := set[b]
	assert.True(t, ok)
}
