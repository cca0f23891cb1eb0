package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workday(t *testing.T) Grid {
	t.Helper()
	g, err := NewGrid("08:00", "20:00", 30)
	require.NoError(t, err)
	return g
}

func TestParseHHMM(t *testing.T) {
	m, err := ParseHHMM("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)
	assert.Equal(t, "09:30", FormatHHMM(m))

	for _, bad := range []string{"9:30", "24:00", "09:60", "0930", ""} {
		_, err := ParseHHMM(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewGrid(t *testing.T) {
	g := workday(t)
	times := g.Times()
	assert.Len(t, times, 24)
	assert.Equal(t, "08:00", times[0])
	assert.Equal(t, "19:30", times[len(times)-1])

	_, err := NewGrid("10:00", "09:00", 30)
	assert.Error(t, err)

	g, err = NewGrid("08:00", "09:00", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultSlotMinutes, g.SlotMinutes)
}

func TestSlotCount(t *testing.T) {
	g := workday(t)
	assert.Equal(t, 1, g.SlotCount(15))
	assert.Equal(t, 1, g.SlotCount(30))
	assert.Equal(t, 2, g.SlotCount(31))
	assert.Equal(t, 2, g.SlotCount(60))
	assert.Equal(t, 8, g.SlotCount(240))
}

func TestSixtyMinutesOccupiesTwoSlots(t *testing.T) {
	g := workday(t)
	day := g.Day([]Booking{{ID: "a1", Time: "09:00", Duration: 60, Label: "Ana"}})

	byTime := map[string]Slot{}
	for _, s := range day {
		byTime[s.Time] = s
	}
	assert.Equal(t, SlotStart, byTime["09:00"].State)
	assert.Equal(t, "a1", byTime["09:00"].AppointmentID)
	assert.Equal(t, SlotOccupied, byTime["09:30"].State)
	assert.Equal(t, "a1", byTime["09:30"].AppointmentID)
	assert.Equal(t, SlotAvailable, byTime["10:00"].State)
	assert.Equal(t, SlotAvailable, byTime["08:30"].State)

	assert.False(t, g.Available(day, "09:30", 30))
	assert.True(t, g.Available(day, "10:00", 60))
}

func TestReleasedBookingsFreeTheirSlots(t *testing.T) {
	g := workday(t)
	day := g.Day([]Booking{{ID: "a1", Time: "09:00", Duration: 60, Released: true}})
	for _, s := range day {
		assert.Equal(t, SlotAvailable, s.State, s.Time)
	}
}

func TestOverlapsAreReported(t *testing.T) {
	g := workday(t)
	day := g.Day([]Booking{
		{ID: "a1", Time: "09:00", Duration: 60},
		{ID: "a2", Time: "09:30", Duration: 60},
	})
	byTime := map[string]Slot{}
	for _, s := range day {
		byTime[s.Time] = s
	}
	assert.Equal(t, "a1", byTime["09:30"].AppointmentID)
	assert.Equal(t, []string{"a2"}, byTime["09:30"].Overlaps)
	assert.Equal(t, "a2", byTime["10:00"].AppointmentID)
	assert.Equal(t, SlotOccupied, byTime["10:00"].State)
}

func TestBookingsOutsideTheDayAreClipped(t *testing.T) {
	g := workday(t)
	day := g.Day([]Booking{{ID: "late", Time: "19:30", Duration: 90}})
	assert.Len(t, day, 24)
	assert.Equal(t, SlotStart, day[len(day)-1].State)
}

func TestEndOf(t *testing.T) {
	end, err := EndOf("09:30", 45)
	require.NoError(t, err)
	assert.Equal(t, "10:15", end)

	end, err = EndOf("23:00", 120)
	require.NoError(t, err)
	assert.Equal(t, "24:00", end)

	_, err = EndOf("9:30", 30)
	assert.Error(t, err)
}
