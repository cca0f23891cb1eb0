// Package schedule lays appointments out on a day grid of fixed slots.
package schedule

import (
	"fmt"
	"time"
)

// DefaultSlotMinutes is the slot length of the clinic calendar.
const DefaultSlotMinutes = 30

// SlotState tells what a slot of the grid holds.
type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotStart     SlotState = "start"
	SlotOccupied  SlotState = "occupied"
)

// ParseHHMM converts "HH:MM" into minutes after midnight.
func ParseHHMM(s string) (int, error) {
	if len(s) != 5 {
		return 0, fmt.Errorf("time %q is not HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("time %q is not HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatHHMM is the inverse of ParseHHMM.
func FormatHHMM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// EndOf returns the "HH:MM" at which a booking starting at start and lasting
// duration minutes ends. Bookings running past midnight end at "24:00".
func EndOf(start string, duration int) (string, error) {
	m, err := ParseHHMM(start)
	if err != nil {
		return "", err
	}
	end := m + duration
	if end > 24*60 {
		end = 24 * 60
	}
	return FormatHHMM(end), nil
}

// Grid is the working day split into equal slots. Start and End are minutes
// after midnight; End is exclusive.
type Grid struct {
	Start       int
	End         int
	SlotMinutes int
}

// NewGrid builds a grid from "HH:MM" bounds.
func NewGrid(start, end string, slotMinutes int) (Grid, error) {
	s, err := ParseHHMM(start)
	if err != nil {
		return Grid{}, err
	}
	e, err := ParseHHMM(end)
	if err != nil {
		return Grid{}, err
	}
	if e <= s {
		return Grid{}, fmt.Errorf("day ends at %s before it starts at %s", end, start)
	}
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}
	return Grid{Start: s, End: e, SlotMinutes: slotMinutes}, nil
}

func (g Grid) slot() int {
	if g.SlotMinutes <= 0 {
		return DefaultSlotMinutes
	}
	return g.SlotMinutes
}

// Times lists the start of every slot of the day.
func (g Grid) Times() []string {
	out := []string{}
	for m := g.Start; m < g.End; m += g.slot() {
		out = append(out, FormatHHMM(m))
	}
	return out
}

// SlotCount is how many slots a booking of duration minutes needs:
// ceil(duration / slot). Anything positive needs at least one.
func (g Grid) SlotCount(duration int) int {
	if duration <= 0 {
		return 1
	}
	s := g.slot()
	return (duration + s - 1) / s
}

// SlotsFor lists the consecutive slots a booking starting at hhmm covers.
func (g Grid) SlotsFor(hhmm string, duration int) ([]string, error) {
	start, err := ParseHHMM(hhmm)
	if err != nil {
		return nil, err
	}
	n := g.SlotCount(duration)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, FormatHHMM(start+i*g.slot()))
	}
	return out, nil
}

// Booking is what the grid needs to know about an appointment.
type Booking struct {
	ID       string
	Time     string
	Duration int
	Label    string
	// Released bookings (cancelled or deleted) do not occupy the grid.
	Released bool
}

// Slot is one cell of a day.
type Slot struct {
	Time          string    `json:"time"`
	State         SlotState `json:"state"`
	AppointmentID string    `json:"appointment_id,omitempty"`
	Label         string    `json:"label,omitempty"`
	// Overlaps lists other bookings that also claim this slot.
	Overlaps []string `json:"overlaps,omitempty"`
}

// Day marks every slot of the grid. A booking marks its first slot start and
// the following ones occupied. Slots outside the grid are dropped.
func (g Grid) Day(bookings []Booking) []Slot {
	times := g.Times()
	slots := make([]Slot, len(times))
	index := make(map[string]int, len(times))
	for i, t := range times {
		slots[i] = Slot{Time: t, State: SlotAvailable}
		index[t] = i
	}

	for _, b := range bookings {
		if b.Released {
			continue
		}
		covered, err := g.SlotsFor(b.Time, b.Duration)
		if err != nil {
			continue
		}
		for n, t := range covered {
			i, ok := index[t]
			if !ok {
				continue
			}
			s := &slots[i]
			if s.State != SlotAvailable {
				s.Overlaps = append(s.Overlaps, b.ID)
				continue
			}
			s.AppointmentID = b.ID
			s.Label = b.Label
			s.State = SlotOccupied
			if n == 0 {
				s.State = SlotStart
			}
		}
	}
	return slots
}

// Available reports whether a booking of duration at hhmm fits in free slots.
func (g Grid) Available(day []Slot, hhmm string, duration int) bool {
	covered, err := g.SlotsFor(hhmm, duration)
	if err != nil {
		return false
	}
	free := make(map[string]bool, len(day))
	for _, s := range day {
		free[s.Time] = s.State == SlotAvailable
	}
	for _, t := range covered {
		if !free[t] {
			return false
		}
	}
	return true
}
