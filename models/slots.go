package models

import (
	"fmt"
	"strings"
)

// Weekday names a day of the recurring weekly schedule.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Valid reports whether w is one of the seven recognised weekdays.
func (w Weekday) Valid() bool {
	switch w {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// ParseWeekday maps a day name onto its Weekday value, ignoring case.
func ParseWeekday(value string) (Weekday, error) {
	day := Weekday(strings.ToLower(strings.TrimSpace(value)))
	if !day.Valid() {
		return "", fmt.Errorf("unknown weekday %q", value)
	}
	return day, nil
}

// SlotStatus tracks the lifecycle of an availability slot.
type SlotStatus string

const (
	SlotOpen    SlotStatus = "open"    // bookable
	SlotBooked  SlotStatus = "booked"  // held by a confirmed appointment
	SlotBlocked SlotStatus = "blocked" // taken off the schedule by the doctor
)

func (s SlotStatus) Valid() bool {
	switch s {
	case SlotOpen, SlotBooked, SlotBlocked:
		return true
	}
	return false
}

// AvailabilitySlot is one recurring window on a doctor's weekly schedule.
type AvailabilitySlot struct {
	ID          string     `bson:"id" json:"id"`
	Day         Weekday    `bson:"day" json:"day"`
	Start       int        `bson:"start" json:"start"` // minutes from midnight (e.g., 420 for 7:00 AM)
	End         int        `bson:"end" json:"end"`     // minutes from midnight (e.g., 780 for 1:00 PM)
	Status      SlotStatus `bson:"status" json:"status"`
	BookingID   string     `bson:"bookingId,omitempty" json:"bookingId,omitempty"` // set while Status is "booked"
	BlockReason string     `bson:"blockReason,omitempty" json:"blockReason,omitempty"`
}

// Overlaps reports whether two slots on the same day share any minutes.
// Slots on different days never overlap.
func (s AvailabilitySlot) Overlaps(other AvailabilitySlot) bool {
	if s.Day != other.Day {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

// AvailabilityWindow is a requested appointment window used when searching.
type AvailabilityWindow struct {
	Day   Weekday `json:"day"`
	Start int     `json:"start"` // minutes from midnight
	End   int     `json:"end"`   // minutes from midnight
}

// ContainedBy reports whether the slot fully covers the window: same day,
// slot start at or before the window start, slot end at or after the window
// end. Partial overlap does not count.
func (w AvailabilityWindow) ContainedBy(slot AvailabilitySlot) bool {
	if slot.Day != w.Day {
		return false
	}
	return slot.Start <= w.Start && slot.End >= w.End
}

func (w AvailabilityWindow) String() string {
	return fmt.Sprintf("%s %d-%d", w.Day, w.Start, w.End)
}

// SetupAvailabilityRequest defines the payload for replacing a doctor's weekly schedule.
type SetupAvailabilityRequest struct {
	Slots []AvailabilitySlot `json:"slots" binding:"required"`
}

// ScheduleDTO is a minimal view of a doctor's schedule for setup responses.
type ScheduleDTO struct {
	DoctorID string             `json:"doctorId"`
	Slots    []AvailabilitySlot `json:"slots"`
}
