// Package schedule defines the core domain types for whenworks:
// weekly availability intervals on a fixed quarter-hour grid.
package schedule

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidRange  = errors.New("interval start must be before end and within the daily grid")
	ErrInvalidDay    = errors.New("day must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidStatus = errors.New("status must be 'available' or 'busy'")

	// ErrValidation wraps user-input errors from forms; state is untouched.
	ErrValidation = errors.New("invalid input")
)

// Domain errors.
var (
	ErrConflict         = errors.New("interval overlaps an opposite-status interval")
	ErrIntervalNotFound = errors.New("interval not found")
)

// Hour is a time of day expressed as a decimal hour on a quarter-hour grid,
// e.g. 9.75 for 09:45. The grid spans [DayStart, DayEnd].
type Hour = float64

// Daily grid bounds and granularity.
const (
	DayStart Hour = 8.0
	DayEnd   Hour = 22.0
	Step     Hour = 0.25
)

// SamplesPerDay is the number of quarter-hour samples in [DayStart, DayEnd).
const SamplesPerDay = int((DayEnd - DayStart) / Step)

// Weekday is a day index, 0=Sunday through 6=Saturday.
type Weekday int

// Name returns the short English name of the weekday.
func (d Weekday) Name() string {
	names := [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if d < 0 || int(d) >= len(names) {
		return "???"
	}
	return names[d]
}

// Valid returns true if the weekday is in range.
func (d Weekday) Valid() bool {
	return d >= 0 && d <= 6
}

// Status represents the kind of availability claim an interval makes.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBusy      Status = "busy"
)

// Valid returns true if the status is a valid value.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusBusy
}

// Opposite returns the other status.
func (s Status) Opposite() Status {
	if s == StatusAvailable {
		return StatusBusy
	}
	return StatusAvailable
}

// ParseStatus converts a stored string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable:
		return StatusAvailable, nil
	case StatusBusy:
		return StatusBusy, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidStatus, s)
	}
}

// Interval is one contiguous availability claim: a half-open hour range
// [Start, End) on one weekday, owned by one person.
type Interval struct {
	ID     int64
	Owner  string
	Day    Weekday
	Status Status
	Start  Hour
	End    Hour
}

// Validate checks the interval's bounds against the daily grid.
func Validate(iv Interval) error {
	if !iv.Day.Valid() {
		return ErrInvalidDay
	}
	if !iv.Status.Valid() {
		return ErrInvalidStatus
	}
	if iv.Start >= iv.End || iv.Start < DayStart || iv.End > DayEnd {
		return fmt.Errorf("%w: [%s, %s)", ErrInvalidRange, FormatHour(iv.Start), FormatHour(iv.End))
	}
	return nil
}

// Covers returns true if the interval contains the given hour.
// Containment is half-open: Start <= hour < End.
func (iv Interval) Covers(day Weekday, hour Hour) bool {
	return iv.Day == day && iv.Start <= hour && hour < iv.End
}

// Overlaps returns true if two hour ranges numerically overlap.
// Touching ranges (end == start) do not overlap.
func Overlaps(start1, end1, start2, end2 Hour) bool {
	return start1 < end2 && start2 < end1
}

// OverlapsWith returns true if this interval overlaps another on the same day.
func (iv Interval) OverlapsWith(other Interval) bool {
	if iv.Day != other.Day {
		return false
	}
	return Overlaps(iv.Start, iv.End, other.Start, other.End)
}

// Duration returns the interval length in hours.
func (iv Interval) Duration() Hour {
	return iv.End - iv.Start
}

// Person is an opaque identity with a display label. Membership is owned by
// the persistence layer; the engine only reads it.
type Person struct {
	ID          string
	DisplayName string
}

// Group is a named collection of people sharing an availability board.
type Group struct {
	ID         int64
	Name       string
	InviteCode string
}
