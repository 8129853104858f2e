package schedule

import (
	"fmt"
	"math"
)

// ClockToHour converts a stored "HH:MM:SS" clock string to a decimal Hour.
// Seconds are ignored; records only ever carry whole quarter hours.
func ClockToHour(clock string) (Hour, error) {
	var h, m, s int
	if _, err := fmt.Sscanf(clock, "%d:%d:%d", &h, &m, &s); err != nil {
		return 0, fmt.Errorf("parsing clock %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, fmt.Errorf("parsing clock %q: out of range", clock)
	}
	return Hour(h) + Hour(m)/60, nil
}

// HourToClock converts a decimal Hour to the "HH:MM:SS" storage form.
func HourToClock(hour Hour) string {
	h := int(hour)
	m := int(math.Round((hour - Hour(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%02d:%02d:00", h, m)
}

// FormatHour renders an Hour as "HH:MM" for display.
func FormatHour(hour Hour) string {
	h := int(hour)
	m := int(math.Round((hour - Hour(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// SnapHour clamps an hour to the daily grid and rounds it to the nearest
// quarter hour.
func SnapHour(hour Hour) Hour {
	if hour < DayStart {
		return DayStart
	}
	if hour > DayEnd {
		return DayEnd
	}
	return math.Round(hour/Step) * Step
}

// SampleHour returns the hour at sample index i of the daily scan,
// i.e. DayStart + i*Step.
func SampleHour(i int) Hour {
	return DayStart + Hour(i)*Step
}
