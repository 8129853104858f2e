// Package suggest derives ranked meeting-time suggestions from the group's
// availability intervals. Suggestions are recomputed on demand and never
// persisted.
package suggest

import (
	"sort"

	"github.com/dmerino/whenworks/internal/overlap"
	"github.com/dmerino/whenworks/internal/schedule"
)

// DefaultTopN is the number of suggestions surfaced in the UI.
const DefaultTopN = 3

// Suggestion is a contiguous window at constant attendance that meets the
// group's threshold.
type Suggestion struct {
	Day        schedule.Weekday
	Start      schedule.Hour
	End        schedule.Hour
	Attendance int
}

// Duration returns the window length in hours.
func (s Suggestion) Duration() schedule.Hour {
	return s.End - s.Start
}

// Threshold returns the minimum attendance for a window to qualify:
// half the group, but never fewer than two people.
func Threshold(groupSize int) int {
	half := groupSize / 2
	if half < 2 {
		return 2
	}
	return half
}

// Suggest scans every day at quarter-hour granularity and collects maximal
// runs of constant attendance at or above the threshold, then ranks them by
// attendance descending, ties broken by duration descending. Remaining ties
// keep discovery order (day, then time).
//
// This is a greedy segmentation, not a global optimum search: a run is closed
// whenever attendance changes, even if it stays above threshold, so each
// suggestion reports one exact attendance count.
func Suggest(intervals []schedule.Interval, groupSize, topN int) []Suggestion {
	threshold := Threshold(groupSize)

	var segments []Suggestion
	for day := schedule.Weekday(0); day <= 6; day++ {
		var open *Suggestion
		for i := 0; i < schedule.SamplesPerDay; i++ {
			hour := schedule.SampleHour(i)
			attendance := overlap.Count(day, hour, schedule.StatusAvailable, intervals)

			if attendance < threshold {
				if open != nil {
					open.End = hour
					segments = append(segments, *open)
					open = nil
				}
				continue
			}

			if open == nil {
				open = &Suggestion{Day: day, Start: hour, Attendance: attendance}
				continue
			}
			if open.Attendance != attendance {
				open.End = hour
				segments = append(segments, *open)
				open = &Suggestion{Day: day, Start: hour, Attendance: attendance}
			}
		}
		if open != nil {
			open.End = schedule.DayEnd
			segments = append(segments, *open)
		}
	}

	sort.SliceStable(segments, func(i, j int) bool {
		if segments[i].Attendance != segments[j].Attendance {
			return segments[i].Attendance > segments[j].Attendance
		}
		return segments[i].Duration() > segments[j].Duration()
	})

	if topN >= 0 && len(segments) > topN {
		segments = segments[:topN]
	}
	return segments
}
