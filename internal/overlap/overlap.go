// Package overlap computes cross-person availability: which intervals are
// visible, how many distinct owners cover a given day/hour, and whether a
// point passes the active overlap filter.
//
// Everything here is a pure query over immutable snapshots. Toggling
// visibility or a filter produces a new snapshot; nothing is ambient state.
package overlap

import "github.com/dmerino/whenworks/internal/schedule"

// Visibility is an immutable set of owner ids selected for display. It always
// starts containing the local person's id.
type Visibility struct {
	members map[string]struct{}
}

// NewVisibility creates a visibility snapshot containing only the local owner.
func NewVisibility(localOwner string) Visibility {
	return Visibility{members: map[string]struct{}{localOwner: {}}}
}

// Contains reports whether an owner is visible.
func (v Visibility) Contains(owner string) bool {
	_, ok := v.members[owner]
	return ok
}

// Len returns the number of visible owners.
func (v Visibility) Len() int {
	return len(v.members)
}

// Toggle returns a new snapshot with the owner added or removed.
func (v Visibility) Toggle(owner string) Visibility {
	next := make(map[string]struct{}, len(v.members)+1)
	for id := range v.members {
		next[id] = struct{}{}
	}
	if _, ok := next[owner]; ok {
		delete(next, owner)
	} else {
		next[owner] = struct{}{}
	}
	return Visibility{members: next}
}

// SoleMember reports whether the snapshot contains exactly the given owner.
// Editing is only permitted in this state.
func (v Visibility) SoleMember(owner string) bool {
	return len(v.members) == 1 && v.Contains(owner)
}

// FilterMode selects which overlap filter is active. The two overlap modes
// are mutually exclusive; activating one clears the other.
type FilterMode int

const (
	FilterNone FilterMode = iota
	FilterOnlyFreeOverlap
	FilterOnlyBusyOverlap
)

// ToggleFilter returns the mode resulting from activating the requested mode:
// re-activating the current mode clears it, anything else replaces it.
func ToggleFilter(current, requested FilterMode) FilterMode {
	if current == requested {
		return FilterNone
	}
	return requested
}

// VisibleIntervals returns the union of the local person's intervals (when
// self is visible) and every other interval whose owner is visible.
func VisibleIntervals(vis Visibility, self string, mine, others []schedule.Interval) []schedule.Interval {
	var out []schedule.Interval
	if vis.Contains(self) {
		out = append(out, mine...)
	}
	for _, iv := range others {
		if iv.Owner != self && vis.Contains(iv.Owner) {
			out = append(out, iv)
		}
	}
	return out
}

// Count returns the number of distinct owners with a status interval covering
// the given day/hour. Containment is half-open: start <= hour < end.
func Count(day schedule.Weekday, hour schedule.Hour, status schedule.Status, intervals []schedule.Interval) int {
	owners := make(map[string]struct{})
	for _, iv := range intervals {
		if iv.Status == status && iv.Covers(day, hour) {
			owners[iv.Owner] = struct{}{}
		}
	}
	return len(owners)
}

// minOverlapOwners is the attendance needed for a point to count as overlap.
const minOverlapOwners = 2

// PassesFilter reports whether a day/hour point passes the active filter.
// FilterNone always passes; the overlap modes require at least two distinct
// owners of the matching status covering the point.
func PassesFilter(day schedule.Weekday, hour schedule.Hour, mode FilterMode, intervals []schedule.Interval) bool {
	switch mode {
	case FilterOnlyFreeOverlap:
		return Count(day, hour, schedule.StatusAvailable, intervals) >= minOverlapOwners
	case FilterOnlyBusyOverlap:
		return Count(day, hour, schedule.StatusBusy, intervals) >= minOverlapOwners
	default:
		return true
	}
}
