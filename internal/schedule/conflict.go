package schedule

import "fmt"

// CheckConflict reports whether the candidate interval overlaps an existing
// interval of the opposite status for the same owner and day. Same-status
// overlap is never a conflict; Merge resolves it instead.
//
// Callers must discard the proposed edit entirely on conflict. Partial
// commits are forbidden.
func CheckConflict(candidate Interval, existing []Interval) error {
	for _, other := range existing {
		if other.Owner != candidate.Owner || other.Day != candidate.Day {
			continue
		}
		if other.Status == candidate.Status {
			continue
		}
		if Overlaps(candidate.Start, candidate.End, other.Start, other.End) {
			return fmt.Errorf("%w: %s [%s, %s) vs %s [%s, %s)",
				ErrConflict,
				candidate.Status, FormatHour(candidate.Start), FormatHour(candidate.End),
				other.Status, FormatHour(other.Start), FormatHour(other.End))
		}
	}
	return nil
}
