package schedule

import "sort"

// mergeKey partitions one owner's intervals for coalescing. Available and
// busy intervals never merge with each other; that separation is what the
// conflict check protects.
type mergeKey struct {
	day    Weekday
	status Status
}

// Merge coalesces one person's intervals into canonical form: per
// (day, status), sorted by start, pairwise non-overlapping and non-touching.
// A pair with next.Start <= current.End is combined, taking the max end;
// exact touches coalesce deliberately, a boundary shared by two claims of
// the same status is not a gap.
//
// Merge is idempotent and never mixes statuses or days. Empty input yields
// empty output.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	groups := make(map[mergeKey][]Interval)
	for _, iv := range intervals {
		k := mergeKey{day: iv.Day, status: iv.Status}
		groups[k] = append(groups[k], iv)
	}

	var out []Interval
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Start < group[j].Start
		})

		run := group[0]
		for _, next := range group[1:] {
			if next.Start <= run.End {
				if next.End > run.End {
					run.End = next.End
				}
				continue
			}
			out = append(out, run)
			run = next
		}
		out = append(out, run)
	}

	// Deterministic order across partitions for rendering and persistence.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Status < b.Status
	})

	return out
}
