package schedule

import (
	"reflect"
	"testing"
)

func iv(day Weekday, status Status, start, end Hour) Interval {
	return Interval{Owner: "p1", Day: day, Status: status, Start: start, End: end}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		input []Interval
		want  []Interval
	}{
		{
			name:  "empty input",
			input: nil,
			want:  nil,
		},
		{
			name:  "single interval unchanged",
			input: []Interval{iv(1, StatusAvailable, 9, 11)},
			want:  []Interval{iv(1, StatusAvailable, 9, 11)},
		},
		{
			name: "overlapping same status coalesce",
			input: []Interval{
				iv(1, StatusAvailable, 9, 11),
				iv(1, StatusAvailable, 10, 12),
			},
			want: []Interval{iv(1, StatusAvailable, 9, 12)},
		},
		{
			name: "exact touch coalesces",
			input: []Interval{
				iv(1, StatusAvailable, 9, 10),
				iv(1, StatusAvailable, 10, 11),
			},
			want: []Interval{iv(1, StatusAvailable, 9, 11)},
		},
		{
			name: "strict gap preserved",
			input: []Interval{
				iv(1, StatusAvailable, 9, 10),
				iv(1, StatusAvailable, 10.25, 11),
			},
			want: []Interval{
				iv(1, StatusAvailable, 9, 10),
				iv(1, StatusAvailable, 10.25, 11),
			},
		},
		{
			name: "contained interval swallowed",
			input: []Interval{
				iv(1, StatusAvailable, 9, 14),
				iv(1, StatusAvailable, 10, 11),
			},
			want: []Interval{iv(1, StatusAvailable, 9, 14)},
		},
		{
			name: "unsorted input sorted before folding",
			input: []Interval{
				iv(1, StatusAvailable, 12, 13),
				iv(1, StatusAvailable, 9, 10),
				iv(1, StatusAvailable, 9.5, 11),
			},
			want: []Interval{
				iv(1, StatusAvailable, 9, 11),
				iv(1, StatusAvailable, 12, 13),
			},
		},
		{
			name: "opposite statuses never combine",
			input: []Interval{
				iv(1, StatusAvailable, 9, 11),
				iv(1, StatusBusy, 11, 13),
			},
			want: []Interval{
				iv(1, StatusAvailable, 9, 11),
				iv(1, StatusBusy, 11, 13),
			},
		},
		{
			name: "different days never combine",
			input: []Interval{
				iv(1, StatusAvailable, 9, 11),
				iv(2, StatusAvailable, 11, 13),
			},
			want: []Interval{
				iv(1, StatusAvailable, 9, 11),
				iv(2, StatusAvailable, 11, 13),
			},
		},
		{
			name: "quarter hour touch coalesces",
			input: []Interval{
				iv(3, StatusBusy, 8, 9.25),
				iv(3, StatusBusy, 9.25, 10.5),
				iv(3, StatusBusy, 10.5, 10.75),
			},
			want: []Interval{iv(3, StatusBusy, 8, 10.75)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	input := []Interval{
		iv(1, StatusAvailable, 9, 11),
		iv(1, StatusAvailable, 10, 12),
		iv(1, StatusBusy, 13, 14),
		iv(1, StatusBusy, 14, 15),
		iv(4, StatusAvailable, 8, 22),
		iv(4, StatusAvailable, 9, 9.25),
	}

	once := Merge(input)
	twice := Merge(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Merge not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestMergeCanonicalForm(t *testing.T) {
	input := []Interval{
		iv(1, StatusAvailable, 12, 13),
		iv(1, StatusAvailable, 9, 10.5),
		iv(1, StatusAvailable, 10, 11),
		iv(1, StatusBusy, 11, 12),
		iv(2, StatusAvailable, 8, 9),
		iv(2, StatusAvailable, 9, 10),
		iv(2, StatusAvailable, 15, 16),
	}

	merged := Merge(input)

	// Per (day, status), intervals must be sorted with a strict gap.
	byKey := make(map[mergeKey][]Interval)
	for _, m := range merged {
		byKey[mergeKey{m.Day, m.Status}] = append(byKey[mergeKey{m.Day, m.Status}], m)
	}
	for key, group := range byKey {
		for i := 1; i < len(group); i++ {
			if group[i-1].End >= group[i].Start {
				t.Errorf("group %v: interval %d end %.2f >= next start %.2f",
					key, i-1, group[i-1].End, group[i].Start)
			}
		}
	}
}
