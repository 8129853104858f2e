package schedule

import (
	"errors"
	"testing"
)

func TestClockToHour(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Hour
		wantErr bool
	}{
		{name: "morning", input: "09:00:00", want: 9},
		{name: "quarter past", input: "09:15:00", want: 9.25},
		{name: "half past", input: "14:30:00", want: 14.5},
		{name: "quarter to", input: "21:45:00", want: 21.75},
		{name: "end of grid", input: "22:00:00", want: 22},
		{name: "garbage", input: "late", wantErr: true},
		{name: "hour out of range", input: "25:00:00", wantErr: true},
		{name: "minute out of range", input: "09:75:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClockToHour(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ClockToHour(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ClockToHour(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ClockToHour(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHourToClock(t *testing.T) {
	tests := []struct {
		name  string
		input Hour
		want  string
	}{
		{name: "whole hour", input: 9, want: "09:00:00"},
		{name: "quarter", input: 9.25, want: "09:15:00"},
		{name: "half", input: 14.5, want: "14:30:00"},
		{name: "three quarters", input: 21.75, want: "21:45:00"},
		{name: "end of grid", input: 22, want: "22:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HourToClock(tt.input); got != tt.want {
				t.Errorf("HourToClock(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClockRoundTrip(t *testing.T) {
	for i := 0; i <= SamplesPerDay; i++ {
		hour := SampleHour(i)
		back, err := ClockToHour(HourToClock(hour))
		if err != nil {
			t.Fatalf("round trip %v: %v", hour, err)
		}
		if back != hour {
			t.Errorf("round trip %v = %v", hour, back)
		}
	}
}

func TestSnapHour(t *testing.T) {
	tests := []struct {
		name  string
		input Hour
		want  Hour
	}{
		{name: "below grid clamps", input: 3.5, want: DayStart},
		{name: "above grid clamps", input: 23, want: DayEnd},
		{name: "on grid unchanged", input: 10.25, want: 10.25},
		{name: "rounds down", input: 10.3, want: 10.25},
		{name: "rounds up", input: 10.4, want: 10.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapHour(tt.input); got != tt.want {
				t.Errorf("SnapHour(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		iv      Interval
		wantErr error
	}{
		{
			name: "valid",
			iv:   Interval{Owner: "p1", Day: 1, Status: StatusAvailable, Start: 9, End: 11},
		},
		{
			name:    "start equals end",
			iv:      Interval{Owner: "p1", Day: 1, Status: StatusAvailable, Start: 9, End: 9},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "inverted",
			iv:      Interval{Owner: "p1", Day: 1, Status: StatusAvailable, Start: 11, End: 9},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "starts before grid",
			iv:      Interval{Owner: "p1", Day: 1, Status: StatusAvailable, Start: 7, End: 9},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "ends after grid",
			iv:      Interval{Owner: "p1", Day: 1, Status: StatusAvailable, Start: 21, End: 23},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "bad day",
			iv:      Interval{Owner: "p1", Day: 7, Status: StatusAvailable, Start: 9, End: 11},
			wantErr: ErrInvalidDay,
		},
		{
			name:    "bad status",
			iv:      Interval{Owner: "p1", Day: 1, Status: "maybe", Start: 9, End: 11},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.iv)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
