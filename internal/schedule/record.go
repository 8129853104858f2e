package schedule

import "fmt"

// Record is the storage representation of an interval: day index plus
// "HH:MM:SS" clock strings, matching the availability table schema.
type Record struct {
	ID        int64
	OwnerID   string
	GroupID   int64
	Day       int
	StartTime string
	EndTime   string
	Status    string
}

// ToRecord serializes an interval for persistence.
func ToRecord(iv Interval, groupID int64) Record {
	return Record{
		ID:        iv.ID,
		OwnerID:   iv.Owner,
		GroupID:   groupID,
		Day:       int(iv.Day),
		StartTime: HourToClock(iv.Start),
		EndTime:   HourToClock(iv.End),
		Status:    string(iv.Status),
	}
}

// FromRecord deserializes a stored record into an interval, validating it.
func FromRecord(r Record) (Interval, error) {
	status, err := ParseStatus(r.Status)
	if err != nil {
		return Interval{}, fmt.Errorf("record %d: %w", r.ID, err)
	}
	start, err := ClockToHour(r.StartTime)
	if err != nil {
		return Interval{}, fmt.Errorf("record %d: %w", r.ID, err)
	}
	end, err := ClockToHour(r.EndTime)
	if err != nil {
		return Interval{}, fmt.Errorf("record %d: %w", r.ID, err)
	}

	iv := Interval{
		ID:     r.ID,
		Owner:  r.OwnerID,
		Day:    Weekday(r.Day),
		Status: status,
		Start:  start,
		End:    end,
	}
	if err := Validate(iv); err != nil {
		return Interval{}, fmt.Errorf("record %d: %w", r.ID, err)
	}
	return iv, nil
}

// ToRecords serializes a canonical interval set.
func ToRecords(intervals []Interval, groupID int64) []Record {
	records := make([]Record, 0, len(intervals))
	for _, iv := range intervals {
		records = append(records, ToRecord(iv, groupID))
	}
	return records
}

// FromRecords deserializes a loaded record set, dropping nothing: a single
// malformed record fails the whole load so a corrupted store is noticed.
func FromRecords(records []Record) ([]Interval, error) {
	intervals := make([]Interval, 0, len(records))
	for _, r := range records {
		iv, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}
