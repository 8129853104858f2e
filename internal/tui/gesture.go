package tui

import (
	"github.com/dmerino/whenworks/internal/schedule"
)

// DragKind distinguishes paint drags from erase drags.
type DragKind int

const (
	DragAdd DragKind = iota
	DragRemove
)

// DragSession is the ephemeral state of an in-progress paint or erase drag.
// It exists only between press and release; committing or cancelling it is
// the caller's job. A drag never crosses days: the anchor day wins.
type DragSession struct {
	Kind    DragKind
	Day     schedule.Weekday
	Status  schedule.Status // status painted by DragAdd
	Anchor  schedule.Hour
	Current schedule.Hour
}

// StartDrag opens a drag session anchored at one cell.
func StartDrag(kind DragKind, day schedule.Weekday, status schedule.Status, hour schedule.Hour) *DragSession {
	return &DragSession{
		Kind:    kind,
		Day:     day,
		Status:  status,
		Anchor:  hour,
		Current: hour,
	}
}

// Extend moves the live end of the drag. Cells on other days are clamped to
// the anchor day, so only the hour component is taken.
func (s *DragSession) Extend(hour schedule.Hour) {
	s.Current = schedule.SnapHour(hour)
}

// Range returns the half-open hour range the drag covers. A drag over a
// single cell still covers one full step.
func (s *DragSession) Range() (start, end schedule.Hour) {
	lo, hi := s.Anchor, s.Current
	if hi < lo {
		lo, hi = hi, lo
	}
	end = hi + schedule.Step
	if end > schedule.DayEnd {
		end = schedule.DayEnd
	}
	return lo, end
}

// CoversCell returns true if the drag currently covers the given cell, for
// rendering the live preview.
func (s *DragSession) CoversCell(day schedule.Weekday, hour schedule.Hour) bool {
	if day != s.Day {
		return false
	}
	start, end := s.Range()
	return start <= hour && hour < end
}

// GridLayout describes where the week grid sits on screen. It is the single
// place that translates terminal coordinates into grid cells; everything
// above it works in (day, hour) terms.
type GridLayout struct {
	OriginX      int // column of the first day's first cell
	OriginY      int // row of the first visible grid line
	ColWidth     int
	VisibleRows  int
	ScrollOffset int // first visible sample index
}

// CellAt maps a terminal coordinate to a grid cell. ok is false outside the
// grid.
func (l GridLayout) CellAt(x, y int) (day schedule.Weekday, hour schedule.Hour, ok bool) {
	if l.ColWidth <= 0 {
		return 0, 0, false
	}
	col := (x - l.OriginX) / l.ColWidth
	row := y - l.OriginY + l.ScrollOffset
	if x < l.OriginX || col < 0 || col > 6 {
		return 0, 0, false
	}
	if y < l.OriginY || y >= l.OriginY+l.VisibleRows {
		return 0, 0, false
	}
	if row < 0 || row >= schedule.SamplesPerDay {
		return 0, 0, false
	}
	return schedule.Weekday(col), schedule.SampleHour(row), true
}

// RowFor returns the screen row of an hour, and whether it is visible.
func (l GridLayout) RowFor(hour schedule.Hour) (int, bool) {
	sample := int((hour - schedule.DayStart) / schedule.Step)
	row := l.OriginY + sample - l.ScrollOffset
	visible := row >= l.OriginY && row < l.OriginY+l.VisibleRows
	return row, visible
}

// edgeAt decides whether a press on an interval should grab a resize handle.
// The first covered cell grabs the start edge, the last one the end edge;
// anything in between is a plain hit.
func edgeAt(iv schedule.Interval, hour schedule.Hour) (Edge, bool) {
	if hour == iv.Start && iv.Duration() > schedule.Step {
		return EdgeStart, true
	}
	if hour == iv.End-schedule.Step {
		return EdgeEnd, true
	}
	return EdgeStart, false
}
