package tui

import (
	"errors"
	"fmt"

	"github.com/dmerino/whenworks/internal/schedule"
)

// Editor errors.
var (
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNotResizing     = errors.New("not resizing an interval")
	ErrAlreadyResizing = errors.New("already resizing an interval")
)

const defaultMaxHistory = 50

// Edge identifies which boundary of an interval a resize targets.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// historyEntry represents a single undo-able operation.
type historyEntry struct {
	description string
	intervals   []schedule.Interval // snapshot before the operation
}

// Editor manages the local owner's working interval set with undo history.
// Every operation produces a new slice, so history entries are plain
// references to earlier snapshots and undo is a pointer swap.
type Editor struct {
	owner string

	// Saved state (synced with the repository)
	saved []schedule.Interval

	// Working state (in-memory edits)
	working []schedule.Interval

	history    []historyEntry
	maxHistory int
	dirty      bool

	// Resize session state
	isResizing   bool
	resizeID     int64
	resizeEdge   Edge
	beforeResize []schedule.Interval

	// Synthetic ids for intervals created locally; the repository assigns
	// real ids on the next full save.
	nextID int64
}

// NewEditor creates an editor for the given owner.
func NewEditor(owner string) *Editor {
	return &Editor{
		owner:      owner,
		maxHistory: defaultMaxHistory,
		nextID:     -1,
	}
}

// Owner returns the owner id this editor edits for.
func (e *Editor) Owner() string {
	return e.owner
}

// SetIntervals replaces both saved and working state, e.g. after a load.
// Pending edits and history are discarded.
func (e *Editor) SetIntervals(intervals []schedule.Interval) {
	canonical := schedule.Merge(intervals)
	e.saved = canonical
	e.working = canonical
	e.history = nil
	e.dirty = false
	e.clearResizeState()
}

// Intervals returns the current working snapshot. Callers must not mutate it.
func (e *Editor) Intervals() []schedule.Interval {
	return e.working
}

// HasChanges returns true if there are unsaved modifications.
func (e *Editor) HasChanges() bool {
	return e.dirty
}

// CanUndo returns true if there are operations to undo.
func (e *Editor) CanUndo() bool {
	return len(e.history) > 0
}

// UndoCount returns the number of operations that can be undone.
func (e *Editor) UndoCount() int {
	return len(e.history)
}

// Undo reverts the last operation.
func (e *Editor) Undo() error {
	if len(e.history) == 0 {
		return ErrNothingToUndo
	}

	entry := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.working = entry.intervals

	// History may have evicted its oldest entries, so an empty history does
	// not imply the saved state; compare the snapshots instead.
	e.dirty = !sameIntervals(e.working, e.saved)
	return nil
}

// Discard drops all pending edits and restores the saved state.
func (e *Editor) Discard() {
	e.working = e.saved
	e.history = nil
	e.dirty = false
	e.clearResizeState()
}

// Commit should be called after a successful save. The working set becomes
// the saved set; history is cleared.
func (e *Editor) Commit() {
	e.saved = e.working
	e.history = nil
	e.dirty = false
	e.clearResizeState()
}

// pushHistory saves the current snapshot before a modification.
func (e *Editor) pushHistory(description string) {
	if len(e.history) >= e.maxHistory {
		e.history = e.history[1:]
	}
	e.history = append(e.history, historyEntry{
		description: description,
		intervals:   e.working,
	})
}

// IntervalAt returns the owner's interval covering the given cell, or nil.
func (e *Editor) IntervalAt(day schedule.Weekday, hour schedule.Hour) *schedule.Interval {
	for i := range e.working {
		if e.working[i].Covers(day, hour) {
			iv := e.working[i]
			return &iv
		}
	}
	return nil
}

// FindByID returns the interval with the given id, or nil.
func (e *Editor) FindByID(id int64) *schedule.Interval {
	for i := range e.working {
		if e.working[i].ID == id {
			iv := e.working[i]
			return &iv
		}
	}
	return nil
}

// Add inserts a new interval and re-merges the owner's set. The edit is
// rejected whole if it would overlap an opposite-status interval. A
// zero-length range is a no-op.
func (e *Editor) Add(day schedule.Weekday, status schedule.Status, start, end schedule.Hour) error {
	if start > end {
		start, end = end, start
	}
	start = schedule.SnapHour(start)
	end = schedule.SnapHour(end)
	if start == end {
		return nil
	}

	candidate := schedule.Interval{
		ID:     e.nextID,
		Owner:  e.owner,
		Day:    day,
		Status: status,
		Start:  start,
		End:    end,
	}
	if err := schedule.Validate(candidate); err != nil {
		return err
	}
	if err := schedule.CheckConflict(candidate, e.working); err != nil {
		return err
	}
	e.nextID--

	e.pushHistory(fmt.Sprintf("Add %s %s", status, candidate.Day.Name()))
	next := make([]schedule.Interval, 0, len(e.working)+1)
	next = append(next, e.working...)
	next = append(next, candidate)
	e.working = schedule.Merge(next)
	e.dirty = true
	return nil
}

// RemoveRange deletes every interval of the owner that overlaps the given
// range on a day. Intervals are removed whole, not clipped. Returns how many
// were removed; zero removals leave history untouched.
func (e *Editor) RemoveRange(day schedule.Weekday, start, end schedule.Hour) int {
	if start > end {
		start, end = end, start
	}

	var kept []schedule.Interval
	removed := 0
	for _, iv := range e.working {
		hit := iv.Day == day && (schedule.Overlaps(start, end, iv.Start, iv.End) ||
			(start == end && iv.Covers(day, start)))
		if hit {
			removed++
			continue
		}
		kept = append(kept, iv)
	}
	if removed == 0 {
		return 0
	}

	e.pushHistory(fmt.Sprintf("Remove %d on %s", removed, day.Name()))
	e.working = kept
	e.dirty = true
	return removed
}

// IsResizing returns true if a resize session is active.
func (e *Editor) IsResizing() bool {
	return e.isResizing
}

// ResizingID returns the id of the interval being resized.
func (e *Editor) ResizingID() int64 {
	return e.resizeID
}

// ResizeEdge returns the edge being dragged.
func (e *Editor) ResizeEdge() Edge {
	return e.resizeEdge
}

// StartResize begins a resize session on one edge of an interval. Moves
// accumulate on the working set; ConfirmResize records a single history
// entry and CancelResize restores the pre-session snapshot.
func (e *Editor) StartResize(id int64, edge Edge) error {
	if e.isResizing {
		return ErrAlreadyResizing
	}
	if e.FindByID(id) == nil {
		return schedule.ErrIntervalNotFound
	}
	e.isResizing = true
	e.resizeID = id
	e.resizeEdge = edge
	e.beforeResize = e.working
	return nil
}

// ResizeTo moves the active edge to the given hour. An invalid target (empty
// range, out of grid, opposite-status overlap) returns an error and leaves
// the working set at its last valid geometry.
func (e *Editor) ResizeTo(hour schedule.Hour) error {
	if !e.isResizing {
		return ErrNotResizing
	}

	current := e.FindByID(e.resizeID)
	if current == nil {
		return schedule.ErrIntervalNotFound
	}

	resized := *current
	hour = schedule.SnapHour(hour)
	switch e.resizeEdge {
	case EdgeStart:
		resized.Start = hour
	case EdgeEnd:
		resized.End = hour
	}
	if err := schedule.Validate(resized); err != nil {
		return err
	}

	others := make([]schedule.Interval, 0, len(e.working)-1)
	for _, iv := range e.working {
		if iv.ID != e.resizeID {
			others = append(others, iv)
		}
	}
	if err := schedule.CheckConflict(resized, others); err != nil {
		return err
	}

	// Merging is deferred to ConfirmResize: coalescing mid-session could
	// fold the interval into a neighbor and drop the id being dragged.
	e.working = append(others, resized)
	return nil
}

// ConfirmResize commits the resize as one undo-able operation.
func (e *Editor) ConfirmResize() error {
	if !e.isResizing {
		return ErrNotResizing
	}

	e.working = schedule.Merge(e.working)
	changed := !sameIntervals(e.beforeResize, e.working)
	if changed {
		after := e.working
		e.working = e.beforeResize
		e.pushHistory("Resize")
		e.working = after
		e.dirty = true
	}
	e.clearResizeState()
	return nil
}

// CancelResize aborts the session and restores the pre-session snapshot.
func (e *Editor) CancelResize() {
	if !e.isResizing {
		return
	}
	e.working = e.beforeResize
	e.clearResizeState()
}

func (e *Editor) clearResizeState() {
	e.isResizing = false
	e.resizeID = 0
	e.resizeEdge = EdgeStart
	e.beforeResize = nil
}

// Records converts the working set for persistence.
func (e *Editor) Records(groupID int64) []schedule.Record {
	return schedule.ToRecords(e.working, groupID)
}

func sameIntervals(a, b []schedule.Interval) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Day != b[i].Day || a[i].Status != b[i].Status ||
			a[i].Start != b[i].Start || a[i].End != b[i].End {
			return false
		}
	}
	return true
}
