package tui

import (
	"errors"
	"testing"

	"github.com/dmerino/whenworks/internal/schedule"
)

func newTestEditor(intervals ...schedule.Interval) *Editor {
	e := NewEditor("p1")
	// Distinct ids, as the repository would assign on load.
	for i := range intervals {
		intervals[i].ID = int64(i + 1)
	}
	e.SetIntervals(intervals)
	return e
}

func iv(day schedule.Weekday, status schedule.Status, start, end schedule.Hour) schedule.Interval {
	return schedule.Interval{Owner: "p1", Day: day, Status: status, Start: start, End: end}
}

func TestEditorAddMergesAdjacent(t *testing.T) {
	e := newTestEditor(iv(1, schedule.StatusAvailable, 9, 10))

	if err := e.Add(1, schedule.StatusAvailable, 10, 11); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	got := e.Intervals()
	if len(got) != 1 {
		t.Fatalf("got %d intervals, want 1 merged", len(got))
	}
	if got[0].Start != 9 || got[0].End != 11 {
		t.Errorf("merged interval = [%v, %v), want [9, 11)", got[0].Start, got[0].End)
	}
	if !e.HasChanges() {
		t.Error("editor should be dirty after add")
	}
}

func TestEditorAddConflictRejectedWhole(t *testing.T) {
	e := newTestEditor(iv(2, schedule.StatusBusy, 10, 11))

	err := e.Add(2, schedule.StatusAvailable, 9.75, 10.5)
	if !errors.Is(err, schedule.ErrConflict) {
		t.Fatalf("Add() = %v, want ErrConflict", err)
	}

	got := e.Intervals()
	if len(got) != 1 || got[0].Status != schedule.StatusBusy {
		t.Errorf("conflicting add must leave the set untouched, got %+v", got)
	}
	if e.HasChanges() {
		t.Error("rejected add must not mark the editor dirty")
	}
}

func TestEditorAddZeroLengthIsNoOp(t *testing.T) {
	e := newTestEditor()

	if err := e.Add(1, schedule.StatusAvailable, 9, 9); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if len(e.Intervals()) != 0 || e.HasChanges() {
		t.Error("zero-length add must change nothing")
	}
}

func TestEditorRemoveRangeDeletesWholeIntervals(t *testing.T) {
	e := newTestEditor(
		iv(3, schedule.StatusAvailable, 9, 11),
		iv(3, schedule.StatusBusy, 12, 13),
		iv(4, schedule.StatusAvailable, 9, 11),
	)

	// A removal touching only part of the first interval still deletes the
	// whole thing; intervals are never clipped.
	removed := e.RemoveRange(3, 10, 10.5)
	if removed != 1 {
		t.Fatalf("RemoveRange() removed %d, want 1", removed)
	}

	for _, got := range e.Intervals() {
		if got.Day == 3 && got.Status == schedule.StatusAvailable {
			t.Errorf("interval should have been removed whole, still present: %+v", got)
		}
	}
	if len(e.Intervals()) != 2 {
		t.Errorf("got %d intervals, want 2", len(e.Intervals()))
	}
}

func TestEditorRemoveRangeNoHitKeepsHistoryClean(t *testing.T) {
	e := newTestEditor(iv(1, schedule.StatusAvailable, 9, 10))

	if removed := e.RemoveRange(1, 15, 16); removed != 0 {
		t.Fatalf("RemoveRange() removed %d, want 0", removed)
	}
	if e.CanUndo() || e.HasChanges() {
		t.Error("a miss must not push history or mark dirty")
	}
}

func TestEditorUndo(t *testing.T) {
	e := newTestEditor()

	if err := e.Add(1, schedule.StatusAvailable, 9, 10); err != nil {
		t.Fatal(err)
	}
	if err := e.Add(2, schedule.StatusBusy, 14, 15); err != nil {
		t.Fatal(err)
	}
	if e.UndoCount() != 2 {
		t.Fatalf("UndoCount() = %d, want 2", e.UndoCount())
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if len(e.Intervals()) != 1 {
		t.Errorf("after first undo: %d intervals, want 1", len(e.Intervals()))
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if len(e.Intervals()) != 0 {
		t.Errorf("after second undo: %d intervals, want 0", len(e.Intervals()))
	}
	if e.HasChanges() {
		t.Error("fully undone editor should not be dirty")
	}

	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() on empty history = %v, want ErrNothingToUndo", err)
	}
}

func TestEditorDiscard(t *testing.T) {
	e := newTestEditor(iv(1, schedule.StatusAvailable, 9, 10))

	if err := e.Add(1, schedule.StatusAvailable, 11, 12); err != nil {
		t.Fatal(err)
	}
	e.Discard()

	got := e.Intervals()
	if len(got) != 1 || got[0].Start != 9 {
		t.Errorf("Discard() should restore the saved set, got %+v", got)
	}
	if e.HasChanges() || e.CanUndo() {
		t.Error("Discard() should clear dirty flag and history")
	}
}

func TestEditorCommit(t *testing.T) {
	e := newTestEditor()
	if err := e.Add(1, schedule.StatusAvailable, 9, 10); err != nil {
		t.Fatal(err)
	}

	e.Commit()
	if e.HasChanges() || e.CanUndo() {
		t.Error("Commit() should clear dirty flag and history")
	}

	// Discard after commit keeps the committed interval.
	e.Discard()
	if len(e.Intervals()) != 1 {
		t.Errorf("committed interval should survive discard, got %d", len(e.Intervals()))
	}
}

func TestEditorResizeFreezesAtLastValid(t *testing.T) {
	e := newTestEditor(
		iv(5, schedule.StatusAvailable, 9, 10),
		iv(5, schedule.StatusBusy, 10.5, 11),
	)
	target := e.IntervalAt(5, 9)
	if target == nil {
		t.Fatal("interval not found")
	}

	if err := e.StartResize(target.ID, EdgeEnd); err != nil {
		t.Fatalf("StartResize() error: %v", err)
	}

	// Growing up to the busy block is fine.
	if err := e.ResizeTo(10.5); err != nil {
		t.Fatalf("ResizeTo(10.5) error: %v", err)
	}

	// Growing into the busy block fails and must not move the edge.
	if err := e.ResizeTo(10.75); !errors.Is(err, schedule.ErrConflict) {
		t.Fatalf("ResizeTo(10.75) = %v, want ErrConflict", err)
	}

	if err := e.ConfirmResize(); err != nil {
		t.Fatalf("ConfirmResize() error: %v", err)
	}

	got := e.IntervalAt(5, 9)
	if got == nil || got.End != 10.5 {
		t.Errorf("edge should be frozen at 10.5, got %+v", got)
	}
	if !e.HasChanges() {
		t.Error("confirmed resize should mark the editor dirty")
	}
}

func TestEditorResizeMergesOnConfirm(t *testing.T) {
	e := newTestEditor(
		iv(0, schedule.StatusAvailable, 9, 10),
		iv(0, schedule.StatusAvailable, 10.25, 11),
	)
	target := e.IntervalAt(0, 9)
	if target == nil {
		t.Fatal("interval not found")
	}

	if err := e.StartResize(target.ID, EdgeEnd); err != nil {
		t.Fatal(err)
	}
	if err := e.ResizeTo(10.25); err != nil {
		t.Fatalf("ResizeTo(10.25) error: %v", err)
	}
	if err := e.ConfirmResize(); err != nil {
		t.Fatal(err)
	}

	got := e.Intervals()
	if len(got) != 1 {
		t.Fatalf("touching intervals should coalesce on confirm, got %d", len(got))
	}
	if got[0].Start != 9 || got[0].End != 11 {
		t.Errorf("merged interval = [%v, %v), want [9, 11)", got[0].Start, got[0].End)
	}
}

func TestEditorCancelResize(t *testing.T) {
	e := newTestEditor(iv(2, schedule.StatusAvailable, 9, 10))
	target := e.IntervalAt(2, 9)

	if err := e.StartResize(target.ID, EdgeEnd); err != nil {
		t.Fatal(err)
	}
	if err := e.ResizeTo(12); err != nil {
		t.Fatal(err)
	}
	e.CancelResize()

	got := e.IntervalAt(2, 9)
	if got == nil || got.End != 10 {
		t.Errorf("cancel should restore the pre-session geometry, got %+v", got)
	}
	if e.HasChanges() {
		t.Error("cancelled resize must not mark dirty")
	}
}

func TestEditorResizeNoChangeSkipsHistory(t *testing.T) {
	e := newTestEditor(iv(2, schedule.StatusAvailable, 9, 10))
	target := e.IntervalAt(2, 9)

	if err := e.StartResize(target.ID, EdgeEnd); err != nil {
		t.Fatal(err)
	}
	if err := e.ConfirmResize(); err != nil {
		t.Fatal(err)
	}
	if e.CanUndo() || e.HasChanges() {
		t.Error("a resize that moved nothing must not create history")
	}
}

func TestEditorUndoPastHistoryCapStaysDirty(t *testing.T) {
	e := newTestEditor()

	// Two more edits than the history cap, so the two oldest snapshots are
	// evicted. Gaps keep the intervals from coalescing.
	edits := defaultMaxHistory + 2
	for i := 0; i < edits; i++ {
		day := schedule.Weekday(i % 7)
		start := schedule.DayStart + schedule.Hour(i/7)
		if err := e.Add(day, schedule.StatusAvailable, start, start+schedule.Step); err != nil {
			t.Fatalf("Add(%d) error: %v", i, err)
		}
	}
	if e.UndoCount() != defaultMaxHistory {
		t.Fatalf("UndoCount() = %d, want %d", e.UndoCount(), defaultMaxHistory)
	}

	for e.CanUndo() {
		if err := e.Undo(); err != nil {
			t.Fatalf("Undo() error: %v", err)
		}
	}

	// The oldest surviving snapshot still holds the first two edits, so the
	// working set differs from the saved one.
	if got := len(e.Intervals()); got != 2 {
		t.Fatalf("got %d intervals after exhausting undo, want 2", got)
	}
	if !e.HasChanges() {
		t.Error("editor must stay dirty while working differs from saved")
	}
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() = %v, want ErrNothingToUndo", err)
	}
}
