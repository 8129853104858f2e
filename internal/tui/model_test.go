package tui

import (
	"testing"

	"github.com/dmerino/whenworks/internal/config"
	"github.com/dmerino/whenworks/internal/overlap"
	"github.com/dmerino/whenworks/internal/schedule"
	"github.com/dmerino/whenworks/internal/tui/commands"
)

func newTestModel() Model {
	cfg := config.Default()
	cfg.Identity.OwnerID = "a"
	return Model{
		config:     cfg,
		editor:     NewEditor("a"),
		visibility: overlap.NewVisibility("a"),
		members: []schedule.Person{
			{ID: "a", DisplayName: "Ana"},
			{ID: "b", DisplayName: "Bo"},
			{ID: "c", DisplayName: "Cy"},
		},
	}
}

func rec(owner string, day int, start, end string, status schedule.Status) schedule.Record {
	return schedule.Record{
		OwnerID:   owner,
		GroupID:   1,
		Day:       day,
		StartTime: start,
		EndTime:   end,
		Status:    string(status),
	}
}

func TestApplyRecordsKeepsOwnersDistinct(t *testing.T) {
	m := newTestModel()

	records := []schedule.Record{
		rec("a", 1, "09:00:00", "10:00:00", schedule.StatusAvailable),
		rec("b", 1, "09:00:00", "11:00:00", schedule.StatusAvailable),
		rec("c", 1, "10:00:00", "12:00:00", schedule.StatusAvailable),
	}
	if err := m.applyRecords(records); err != nil {
		t.Fatalf("applyRecords() error: %v", err)
	}

	// b's and c's overlapping free time must stay two intervals with their
	// own owners, not fold into one.
	if len(m.others) != 2 {
		t.Fatalf("got %d other intervals, want 2: %+v", len(m.others), m.others)
	}
	owners := map[string]bool{}
	for _, iv := range m.others {
		owners[iv.Owner] = true
	}
	if !owners["b"] || !owners["c"] {
		t.Errorf("other intervals lost their owners: %+v", m.others)
	}

	if got := overlap.Count(1, 10.5, schedule.StatusAvailable, m.others); got != 2 {
		t.Errorf("Count(10:30) = %d distinct owners, want 2", got)
	}

	// With two people free across 09:00-11:00 the top suggestion spans the
	// whole run, not just the stretch covered by a single interval.
	if len(m.suggestions) == 0 {
		t.Fatal("expected a suggestion for the shared free time")
	}
	top := m.suggestions[0]
	if top.Day != 1 || top.Start != 9 || top.End != 11 || top.Attendance != 2 {
		t.Errorf("top suggestion = %+v, want Mon [9, 11) with 2 free", top)
	}
}

func TestReloadWhileDirtyKeepsOwnersDistinct(t *testing.T) {
	m := newTestModel()
	if err := m.editor.Add(2, schedule.StatusAvailable, 9, 10); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	msg := commands.AvailabilityReloadedMsg{
		Members: m.members,
		Records: []schedule.Record{
			rec("a", 1, "13:00:00", "14:00:00", schedule.StatusAvailable),
			rec("b", 1, "09:00:00", "11:00:00", schedule.StatusAvailable),
			rec("c", 1, "10:00:00", "12:00:00", schedule.StatusAvailable),
		},
	}
	updated, _ := m.Update(msg)
	got := updated.(Model)

	// The pending edit survives; only the others' side refreshes, and the
	// local owner's stored rows are not mixed into it.
	if !got.editor.HasChanges() || len(got.editor.Intervals()) != 1 {
		t.Error("reload while dirty must not clobber pending edits")
	}
	if len(got.others) != 2 {
		t.Fatalf("got %d other intervals, want 2: %+v", len(got.others), got.others)
	}
	if n := overlap.Count(1, 10.5, schedule.StatusAvailable, got.others); n != 2 {
		t.Errorf("Count(10:30) = %d distinct owners, want 2", n)
	}
}
