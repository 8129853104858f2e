package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmerino/whenworks/internal/schedule"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCreateAndJoinGroup(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	group, err := repo.CreateGroup(ctx, "lunch crew")
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}
	if group.InviteCode == "" || len(group.InviteCode) != 8 {
		t.Errorf("invite code = %q, want 8 characters", group.InviteCode)
	}

	joined, err := repo.JoinGroup(ctx, group.InviteCode, "p1", "Dana")
	if err != nil {
		t.Fatalf("JoinGroup() error: %v", err)
	}
	if joined.ID != group.ID {
		t.Errorf("joined group id = %d, want %d", joined.ID, group.ID)
	}

	if _, err := repo.JoinGroup(ctx, group.InviteCode, "p2", "Ana"); err != nil {
		t.Fatalf("JoinGroup() second member error: %v", err)
	}

	members, err := repo.ListMembers(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListMembers() error: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("ListMembers() returned %d, want 2", len(members))
	}
	if members[0].ID != "p1" || members[0].DisplayName != "Dana" {
		t.Errorf("first member = %+v, want p1/Dana", members[0])
	}
}

func TestJoinGroupUnknownCode(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.JoinGroup(context.Background(), "NOPE", "p1", "Dana"); err == nil {
		t.Error("JoinGroup() with unknown code should fail")
	}
}

func TestJoinGroupTwiceUpdatesName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	group, err := repo.CreateGroup(ctx, "crew")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.JoinGroup(ctx, group.InviteCode, "p1", "Dana"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.JoinGroup(ctx, group.InviteCode, "p1", "Dana M"); err != nil {
		t.Fatalf("rejoining should not fail: %v", err)
	}

	members, err := repo.ListMembers(ctx, group.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 || members[0].DisplayName != "Dana M" {
		t.Errorf("members = %+v, want single p1 with updated name", members)
	}
}

func TestSaveAndLoadAvailability(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	group, err := repo.CreateGroup(ctx, "crew")
	if err != nil {
		t.Fatal(err)
	}

	intervals := []schedule.Interval{
		{Owner: "p1", Day: 1, Status: schedule.StatusAvailable, Start: 9, End: 11.5},
		{Owner: "p1", Day: 3, Status: schedule.StatusBusy, Start: 14.25, End: 16},
	}

	err = repo.SaveAvailability(ctx, "p1", group.ID, schedule.ToRecords(intervals, group.ID))
	if err != nil {
		t.Fatalf("SaveAvailability() error: %v", err)
	}

	records, err := repo.LoadAvailability(ctx, group.ID)
	if err != nil {
		t.Fatalf("LoadAvailability() error: %v", err)
	}

	loaded, err := schedule.FromRecords(records)
	if err != nil {
		t.Fatalf("FromRecords() error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d intervals, want 2", len(loaded))
	}
	for i, iv := range loaded {
		want := intervals[i]
		if iv.Owner != want.Owner || iv.Day != want.Day || iv.Status != want.Status ||
			iv.Start != want.Start || iv.End != want.End {
			t.Errorf("loaded[%d] = %+v, want %+v", i, iv, want)
		}
	}
}

func TestSaveAvailabilityReplacesWholeSet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	group, err := repo.CreateGroup(ctx, "crew")
	if err != nil {
		t.Fatal(err)
	}

	first := []schedule.Interval{
		{Owner: "p1", Day: 1, Status: schedule.StatusAvailable, Start: 9, End: 11},
		{Owner: "p1", Day: 2, Status: schedule.StatusAvailable, Start: 9, End: 11},
	}
	if err := repo.SaveAvailability(ctx, "p1", group.ID, schedule.ToRecords(first, group.ID)); err != nil {
		t.Fatal(err)
	}

	// Another owner's rows must survive p1's replace.
	other := []schedule.Interval{
		{Owner: "p2", Day: 1, Status: schedule.StatusAvailable, Start: 10, End: 12},
	}
	if err := repo.SaveAvailability(ctx, "p2", group.ID, schedule.ToRecords(other, group.ID)); err != nil {
		t.Fatal(err)
	}

	second := []schedule.Interval{
		{Owner: "p1", Day: 5, Status: schedule.StatusBusy, Start: 18, End: 20},
	}
	if err := repo.SaveAvailability(ctx, "p1", group.ID, schedule.ToRecords(second, group.ID)); err != nil {
		t.Fatal(err)
	}

	records, err := repo.LoadAvailability(ctx, group.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (p1 replaced, p2 kept)", len(records))
	}

	byOwner := make(map[string]int)
	for _, r := range records {
		byOwner[r.OwnerID]++
	}
	if byOwner["p1"] != 1 || byOwner["p2"] != 1 {
		t.Errorf("records per owner = %v, want p1:1 p2:1", byOwner)
	}
}

func TestSaveAvailabilityRejectsForeignRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	group, err := repo.CreateGroup(ctx, "crew")
	if err != nil {
		t.Fatal(err)
	}

	records := schedule.ToRecords([]schedule.Interval{
		{Owner: "p2", Day: 1, Status: schedule.StatusAvailable, Start: 9, End: 11},
	}, group.ID)

	if err := repo.SaveAvailability(ctx, "p1", group.ID, records); err == nil {
		t.Error("SaveAvailability() should reject records owned by someone else")
	}

	// The failed save must not have cleared anything.
	stored, err := repo.LoadAvailability(ctx, group.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 0 {
		t.Errorf("got %d records after failed save, want 0", len(stored))
	}
}
