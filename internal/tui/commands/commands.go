// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmerino/whenworks/internal/schedule"
)

// GroupLoadedMsg is sent when the group, its members, and all stored
// availability have been loaded.
type GroupLoadedMsg struct {
	Group   schedule.Group
	Members []schedule.Person
	Records []schedule.Record
}

// AvailabilityReloadedMsg is sent after a background refresh of members and
// records for the current group.
type AvailabilityReloadedMsg struct {
	Members []schedule.Person
	Records []schedule.Record
}

// SavedMsg is sent when the local owner's availability was persisted.
type SavedMsg struct {
	Count int
}

// CopiedMsg is sent when text was copied to the system clipboard.
type CopiedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadGroup resolves an invite code and loads members plus every stored
// availability record for the group.
func LoadGroup(repo schedule.Repository, inviteCode string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		group, err := repo.GetGroupByCode(ctx, inviteCode)
		if err != nil {
			return ErrMsg{Err: err}
		}

		members, err := repo.ListMembers(ctx, group.ID)
		if err != nil {
			return ErrMsg{Err: err}
		}

		records, err := repo.LoadAvailability(ctx, group.ID)
		if err != nil {
			return ErrMsg{Err: err}
		}

		return GroupLoadedMsg{Group: group, Members: members, Records: records}
	}
}

// Reload refreshes members and availability for the current group.
func Reload(repo schedule.Repository, groupID int64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		members, err := repo.ListMembers(ctx, groupID)
		if err != nil {
			return ErrMsg{Err: err}
		}

		records, err := repo.LoadAvailability(ctx, groupID)
		if err != nil {
			return ErrMsg{Err: err}
		}

		return AvailabilityReloadedMsg{Members: members, Records: records}
	}
}

// Save persists the local owner's full record set for the group.
func Save(repo schedule.Repository, ownerID string, groupID int64, records []schedule.Record) tea.Cmd {
	return func() tea.Msg {
		if err := repo.SaveAvailability(context.Background(), ownerID, groupID, records); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving availability: %w", err)}
		}
		return SavedMsg{Count: len(records)}
	}
}

// Copy writes text to the system clipboard.
func Copy(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return CopiedMsg{}
	}
}
