package schedule

import "context"

// Repository defines the storage interface for availability and membership.
type Repository interface {
	// LoadAvailability returns every member's stored records for a group.
	LoadAvailability(ctx context.Context, groupID int64) ([]Record, error)

	// SaveAvailability replaces one owner's records for a group with the
	// given set, atomically (delete-then-insert in one transaction).
	SaveAvailability(ctx context.Context, ownerID string, groupID int64, records []Record) error

	// CreateGroup creates a group with a generated invite code.
	CreateGroup(ctx context.Context, name string) (Group, error)

	// JoinGroup adds a person to the group matching the invite code and
	// returns that group.
	JoinGroup(ctx context.Context, inviteCode, ownerID, displayName string) (Group, error)

	// GetGroupByCode looks up a group by invite code.
	GetGroupByCode(ctx context.Context, inviteCode string) (Group, error)

	// ListMembers returns the people in a group.
	ListMembers(ctx context.Context, groupID int64) ([]Person, error)

	// Close releases any resources held by the repository.
	Close() error
}
