// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dmerino/whenworks/internal/schedule"
)

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadAvailability returns every member's stored records for a group.
func (s *SQLite) LoadAvailability(ctx context.Context, groupID int64) ([]schedule.Record, error) {
	query := `
		SELECT id, owner_id, group_id, day, start_time, end_time, status
		FROM availability
		WHERE group_id = ?
		ORDER BY owner_id, day, start_time
	`

	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("querying availability: %w", err)
	}
	defer rows.Close()

	var records []schedule.Record
	for rows.Next() {
		var r schedule.Record
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.GroupID, &r.Day, &r.StartTime, &r.EndTime, &r.Status); err != nil {
			return nil, fmt.Errorf("scanning availability row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading availability rows: %w", err)
	}

	return records, nil
}

// SaveAvailability replaces one owner's records for a group with the given
// set. The whole replace runs in one transaction so a failed save leaves the
// stored set untouched.
func (s *SQLite) SaveAvailability(ctx context.Context, ownerID string, groupID int64, records []schedule.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM availability WHERE group_id = ? AND owner_id = ?`,
		groupID, ownerID,
	); err != nil {
		return fmt.Errorf("clearing availability: %w", err)
	}

	insert := `
		INSERT INTO availability (group_id, owner_id, day, start_time, end_time, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, r := range records {
		if r.OwnerID != ownerID {
			return fmt.Errorf("record owner %q does not match %q", r.OwnerID, ownerID)
		}
		if _, err := tx.ExecContext(ctx, insert,
			groupID, ownerID, r.Day, r.StartTime, r.EndTime, r.Status,
		); err != nil {
			return fmt.Errorf("inserting availability: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing availability: %w", err)
	}
	return nil
}

// CreateGroup creates a group with a generated invite code.
func (s *SQLite) CreateGroup(ctx context.Context, name string) (schedule.Group, error) {
	if name == "" {
		return schedule.Group{}, fmt.Errorf("group name cannot be empty")
	}

	code := newInviteCode()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO groups (name, invite_code) VALUES (?, ?)`,
		name, code,
	)
	if err != nil {
		return schedule.Group{}, fmt.Errorf("inserting group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return schedule.Group{}, fmt.Errorf("getting last insert id: %w", err)
	}

	return schedule.Group{ID: id, Name: name, InviteCode: code}, nil
}

// JoinGroup adds a person to the group matching the invite code.
// Joining a group twice updates the stored display name.
func (s *SQLite) JoinGroup(ctx context.Context, inviteCode, ownerID, displayName string) (schedule.Group, error) {
	group, err := s.GetGroupByCode(ctx, inviteCode)
	if err != nil {
		return schedule.Group{}, err
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO members (group_id, owner_id, display_name)
		VALUES (?, ?, ?)
		ON CONFLICT(group_id, owner_id) DO UPDATE SET display_name = excluded.display_name
	`, group.ID, ownerID, displayName); err != nil {
		return schedule.Group{}, fmt.Errorf("inserting member: %w", err)
	}

	return group, nil
}

// GetGroupByCode looks up a group by invite code.
func (s *SQLite) GetGroupByCode(ctx context.Context, inviteCode string) (schedule.Group, error) {
	var g schedule.Group
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, invite_code FROM groups WHERE invite_code = ?`,
		strings.ToUpper(strings.TrimSpace(inviteCode)),
	).Scan(&g.ID, &g.Name, &g.InviteCode)
	if err == sql.ErrNoRows {
		return schedule.Group{}, fmt.Errorf("no group with invite code %q", inviteCode)
	}
	if err != nil {
		return schedule.Group{}, fmt.Errorf("querying group: %w", err)
	}
	return g, nil
}

// ListMembers returns the people in a group, ordered by join time.
func (s *SQLite) ListMembers(ctx context.Context, groupID int64) ([]schedule.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner_id, display_name FROM members WHERE group_id = ? ORDER BY joined_at, owner_id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()

	var people []schedule.Person
	for rows.Next() {
		var p schedule.Person
		if err := rows.Scan(&p.ID, &p.DisplayName); err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading member rows: %w", err)
	}

	return people, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// newInviteCode generates a short shareable invite code.
func newInviteCode() string {
	id := uuid.NewString()
	return strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}

// Interface compliance.
var _ schedule.Repository = (*SQLite)(nil)
