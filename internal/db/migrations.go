package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS groups (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			invite_code TEXT NOT NULL UNIQUE,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS members (
			group_id     INTEGER NOT NULL REFERENCES groups(id),
			owner_id     TEXT NOT NULL,
			display_name TEXT NOT NULL,
			joined_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (group_id, owner_id)
		);

		CREATE TABLE IF NOT EXISTS availability (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			group_id   INTEGER NOT NULL REFERENCES groups(id),
			owner_id   TEXT NOT NULL,
			day        INTEGER NOT NULL CHECK(day BETWEEN 0 AND 6),
			start_time TIME NOT NULL,
			end_time   TIME NOT NULL,
			status     TEXT NOT NULL CHECK(status IN ('available', 'busy'))
		);

		CREATE INDEX IF NOT EXISTS idx_availability_group ON availability(group_id);
		CREATE INDEX IF NOT EXISTS idx_availability_owner ON availability(group_id, owner_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
