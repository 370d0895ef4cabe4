package db

import (
	"database/sql"
	"fmt"
)

var schema = []struct {
	name string
	sql  string
}{
	{"change_requests", `
	CREATE TABLE IF NOT EXISTS change_requests (
		id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		tab_type TEXT NOT NULL DEFAULT 'RAS',
		requestor_name TEXT NOT NULL,
		department TEXT NOT NULL,
		email_id TEXT NOT NULL,
		today_date TEXT NOT NULL,
		priority TEXT NOT NULL CHECK (priority IN ('High', 'Medium', 'Low')),
		url TEXT NOT NULL,
		page_name TEXT NOT NULL,
		change_description TEXT NOT NULL,
		desired_go_live_date TEXT NOT NULL,
		resort_name TEXT,
		resort_ops_contact TEXT,
		checklist_data TEXT,
		notes_data TEXT
	);`},
	{"change_requests_timestamp_idx", `
	CREATE INDEX IF NOT EXISTS change_requests_timestamp_idx ON change_requests (timestamp DESC);`},
	{"request_files", `
	CREATE TABLE IF NOT EXISTS request_files (
		id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL REFERENCES change_requests (id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		size INTEGER NOT NULL,
		type TEXT NOT NULL,
		url TEXT NOT NULL
	);`},
	{"request_files_request_idx", `
	CREATE INDEX IF NOT EXISTS request_files_request_idx ON request_files (request_id, position);`},
	{"analytics", `
	CREATE TABLE IF NOT EXISTS analytics (
		page_name TEXT PRIMARY KEY,
		views INTEGER NOT NULL DEFAULT 0
	);`},
}

// Migrate creates any missing tables and indexes.
func Migrate(conn *sql.DB) error {
	for _, s := range schema {
		if _, err := conn.Exec(s.sql); err != nil {
			return fmt.Errorf("db: create %s: %w", s.name, err)
		}
	}
	return nil
}
