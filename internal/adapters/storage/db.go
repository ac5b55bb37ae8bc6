package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Money columns are TEXT: decimal amounts round-trip exactly as strings.
	schema := `
	CREATE TABLE IF NOT EXISTS coach (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		specialties TEXT NOT NULL DEFAULT '',
		belt TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS class_earning (
		id TEXT PRIMARY KEY,
		coach_id TEXT NOT NULL,
		class_name TEXT NOT NULL,
		class_date TEXT NOT NULL,
		client_count INTEGER NOT NULL DEFAULT 0,
		revenue TEXT NOT NULL DEFAULT '0',
		coach_share TEXT NOT NULL DEFAULT '0',
		FOREIGN KEY (coach_id) REFERENCES coach(id)
	);
	CREATE INDEX IF NOT EXISTS idx_class_earning_coach_date
		ON class_earning(coach_id, class_date);

	CREATE TABLE IF NOT EXISTS membership_application (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		status TEXT NOT NULL,
		submitted_at TEXT NOT NULL,
		expires_at TEXT
	);

	CREATE TABLE IF NOT EXISTS payroll_payment (
		id TEXT PRIMARY KEY,
		coach_id TEXT NOT NULL,
		coach_name TEXT NOT NULL,
		amount TEXT NOT NULL DEFAULT '0',
		payment_date TEXT NOT NULL,
		status TEXT NOT NULL,
		FOREIGN KEY (coach_id) REFERENCES coach(id)
	);
	CREATE INDEX IF NOT EXISTS idx_payroll_payment_coach
		ON payroll_payment(coach_id, payment_date);

	CREATE TABLE IF NOT EXISTS coach_attendance (
		id TEXT PRIMARY KEY,
		coach_id TEXT NOT NULL,
		class_date TEXT NOT NULL,
		status TEXT NOT NULL,
		confirmed_by TEXT,
		FOREIGN KEY (coach_id) REFERENCES coach(id)
	);

	CREATE TABLE IF NOT EXISTS report_snapshot (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		exported_at TEXT NOT NULL,
		period TEXT NOT NULL,
		month_offset INTEGER NOT NULL DEFAULT 0,
		total_revenue TEXT NOT NULL DEFAULT '0',
		total_profit TEXT NOT NULL DEFAULT '0',
		active_members INTEGER NOT NULL DEFAULT 0,
		total_classes INTEGER NOT NULL DEFAULT 0,
		popular_class TEXT NOT NULL DEFAULT ''
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
