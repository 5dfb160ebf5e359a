package db

import (
	"database/sql"
)

const currentSchemaVersion = 2

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS media (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			bucket_id INTEGER NOT NULL,
			bucket_name TEXT NOT NULL,
			display_name TEXT NOT NULL,
			mime TEXT NOT NULL,
			size INTEGER NOT NULL,
			width INTEGER,
			height INTEGER,
			mtime INTEGER NOT NULL,
			taken_at INTEGER NOT NULL,
			added_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_media_taken_at ON media(taken_at DESC);
		CREATE INDEX IF NOT EXISTS idx_media_bucket ON media(bucket_id, taken_at DESC);

		CREATE TABLE IF NOT EXISTS library_sources (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			added_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	return migrateSchema(db)
}

func migrateSchema(db *sql.DB) error {
	var version int
	err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return err
	}
	if version >= currentSchemaVersion {
		return nil
	}

	// v1 databases lack the scan bookkeeping table.
	if version < 2 {
		if _, err := db.Exec(`
			CREATE TABLE IF NOT EXISTS scan_runs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				started_at INTEGER NOT NULL,
				finished_at INTEGER,
				added INTEGER NOT NULL DEFAULT 0,
				updated INTEGER NOT NULL DEFAULT 0,
				removed INTEGER NOT NULL DEFAULT 0
			)
		`); err != nil {
			return err
		}
	}

	_, err = db.Exec(`INSERT OR REPLACE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
	return err
}
