package localdb

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

var DBClient *sql.DB

// SetupDB opens (or creates) the local database and ensures the schema.
// The database is a generic key/value blob store; everything the tool
// persists lives in the storage table under independent keys.
func SetupDB(dbPath string) (*sql.DB, error) {
	if DBClient != nil {
		return DBClient, nil
	}

	// WAL and a busy timeout to tolerate concurrent readers.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer store; keep one connection.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS storage (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}

	DBClient = db
	return db, nil
}

// GetDB returns the current database connection, nil before SetupDB.
func GetDB() *sql.DB {
	return DBClient
}
