package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens the local state store. It holds the client-side
// bookkeeping the browser would put in local storage: the app-lock
// flag and the remembered session marker. Nothing from the remote
// source of truth is persisted here.
func InitDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect local store: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS app_lock (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        unlocked INTEGER NOT NULL DEFAULT 0,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS remembered_session (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        email TEXT NOT NULL,
        last_login_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `

	_, err := db.Exec(schema)
	return err
}
