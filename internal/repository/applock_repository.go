package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

type AppLockRepository struct {
	db *sql.DB
}

func NewAppLockRepository(db *sql.DB) *AppLockRepository {
	return &AppLockRepository{db: db}
}

// Unlocked reports the persisted flag; a store that has never been
// written counts as locked.
func (r *AppLockRepository) Unlocked() (bool, error) {
	var unlocked int
	err := r.db.QueryRow(`SELECT unlocked FROM app_lock WHERE id = 1`).Scan(&unlocked)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read lock state: %w", err)
	}
	return unlocked != 0, nil
}

func (r *AppLockRepository) SetUnlocked(v bool) error {
	unlocked := 0
	if v {
		unlocked = 1
	}
	query := `
	INSERT INTO app_lock (id, unlocked, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET unlocked = excluded.unlocked, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.Exec(query, unlocked); err != nil {
		return fmt.Errorf("write lock state: %w", err)
	}
	return nil
}
