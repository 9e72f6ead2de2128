package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SessionRepository remembers which account last logged in from this
// machine, so the next start can pre-fill the email. No credential
// material is ever stored; the session itself lives in the cookie.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Remember(email string) error {
	query := `
	INSERT INTO remembered_session (id, email, last_login_at) VALUES (1, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET email = excluded.email, last_login_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.Exec(query, email); err != nil {
		return fmt.Errorf("remember session: %w", err)
	}
	return nil
}

// Last returns the remembered email and when it logged in; ok is
// false when nothing has been remembered yet.
func (r *SessionRepository) Last() (email string, at time.Time, ok bool, err error) {
	row := r.db.QueryRow(`SELECT email, last_login_at FROM remembered_session WHERE id = 1`)
	if scanErr := row.Scan(&email, &at); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return "", time.Time{}, false, nil
		}
		return "", time.Time{}, false, fmt.Errorf("read remembered session: %w", scanErr)
	}
	return email, at, true, nil
}

func (r *SessionRepository) Forget() error {
	if _, err := r.db.Exec(`DELETE FROM remembered_session WHERE id = 1`); err != nil {
		return fmt.Errorf("forget session: %w", err)
	}
	return nil
}
