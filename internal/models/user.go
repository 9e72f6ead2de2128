package models

import "time"

// User is the read-only cached copy of the currently authenticated
// account. It is created from a login/register/probe response and
// thrown away at logout; the server owns the canonical record.
type User struct {
	Id        int64
	Name      string
	Surname   string
	Email     string
	Active    bool
	CreatedAt time.Time
}

// FullName is used for display only.
func (u User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}
