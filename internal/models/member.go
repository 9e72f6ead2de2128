package models

// Member is a User scoped to one project, with its role there and the
// per-member task breakdown the server attaches for display.
type Member struct {
	Id        int64
	Name      string
	Surname   string
	Email     string
	Role      Role
	TaskStats TaskCounts
}
