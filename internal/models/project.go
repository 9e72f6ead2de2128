package models

import "time"

type Project struct {
	Id          int64
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time

	// Request-scoped fields the server derives for the current user.
	// They are denormalized counters, not live values: once the task
	// collection for this project has been loaded, ComputeStats over
	// the live tasks is authoritative and these only serve list views.
	Role           Role
	ProgressPct    int
	TotalTasks     int
	CompletedTasks int
}

type Role string

const (
	RoleProjectLead Role = "Chef de projet"
	RoleAssistant   Role = "Assistant"
	RoleMember      Role = "Membre"
)
