package models

import (
	"math"
	"time"
)

type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "not-started"
	StatusInProgress ProjectStatus = "in-progress"
	StatusDone       ProjectStatus = "done"
)

// StatusAt derives a project's status from its dates. This is the only
// place the boundary rules live; every caller goes through here.
// A project is done only strictly after its end date: on the start or
// end date itself it counts as in progress.
func StatusAt(start, end, now time.Time) ProjectStatus {
	if now.Before(start) {
		return StatusNotStarted
	}
	if now.After(end) {
		return StatusDone
	}
	return StatusInProgress
}

// Progress returns the completion percentage as an integer in [0,100].
// A project with no tasks is at 0, never a division by zero.
func Progress(total, completed int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
