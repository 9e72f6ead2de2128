package models

import "time"

// ProjectStats is a pure aggregate over a project and whatever tasks
// and members are currently loaded for it. It is never persisted and
// never cached; recompute it whenever the inputs may have changed.
type ProjectStats struct {
	TotalTasks      int
	CompletedTasks  int
	InProgressTasks int
	TodoTasks       int
	TotalMembers    int
	ProgressPct     int
	DaysRemaining   int
	Overdue         bool
}

// ComputeStats derives the stats block locally. This is the fallback
// twin of the server-computed block returned by the complete-project
// endpoint; both produce the same shape.
func ComputeStats(p Project, tasks []Task, members []Member, now time.Time) ProjectStats {
	counts := CountTasks(tasks)
	s := ProjectStats{
		TotalTasks:      counts.Total,
		CompletedTasks:  counts.Completed,
		InProgressTasks: counts.InProgress,
		TodoTasks:       counts.Todo,
		TotalMembers:    len(members),
	}
	s.ProgressPct = Progress(s.TotalTasks, s.CompletedTasks)
	s.Overdue = now.After(p.EndDate)
	if remaining := p.EndDate.Sub(now); remaining > 0 {
		s.DaysRemaining = int(remaining.Hours() / 24)
	}
	return s
}

// CompleteProject is the composed answer to "everything about project
// X". Callers get the same shape whether it came from the combined
// endpoint or from the parallel-fetch fallback.
type CompleteProject struct {
	Project  Project
	Members  []Member
	Tasks    []Task
	Messages []Message
	Stats    ProjectStats
}
