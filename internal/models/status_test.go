package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStatusAt_Boundaries(t *testing.T) {
	start := date(2024, 1, 1)
	end := date(2024, 1, 31)

	cases := []struct {
		name string
		now  time.Time
		want ProjectStatus
	}{
		{"before start", date(2023, 12, 31), StatusNotStarted},
		{"on start date", start, StatusInProgress},
		{"between", date(2024, 1, 15), StatusInProgress},
		{"on end date", end, StatusInProgress},
		{"after end", date(2024, 2, 1), StatusDone},
	}
	for _, tc := range cases {
		if got := StatusAt(start, end, tc.now); got != tc.want {
			t.Errorf("%s: StatusAt = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(10, 3); got != 30 {
		t.Errorf("Progress(10, 3) = %d, want 30", got)
	}
	if got := Progress(0, 0); got != 0 {
		t.Errorf("Progress(0, 0) = %d, want 0", got)
	}
	if got := Progress(0, 5); got != 0 {
		t.Errorf("Progress(0, 5) = %d, want 0", got)
	}
	if got := Progress(3, 3); got != 100 {
		t.Errorf("Progress(3, 3) = %d, want 100", got)
	}
	if got := Progress(3, 1); got != 33 {
		t.Errorf("Progress(3, 1) = %d, want 33", got)
	}
	for total := 0; total <= 20; total++ {
		for completed := 0; completed <= total; completed++ {
			got := Progress(total, completed)
			if got < 0 || got > 100 {
				t.Fatalf("Progress(%d, %d) = %d, out of [0,100]", total, completed, got)
			}
		}
	}
}

func TestCountTasks_TotalIdentity(t *testing.T) {
	tasks := []Task{
		{Id: 1, Status: TaskTodo},
		{Id: 2, Status: TaskInProgress},
		{Id: 3, Status: TaskDone},
		{Id: 4, Status: TaskDone},
		{Id: 5, Status: TaskTodo},
	}
	c := CountTasks(tasks)
	if c.Total != c.Completed+c.InProgress+c.Todo {
		t.Fatalf("total %d != completed %d + inProgress %d + todo %d",
			c.Total, c.Completed, c.InProgress, c.Todo)
	}
	if c.Total != 5 || c.Completed != 2 || c.InProgress != 1 || c.Todo != 2 {
		t.Errorf("unexpected counts: %+v", c)
	}
}

func TestComputeStats_OverdueProject(t *testing.T) {
	p := Project{
		Id:        42,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 31),
	}
	now := date(2024, 2, 1)

	stats := ComputeStats(p, []Task{{Id: 1, Status: TaskDone}}, nil, now)
	if !stats.Overdue {
		t.Error("project evaluated after its end date should be overdue")
	}
	if stats.DaysRemaining != 0 {
		t.Errorf("overdue project has %d days remaining, want 0", stats.DaysRemaining)
	}
	if got := StatusAt(p.StartDate, p.EndDate, now); got != StatusDone {
		t.Errorf("status = %q, want %q", got, StatusDone)
	}
}

func TestComputeStats_Counts(t *testing.T) {
	p := Project{
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 3, 1),
	}
	tasks := []Task{
		{Id: 1, Status: TaskDone},
		{Id: 2, Status: TaskDone},
		{Id: 3, Status: TaskInProgress},
		{Id: 4, Status: TaskTodo},
	}
	members := []Member{{Id: 1}, {Id: 2}}
	now := date(2024, 1, 10)

	stats := ComputeStats(p, tasks, members, now)
	if stats.TotalTasks != 4 || stats.CompletedTasks != 2 || stats.InProgressTasks != 1 || stats.TodoTasks != 1 {
		t.Errorf("unexpected task counts: %+v", stats)
	}
	if stats.TotalMembers != 2 {
		t.Errorf("TotalMembers = %d, want 2", stats.TotalMembers)
	}
	if stats.ProgressPct != 50 {
		t.Errorf("ProgressPct = %d, want 50", stats.ProgressPct)
	}
	if stats.Overdue {
		t.Error("project should not be overdue before its end date")
	}
	if stats.DaysRemaining != 51 {
		t.Errorf("DaysRemaining = %d, want 51", stats.DaysRemaining)
	}
}

func TestParseTaskStatus(t *testing.T) {
	for _, valid := range []string{"todo", "in-progress", "done"} {
		if _, err := ParseTaskStatus(valid); err != nil {
			t.Errorf("ParseTaskStatus(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseTaskStatus("blocked"); err == nil {
		t.Error("ParseTaskStatus accepted a fourth status")
	}
	if _, err := ParseTaskStatus(""); err == nil {
		t.Error("ParseTaskStatus accepted an empty status")
	}
}
