package models

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskDone       TaskStatus = "done"
)

// ParseTaskStatus rejects anything outside the three known values.
// There is no fourth status and nothing upstream may invent one.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskTodo, TaskInProgress, TaskDone:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

type TaskAssignee struct {
	Id      int64
	Name    string
	Surname string
}

type Task struct {
	Id          int64
	Title       string
	Description string
	Status      TaskStatus
	StartDate   time.Time
	DueDate     time.Time
	ProjectId   int64
	Assignees   []TaskAssignee
}

// TaskCounts is a by-status breakdown of a task collection.
// Total is always Completed + InProgress + Todo.
type TaskCounts struct {
	Total      int
	Completed  int
	InProgress int
	Todo       int
}

// CountTasks reduces a task slice into its counts. Pure, no network;
// it reflects whatever is in the slice right now.
func CountTasks(tasks []Task) TaskCounts {
	c := TaskCounts{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case TaskDone:
			c.Completed++
		case TaskInProgress:
			c.InProgress++
		default:
			c.Todo++
		}
	}
	return c
}
