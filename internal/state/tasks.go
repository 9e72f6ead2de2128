package state

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/taskforge/client-go/internal/models"
)

// Tasks holds the task collection of the currently open project.
// Every mutation talks to the server first and touches local state
// only on confirmation; on failure the collection is left as it was,
// the error message is recorded for passive display and the error is
// also returned to the caller.
type Tasks struct {
	mu        sync.RWMutex
	svc       TaskService
	log       *logrus.Logger
	projectId int64
	items     []models.Task
	loading   bool
	errMsg    string
}

func NewTasks(svc TaskService, log *logrus.Logger) *Tasks {
	return &Tasks{svc: svc, log: log}
}

// Load replaces the whole collection with the server's current set
// for the project. On failure the previous (possibly stale) items are
// kept; the caller decides whether to show them or the error.
func (c *Tasks) Load(ctx context.Context, projectId int64) error {
	c.setLoading(true)
	defer c.setLoading(false)

	items, err := c.svc.ListByProject(ctx, projectId)
	if err != nil {
		c.recordError(err, "Erreur lors du chargement des tâches")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.mu.Lock()
	c.projectId = projectId
	c.items = items
	c.errMsg = ""
	c.mu.Unlock()
	return nil
}

// Replace seeds the collection from an already-fetched payload, used
// when the combined project endpoint returned the nested collections.
func (c *Tasks) Replace(projectId int64, items []models.Task) {
	c.mu.Lock()
	c.projectId = projectId
	c.items = append([]models.Task(nil), items...)
	c.errMsg = ""
	c.mu.Unlock()
}

func (c *Tasks) Create(ctx context.Context, projectId int64, t models.Task) (*models.Task, error) {
	created, err := c.svc.Create(ctx, projectId, t)
	if err != nil {
		c.recordError(err, "Erreur lors de la création de la tâche")
		return nil, err
	}
	if ctx.Err() != nil {
		return created, ctx.Err()
	}

	c.mu.Lock()
	if c.projectId == projectId {
		c.items = append(c.items, *created)
	}
	c.errMsg = ""
	c.mu.Unlock()
	return created, nil
}

func (c *Tasks) Update(ctx context.Context, id int64, t models.Task) (*models.Task, error) {
	updated, err := c.svc.Update(ctx, id, t)
	if err != nil {
		c.recordError(err, "Erreur lors de la mise à jour de la tâche")
		return nil, err
	}
	if ctx.Err() != nil {
		return updated, ctx.Err()
	}

	c.replaceById(*updated)
	return updated, nil
}

// UpdateStatus refuses anything outside the three known statuses
// before going anywhere near the network.
func (c *Tasks) UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error) {
	if _, err := models.ParseTaskStatus(string(status)); err != nil {
		return nil, err
	}
	updated, err := c.svc.UpdateStatus(ctx, id, status)
	if err != nil {
		c.recordError(err, "Erreur lors du changement de statut")
		return nil, err
	}
	if ctx.Err() != nil {
		return updated, ctx.Err()
	}

	c.replaceById(*updated)
	return updated, nil
}

func (c *Tasks) Remove(ctx context.Context, id int64) error {
	if err := c.svc.Delete(ctx, id); err != nil {
		c.recordError(err, "Erreur lors de la suppression de la tâche")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, t := range c.items {
		if t.Id != id {
			kept = append(kept, t)
		}
	}
	c.items = kept
	c.errMsg = ""
	c.mu.Unlock()
	return nil
}

// Assign does not patch the assignment list locally; the server may
// have side effects the client cannot predict, so the whole project
// scope is reloaded instead.
func (c *Tasks) Assign(ctx context.Context, taskId, userId int64) error {
	if err := c.svc.Assign(ctx, taskId, userId); err != nil {
		c.recordError(err, "Erreur lors de l'assignation")
		return err
	}
	return c.reloadScope(ctx)
}

func (c *Tasks) Unassign(ctx context.Context, taskId, userId int64) error {
	if err := c.svc.Unassign(ctx, taskId, userId); err != nil {
		c.recordError(err, "Erreur lors de la désassignation")
		return err
	}
	return c.reloadScope(ctx)
}

// reloadScope refreshes the current project's collection. A container
// that never loaded a project has no scope to refresh.
func (c *Tasks) reloadScope(ctx context.Context) error {
	pid := c.ProjectId()
	if pid == 0 {
		return nil
	}
	return c.Load(ctx, pid)
}

// Stats reduces whatever is currently loaded. Load first for fresh
// numbers; this never calls the network.
func (c *Tasks) Stats() models.TaskCounts {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.CountTasks(c.items)
}

func (c *Tasks) All() []models.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Task(nil), c.items...)
}

func (c *Tasks) Get(id int64) (models.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.items {
		if t.Id == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (c *Tasks) ProjectId() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projectId
}

func (c *Tasks) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

func (c *Tasks) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Clear empties the container when the project view is left or the
// user logs out. Cross-project leakage is a defect.
func (c *Tasks) Clear() {
	c.mu.Lock()
	c.projectId = 0
	c.items = nil
	c.errMsg = ""
	c.mu.Unlock()
}

func (c *Tasks) replaceById(updated models.Task) {
	c.mu.Lock()
	for i, t := range c.items {
		if t.Id == updated.Id {
			c.items[i] = updated
			break
		}
	}
	c.errMsg = ""
	c.mu.Unlock()
}

func (c *Tasks) recordError(err error, fallback string) {
	msg := serverMessage(err, fallback)
	c.log.WithError(err).Error("task operation failed")
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

func (c *Tasks) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
