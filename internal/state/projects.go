package state

import (
	"context"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/taskforge/client-go/internal/client"
	"github.com/taskforge/client-go/internal/models"
)

// Projects owns the cross-project list and composes the entity
// containers to answer "everything about project X". Single-project
// fetches that are not in the list are kept in a short-lived TTL
// cache so repeated detail opens do not refetch.
//
// Progress has two possible sources: the denormalized counters the
// server attaches to each project, and the live task collection. The
// denormalized counters drive GetProgress for list views; once the
// task collection for a project is loaded, ComputeStats over the live
// tasks (GetStats, LoadComplete) is authoritative. The two may
// disagree between a mutation and the next list refresh; that is
// accepted.
type Projects struct {
	mu        sync.RWMutex
	svc       ProjectService
	tasks     *Tasks
	members   *Members
	messages  *Messages
	deletions *Deletions
	log       *logrus.Logger
	fetched   *gocache.Cache
	items     []models.Project
	loading   bool
	errMsg    string
	now       func() time.Time
}

func NewProjects(svc ProjectService, tasks *Tasks, members *Members, messages *Messages, deletions *Deletions, log *logrus.Logger) *Projects {
	return &Projects{
		svc:       svc,
		tasks:     tasks,
		members:   members,
		messages:  messages,
		deletions: deletions,
		log:       log,
		fetched:   gocache.New(5*time.Minute, 10*time.Minute),
		now:       time.Now,
	}
}

func cacheKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// LoadAll replaces the local list with the full project list for the
// current user.
func (c *Projects) LoadAll(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	items, err := c.svc.List(ctx)
	if err != nil {
		c.recordError(err, "Erreur lors du chargement des projets")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.mu.Lock()
	c.items = items
	c.errMsg = ""
	c.mu.Unlock()
	return nil
}

// GetById answers from the local list when it can, then from the
// fetch cache, and only then from the network. A fetched project is
// added to the local list as a side effect (population-on-read).
// A project that exists nowhere returns (nil, nil).
func (c *Projects) GetById(ctx context.Context, id int64) (*models.Project, error) {
	if p, ok := c.find(id); ok {
		return &p, nil
	}
	if v, ok := c.fetched.Get(cacheKey(id)); ok {
		p := v.(models.Project)
		return &p, nil
	}

	p, err := c.svc.Get(ctx, id)
	if err != nil {
		if apiErr, ok := client.AsAPIError(err); ok && apiErr.NotFound() {
			return nil, nil
		}
		c.recordError(err, "Erreur lors du chargement du projet")
		return nil, err
	}
	if ctx.Err() != nil {
		return p, ctx.Err()
	}

	c.mu.Lock()
	if _, ok := findProject(c.items, id); !ok {
		c.items = append(c.items, *p)
	}
	c.mu.Unlock()
	c.fetched.Set(cacheKey(id), *p, gocache.DefaultExpiration)
	return p, nil
}

// LoadComplete is the aggregation entry point for a detail view. The
// combined endpoint is tried first; when it is unavailable the base
// project is resolved via GetById, the three entity containers load
// in parallel and the stats block is computed locally. Both paths
// return the same composed shape and leave the entity containers
// seeded with the project's collections.
func (c *Projects) LoadComplete(ctx context.Context, id int64) (*models.CompleteProject, error) {
	cp, err := c.svc.GetComplete(ctx, id)
	if err == nil {
		if ctx.Err() != nil {
			return cp, ctx.Err()
		}
		c.tasks.Replace(id, cp.Tasks)
		c.members.Replace(id, cp.Members)
		c.messages.Replace(id, cp.Messages)
		c.upsert(cp.Project)
		return cp, nil
	}

	c.log.WithError(err).WithField("project_id", id).
		Debug("combined project endpoint unavailable, assembling locally")
	return c.loadCompleteFallback(ctx, id)
}

func (c *Projects) loadCompleteFallback(ctx context.Context, id int64) (*models.CompleteProject, error) {
	p, err := c.GetById(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		c.recordError(nil, "Projet introuvable")
		return nil, &client.APIError{Status: 404, Message: "Projet introuvable"}
	}

	// Individual load failures are tolerated; each container records
	// its own error and the stats reflect whatever did load.
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		_ = c.tasks.Load(ctx, id)
	}()
	go func() {
		defer wg.Done()
		_ = c.members.Load(ctx, id)
	}()
	go func() {
		defer wg.Done()
		_ = c.messages.Load(ctx, id)
	}()
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// A failed load leaves a container holding another project's stale
	// collection; only collections scoped to this project may enter the
	// composed view.
	var tasks []models.Task
	var members []models.Member
	var messages []models.Message
	if c.tasks.ProjectId() == id {
		tasks = c.tasks.All()
	}
	if c.members.ProjectId() == id {
		members = c.members.All()
	}
	if c.messages.ProjectId() == id {
		messages = c.messages.All()
	}
	return &models.CompleteProject{
		Project:  *p,
		Members:  members,
		Tasks:    tasks,
		Messages: messages,
		Stats:    models.ComputeStats(*p, tasks, members, c.now()),
	}, nil
}

// GetStats recomputes the stats block from whatever the entity
// containers currently hold for the project. Synchronous; it never
// triggers a load and ignores containers scoped to another project.
func (c *Projects) GetStats(id int64) (models.ProjectStats, bool) {
	p, ok := c.find(id)
	if !ok {
		return models.ProjectStats{}, false
	}
	var tasks []models.Task
	var members []models.Member
	if c.tasks.ProjectId() == id {
		tasks = c.tasks.All()
	}
	if c.members.ProjectId() == id {
		members = c.members.All()
	}
	return models.ComputeStats(p, tasks, members, c.now()), true
}

// GetProgress reads the project's own denormalized counters, not the
// live task collection.
func (c *Projects) GetProgress(p models.Project) int {
	return models.Progress(p.TotalTasks, p.CompletedTasks)
}

// GetStatus is recomputed against the clock on every call and never
// cached.
func (c *Projects) GetStatus(p models.Project) models.ProjectStatus {
	return models.StatusAt(p.StartDate, p.EndDate, c.now())
}

func (c *Projects) Create(ctx context.Context, p models.Project) (*models.Project, error) {
	created, err := c.svc.Create(ctx, p)
	if err != nil {
		c.recordError(err, "Erreur lors de la création du projet")
		return nil, err
	}
	if ctx.Err() != nil {
		return created, ctx.Err()
	}
	c.Add(*created)
	return created, nil
}

func (c *Projects) Update(ctx context.Context, id int64, p models.Project) (*models.Project, error) {
	updated, err := c.svc.Update(ctx, id, p)
	if err != nil {
		c.recordError(err, "Erreur lors de la mise à jour du projet")
		return nil, err
	}
	if ctx.Err() != nil {
		return updated, ctx.Err()
	}
	c.Replace(*updated)
	return updated, nil
}

// Delete is a no-op while a delete of the same project is already in
// flight; the tracker lets UI surfaces render a per-item busy state in
// the meantime.
func (c *Projects) Delete(ctx context.Context, id int64) error {
	if !c.deletions.Begin(KindProject, id) {
		return nil
	}
	defer c.deletions.End(KindProject, id)

	if err := c.svc.Delete(ctx, id); err != nil {
		c.recordError(err, "Erreur lors de la suppression du projet")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	c.Drop(id)
	return nil
}

// Add, Replace and Drop are the synchronous local list mutations for
// callers that already confirmed a change elsewhere and want to skip
// a full reload round-trip.

func (c *Projects) Add(p models.Project) {
	c.mu.Lock()
	if _, ok := findProject(c.items, p.Id); !ok {
		c.items = append(c.items, p)
	}
	c.mu.Unlock()
}

func (c *Projects) Replace(p models.Project) {
	c.upsert(p)
}

func (c *Projects) Drop(id int64) {
	c.mu.Lock()
	kept := c.items[:0]
	for _, p := range c.items {
		if p.Id != id {
			kept = append(kept, p)
		}
	}
	c.items = kept
	c.mu.Unlock()
	c.fetched.Delete(cacheKey(id))
}

// OnAuthChange applies the auth-gated initialization rule: load the
// list once the session is authenticated, clear everything when it is
// anonymous, and do nothing while the probe is still undecided.
func (c *Projects) OnAuthChange(ctx context.Context, status AuthStatus) error {
	switch status {
	case AuthAuthenticated:
		return c.LoadAll(ctx)
	case AuthAnonymous:
		c.Clear()
	}
	return nil
}

func (c *Projects) All() []models.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Project(nil), c.items...)
}

func (c *Projects) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

func (c *Projects) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Projects) Clear() {
	c.mu.Lock()
	c.items = nil
	c.errMsg = ""
	c.loading = false
	c.mu.Unlock()
	c.fetched.Flush()
}

func (c *Projects) find(id int64) (models.Project, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return findProject(c.items, id)
}

func findProject(items []models.Project, id int64) (models.Project, bool) {
	for _, p := range items {
		if p.Id == id {
			return p, true
		}
	}
	return models.Project{}, false
}

func (c *Projects) upsert(p models.Project) {
	c.mu.Lock()
	replaced := false
	for i, existing := range c.items {
		if existing.Id == p.Id {
			c.items[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		c.items = append(c.items, p)
	}
	c.mu.Unlock()
}

func (c *Projects) recordError(err error, fallback string) {
	msg := fallback
	if err != nil {
		msg = serverMessage(err, fallback)
		c.log.WithError(err).Error("project operation failed")
	}
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

func (c *Projects) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
