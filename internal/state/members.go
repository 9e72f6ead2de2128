package state

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/taskforge/client-go/internal/models"
)

// Members holds the member list of the currently open project. Same
// confirm-then-mutate contract as Tasks.
type Members struct {
	mu        sync.RWMutex
	svc       MemberService
	log       *logrus.Logger
	projectId int64
	items     []models.Member
	loading   bool
	errMsg    string
}

func NewMembers(svc MemberService, log *logrus.Logger) *Members {
	return &Members{svc: svc, log: log}
}

func (c *Members) Load(ctx context.Context, projectId int64) error {
	c.setLoading(true)
	defer c.setLoading(false)

	items, err := c.svc.ListByProject(ctx, projectId)
	if err != nil {
		c.recordError(err, "Erreur lors du chargement des membres")
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

func (c *Members) Replace(projectId int64, items []models.Member) {
	c.mu.Lock()
	c.projectId = projectId
	c.items = append([]models.Member(nil), items...)
	c.errMsg = ""
	c.mu.Unlock()
}

func (c *Members) Add(ctx context.Context, projectId int64, email string, role models.Role) (*models.Member, error) {
	added, err := c.svc.Add(ctx, projectId, email, role)
	if err != nil {
		c.recordError(err, "Erreur lors de l'ajout du membre")
		return nil, err
	}
	if ctx.Err() != nil {
		return added, ctx.Err()
	}

	c.mu.Lock()
	if c.projectId == projectId {
		c.items = append(c.items, *added)
	}
	c.errMsg = ""
	c.mu.Unlock()
	return added, nil
}

func (c *Members) UpdateRole(ctx context.Context, projectId, memberId int64, role models.Role) (*models.Member, error) {
	updated, err := c.svc.UpdateRole(ctx, projectId, memberId, role)
	if err != nil {
		c.recordError(err, "Erreur lors de la modification du rôle")
		return nil, err
	}
	if ctx.Err() != nil {
		return updated, ctx.Err()
	}

	c.mu.Lock()
	for i, m := range c.items {
		if m.Id == updated.Id {
			c.items[i] = *updated
			break
		}
	}
	c.errMsg = ""
	c.mu.Unlock()
	return updated, nil
}

func (c *Members) Remove(ctx context.Context, projectId, memberId int64) error {
	if err := c.svc.Remove(ctx, projectId, memberId); err != nil {
		c.recordError(err, "Erreur lors du retrait du membre")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, m := range c.items {
		if m.Id != memberId {
			kept = append(kept, m)
		}
	}
	c.items = kept
	c.errMsg = ""
	c.mu.Unlock()
	return nil
}

func (c *Members) All() []models.Member {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Member(nil), c.items...)
}

func (c *Members) ProjectId() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projectId
}

func (c *Members) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

func (c *Members) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Members) Clear() {
	c.mu.Lock()
	c.projectId = 0
	c.items = nil
	c.errMsg = ""
	c.mu.Unlock()
}

func (c *Members) recordError(err error, fallback string) {
	msg := serverMessage(err, fallback)
	c.log.WithError(err).Error("member operation failed")
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

func (c *Members) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
