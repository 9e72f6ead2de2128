package state

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/taskforge/client-go/internal/models"
)

// Messages holds the chat messages of the currently open project.
// Messages are fetched, not streamed; there is no push channel.
type Messages struct {
	mu        sync.RWMutex
	svc       MessageService
	log       *logrus.Logger
	projectId int64
	items     []models.Message
	loading   bool
	errMsg    string
}

func NewMessages(svc MessageService, log *logrus.Logger) *Messages {
	return &Messages{svc: svc, log: log}
}

func (c *Messages) Load(ctx context.Context, projectId int64) error {
	c.setLoading(true)
	defer c.setLoading(false)

	items, err := c.svc.ListByProject(ctx, projectId)
	if err != nil {
		c.recordError(err, "Erreur lors du chargement des messages")
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

func (c *Messages) Replace(projectId int64, items []models.Message) {
	c.mu.Lock()
	c.projectId = projectId
	c.items = append([]models.Message(nil), items...)
	c.errMsg = ""
	c.mu.Unlock()
}

func (c *Messages) Create(ctx context.Context, projectId int64, content string) (*models.Message, error) {
	created, err := c.svc.Create(ctx, projectId, content)
	if err != nil {
		c.recordError(err, "Erreur lors de l'envoi du message")
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

func (c *Messages) Update(ctx context.Context, id int64, content string) (*models.Message, error) {
	updated, err := c.svc.Update(ctx, id, content)
	if err != nil {
		c.recordError(err, "Erreur lors de la modification du message")
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

func (c *Messages) Remove(ctx context.Context, id int64) error {
	if err := c.svc.Delete(ctx, id); err != nil {
		c.recordError(err, "Erreur lors de la suppression du message")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, m := range c.items {
		if m.Id != id {
			kept = append(kept, m)
		}
	}
	c.items = kept
	c.errMsg = ""
	c.mu.Unlock()
	return nil
}

// LoadReplies fetches a message's reply thread and attaches it to the
// local copy.
func (c *Messages) LoadReplies(ctx context.Context, id int64) ([]models.Message, error) {
	replies, err := c.svc.Replies(ctx, id)
	if err != nil {
		c.recordError(err, "Erreur lors du chargement des réponses")
		return nil, err
	}
	if ctx.Err() != nil {
		return replies, ctx.Err()
	}

	c.mu.Lock()
	for i, m := range c.items {
		if m.Id == id {
			c.items[i].Replies = replies
			break
		}
	}
	c.mu.Unlock()
	return replies, nil
}

func (c *Messages) All() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Message(nil), c.items...)
}

func (c *Messages) ProjectId() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projectId
}

func (c *Messages) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

func (c *Messages) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Messages) Clear() {
	c.mu.Lock()
	c.projectId = 0
	c.items = nil
	c.errMsg = ""
	c.mu.Unlock()
}

func (c *Messages) recordError(err error, fallback string) {
	msg := serverMessage(err, fallback)
	c.log.WithError(err).Error("message operation failed")
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

func (c *Messages) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
