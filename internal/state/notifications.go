package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

type Notification struct {
	Id        string
	Kind      NotificationKind
	Message   string
	CreatedAt time.Time
}

// Notifications buffers transient toast messages in insertion order.
// Each entry expires on its own timer and can also be dismissed by
// hand before that.
type Notifications struct {
	mu    sync.Mutex
	items []Notification
	ttl   time.Duration
}

const defaultNotificationTTL = 5 * time.Second

func NewNotifications(ttl time.Duration) *Notifications {
	if ttl <= 0 {
		ttl = defaultNotificationTTL
	}
	return &Notifications{ttl: ttl}
}

func (n *Notifications) Success(message string) string {
	return n.push(NotifySuccess, message)
}

func (n *Notifications) Error(message string) string {
	return n.push(NotifyError, message)
}

func (n *Notifications) push(kind NotificationKind, message string) string {
	id := uuid.NewString()
	n.mu.Lock()
	n.items = append(n.items, Notification{
		Id:        id,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	})
	n.mu.Unlock()

	time.AfterFunc(n.ttl, func() { n.Dismiss(id) })
	return id
}

func (n *Notifications) Dismiss(id string) {
	n.mu.Lock()
	kept := n.items[:0]
	for _, item := range n.items {
		if item.Id != id {
			kept = append(kept, item)
		}
	}
	n.items = kept
	n.mu.Unlock()
}

func (n *Notifications) All() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.items...)
}
