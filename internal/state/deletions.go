package state

import "sync"

// EntityKind names the entity families the deletion tracker and the
// notification surfaces care about.
type EntityKind string

const (
	KindProject EntityKind = "project"
	KindTask    EntityKind = "task"
	KindMember  EntityKind = "member"
	KindMessage EntityKind = "message"
)

type deletionKey struct {
	Kind EntityKind
	Id   int64
}

// Deletions tracks which entities currently have a delete in flight,
// keyed by (kind, id), so independent UI surfaces can render per-item
// busy indicators without duplicating request logic. Concurrent
// deletes of distinct entities are tracked independently; a second
// delete of the same entity is refused while the first is in flight.
type Deletions struct {
	mu       sync.Mutex
	inflight map[deletionKey]struct{}
}

func NewDeletions() *Deletions {
	return &Deletions{inflight: make(map[deletionKey]struct{})}
}

// Begin marks the entity as being deleted. It returns false when a
// delete of the same entity is already in flight.
func (d *Deletions) Begin(kind EntityKind, id int64) bool {
	key := deletionKey{Kind: kind, Id: id}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, busy := d.inflight[key]; busy {
		return false
	}
	d.inflight[key] = struct{}{}
	return true
}

func (d *Deletions) End(kind EntityKind, id int64) {
	d.mu.Lock()
	delete(d.inflight, deletionKey{Kind: kind, Id: id})
	d.mu.Unlock()
}

func (d *Deletions) IsDeleting(kind EntityKind, id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, busy := d.inflight[deletionKey{Kind: kind, Id: id}]
	return busy
}

func (d *Deletions) Any() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.inflight) > 0
}
