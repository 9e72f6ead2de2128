package state

import (
	"errors"
	"testing"
)

type memLockStore struct {
	unlocked bool
	readErr  error
}

func (s *memLockStore) Unlocked() (bool, error) {
	return s.unlocked, s.readErr
}

func (s *memLockStore) SetUnlocked(v bool) error {
	s.unlocked = v
	return nil
}

func TestLock_UnlockPersists(t *testing.T) {
	store := &memLockStore{}
	l := NewLock(true, "1234", store, testLogger())

	if !l.Locked() {
		t.Fatal("enabled lock must start locked")
	}
	if err := l.Unlock("0000"); !errors.Is(err, ErrBadUnlockCode) {
		t.Fatalf("wrong code: %v", err)
	}
	if l.Locked() != true || store.unlocked {
		t.Error("failed unlock changed state")
	}

	if err := l.Unlock("1234"); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if l.Locked() || !store.unlocked {
		t.Error("unlock not applied or not persisted")
	}

	l.Relock()
	if !l.Locked() || store.unlocked {
		t.Error("relock not applied or not persisted")
	}
}

func TestLock_RestoresPersistedState(t *testing.T) {
	l := NewLock(true, "1234", &memLockStore{unlocked: true}, testLogger())
	if l.Locked() {
		t.Error("persisted unlock ignored on startup")
	}
}

func TestLock_Disabled(t *testing.T) {
	l := NewLock(false, "", nil, testLogger())
	if l.Locked() {
		t.Error("disabled lock reports locked")
	}
	if err := l.Unlock("anything"); err != nil {
		t.Errorf("disabled Unlock errored: %v", err)
	}
}

func TestLock_UnreadableStoreStartsLocked(t *testing.T) {
	store := &memLockStore{unlocked: true, readErr: errors.New("disk")}
	l := NewLock(true, "1234", store, testLogger())
	if !l.Locked() {
		t.Error("lock state must default to locked when the store is unreadable")
	}
}
