package state

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrBadUnlockCode is the only failure Unlock produces for a wrong
// code; its text is shown to the user as-is.
var ErrBadUnlockCode = errors.New("Code de déverrouillage incorrect.")

// LockStore persists the unlocked flag across runs; it stands in for
// the browser's local storage.
type LockStore interface {
	Unlocked() (bool, error)
	SetUnlocked(v bool) error
}

// Lock gates the whole UI behind a local passphrase. It is entirely
// independent of backend authentication: unlocking talks to nothing
// but the local store.
type Lock struct {
	mu       sync.Mutex
	enabled  bool
	code     string
	unlocked bool
	store    LockStore
	log      *logrus.Logger
}

func NewLock(enabled bool, code string, store LockStore, log *logrus.Logger) *Lock {
	l := &Lock{enabled: enabled, code: code, store: store, log: log}
	if !enabled || store == nil {
		return l
	}
	unlocked, err := store.Unlocked()
	if err != nil {
		log.WithError(err).Warn("could not read lock state, starting locked")
		return l
	}
	l.unlocked = unlocked
	return l
}

func (l *Lock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled && !l.unlocked
}

func (l *Lock) Unlock(code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return nil
	}
	if code != l.code {
		return ErrBadUnlockCode
	}
	l.unlocked = true
	if l.store != nil {
		if err := l.store.SetUnlocked(true); err != nil {
			l.log.WithError(err).Warn("could not persist unlock")
		}
	}
	return nil
}

func (l *Lock) Relock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return
	}
	l.unlocked = false
	if l.store != nil {
		if err := l.store.SetUnlocked(false); err != nil {
			l.log.WithError(err).Warn("could not persist relock")
		}
	}
}
