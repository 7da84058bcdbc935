package services

import "sync"

// operationType tells the lockManager whether an operation only reads engine
// state or mutates it.
type operationType int

const (
	readOperation operationType = iota
	writeOperation
)

// lockManager serializes access to the registry, comment store and drafts. Reads
// share the lock; writes are exclusive, so every operation observes all writes
// that completed before it.
type lockManager struct {
	mu *sync.RWMutex
}

func newLockManager() *lockManager {
	return &lockManager{
		mu: &sync.RWMutex{},
	}
}

// execute runs fn under the lock matching opType and releases it when fn returns.
func (lm *lockManager) execute(opType operationType, fn func() error) error {
	switch opType {
	case readOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case writeOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}
