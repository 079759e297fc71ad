package pipeline

import (
	"sync"

	"doc-analytics-be/internal/constant"
)

// RunLock enforces one active run per (user_id, action). Contention is
// rejected immediately, never queued: the caller is told a run is already
// in progress and may retry later.
type RunLock struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewRunLock() *RunLock {
	return &RunLock{
		active: make(map[string]struct{}),
	}
}

func key(userId string, action constant.Action) string {
	return userId + "|" + string(action)
}

// TryAcquire claims the (user_id, action) slot. It returns false without
// blocking when another run already holds it.
func (l *RunLock) TryAcquire(userId string, action constant.Action) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(userId, action)
	if _, held := l.active[k]; held {
		return false
	}
	l.active[k] = struct{}{}
	return true
}

// Release frees the slot. Releasing an unheld slot is a no-op.
func (l *RunLock) Release(userId string, action constant.Action) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.active, key(userId, action))
}
