package pipeline

import (
	"sync"
	"testing"

	"doc-analytics-be/internal/constant"
)

func TestRunLockExclusivity(t *testing.T) {
	lock := NewRunLock()

	if !lock.TryAcquire("u1", constant.ActionCluster) {
		t.Fatal("first acquire should succeed")
	}
	if lock.TryAcquire("u1", constant.ActionCluster) {
		t.Error("second acquire for the same key should fail")
	}

	// Different action for the same user proceeds in parallel.
	if !lock.TryAcquire("u1", constant.ActionTopics) {
		t.Error("different action should acquire independently")
	}
	// Different user, same action too.
	if !lock.TryAcquire("u2", constant.ActionCluster) {
		t.Error("different user should acquire independently")
	}

	lock.Release("u1", constant.ActionCluster)
	if !lock.TryAcquire("u1", constant.ActionCluster) {
		t.Error("acquire after release should succeed")
	}
}

func TestRunLockConcurrentAcquire(t *testing.T) {
	lock := NewRunLock()

	const goroutines = 50
	var wg sync.WaitGroup
	wins := make(chan struct{}, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if lock.TryAcquire("u1", constant.ActionCluster) {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	if count != 1 {
		t.Errorf("exactly one goroutine should win the lock, got %d", count)
	}
}

func TestRunLockReleaseUnheld(t *testing.T) {
	lock := NewRunLock()
	// Must not panic or corrupt state.
	lock.Release("ghost", constant.ActionVisualize)
	if !lock.TryAcquire("ghost", constant.ActionVisualize) {
		t.Error("acquire after spurious release should succeed")
	}
}
