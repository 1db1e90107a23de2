package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLockerSerializesPerSession(t *testing.T) {
	locker := newSessionLocker()

	const workers = 16
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := locker.Lock(7)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestSessionLockerEvictsIdleEntries(t *testing.T) {
	locker := newSessionLocker()

	unlockA := locker.Lock(1)
	unlockB := locker.Lock(2)

	locker.mu.Lock()
	require.Len(t, locker.locks, 2)
	locker.mu.Unlock()

	unlockA()
	unlockB()

	locker.mu.Lock()
	assert.Empty(t, locker.locks)
	locker.mu.Unlock()
}
