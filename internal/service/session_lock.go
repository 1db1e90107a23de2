package service

import "sync"

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// sessionLocker serializes answer submissions per session. Submissions for
// different sessions proceed without coordination. Entries are refcounted
// and evicted when the last holder unlocks, so the table stays bounded by
// the number of in-flight submissions.
type sessionLocker struct {
	mu    sync.Mutex
	locks map[uint]*sessionLock
}

func newSessionLocker() *sessionLocker {
	return &sessionLocker{locks: make(map[uint]*sessionLock)}
}

// Lock acquires the per-session mutex and returns its unlock func.
func (l *sessionLocker) Lock(sessionID uint) func() {
	l.mu.Lock()
	e, ok := l.locks[sessionID]
	if !ok {
		e = &sessionLock{}
		l.locks[sessionID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}
