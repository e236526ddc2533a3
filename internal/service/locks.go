package service

import "sync"

// tutorLocks serializes load-modify-save cycles per tutor.
type tutorLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *tutorLocks) lock(tutorID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[tutorID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[tutorID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
