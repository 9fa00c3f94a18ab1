package common

import (
	"sync"
)

//
// EntryLocker hands out one mutex per key so that mutating operations on
// the same entity id are serialized while operations on distinct ids run
// concurrently. A vote must never land after finalize has observed the
// ballot set; both go through the same per-id lock.
//
// Locks are never evicted; an entity id stays valid for the life of the
// process and the per-id footprint is a single mutex.
//
type EntryLocker struct {
	sync.Mutex

	locks map[string]*sync.Mutex
}

func NewEntryLocker() *EntryLocker {
	return &EntryLocker{
		locks: map[string]*sync.Mutex{},
	}
}

func (l *EntryLocker) lock(key string) *sync.Mutex {
	l.Lock()
	defer l.Unlock()

	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}

	return m
}

// Acquire blocks until the caller owns `key` and returns the release
// function.
func (l *EntryLocker) Acquire(key string) func() {
	m := l.lock(key)
	m.Lock()

	return m.Unlock
}
