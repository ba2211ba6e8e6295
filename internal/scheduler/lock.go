package scheduler

import (
	"sort"
	"sync"
)

// ParticipantLocker serialises booking attempts per participant so that a
// conflict check and the write that follows it observe a consistent schedule.
// Two concurrent requests touching the same participant cannot both pass the
// check and both commit.
type ParticipantLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewParticipantLocker constructs an empty locker.
func NewParticipantLocker() *ParticipantLocker {
	return &ParticipantLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for every listed participant and returns the release
// function. Acquisition order is sorted and deduplicated, so two requests over
// overlapping participant sets can never deadlock.
func (l *ParticipantLocker) Lock(participantIDs []string) func() {
	if l == nil || len(participantIDs) == 0 {
		return func() {}
	}

	ids := make([]string, 0, len(participantIDs))
	seen := make(map[string]struct{}, len(participantIDs))
	for _, id := range participantIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	acquired := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		acquired = append(acquired, l.lockFor(id))
	}
	for _, mu := range acquired {
		mu.Lock()
	}

	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}

func (l *ParticipantLocker) lockFor(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	mu, ok := l.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		l.locks[id] = mu
	}
	return mu
}
