package service

import (
	"context"
	"sync"
)

// userLocks serializes work per user while letting different users proceed
// in parallel. Waiting honours context cancellation, and idle entries are
// removed so the map does not grow with the user base.
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*userLock
}

type userLock struct {
	sem  chan struct{}
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uint]*userLock)}
}

// Lock blocks until the user's lock is held or ctx is done.
// On success the returned func releases the lock.
func (l *userLocks) Lock(ctx context.Context, userID uint) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	ul := l.locks[userID]
	if ul == nil {
		ul = &userLock{sem: make(chan struct{}, 1)}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	select {
	case ul.sem <- struct{}{}:
		return func() {
			<-ul.sem
			l.release(userID, ul)
		}, nil
	case <-ctx.Done():
		l.release(userID, ul)
		return nil, ctx.Err()
	}
}

func (l *userLocks) release(userID uint, ul *userLock) {
	l.mu.Lock()
	ul.refs--
	if ul.refs == 0 {
		delete(l.locks, userID)
	}
	l.mu.Unlock()
}

// size reports how many users currently hold or wait for a lock
func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
