package locking

import (
	"context"
	"sync"
)

// LocalLocker is an in-process Locker backed by per-name mutexes. It is the
// default for single-instance deployments and for tests.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocalLocker creates an in-process locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *LocalLocker) mutexFor(name string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	return m
}

// Lock acquires the named mutex, honoring context cancellation while waiting.
func (l *LocalLocker) Lock(ctx context.Context, name string) (func(), error) {
	m := l.mutexFor(name)

	acquired := make(chan struct{})
	go func() {
		m.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		return m.Unlock, nil
	case <-ctx.Done():
		// release the mutex once the background goroutine obtains it
		go func() {
			<-acquired
			m.Unlock()
		}()
		return nil, ctx.Err()
	}
}
