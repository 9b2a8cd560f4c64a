package locking

import "context"

// Locker serializes writers on a named resource. The audit recorder locks
// per tenant so chain appends within one process, or across processes with
// the Redis implementation, do not race each other.
type Locker interface {
	// Lock blocks until the named lock is held or the context is done.
	// It returns an unlock function that must be called exactly once.
	Lock(ctx context.Context, name string) (unlock func(), err error)
}
