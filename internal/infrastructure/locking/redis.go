package locking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisLockPrefix     = "bookkeep:lock:"
	redisAcquireDelay   = 25 * time.Millisecond
	defaultRedisLockTTL = 10 * time.Second
)

// RedisLocker is a distributed Locker using SET NX with a TTL. The TTL is a
// liveness bound: a crashed holder's lock expires instead of wedging every
// other instance.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker creates a Redis-backed locker. A zero ttl falls back to
// the default.
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultRedisLockTTL
	}
	return &RedisLocker{client: client, ttl: ttl}
}

// Lock polls SET NX until the lock is acquired or the context is done.
// Unlock deletes the key only if this caller still holds it.
func (l *RedisLocker) Lock(ctx context.Context, name string) (func(), error) {
	key := redisLockPrefix + name
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire redis lock %s: %w", name, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(redisAcquireDelay):
		}
	}

	unlock := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		// compare-and-delete so an expired lock reclaimed by another
		// holder is never deleted by us
		l.client.Eval(ctx, `
			if redis.call("get", KEYS[1]) == ARGV[1] then
				return redis.call("del", KEYS[1])
			end
			return 0
		`, []string{key}, token)
	}
	return unlock, nil
}
