// Package lock provides the Redis-backed per-document sync lock.
package lock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bsm/redislock"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/redis/go-redis/v9"
)

// defaultLockTTL bounds how long a crashed worker can hold a document
const defaultLockTTL = 30 * time.Second

// lockKeyPrefix namespaces sync locks in the shared Redis instance
const lockKeyPrefix = "sync:lock:"

// RedisDocumentLocker implements DocumentLocker on top of redislock. Locks
// are not reentrant; a second Acquire for the same document fails with
// ErrDocumentLocked until the first holder releases or the TTL expires.
type RedisDocumentLocker struct {
	locker *redislock.Client
	ttl    time.Duration
}

// NewRedisDocumentLocker creates a locker over an existing Redis client
func NewRedisDocumentLocker(client *redis.Client, ttl time.Duration) *RedisDocumentLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisDocumentLocker{
		locker: redislock.New(client),
		ttl:    ttl,
	}
}

// Acquire takes the lock for a document. Returns ErrDocumentLocked when
// another worker already holds it.
func (l *RedisDocumentLocker) Acquire(ctx context.Context, entityType syncdomain.EntityType, documentRef string) (syncdomain.DocumentLock, error) {
	key := lockKey(entityType, documentRef)
	lock, err := l.locker.Obtain(ctx, key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", syncdomain.ErrDocumentLocked, key)
	}
	if err != nil {
		return nil, err
	}
	return &redisDocumentLock{lock: lock}, nil
}

// lockKey builds the Redis key for a document. Entity type names carry
// spaces, which keys compact to underscores.
func lockKey(entityType syncdomain.EntityType, documentRef string) string {
	doctype := strings.ReplaceAll(strings.ToLower(entityType.String()), " ", "_")
	return lockKeyPrefix + doctype + ":" + documentRef
}

// redisDocumentLock adapts a held redislock.Lock to the domain port
type redisDocumentLock struct {
	lock *redislock.Lock
}

// Release releases the lock. Releasing a lock that already expired is not
// an error for callers.
func (h *redisDocumentLock) Release(ctx context.Context) error {
	err := h.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		return nil
	}
	return err
}

// Ensure RedisDocumentLocker implements DocumentLocker
var _ syncdomain.DocumentLocker = (*RedisDocumentLocker)(nil)
