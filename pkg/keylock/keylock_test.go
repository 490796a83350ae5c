package keylock_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/adapters/redis"
	"github.com/aretw0/arbor/pkg/keylock"
	"github.com/aretw0/arbor/pkg/ports"
)

func TestManager_SerializesKey(t *testing.T) {
	m := keylock.New()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.WithLock(ctx, "ws.json", func(context.Context) error {
				mu.Lock()
				inside++
				maxSeen = max(maxSeen, inside)
				mu.Unlock()

				time.Sleep(2 * time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Zero(t, m.Active())
}

func TestManager_LockLifecycle(t *testing.T) {
	m := keylock.New()
	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		_ = m.WithLock(ctx, fmt.Sprintf("doc-%d", i), func(context.Context) error { return nil })
	}
	assert.Zero(t, m.Active(), "locks are dropped once released")
}

func TestManager_ReturnsFnError(t *testing.T) {
	boom := errors.New("boom")
	err := keylock.New().WithLock(context.Background(), "k", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	return nil, errors.New("unavailable")
}

func TestManager_DistributedLockFailure(t *testing.T) {
	m := keylock.New(keylock.WithLocker(failingLocker{}, 0))
	called := false
	err := m.WithLock(context.Background(), "k", func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "lock k: unavailable")
	assert.False(t, called)
	assert.Zero(t, m.Active())
}

func TestManager_RedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	rs, err := redis.NewFromURL("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })

	m := keylock.New(keylock.WithLocker(redis.NewLocker(rs.Client(), "arbor:"), time.Minute))
	err = m.WithLock(context.Background(), "ws.json", func(context.Context) error {
		assert.True(t, mr.Exists("arbor:lock:ws.json"))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("arbor:lock:ws.json"))
}
