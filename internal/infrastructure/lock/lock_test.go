package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockSerializes(t *testing.T) {
	m := NewManager(time.Second, logger.NewNop())

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := m.Lock(context.Background(), EmailKey("a@example.com"))
			if err != nil {
				return
			}
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestLockTimeout(t *testing.T) {
	m := NewManager(20*time.Millisecond, logger.NewNop())

	unlock, err := m.Lock(context.Background(), EmailKey("a@example.com"))
	require.NoError(t, err)

	_, err = m.Lock(context.Background(), EmailKey("a@example.com"))
	assert.ErrorContains(t, err, "timeout")

	other, err := m.Lock(context.Background(), EmailKey("b@example.com"))
	require.NoError(t, err)
	other()

	unlock()
	unlock()
	again, err := m.Lock(context.Background(), EmailKey("a@example.com"))
	require.NoError(t, err)
	again()
}

func TestLockContextCancelled(t *testing.T) {
	m := NewManager(time.Second, logger.NewNop())
	unlock, ok := m.TryLock(EmailKey("c@example.com"))
	require.True(t, ok)
	defer unlock()

	_, ok = m.TryLock(EmailKey("c@example.com"))
	assert.False(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Lock(ctx, EmailKey("c@example.com"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLockAllReleasesOnFailure(t *testing.T) {
	m := NewManager(20*time.Millisecond, logger.NewNop())

	held, err := m.Lock(context.Background(), EmailKey("a@example.com"))
	require.NoError(t, err)

	_, err = m.LockAll(context.Background(), EmailKey("c@example.com"), EmailKey("a@example.com"))
	require.Error(t, err)

	unlock, ok := m.TryLock(EmailKey("c@example.com"))
	require.True(t, ok, "first lock released after partial failure")
	unlock()
	held()

	release, err := m.LockAll(context.Background(), EmailKey("c@example.com"), EmailKey("a@example.com"))
	require.NoError(t, err)
	release()
}
