package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterRunsOnce(t *testing.T) {
	s, err := New(clockwork.NewRealClock(), logger.NewNop())
	require.NoError(t, err)
	s.Start()
	defer func() { _ = s.Shutdown() }()

	var runs int32
	require.NoError(t, s.After("profile-sync:test", 50*time.Millisecond, func() {
		atomic.AddInt32(&runs, 1)
	}))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestEvery(t *testing.T) {
	s, err := New(clockwork.NewRealClock(), logger.NewNop())
	require.NoError(t, err)
	s.Start()
	defer func() { _ = s.Shutdown() }()

	var runs int32
	require.NoError(t, s.Every("session-sweep", 20*time.Millisecond, func() {
		atomic.AddInt32(&runs, 1)
	}))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestShutdownDropsPendingJobs(t *testing.T) {
	s, err := New(clockwork.NewRealClock(), logger.NewNop())
	require.NoError(t, err)
	s.Start()

	var runs int32
	require.NoError(t, s.After("late", time.Hour, func() { atomic.AddInt32(&runs, 1) }))
	require.NoError(t, s.Shutdown())
	assert.Zero(t, atomic.LoadInt32(&runs))
}
