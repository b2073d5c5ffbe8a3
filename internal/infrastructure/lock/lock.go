package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// DefaultTimeout bounds how long Lock waits
const DefaultTimeout = 5 * time.Second

// Manager hands out one mutex per key
type Manager struct {
	locks   sync.Map // map[string]chan struct{}
	timeout time.Duration
	logger  *logger.Logger
}

// NewManager creates a lock manager
func NewManager(timeout time.Duration, logger *logger.Logger) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{timeout: timeout, logger: logger}
}

// EmailKey is the lock key of an account email
func EmailKey(email string) string { return "email:" + email }

// Lock acquires the lock for key, waiting until ctx is done or the manager
// timeout elapses. The returned func releases it.
func (m *Manager) Lock(ctx context.Context, key string) (func(), error) {
	slot := m.slot(key)

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-slot }) }, nil
	case <-ctx.Done():
		m.logger.Warn("Failed to acquire lock: context cancelled", zap.String("key", key), zap.Error(ctx.Err()))
		return nil, fmt.Errorf("failed to acquire lock for %s: %w", key, ctx.Err())
	case <-timer.C:
		m.logger.Warn("Failed to acquire lock: timeout", zap.String("key", key), zap.Duration("timeout", m.timeout))
		return nil, fmt.Errorf("failed to acquire lock for %s: timeout", key)
	}
}

// LockAll acquires the locks for keys in order and releases them in reverse
func (m *Manager) LockAll(ctx context.Context, keys ...string) (func(), error) {
	unlocks := make([]func(), 0, len(keys))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for _, key := range keys {
		unlock, err := m.Lock(ctx, key)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}

// TryLock acquires the lock for key without waiting
func (m *Manager) TryLock(key string) (func(), bool) {
	slot := m.slot(key)
	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-slot }) }, true
	default:
		return nil, false
	}
}

func (m *Manager) slot(key string) chan struct{} {
	if s, ok := m.locks.Load(key); ok {
		return s.(chan struct{})
	}
	actual, _ := m.locks.LoadOrStore(key, make(chan struct{}, 1))
	return actual.(chan struct{})
}
