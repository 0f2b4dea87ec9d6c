package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	apporder "github.com/storefront/backend/internal/application/order"
)

// lockEntry represents a held lock with expiration
type lockEntry struct {
	expiresAt time.Time
}

// InMemoryCheckoutLock implements the checkout lock using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryCheckoutLock struct {
	mu        sync.Mutex
	locks     map[uuid.UUID]lockEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCheckoutLock creates a new in-memory checkout lock.
// It starts a background goroutine to clean up expired locks.
func NewInMemoryCheckoutLock(ttl time.Duration) *InMemoryCheckoutLock {
	lock := &InMemoryCheckoutLock{
		locks:    make(map[uuid.UUID]lockEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	// Start cleanup goroutine
	lock.wg.Add(1)
	go lock.cleanupLoop()

	return lock
}

// Acquire attempts to take the per-user checkout lock.
// Returns true if the lock was acquired, false if another checkout holds it.
func (l *InMemoryCheckoutLock) Acquire(ctx context.Context, userID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, exists := l.locks[userID]; exists {
		if time.Now().Before(e.expiresAt) {
			return false, nil // Held by another checkout
		}
		// Lock exists but expired, will be overwritten
	}

	l.locks[userID] = lockEntry{
		expiresAt: time.Now().Add(l.ttl),
	}

	return true, nil
}

// Release frees the per-user checkout lock.
// Releasing a lock that is not held is not an error.
func (l *InMemoryCheckoutLock) Release(ctx context.Context, userID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.locks, userID)
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (l *InMemoryCheckoutLock) Close() error {
	l.closeOnce.Do(func() {
		close(l.stopChan)
		l.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired locks
func (l *InMemoryCheckoutLock) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

// cleanup removes expired locks from the map
func (l *InMemoryCheckoutLock) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for userID, e := range l.locks {
		if now.After(e.expiresAt) {
			delete(l.locks, userID)
		}
	}
}

// Size returns the number of held locks (for testing/monitoring)
func (l *InMemoryCheckoutLock) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// Ensure InMemoryCheckoutLock implements CheckoutLock
var _ apporder.CheckoutLock = (*InMemoryCheckoutLock)(nil)
