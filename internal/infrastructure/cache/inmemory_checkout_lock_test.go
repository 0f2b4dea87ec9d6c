package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCheckoutLock_AcquireAndRelease(t *testing.T) {
	lock := NewInMemoryCheckoutLock(time.Minute)
	defer lock.Close()

	ctx := context.Background()
	userID := uuid.New()

	acquired, err := lock.Acquire(ctx, userID)
	require.NoError(t, err)
	assert.True(t, acquired)

	// Second acquire for the same user fails while held
	acquired, err = lock.Acquire(ctx, userID)
	require.NoError(t, err)
	assert.False(t, acquired)

	// A different user is not blocked
	acquired, err = lock.Acquire(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, acquired)

	// Release and reacquire
	require.NoError(t, lock.Release(ctx, userID))

	acquired, err = lock.Acquire(ctx, userID)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestInMemoryCheckoutLock_ReleaseUnheldIsNoop(t *testing.T) {
	lock := NewInMemoryCheckoutLock(time.Minute)
	defer lock.Close()

	err := lock.Release(context.Background(), uuid.New())
	assert.NoError(t, err)
}

func TestInMemoryCheckoutLock_ExpiredLockCanBeReacquired(t *testing.T) {
	lock := NewInMemoryCheckoutLock(10 * time.Millisecond)
	defer lock.Close()

	ctx := context.Background()
	userID := uuid.New()

	acquired, err := lock.Acquire(ctx, userID)
	require.NoError(t, err)
	require.True(t, acquired)

	time.Sleep(20 * time.Millisecond)

	acquired, err = lock.Acquire(ctx, userID)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestInMemoryCheckoutLock_Cleanup(t *testing.T) {
	lock := NewInMemoryCheckoutLock(10 * time.Millisecond)
	defer lock.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := lock.Acquire(ctx, uuid.New())
		require.NoError(t, err)
	}
	assert.Equal(t, 5, lock.Size())

	time.Sleep(20 * time.Millisecond)
	lock.cleanup()

	assert.Equal(t, 0, lock.Size())
}

func TestInMemoryCheckoutLock_CloseIsIdempotent(t *testing.T) {
	lock := NewInMemoryCheckoutLock(time.Minute)

	assert.NoError(t, lock.Close())
	assert.NoError(t, lock.Close())
}
