package locker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	args := m.Called(ctx, key, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	args := m.Called(ctx, key, ttl)
	return args.Int(0), args.Error(1)
}

func (m *MockRedisRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

const lockKey = "availability:snapshot:leader"

func TestLockService_TryLock(t *testing.T) {
	ctx := context.Background()

	t.Run("Acquired", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, lockKey, mock.AnythingOfType("string"), time.Minute).Return(true, nil)

		acquired, token, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, lockKey, time.Minute)

		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, token)
		repo.AssertExpectations(t)
	})

	t.Run("Held Elsewhere", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, lockKey, mock.Anything, time.Minute).Return(false, nil)

		acquired, token, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, lockKey, time.Minute)

		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, token)
	})

	t.Run("Redis Error", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, lockKey, mock.Anything, time.Minute).Return(false, errors.New("connection refused"))

		acquired, _, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, lockKey, time.Minute)

		assert.Error(t, err)
		assert.False(t, acquired)
	})
}

func TestLockService_Unlock(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Releases", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, lockKey).Return(`"token-1"`, nil)
		repo.On("Delete", ctx, lockKey).Return(nil)

		err := NewLockService(repo, zap.NewNop()).Unlock(ctx, lockKey, "token-1")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Already Expired", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, lockKey).Return("", nil)

		err := NewLockService(repo, zap.NewNop()).Unlock(ctx, lockKey, "token-1")

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Not Owner", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, lockKey).Return(`"token-2"`, nil)

		err := NewLockService(repo, zap.NewNop()).Unlock(ctx, lockKey, "token-1")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestLockService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Extends", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, lockKey).Return(`"token-1"`, nil)
		repo.On("Expire", ctx, lockKey, 2*time.Minute).Return(nil)

		err := NewLockService(repo, zap.NewNop()).Refresh(ctx, lockKey, "token-1", 2*time.Minute)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Lost Lock", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, lockKey).Return("", nil)

		err := NewLockService(repo, zap.NewNop()).Refresh(ctx, lockKey, "token-1", 2*time.Minute)

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Expire", mock.Anything, mock.Anything, mock.Anything)
	})
}
