package locker

import (
	"context"
	"errors"
	"medirdv-service/internal/app/contracts"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/exceptions"
	"medirdv-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var errLockNotOwned = errors.New("lock not owned by this client")

type lockService struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewLockService(repo contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	return &lockService{
		redisRepo: repo,
		Log:       logger,
	}
}

func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID := utils.GetRequestID(ctx)
	s.Log.Debug("lockService.TryLock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationKey, expiration),
	)

	lockValue := utils.GenerateLockToken()
	acquired, err := s.redisRepo.TrySetNX(ctx, key, lockValue, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling redisRepo.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return false, "", err
	}

	if !acquired {
		s.Log.Info("lockService.TryLock not acquired",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	s.Log.Info("lockService.TryLock acquired lock",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, lockValue),
	)
	return true, lockValue, nil
}

func (s *lockService) Unlock(ctx context.Context, key, lockValue string) error {
	requestID := utils.GetRequestID(ctx)
	owned, found, err := s.owns(ctx, key, lockValue)
	if err != nil {
		s.Log.Error("lockService.Unlock error retrieving value from redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !found {
		s.Log.Info("lockService.Unlock no lock found to release",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return nil
	}
	if !owned {
		err := exceptions.ErrRedisUnlock(errLockNotOwned)
		s.Log.Error("lockService.Unlock lock ownership mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}

	if err := s.redisRepo.Delete(ctx, key); err != nil {
		s.Log.Error("lockService.Unlock error deleting lock from redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	s.Log.Info("lockService.Unlock succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	)
	return nil
}

func (s *lockService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	requestID := utils.GetRequestID(ctx)
	owned, found, err := s.owns(ctx, key, lockValue)
	if err != nil {
		return err
	}
	if !found || !owned {
		err := exceptions.ErrRedisExpire(errLockNotOwned)
		s.Log.Warn("lockService.Refresh lock lost",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return err
	}

	return s.redisRepo.Expire(ctx, key, expiration)
}

// owns compares the stored JSON encoded token with lockValue.
func (s *lockService) owns(ctx context.Context, key, lockValue string) (owned bool, found bool, err error) {
	storedVal, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		return false, false, err
	}
	if storedVal == "" {
		return false, false, nil
	}

	expectedValue, err := json.Marshal(lockValue)
	if err != nil {
		return false, true, exceptions.ErrCannotMarshalJSON(err)
	}
	return storedVal == string(expectedValue), true, nil
}
