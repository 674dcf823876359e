package locker

import (
	"context"
	"fmt"
	"sync"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	lockerServiceInstance contracts.LockerService
	onceLockerService     sync.Once
)

type lockService struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewLockService(repo contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	onceLockerService.Do(func() {
		instance := &lockService{
			redisRepo: repo,
			Log:       logger,
		}
		lockerServiceInstance = instance
	})
	return lockerServiceInstance
}

func (s *lockService) Acquire(ctx context.Context, key string, ttl time.Duration) (*contracts.Lease, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("lockService.Acquire called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationKey, ttl),
	)

	lease := &contracts.Lease{Key: key, Token: uuid.NewString(), TTL: ttl}
	acquired, err := s.redisRepo.TrySetNX(ctx, key, lease.Token, ttl)
	if err != nil {
		s.Log.Error("lockService.Acquire error calling redisRepo.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if !acquired {
		s.Log.Info("lockService.Acquire lease held elsewhere",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return nil, nil
	}

	s.Log.Info("lockService.Acquire granted lease",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, lease.Token),
	)
	return lease, nil
}

func (s *lockService) Release(ctx context.Context, lease *contracts.Lease) error {
	if lease == nil {
		return nil
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("lockService.Release called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, lease.Key),
		zap.String(constvars.LoggingLockValueKey, lease.Token),
	)

	owned, err := s.isOwner(ctx, lease)
	if err != nil {
		s.Log.Error("lockService.Release error checking lease owner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !owned {
		s.Log.Info("lockService.Release lease already expired or taken over",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lease.Key),
		)
		return nil
	}

	err = s.redisRepo.Delete(ctx, lease.Key)
	if err != nil {
		s.Log.Error("lockService.Release error deleting key from redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	s.Log.Info("lockService.Release succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, lease.Key),
	)
	return nil
}

func (s *lockService) Extend(ctx context.Context, lease *contracts.Lease) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Debug("lockService.Extend called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, lease.Key),
		zap.Duration(constvars.LoggingLockExpirationKey, lease.TTL),
	)

	owned, err := s.isOwner(ctx, lease)
	if err != nil {
		return err
	}
	if !owned {
		err := exceptions.ErrRedisUnlock(fmt.Errorf("lease on %s is no longer held", lease.Key))
		s.Log.Warn("lockService.Extend lease lost",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lease.Key),
			zap.Error(err),
		)
		return err
	}

	return s.redisRepo.Expire(ctx, lease.Key, lease.TTL)
}

// isOwner compares against the JSON encoded form the repository stores.
func (s *lockService) isOwner(ctx context.Context, lease *contracts.Lease) (bool, error) {
	storedVal, err := s.redisRepo.Get(ctx, lease.Key)
	if err != nil {
		return false, err
	}
	if storedVal == "" {
		return false, nil
	}

	expectedValue := fmt.Sprintf("\"%s\"", lease.Token)
	if storedVal != expectedValue {
		s.Log.Warn("lockService.isOwner lock ownership mismatch",
			zap.String(constvars.LoggingRedisKey, lease.Key),
			zap.String(constvars.LoggingLockStoredKey, storedVal),
			zap.String(constvars.LoggingLockExpectedKey, expectedValue),
		)
		return false, nil
	}
	return true, nil
}
