package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthcare-portal/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotLocked is returned when another request is booking the same slot.
var ErrSlotLocked = errors.New("time slot is being booked by another request")

// releaseSlotLockScript deletes the lock only if this request still owns it,
// so an expired lock re-acquired by someone else is never released.
var releaseSlotLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	RedisSlotLockKeyPrefix = "slot:lock:"

	// Timeout for releasing a lock after the request context is gone
	redisReleaseTimeout = 5 * time.Second
)

// SlotLocker serializes booking attempts on the same doctor slot.
type SlotLocker interface {
	Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time, at string) (release func(), err error)
}

// SlotLockService is a short-lived Redis lock keyed by doctor, date and time.
// The database unique indexes remain the final authority; the lock only keeps
// concurrent requests for one slot from racing each other into the database.
type SlotLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewSlotLockService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SlotLockService {
	return &SlotLockService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// SlotLockKey builds the Redis key for one doctor slot.
func SlotLockKey(doctorID uuid.UUID, date time.Time, at string) string {
	return fmt.Sprintf("%s%s:%s:%s", RedisSlotLockKeyPrefix, doctorID, date.Format(timeslot.DateLayout), at)
}

// Acquire takes the lock with SET NX. The returned release is safe to call
// once the request is done, even if ctx has been cancelled.
func (s *SlotLockService) Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time, at string) (func(), error) {
	key := SlotLockKey(doctorID, date, at)
	token := uuid.NewString()

	ok, err := s.redisClient.SetNX(ctx, key, token, s.ttl).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire slot lock %s: %+v", key, err)
		return nil, fmt.Errorf("acquire slot lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrSlotLocked
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), redisReleaseTimeout)
		defer cancel()

		if err := releaseSlotLockScript.Run(releaseCtx, s.redisClient, []string{key}, token).Err(); err != nil {
			s.log.Warnf("Failed to release slot lock %s: %+v", key, err)
		}
	}

	s.log.Debugf("Acquired slot lock %s", key)
	return release, nil
}
