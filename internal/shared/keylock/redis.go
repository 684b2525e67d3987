package keylock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix    = "lock:"
	retryBackoff = 25 * time.Millisecond
)

// Delete only if we still own the token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Push the expiry out only if we still own the token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

type redisLocker struct {
	rdb        redis.UniversalClient
	ttl        time.Duration
	renewEvery time.Duration
	logger     *zap.Logger
	token      func() string
}

// NewRedis returns a Locker backed by SET NX PX. ttl bounds how long a
// crashed holder can keep a key; a live holder renews it every ttl/3 until
// it releases.
func NewRedis(rdb redis.UniversalClient, ttl time.Duration, logger ...*zap.Logger) Locker {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &redisLocker{
		rdb:        rdb,
		ttl:        ttl,
		renewEvery: ttl / 3,
		logger:     l.Named("keylock.redis"),
		token:      uuid.NewString,
	}
}

func (r *redisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := r.token()

	for {
		ok, err := r.rdb.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	if r.renewEvery > 0 {
		go r.keepAlive(redisKey, token, stop, done)
	} else {
		close(done)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			// Release must run even if the caller's ctx is already cancelled.
			if err := releaseScript.Run(context.Background(), r.rdb, []string{redisKey}, token).Err(); err != nil {
				r.logger.Warn("release failed", zap.String("key", redisKey), zap.Error(err))
			}
		})
	}, nil
}

// keepAlive renews the key until stop closes. It gives up as soon as the
// token is no longer ours.
func (r *redisLocker) keepAlive(redisKey, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.renewEvery)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ok, err := r.extend(context.Background(), redisKey, token)
			if err != nil {
				r.logger.Warn("lock renewal failed", zap.String("key", redisKey), zap.Error(err))
				continue
			}
			if !ok {
				r.logger.Error("lock lost before release", zap.String("key", redisKey))
				return
			}
		}
	}
}

func (r *redisLocker) extend(ctx context.Context, redisKey, token string) (bool, error) {
	n, err := extendScript.Run(ctx, r.rdb, []string{redisKey}, token, r.ttl.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
