package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sms_invoicer/internal/infrastructure/logger"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

var ErrLockTimeout = errors.New("turn lock not acquired")

const keyPrefix = "sms_invoicer:turn:"

// releaseScript deletes the key only if it still holds our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type redisLockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *goredis.Cmd
}

// RedisLocker serializes turns across API replicas with SET NX PX.
//
// The TTL bounds how long a crashed holder can block a sender; a turn that
// outlives it simply loses exclusivity, and the conversation CAS still guards
// the state.
type RedisLocker struct {
	rdb      redisLockClient
	ttl      time.Duration
	maxWait  time.Duration
	interval time.Duration
	log      *logger.Logger
}

var _ interfaces.ITurnLocker = (*RedisLocker)(nil)

func NewRedisLocker(addr, password string, ttl time.Duration, log *logger.Logger) (*RedisLocker, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	if log == nil {
		log = logger.NewNop()
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return newRedisLocker(rdb, ttl, log.With("service", "RedisTurnLocker")), nil
}

func newRedisLocker(rdb redisLockClient, ttl time.Duration, log *logger.Logger) *RedisLocker {
	return &RedisLocker{
		rdb:      rdb,
		ttl:      ttl,
		maxWait:  ttl,
		interval: 50 * time.Millisecond,
		log:      log,
	}
}

// Lock blocks until the key is free, ctx is done, or maxWait elapses.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.maxWait)

	for {
		ok, err := l.rdb.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("lock: setnx: %w", err)
		}
		if ok {
			return l.releaser(redisKey, token), nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.interval):
		}
	}
}

func (l *RedisLocker) releaser(redisKey, token string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := l.rdb.Eval(ctx, releaseScript, []string{redisKey}, token).Err(); err != nil {
			l.log.Warn("[lock][redis] release failed", "key", redisKey, "err", err)
		}
	}
}
