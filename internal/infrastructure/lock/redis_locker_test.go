package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"sms_invoicer/internal/infrastructure/logger"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	setResults []bool
	setErr     error
	setCalls   int
	lastKey    string
	lastValue  interface{}
	lastTTL    time.Duration
	evalKeys   []string
	evalArgs   []interface{}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd {
	f.lastKey, f.lastValue, f.lastTTL = key, value, expiration
	ok := true
	if f.setCalls < len(f.setResults) {
		ok = f.setResults[f.setCalls]
	}
	f.setCalls++
	return goredis.NewBoolResult(ok, f.setErr)
}

func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *goredis.Cmd {
	f.evalKeys, f.evalArgs = keys, args
	return goredis.NewCmdResult(int64(1), nil)
}

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	rdb := &fakeRedis{}
	l := newRedisLocker(rdb, 10*time.Second, logger.NewNop())

	unlock, err := l.Lock(context.Background(), "biz-1#+15550001111")
	require.NoError(t, err)
	assert.Equal(t, keyPrefix+"biz-1#+15550001111", rdb.lastKey)
	assert.Equal(t, 10*time.Second, rdb.lastTTL)

	unlock()
	assert.Equal(t, []string{keyPrefix + "biz-1#+15550001111"}, rdb.evalKeys)
	require.Len(t, rdb.evalArgs, 1)
	assert.Equal(t, rdb.lastValue, rdb.evalArgs[0])
}

func TestRedisLocker_RetriesUntilFree(t *testing.T) {
	rdb := &fakeRedis{setResults: []bool{false, false, true}}
	l := newRedisLocker(rdb, time.Second, logger.NewNop())
	l.interval = time.Millisecond

	_, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 3, rdb.setCalls)
}

func TestRedisLocker_Timeout(t *testing.T) {
	rdb := &fakeRedis{setResults: make([]bool, 1000)}
	l := newRedisLocker(rdb, time.Second, logger.NewNop())
	l.interval = time.Millisecond
	l.maxWait = 5 * time.Millisecond

	_, err := l.Lock(context.Background(), "k")
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestRedisLocker_Error(t *testing.T) {
	l := newRedisLocker(&fakeRedis{setErr: errors.New("conn refused")}, time.Second, logger.NewNop())

	_, err := l.Lock(context.Background(), "k")
	require.Error(t, err)
}
