package keylock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SerializesSameKey(t *testing.T) {
	l := NewLocal()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), "attendance:emp-1:2024-06-03")
			require.NoError(t, err)
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, l.(*local).locks)
}

func TestLocal_DifferentKeysDoNotBlock(t *testing.T) {
	l := NewLocal()
	r1, err := l.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer r1()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	r2, err := l.Acquire(ctx, "b")
	require.NoError(t, err)
	r2()
}

func TestLocal_ContextCancelled(t *testing.T) {
	l := NewLocal()
	r1, err := l.Acquire(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	r1()
	r1()
	assert.Empty(t, l.(*local).locks)
}

func TestRedis_AcquireAndRelease(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRedis(db, 5*time.Second).(*redisLocker)
	l.token = func() string { return "tok-1" }

	mock.ExpectSetNX("lock:payroll:c1:2024-06", "tok-1", 5*time.Second).SetVal(true)
	mock.ExpectEvalSha(releaseScript.Hash(), []string{"lock:payroll:c1:2024-06"}, "tok-1").SetVal(int64(1))

	release, err := l.Acquire(context.Background(), "payroll:c1:2024-06")
	require.NoError(t, err)
	release()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_RetriesUntilFree(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRedis(db, time.Second).(*redisLocker)
	l.token = func() string { return "tok-2" }

	mock.ExpectSetNX("lock:k", "tok-2", time.Second).SetVal(false)
	mock.ExpectSetNX("lock:k", "tok-2", time.Second).SetVal(true)
	mock.ExpectEvalSha(releaseScript.Hash(), []string{"lock:k"}, "tok-2").SetVal(int64(1))

	release, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)
	release()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_ContextDoneWhileWaiting(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRedis(db, time.Second).(*redisLocker)
	l.token = func() string { return "tok-3" }

	mock.ExpectSetNX("lock:k", "tok-3", time.Second).SetVal(false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := l.Acquire(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedis_ExtendOnlyWhileOwned(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRedis(db, 3*time.Second).(*redisLocker)
	key := "lock:payroll:c1:2024-06"

	mock.ExpectEvalSha(extendScript.Hash(), []string{key}, "tok-1", int64(3000)).SetVal(int64(1))
	mock.ExpectEvalSha(extendScript.Hash(), []string{key}, "tok-2", int64(3000)).SetVal(int64(0))

	ok, err := l.extend(context.Background(), key, "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.extend(context.Background(), key, "tok-2")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_KeepAliveRenewsUntilLost(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRedis(db, 3*time.Second).(*redisLocker)
	l.renewEvery = 5 * time.Millisecond
	key := "lock:payroll:c1:2024-06"

	mock.ExpectEvalSha(extendScript.Hash(), []string{key}, "tok-1", int64(3000)).SetVal(int64(1))
	mock.ExpectEvalSha(extendScript.Hash(), []string{key}, "tok-1", int64(3000)).SetVal(int64(0))

	stop, done := make(chan struct{}), make(chan struct{})
	go l.keepAlive(key, "tok-1", stop, done)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		close(stop)
		<-done
		t.Fatal("keepAlive kept running after the token was lost")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
