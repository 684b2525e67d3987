// Package keylock provides per-key exclusive sections. The local backend
// serializes goroutines of one process; the redis backend serializes
// replicas that share a redis instance.
package keylock

import (
	"context"
	"sync"
)

//go:generate mockgen -destination=mock/keylock_mock.go -package=mock . Locker
type Locker interface {
	// Acquire blocks until key is held or ctx is done. The returned release
	// func must be called exactly once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type entry struct {
	ch   chan struct{}
	refs int
}

type local struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func NewLocal() Locker {
	return &local{locks: make(map[string]*entry)}
}

func (l *local) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.unref(key, e)
		})
	}, nil
}

func (l *local) unref(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}
