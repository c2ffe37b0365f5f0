package memory

import (
	"context"
	"sync"
)

// keyedLocker 按图书ID划分的互斥锁
// 同一ID串行,不同ID互不阻塞;等待可被context取消
type keyedLocker struct {
	mu    sync.Mutex
	locks map[int64]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func newKeyedLocker() *keyedLocker {
	return &keyedLocker{locks: make(map[int64]*keyLock)}
}

// lock 获取id对应的锁
func (k *keyedLocker) lock(ctx context.Context, id int64) error {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		k.mu.Lock()
		k.deref(id, l)
		k.mu.Unlock()
		return ctx.Err()
	}
}

// unlock 释放id对应的锁,调用方必须持有该锁
func (k *keyedLocker) unlock(id int64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[id]
	if !ok {
		return
	}
	<-l.ch
	k.deref(id, l)
}

// deref 引用计数归零时回收,调用方持有k.mu
func (k *keyedLocker) deref(id int64, l *keyLock) {
	l.refs--
	if l.refs == 0 {
		delete(k.locks, id)
	}
}
