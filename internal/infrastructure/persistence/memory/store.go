// Package memory 图书记录的进程内存储
//
// 设计说明:
// 1. 实现book.Repository与book.Transactor,行为与MySQL实现保持一致
// 2. 事务内的写操作先暂存,提交时整体写入,fn返回错误则丢弃
// 3. LockByID/Create获取按ID划分的锁,锁在事务结束后释放
// 4. 读操作在读锁下复制整条记录,不会读到写了一半的字段
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
)

// errNoTransaction 写操作必须在事务内执行
var errNoTransaction = errors.New("memory: 该操作必须在Transaction内调用")

// Store 内存图书存储
type Store struct {
	mu    sync.RWMutex
	books map[int64]book.Book

	locks *keyedLocker
}

// NewStore 创建内存存储
func NewStore() *Store {
	return &Store{
		books: make(map[int64]book.Book),
		locks: newKeyedLocker(),
	}
}

type txKey struct{}

// tx 单个事务的状态(只由执行fn的goroutine访问)
type tx struct {
	held    map[int64]bool
	pending map[int64]book.Book
	order   []int64
}

func txFrom(ctx context.Context) (*tx, bool) {
	t, ok := ctx.Value(txKey{}).(*tx)
	return t, ok
}

// Transaction 执行事务
// 嵌套调用复用外层事务
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}

	t := &tx{
		held:    make(map[int64]bool),
		pending: make(map[int64]book.Book),
	}
	defer func() {
		for id := range t.held {
			s.locks.unlock(id)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}

	// 提交:先写入再释放锁(defer),等待同一ID的事务一定能看到本次写入
	s.mu.Lock()
	for _, id := range t.order {
		s.books[id] = t.pending[id]
	}
	s.mu.Unlock()
	return nil
}

// acquire 在事务内获取id的锁(可重入)
func (s *Store) acquire(ctx context.Context, t *tx, id int64) error {
	if t.held[id] {
		return nil
	}
	if err := s.locks.lock(ctx, id); err != nil {
		return err
	}
	t.held[id] = true
	return nil
}

// stage 暂存写入
func (t *tx) stage(b *book.Book) {
	if _, ok := t.pending[b.ID]; !ok {
		t.order = append(t.order, b.ID)
	}
	t.pending[b.ID] = *b
}

// lookup 读取记录:事务内暂存优先
func (s *Store) lookup(t *tx, id int64) (book.Book, bool) {
	if t != nil {
		if b, ok := t.pending[id]; ok {
			return b, true
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[id]
	return b, ok
}

// FindByID 根据ID查找图书
func (s *Store) FindByID(ctx context.Context, id int64) (*book.Book, error) {
	t, _ := txFrom(ctx)
	b, ok := s.lookup(t, id)
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

// LockByID 锁定并读取图书
func (s *Store) LockByID(ctx context.Context, id int64) (*book.Book, error) {
	t, ok := txFrom(ctx)
	if !ok {
		return nil, errNoTransaction
	}
	if err := s.acquire(ctx, t, id); err != nil {
		return nil, err
	}
	b, found := s.lookup(t, id)
	if !found {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

// Create 插入新图书
// 检查与插入都在该ID的锁内完成,并发登记同一ID只有一个成功
func (s *Store) Create(ctx context.Context, b *book.Book) error {
	t, ok := txFrom(ctx)
	if !ok {
		return s.Transaction(ctx, func(ctx context.Context) error {
			return s.Create(ctx, b)
		})
	}
	if err := s.acquire(ctx, t, b.ID); err != nil {
		return err
	}
	if _, exists := s.lookup(t, b.ID); exists {
		return book.ErrDuplicateID
	}
	t.stage(b)
	return nil
}

// Save 写回已存在的图书
func (s *Store) Save(ctx context.Context, b *book.Book) error {
	t, ok := txFrom(ctx)
	if !ok {
		return s.Transaction(ctx, func(ctx context.Context) error {
			return s.Save(ctx, b)
		})
	}
	if err := s.acquire(ctx, t, b.ID); err != nil {
		return err
	}
	if _, exists := s.lookup(t, b.ID); !exists {
		return book.ErrBookNotFound
	}
	t.stage(b)
	return nil
}

// List 全量扫描(按ID升序)
func (s *Store) List(ctx context.Context) ([]*book.Book, error) {
	return s.scan(func(*book.Book) bool { return true }), nil
}

// Find 按条件扫描
func (s *Store) Find(ctx context.Context, q book.Query) ([]*book.Book, error) {
	return s.scan(q.Matches), nil
}

func (s *Store) scan(keep func(*book.Book) bool) []*book.Book {
	s.mu.RLock()
	out := make([]*book.Book, 0, len(s.books))
	for _, b := range s.books {
		b := b
		if keep(&b) {
			out = append(out, &b)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var (
	_ book.Repository = (*Store)(nil)
	_ book.Transactor = (*Store)(nil)
)
