// Package inventory 库存应用服务
//
// 设计说明:
// 1. 所有库存规则的唯一入口:登记、补货、更新、售出(单本/批量)、分类关键词查询
// 2. 写操作统一模式:Transaction → LockByID → 领域方法 → Save
//    同一ID的并发写串行执行,不同ID互不阻塞
// 3. 提交后的附加动作(缓存失效、事件发布)失败只记录日志,不影响已提交的结果
// 4. 每个操作创建一个Span,并记录操作结果指标
package inventory

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
	"github.com/xiebiao/bookstore-inventory/pkg/metrics"
	"github.com/xiebiao/bookstore-inventory/pkg/tracing"
)

const tracerName = "inventory"

// 指标中的操作名
const (
	opRegister  = "register"
	opRestock   = "restock"
	opUpdate    = "update"
	opSell      = "sell"
	opSellBatch = "sell_batch"
)

// Cache 图书记录缓存(读穿透)
// 实现必须返回记录副本
type Cache interface {
	// Get 未命中时返回(nil, false, nil)
	Get(ctx context.Context, id int64) (*book.Book, bool, error)
	Set(ctx context.Context, b *book.Book) error
	Invalidate(ctx context.Context, id int64) error
}

// EventPublisher 库存事件发布
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// Service 库存服务
type Service struct {
	repo       book.Repository
	tx         book.Transactor
	categories *book.CategoryTable
	cache      Cache
	events     EventPublisher
	metrics    *metrics.Metrics
	logger     *zap.Logger

	// fillMu 串行化缓存回填与缓存失效
	// epoch每次失效加一,回填前epoch变化说明读到的记录可能已过期,放弃回填
	fillMu sync.RWMutex
	epoch  uint64
}

// NewService 创建库存服务
// cache/events为nil时使用空实现,metrics可以为nil
func NewService(
	repo book.Repository,
	tx book.Transactor,
	categories *book.CategoryTable,
	cache Cache,
	events EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	if events == nil {
		events = NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		tx:         tx,
		categories: categories,
		cache:      cache,
		events:     events,
		metrics:    m,
		logger:     logger.Named("inventory"),
	}
}

// Categories 返回注入的分类表
func (s *Service) Categories() *book.CategoryTable {
	return s.categories
}

// mutate 在单个事务内锁定id并执行fn,fn修改后的记录被写回
// 返回提交后的记录副本
func (s *Service) mutate(ctx context.Context, id int64, fn func(b *book.Book) error) (*book.Book, error) {
	var committed *book.Book
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		b, err := s.repo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(b); err != nil {
			return err
		}
		if err := s.repo.Save(ctx, b); err != nil {
			return err
		}
		committed = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}

// finish 结束Span并记录操作指标
//
//	defer s.finish(span, opRestock, time.Now(), &err)
func (s *Service) finish(span trace.Span, op string, start time.Time, errp *error) {
	tracing.EndSpan(span, *errp)
	s.metrics.ObserveOperation(op, *errp, time.Since(start))
}

// afterCommit 提交后的附加动作
func (s *Service) afterCommit(ctx context.Context, routingKey string, b *book.Book, quantity int) {
	s.fillMu.Lock()
	s.epoch++
	err := s.cache.Invalidate(ctx, b.ID)
	s.fillMu.Unlock()
	if err != nil {
		s.logger.Warn("缓存失效失败",
			zap.Int64("book_id", b.ID),
			zap.Error(err),
		)
	}

	event := newEvent(routingKey, b, s.categories.Name(b.Category), quantity)
	if err := s.events.Publish(ctx, routingKey, event); err != nil {
		s.logger.Warn("库存事件发布失败",
			zap.String("routing_key", routingKey),
			zap.Int64("book_id", b.ID),
			zap.Error(err),
		)
	}
}

// cacheEpoch 当前失效序号
func (s *Service) cacheEpoch() uint64 {
	s.fillMu.RLock()
	defer s.fillMu.RUnlock()
	return s.epoch
}

// fillCache 读取期间没有发生失效时才回填
func (s *Service) fillCache(ctx context.Context, b *book.Book, since uint64) {
	s.fillMu.RLock()
	defer s.fillMu.RUnlock()
	if s.epoch != since {
		return
	}
	if err := s.cache.Set(ctx, b); err != nil {
		s.logger.Warn("写入缓存失败", zap.Int64("book_id", b.ID), zap.Error(err))
	}
}

// isNotFound 判断是否为图书不存在
func isNotFound(err error) bool {
	return errors.Is(err, book.ErrBookNotFound)
}

// NopCache 不缓存
type NopCache struct{}

func (NopCache) Get(context.Context, int64) (*book.Book, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, *book.Book) error                { return nil }
func (NopCache) Invalidate(context.Context, int64) error              { return nil }

// NopPublisher 丢弃事件
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }
