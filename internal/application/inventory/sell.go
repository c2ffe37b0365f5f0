package inventory

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
	"github.com/xiebiao/bookstore-inventory/pkg/tracing"
)

// SellEntry 批量售出中的一条
type SellEntry struct {
	BookID   int64
	Quantity int
}

// BatchError 批量售出在第Index条失败
// Index之前的条目已提交,之后的条目未执行
type BatchError struct {
	Index  int
	BookID int64
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("批量售出第%d条(图书%d)失败: %v", e.Index+1, e.BookID, e.Err)
}

// Unwrap 支持errors.Is(err, book.ErrInsufficientStock)
func (e *BatchError) Unwrap() error {
	return e.Err
}

// SellOne 售出一本
// 库存为0时返回ErrInsufficientStock,记录不变
func (s *Service) SellOne(ctx context.Context, id int64) (_ *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SellOne")
	span.SetAttributes(attribute.Int64("book.id", id))
	defer s.finish(span, opSell, time.Now(), &err)

	return s.sell(ctx, id, 1)
}

// SellBatch 按顺序售出多条
//
// 注意:不是全有或全无。每条在独立事务中提交,第k条失败时:
//   - 0..k-1条已提交,不会回滚
//   - k+1..末尾不会执行
//
// 返回的*BatchError标明失败位置,调用方据此判断批次执行到哪里
func (s *Service) SellBatch(ctx context.Context, entries []SellEntry) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SellBatch")
	span.SetAttributes(attribute.Int("batch.size", len(entries)))
	defer s.finish(span, opSellBatch, time.Now(), &err)

	for i, entry := range entries {
		if err := s.sellEntry(ctx, i, entry); err != nil {
			s.logger.Info("批量售出中止",
				zap.Int("index", i),
				zap.Int64("book_id", entry.BookID),
				zap.Int("committed", i),
				zap.Error(err),
			)
			return &BatchError{Index: i, BookID: entry.BookID, Err: err}
		}
	}
	return nil
}

// sellEntry 批量中的单条(子Span)
func (s *Service) sellEntry(ctx context.Context, index int, entry SellEntry) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SellBatch.entry")
	span.SetAttributes(
		attribute.Int("batch.index", index),
		attribute.Int64("book.id", entry.BookID),
		attribute.Int("quantity", entry.Quantity),
	)
	defer func() {
		tracing.EndSpan(span, err)
		s.metrics.ObserveBatchEntry(err)
	}()

	_, err = s.sell(ctx, entry.BookID, entry.Quantity)
	return err
}

// sell 在id的事务内扣减库存、累加售出
func (s *Service) sell(ctx context.Context, id int64, quantity int) (*book.Book, error) {
	if quantity < 0 {
		return nil, book.ErrInvalidQuantity
	}

	b, err := s.mutate(ctx, id, func(b *book.Book) error {
		return b.Sell(quantity)
	})
	if err != nil {
		return nil, err
	}

	if quantity > 0 {
		s.metrics.AddSold(s.categories.Name(b.Category), quantity)
		s.afterCommit(ctx, RoutingKeySold, b, quantity)
	}
	return b, nil
}
