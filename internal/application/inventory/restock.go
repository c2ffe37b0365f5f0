package inventory

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
	"github.com/xiebiao/bookstore-inventory/pkg/tracing"
)

// Restock 补货:Stock += delta
// delta为负用于盘点修正,结果库存为负时返回ErrNegativeRestock
func (s *Service) Restock(ctx context.Context, id int64, delta int) (_ *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Restock")
	span.SetAttributes(
		attribute.Int64("book.id", id),
		attribute.Int("delta", delta),
	)
	defer s.finish(span, opRestock, time.Now(), &err)

	b, err := s.mutate(ctx, id, func(b *book.Book) error {
		return b.Restock(delta)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("图书已补货",
		zap.Int64("book_id", id),
		zap.Int("delta", delta),
		zap.Int("stock", b.Stock),
	)
	s.afterCommit(ctx, RoutingKeyRestocked, b, delta)
	return b, nil
}
