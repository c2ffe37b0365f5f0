package inventory

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
	"github.com/xiebiao/bookstore-inventory/pkg/tracing"
)

// UpdateInput 更新图书的输入
// ID可选:非nil时必须与目标ID一致
type UpdateInput struct {
	ID       *int64
	Title    string
	Author   string
	Category book.Category
	Price    int64
	Stock    int
}

// UpdateMetadata 整体替换书名、作者、分类、价格和库存
// 业务规则:
// 1. 输入携带的ID与目标ID不一致返回ErrIDMismatch(先于查找,存储不变)
// 2. ID保持为目标ID,Sold保持原值
// 3. Stock直接取输入值(区别于Restock的增量语义)
func (s *Service) UpdateMetadata(ctx context.Context, id int64, in UpdateInput) (_ *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateMetadata")
	span.SetAttributes(attribute.Int64("book.id", id))
	defer s.finish(span, opUpdate, time.Now(), &err)

	if in.ID != nil && *in.ID != id {
		return nil, book.ErrIDMismatch
	}
	if !s.categories.Valid(in.Category) {
		return nil, book.ErrUnknownCategory
	}

	b, err := s.mutate(ctx, id, func(b *book.Book) error {
		return b.ApplyMetadata(book.Metadata{
			Title:    in.Title,
			Author:   in.Author,
			Category: in.Category,
			Price:    in.Price,
			Stock:    in.Stock,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("图书已更新",
		zap.Int64("book_id", id),
		zap.Int("stock", b.Stock),
	)
	s.afterCommit(ctx, RoutingKeyUpdated, b, 0)
	return b, nil
}
