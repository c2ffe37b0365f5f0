package inventory

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
	"github.com/xiebiao/bookstore-inventory/pkg/tracing"
)

// RegisterInput 登记新图书的输入
// 没有Sold字段:新图书的累计售出固定为0
type RegisterInput struct {
	ID       int64
	Title    string
	Author   string
	Category book.Category
	Price    int64 // 分
	Stock    int
}

// Register 登记新图书
// 业务规则:
// 1. 书名非空,价格、库存非负,分类必须在分类表中
// 2. ID已存在返回ErrDuplicateID,已有记录保持不变
// 3. 存在性检查与插入是原子的(MySQL依赖主键,内存存储依赖按ID的锁)
func (s *Service) Register(ctx context.Context, in RegisterInput) (_ *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Register")
	span.SetAttributes(attribute.Int64("book.id", in.ID))
	defer s.finish(span, opRegister, time.Now(), &err)

	if !s.categories.Valid(in.Category) {
		return nil, book.ErrUnknownCategory
	}

	b, err := book.NewBook(in.ID, in.Title, in.Author, in.Category, in.Price, in.Stock)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("图书已登记",
		zap.Int64("book_id", b.ID),
		zap.String("category", s.categories.Name(b.Category)),
		zap.Int("stock", b.Stock),
	)
	s.afterCommit(ctx, RoutingKeyRegistered, b, 0)
	return b, nil
}
