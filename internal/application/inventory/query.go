package inventory

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
	"github.com/xiebiao/bookstore-inventory/pkg/tracing"
)

// GetByID 查询单本图书,不存在返回ErrBookNotFound
// 先读缓存,未命中时读存储并回填
// 读取存储期间有写操作提交时不回填,避免旧记录覆盖失效结果
func (s *Service) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetByID")
	span.SetAttributes(attribute.Int64("book.id", id))
	defer span.End()

	since := s.cacheEpoch()
	if b, ok, err := s.cache.Get(ctx, id); err != nil {
		s.logger.Warn("读取缓存失败", zap.Int64("book_id", id), zap.Error(err))
	} else {
		s.metrics.ObserveCache(ok)
		if ok {
			return b, nil
		}
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.fillCache(ctx, b, since)
	return b, nil
}

// ListAll 全部图书(按ID升序,调用方不应依赖顺序)
func (s *Service) ListAll(ctx context.Context) ([]*book.Book, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListAll")
	defer span.End()

	return s.repo.List(ctx)
}

// GetStockCount 当前库存
// 图书不存在时返回0而不是错误
func (s *Service) GetStockCount(ctx context.Context, id int64) (int, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return b.Stock, nil
}

// SearchByCategoryKeyword 分类相同且关键词(不区分大小写)出现在ID、书名或作者中的图书
// 空关键词匹配该分类下全部图书
func (s *Service) SearchByCategoryKeyword(ctx context.Context, keyword string, category book.Category) ([]*book.Book, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SearchByCategoryKeyword")
	span.SetAttributes(
		attribute.String("keyword", keyword),
		attribute.Int("category", category.Code()),
	)
	defer span.End()

	return s.find(ctx, book.Query{Category: category, Keyword: keyword})
}

// CountSoldByCategoryKeyword 匹配图书中Sold>0部分的累计售出之和
// 没有匹配时返回0;合计超出int范围时返回ErrCountOverflow
func (s *Service) CountSoldByCategoryKeyword(ctx context.Context, keyword string, category book.Category) (int, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CountSoldByCategoryKeyword")
	span.SetAttributes(
		attribute.String("keyword", keyword),
		attribute.Int("category", category.Code()),
	)
	defer span.End()

	books, err := s.find(ctx, book.Query{Category: category, Keyword: keyword, SoldOnly: true})
	if err != nil {
		return 0, err
	}

	total := 0
	for _, b := range books {
		if b.Sold > math.MaxInt-total {
			return 0, book.ErrCountOverflow
		}
		total += b.Sold
	}
	return total, nil
}

// find 存储扫描后再用同一个匹配函数过滤
// 存储层的LIKE与匹配函数可能在排序规则上有差异,以匹配函数为准
func (s *Service) find(ctx context.Context, q book.Query) ([]*book.Book, error) {
	if !s.categories.Valid(q.Category) {
		return nil, book.ErrUnknownCategory
	}

	candidates, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	matched := make([]*book.Book, 0, len(candidates))
	for _, b := range candidates {
		if q.Matches(b) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}
