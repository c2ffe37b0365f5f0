package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-inventory/internal/application/inventory"
	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-inventory/pkg/errors"
)

// BookCache 图书记录缓存
// 设计说明：
// 1. 每本图书一个Hash：book:{id} → title/author/category/price/stock/sold/...
// 2. HSET与EXPIRE放在同一个MULTI中，不会留下没有过期时间的key
// 3. 分类存整数编码，读取时经CategoryTable还原
// 4. 写操作提交后由服务层调用Invalidate删除key，下一次读取回填
type BookCache struct {
	client     *redis.Client
	categories *book.CategoryTable
	ttl        time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, categories *book.CategoryTable, ttl time.Duration) *BookCache {
	return &BookCache{client: client, categories: categories, ttl: ttl}
}

func bookKey(id int64) string {
	return fmt.Sprintf("book:%d", id)
}

// Get 读取缓存，未命中返回(nil, false, nil)
func (c *BookCache) Get(ctx context.Context, id int64) (*book.Book, bool, error) {
	fields, err := c.client.HGetAll(ctx, bookKey(id)).Result()
	if err != nil {
		return nil, false, apperrors.Wrap(err, "读取图书缓存失败")
	}
	if len(fields) == 0 {
		return nil, false, nil
	}

	b, err := decodeBook(id, fields, c.categories)
	if err != nil {
		// 格式不对的缓存直接丢弃，按未命中处理；删除失败时返回错误，由调用方记录
		if delErr := c.client.Del(ctx, bookKey(id)).Err(); delErr != nil {
			return nil, false, apperrors.Wrap(delErr, "删除损坏的图书缓存失败")
		}
		return nil, false, nil
	}
	return b, true, nil
}

// Set 写入缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	key := bookKey(b.ID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, encodeBook(b))
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "写入图书缓存失败")
	}
	return nil
}

// Invalidate 删除缓存
func (c *BookCache) Invalidate(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		return apperrors.Wrap(err, "删除图书缓存失败")
	}
	return nil
}

// encodeBook 图书 → Hash字段
func encodeBook(b *book.Book) map[string]interface{} {
	return map[string]interface{}{
		"title":      b.Title,
		"author":     b.Author,
		"category":   b.Category.Code(),
		"price":      b.Price,
		"stock":      b.Stock,
		"sold":       b.Sold,
		"created_at": b.CreatedAt.UnixNano(),
		"updated_at": b.UpdatedAt.UnixNano(),
	}
}

// decodeBook Hash字段 → 图书
// 缺字段或格式错误时返回错误
func decodeBook(id int64, fields map[string]string, categories *book.CategoryTable) (*book.Book, error) {
	ints := make(map[string]int64, 6)
	for _, name := range []string{"category", "price", "stock", "sold", "created_at", "updated_at"} {
		raw, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("缓存缺少字段%s", name)
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("缓存字段%s格式错误: %w", name, err)
		}
		ints[name] = v
	}

	title, ok := fields["title"]
	if !ok {
		return nil, fmt.Errorf("缓存缺少字段title")
	}

	category, err := categories.FromCode(int(ints["category"]))
	if err != nil {
		return nil, err
	}

	return &book.Book{
		ID:        id,
		Title:     title,
		Author:    fields["author"],
		Category:  category,
		Price:     ints["price"],
		Stock:     int(ints["stock"]),
		Sold:      int(ints["sold"]),
		CreatedAt: time.Unix(0, ints["created_at"]),
		UpdatedAt: time.Unix(0, ints["updated_at"]),
	}, nil
}

var _ inventory.Cache = (*BookCache)(nil)
