package book

import (
	"context"
)

// Repository 图书记录存储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(MySQL、内存)
// 2. 写操作必须在Transactor.Transaction内执行,并先通过LockByID锁定记录
// 3. 读操作不加排他锁,但每条记录都是完整快照
type Repository interface {
	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id int64) (*Book, error)

	// LockByID 锁定并读取图书(事务内使用)
	// 锁持续到事务结束,同一ID的其他写操作必须等待
	LockByID(ctx context.Context, id int64) (*Book, error)

	// Create 插入新图书,ID已存在返回ErrDuplicateID
	Create(ctx context.Context, book *Book) error

	// Save 写回已存在的图书(全字段覆盖)
	Save(ctx context.Context, book *Book) error

	// List 全量扫描
	List(ctx context.Context) ([]*Book, error)

	// Find 按条件扫描
	// 实现可以返回条件的超集,调用方会再用Query.Matches过滤
	Find(ctx context.Context, q Query) ([]*Book, error)
}

// Transactor 事务边界
// fn返回error时回滚,返回nil时提交;事务内的锁在fn返回后释放
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Query 分类+关键词扫描条件
type Query struct {
	Category Category
	Keyword  string
	SoldOnly bool // 只返回Sold>0的图书
}

// Matches 判断图书是否满足扫描条件
func (q Query) Matches(b *Book) bool {
	if q.SoldOnly && b.Sold <= 0 {
		return false
	}
	return Matches(b, q.Keyword, q.Category)
}
