package book

import (
	"math"
	"strings"
	"time"
)

// Book 图书库存记录(聚合根)
// DDD设计说明:
// 1. ID由调用方在登记时指定(如ISBN数字),登记后不可变更,也是存储主键
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. Stock是当前可售数量,Sold是历史累计售出数量(只增不减)
type Book struct {
	ID        int64
	Title     string   // 书名(必填)
	Author    string   // 作者(可选)
	Category  Category // 分类
	Price     int64    // 价格(单位:分,1元=100分)
	Stock     int      // 当前库存
	Sold      int      // 累计售出
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
// 业务规则:书名非空,价格、库存非负;Sold固定为0
func NewBook(id int64, title, author string, category Category, price int64, stock int) (*Book, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	now := time.Now()
	return &Book{
		ID:        id,
		Title:     title,
		Author:    author,
		Category:  category,
		Price:     price,
		Stock:     stock,
		Sold:      0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Restock 补货(领域行为)
// 业务规则:delta可以为负(盘点修正),但结果库存不能为负,也不能超出int范围
func (b *Book) Restock(delta int) error {
	if delta > 0 && b.Stock > math.MaxInt-delta {
		return ErrCountOverflow
	}
	if b.Stock+delta < 0 {
		return ErrNegativeRestock
	}
	b.Stock += delta
	b.UpdatedAt = time.Now()
	return nil
}

// Sell 售出(领域行为)
// 业务规则:
// - 数量不能为负,0视为空操作
// - 库存扣减与售出累加同时生效,库存不足时记录保持不变
// - 累计售出超出int范围时拒绝,Sold只增不减
func (b *Book) Sell(quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if b.Stock-quantity < 0 {
		return ErrInsufficientStock
	}
	if quantity > math.MaxInt-b.Sold {
		return ErrCountOverflow
	}
	b.Stock -= quantity
	b.Sold += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// Metadata 可整体替换的描述信息
// Stock也在其中:更新接口可以直接设置库存(区别于Restock的增量语义)
type Metadata struct {
	Title    string
	Author   string
	Category Category
	Price    int64
	Stock    int
}

// ApplyMetadata 整体替换描述信息(领域行为)
// ID与Sold保持不变
func (b *Book) ApplyMetadata(m Metadata) error {
	if m.Price < 0 {
		return ErrInvalidPrice
	}
	if m.Stock < 0 {
		return ErrInvalidStock
	}
	b.Title = m.Title
	b.Author = m.Author
	b.Category = m.Category
	b.Price = m.Price
	b.Stock = m.Stock
	b.UpdatedAt = time.Now()
	return nil
}

// Clone 返回记录副本
func (b *Book) Clone() *Book {
	c := *b
	return &c
}
