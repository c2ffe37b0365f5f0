package dto

import (
	"fmt"

	"github.com/xiebiao/bookstore-inventory/internal/application/inventory"
	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
)

// BookRequest HTTP图书请求(登记、更新共用)
// 设计说明:
// 1. 没有sold_count字段:累计售出只能通过售出接口改变
// 2. 登记时id必填;更新时id可省略,携带时必须与路径ID一致
// 3. 数值范围(价格、库存非负)由领域层校验,返回统一的错误码
type BookRequest struct {
	ID         *int64 `json:"id" example:"9787020024759"`
	Title      string `json:"title" binding:"required,max=200" example:"活着"`
	Author     string `json:"author" binding:"max=100" example:"余华"`
	Category   string `json:"category" binding:"required" example:"LITERATURE"`
	Price      int64  `json:"price" example:"3500"` // 价格(分),35.00元
	StockCount int    `json:"stock_count" example:"10"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID         int64  `json:"id" example:"9787020024759"`
	Title      string `json:"title" example:"活着"`
	Author     string `json:"author" example:"余华"`
	Category   string `json:"category" example:"LITERATURE"`
	Price      int64  `json:"price" example:"3500"`       // 价格(分)
	PriceYuan  string `json:"price_yuan" example:"35.00"` // 价格(元),方便前端显示
	StockCount int    `json:"stock_count" example:"10"`
	SoldCount  int    `json:"sold_count" example:"2"`
}

// SellRequest 批量售出中的一条
// 数量为负由服务层按条目报错(之前的条目已提交)
type SellRequest struct {
	BookID   int64 `json:"book_id" example:"9787020024759"`
	Quantity int   `json:"quantity" example:"2"`
}

// SearchRequest 分类+关键词查询参数
type SearchRequest struct {
	Keyword  string `form:"keyword" binding:"max=100" example:"余华"`
	Category string `form:"category" binding:"required" example:"LITERATURE"`
}

// =========================================
// 转换函数(字段逐一对应,不使用反射拷贝)
// =========================================

// ToRegisterInput 请求 → 登记输入
// 调用方已确认ID非nil
func ToRegisterInput(req *BookRequest, category book.Category) inventory.RegisterInput {
	return inventory.RegisterInput{
		ID:       *req.ID,
		Title:    req.Title,
		Author:   req.Author,
		Category: category,
		Price:    req.Price,
		Stock:    req.StockCount,
	}
}

// ToUpdateInput 请求 → 更新输入
func ToUpdateInput(req *BookRequest, category book.Category) inventory.UpdateInput {
	return inventory.UpdateInput{
		ID:       req.ID,
		Title:    req.Title,
		Author:   req.Author,
		Category: category,
		Price:    req.Price,
		Stock:    req.StockCount,
	}
}

// ToSellEntries 请求 → 批量售出条目(保持顺序)
func ToSellEntries(reqs []SellRequest) []inventory.SellEntry {
	entries := make([]inventory.SellEntry, len(reqs))
	for i, r := range reqs {
		entries[i] = inventory.SellEntry{BookID: r.BookID, Quantity: r.Quantity}
	}
	return entries
}

// ToBookResponse 图书 → 响应
func ToBookResponse(b *book.Book, categories *book.CategoryTable) *BookResponse {
	return &BookResponse{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Category:   categories.Name(b.Category),
		Price:      b.Price,
		PriceYuan:  FormatPriceYuan(b.Price),
		StockCount: b.Stock,
		SoldCount:  b.Sold,
	}
}

// ToBookResponses 图书列表 → 响应列表(空列表返回[]而不是null)
func ToBookResponses(books []*book.Book, categories *book.CategoryTable) []*BookResponse {
	out := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, ToBookResponse(b, categories))
	}
	return out
}

// FormatPriceYuan 格式化价格(分→元)
// 例如:5900分 → "59.00"
func FormatPriceYuan(priceFen int64) string {
	sign := ""
	if priceFen < 0 {
		sign = "-"
		priceFen = -priceFen
	}
	return fmt.Sprintf("%s%d.%02d", sign, priceFen/100, priceFen%100)
}
