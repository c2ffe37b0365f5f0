package inventory

import (
	"time"

	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
)

// 库存事件路由键(Topic Exchange,下游可以用book.*订阅全部)
const (
	RoutingKeyRegistered = "book.registered"
	RoutingKeyRestocked  = "book.restocked"
	RoutingKeyUpdated    = "book.updated"
	RoutingKeySold       = "book.sold"
)

// Event 库存变更事件
// 携带提交后的库存快照,下游不需要回查
type Event struct {
	Type       string    `json:"type"`
	BookID     int64     `json:"book_id"`
	Category   string    `json:"category"`
	Quantity   int       `json:"quantity"` // 补货增量或售出数量,登记/更新为0
	StockCount int       `json:"stock_count"`
	SoldCount  int       `json:"sold_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newEvent(routingKey string, b *book.Book, category string, quantity int) Event {
	return Event{
		Type:       routingKey,
		BookID:     b.ID,
		Category:   category,
		Quantity:   quantity,
		StockCount: b.Stock,
		SoldCount:  b.Sold,
		OccurredAt: time.Now(),
	}
}
