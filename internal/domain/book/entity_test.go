package book

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		price   int64
		stock   int
		wantErr error
	}{
		{name: "合法", title: "活着", price: 3500, stock: 10},
		{name: "零价格零库存", title: "活着", price: 0, stock: 0},
		{name: "书名为空", title: "  ", price: 3500, stock: 10, wantErr: ErrTitleRequired},
		{name: "负价格", title: "活着", price: -1, stock: 10, wantErr: ErrInvalidPrice},
		{name: "负库存", title: "活着", price: 3500, stock: -1, wantErr: ErrInvalidStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBook(1, tt.title, "余华", CategoryLiterature, tt.price, tt.stock)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, b.Sold)
			assert.Equal(t, tt.stock, b.Stock)
		})
	}
}

func TestBook_Restock(t *testing.T) {
	b := &Book{ID: 1, Title: "活着", Stock: 3}

	require.NoError(t, b.Restock(5))
	assert.Equal(t, 8, b.Stock)

	// 盘点修正:负增量只要结果非负即可
	require.NoError(t, b.Restock(-8))
	assert.Equal(t, 0, b.Stock)

	err := b.Restock(-1)
	assert.ErrorIs(t, err, ErrNegativeRestock)
	assert.Equal(t, 0, b.Stock)
}

func TestBook_Sell(t *testing.T) {
	b := &Book{ID: 1, Title: "活着", Stock: 2}

	require.NoError(t, b.Sell(1))
	require.NoError(t, b.Sell(1))
	assert.Equal(t, 0, b.Stock)
	assert.Equal(t, 2, b.Sold)

	err := b.Sell(1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 0, b.Stock)
	assert.Equal(t, 2, b.Sold)

	// 数量0为空操作
	require.NoError(t, b.Sell(0))
	assert.Equal(t, 2, b.Sold)

	assert.ErrorIs(t, b.Sell(-1), ErrInvalidQuantity)
}

func TestBook_Overflow(t *testing.T) {
	tests := []struct {
		name    string
		book    Book
		op      func(b *Book) error
		wantErr error
	}{
		{
			name:    "补货超出上限",
			book:    Book{Stock: 10},
			op:      func(b *Book) error { return b.Restock(math.MaxInt) },
			wantErr: ErrCountOverflow,
		},
		{
			name: "补货恰好到上限",
			book: Book{Stock: 10},
			op:   func(b *Book) error { return b.Restock(math.MaxInt - 10) },
		},
		{
			name:    "累计售出超出上限",
			book:    Book{Stock: 1, Sold: math.MaxInt},
			op:      func(b *Book) error { return b.Sell(1) },
			wantErr: ErrCountOverflow,
		},
		{
			name: "累计售出恰好到上限",
			book: Book{Stock: math.MaxInt, Sold: 0},
			op:   func(b *Book) error { return b.Sell(math.MaxInt) },
		},
		{
			name:    "上限时库存不足优先",
			book:    Book{Stock: 0, Sold: math.MaxInt},
			op:      func(b *Book) error { return b.Sell(1) },
			wantErr: ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.book
			err := tt.op(&b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.book.Stock, b.Stock, "失败时库存不变")
				assert.Equal(t, tt.book.Sold, b.Sold, "失败时累计售出不变")
				return
			}
			require.NoError(t, err)
			assert.GreaterOrEqual(t, b.Stock, 0)
			assert.GreaterOrEqual(t, b.Sold, tt.book.Sold)
		})
	}
}

func TestBook_ApplyMetadata(t *testing.T) {
	b := &Book{ID: 5, Title: "旧书名", Category: CategoryDrama, Price: 100, Stock: 3, Sold: 7}

	err := b.ApplyMetadata(Metadata{
		Title:    "新书名",
		Author:   "新作者",
		Category: CategoryPoetry,
		Price:    2500,
		Stock:    12,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), b.ID)
	assert.Equal(t, "新书名", b.Title)
	assert.Equal(t, CategoryPoetry, b.Category)
	assert.Equal(t, 12, b.Stock)
	assert.Equal(t, 7, b.Sold, "Sold保持原值")

	before := *b
	assert.ErrorIs(t, b.ApplyMetadata(Metadata{Title: "x", Price: -1}), ErrInvalidPrice)
	assert.ErrorIs(t, b.ApplyMetadata(Metadata{Title: "x", Stock: -1}), ErrInvalidStock)
	assert.Equal(t, before, *b)
}

func TestBook_Clone(t *testing.T) {
	b := &Book{ID: 1, Title: "活着", Stock: 1}
	c := b.Clone()
	c.Stock = 99

	assert.Equal(t, 1, b.Stock)
}
