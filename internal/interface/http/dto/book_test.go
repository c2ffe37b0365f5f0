package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
)

func TestFormatPriceYuan(t *testing.T) {
	tests := map[int64]string{
		0:      "0.00",
		5:      "0.05",
		5900:   "59.00",
		123456: "1234.56",
		-250:   "-2.50",
	}
	for fen, want := range tests {
		assert.Equal(t, want, FormatPriceYuan(fen))
	}
}

func TestToBookResponse(t *testing.T) {
	categories := book.NewCategoryTable()
	b := &book.Book{ID: 7, Title: "Hamlet", Author: "Shakespeare", Category: book.CategoryDrama, Price: 1999, Stock: 3, Sold: 4}

	resp := ToBookResponse(b, categories)
	assert.Equal(t, &BookResponse{
		ID: 7, Title: "Hamlet", Author: "Shakespeare", Category: "DRAMA",
		Price: 1999, PriceYuan: "19.99", StockCount: 3, SoldCount: 4,
	}, resp)

	assert.NotNil(t, ToBookResponses(nil, categories))
	assert.Empty(t, ToBookResponses(nil, categories))
}

func TestToInputs(t *testing.T) {
	id := int64(11)
	req := &BookRequest{ID: &id, Title: "x", Author: "y", Price: 100, StockCount: 2}

	reg := ToRegisterInput(req, book.CategoryMedia)
	assert.Equal(t, int64(11), reg.ID)
	assert.Equal(t, 2, reg.Stock)
	assert.Equal(t, book.CategoryMedia, reg.Category)

	upd := ToUpdateInput(req, book.CategoryMedia)
	assert.Equal(t, &id, upd.ID)
	assert.Equal(t, int64(100), upd.Price)

	entries := ToSellEntries([]SellRequest{{BookID: 1, Quantity: 2}, {BookID: 3, Quantity: 0}})
	assert.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[1].BookID)
}
