package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryTable_RoundTrip(t *testing.T) {
	table := NewCategoryTable()

	for code, name := range table.Names() {
		c, err := table.Parse(name)
		require.NoError(t, err)
		assert.Equal(t, code, c.Code())

		byCode, err := table.FromCode(code)
		require.NoError(t, err)
		assert.Equal(t, c, byCode)
		assert.Equal(t, name, table.Name(c))
		assert.True(t, table.Valid(c))
	}
}

func TestCategoryTable_StableCodes(t *testing.T) {
	table := NewCategoryTable()

	assert.Equal(t, []string{
		"LITERATURE", "NONFICTION", "ACTION", "THRILLER", "TECHNOLOGY",
		"DRAMA", "POETRY", "MEDIA", "OTHERS",
	}, table.Names())
	assert.Equal(t, 5, CategoryDrama.Code())
	assert.Equal(t, 8, CategoryOthers.Code())
}

func TestCategoryTable_Parse(t *testing.T) {
	table := NewCategoryTable()

	c, err := table.Parse("  drama ")
	require.NoError(t, err)
	assert.Equal(t, CategoryDrama, c)

	_, err = table.Parse("COOKING")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = table.Parse("")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCategoryTable_Unknown(t *testing.T) {
	table := NewCategoryTable()

	_, err := table.FromCode(9)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.False(t, table.Valid(Category(-1)))
	assert.Empty(t, table.Name(Category(42)))
}

func TestCategoryTable_NamesIsCopy(t *testing.T) {
	table := NewCategoryTable()

	names := table.Names()
	names[0] = "CHANGED"
	assert.Equal(t, "LITERATURE", table.Names()[0])
}
