package book

import (
	"strconv"
	"strings"
)

// Matches 判断图书是否命中分类+关键词条件
// 规则:
// 1. 分类必须相等
// 2. 关键词(忽略大小写)是ID文本、书名、作者之一的子串
// 3. 空关键词命中该分类下的所有图书
func Matches(b *Book, keyword string, category Category) bool {
	if b == nil || b.Category != category {
		return false
	}
	kw := strings.ToLower(keyword)
	return strings.Contains(strconv.FormatInt(b.ID, 10), kw) ||
		strings.Contains(strings.ToLower(b.Title), kw) ||
		strings.Contains(strings.ToLower(b.Author), kw)
}
