package book

import "strings"

// Category 图书分类
// 设计说明:
// 1. 分类是封闭枚举,底层值即存储用的整数编码(0-8,不可变更)
// 2. 名称↔分类、编码↔分类的双向映射由CategoryTable提供
// 3. CategoryTable启动时构建一次,通过依赖注入传递,不使用包级可变map
type Category int

const (
	CategoryLiterature Category = 0 // 文学
	CategoryNonfiction Category = 1 // 非虚构
	CategoryAction     Category = 2 // 动作
	CategoryThriller   Category = 3 // 惊悚
	CategoryTechnology Category = 4 // 科技
	CategoryDrama      Category = 5 // 戏剧
	CategoryPoetry     Category = 6 // 诗歌
	CategoryMedia      Category = 7 // 传媒
	CategoryOthers     Category = 8 // 其他
)

// Code 存储/查询使用的整数编码
func (c Category) Code() int {
	return int(c)
}

// CategoryTable 分类查找表(只读)
type CategoryTable struct {
	byName map[string]Category
	byCode map[int]Category
	names  map[Category]string
	order  []Category
}

// NewCategoryTable 构建分类查找表
// 调用方在启动时构建一次并注入到需要的组件中
func NewCategoryTable() *CategoryTable {
	entries := []struct {
		category Category
		name     string
	}{
		{CategoryLiterature, "LITERATURE"},
		{CategoryNonfiction, "NONFICTION"},
		{CategoryAction, "ACTION"},
		{CategoryThriller, "THRILLER"},
		{CategoryTechnology, "TECHNOLOGY"},
		{CategoryDrama, "DRAMA"},
		{CategoryPoetry, "POETRY"},
		{CategoryMedia, "MEDIA"},
		{CategoryOthers, "OTHERS"},
	}

	t := &CategoryTable{
		byName: make(map[string]Category, len(entries)),
		byCode: make(map[int]Category, len(entries)),
		names:  make(map[Category]string, len(entries)),
		order:  make([]Category, 0, len(entries)),
	}
	for _, e := range entries {
		t.byName[e.name] = e.category
		t.byCode[e.category.Code()] = e.category
		t.names[e.category] = e.name
		t.order = append(t.order, e.category)
	}
	return t
}

// Parse 按名称查找分类(忽略大小写与首尾空白)
func (t *CategoryTable) Parse(name string) (Category, error) {
	c, ok := t.byName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, ErrUnknownCategory
	}
	return c, nil
}

// FromCode 按整数编码查找分类
func (t *CategoryTable) FromCode(code int) (Category, error) {
	c, ok := t.byCode[code]
	if !ok {
		return 0, ErrUnknownCategory
	}
	return c, nil
}

// Name 分类名称,未知分类返回空字符串
func (t *CategoryTable) Name(c Category) string {
	return t.names[c]
}

// Valid 判断分类是否属于枚举
func (t *CategoryTable) Valid(c Category) bool {
	_, ok := t.names[c]
	return ok
}

// Names 按编码顺序返回全部分类名称
func (t *CategoryTable) Names() []string {
	out := make([]string, len(t.order))
	for i, c := range t.order {
		out[i] = t.names[c]
	}
	return out
}
