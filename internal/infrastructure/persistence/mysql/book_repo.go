package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-inventory/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换(手写转换函数,字段一一对应)
// 3. 处理数据库特定的错误(如主键重复),转换为业务错误
type bookRepository struct {
	db         *gorm.DB
	categories *book.CategoryTable
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB, categories *book.CategoryTable) book.Repository {
	return &bookRepository{db: db, categories: categories}
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id int64) (*book.Book, error) {
	var model BookModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return r.toEntity(&model)
}

// LockByID 悲观锁查询图书
// SELECT ... FOR UPDATE锁定行,必须通过dbFrom(ctx)参与事务
func (r *bookRepository) LockByID(ctx context.Context, id int64) (*book.Book, error) {
	var model BookModel
	err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return r.toEntity(&model)
}

// Create 创建图书
// 唯一性由主键保证(而非应用层SELECT再INSERT),并发登记同一ID只有一个成功
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toModel(b)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrDuplicateID
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Save 更新图书全部可变字段
// 调用方已通过LockByID确认记录存在
func (r *bookRepository) Save(ctx context.Context, b *book.Book) error {
	model := toModel(b)
	err := dbFrom(ctx, r.db).
		Model(&BookModel{ID: b.ID}).
		Select("title", "author", "category", "price", "stock", "sold", "updated_at").
		Updates(model).Error
	if err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// List 查询全部图书
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := dbFrom(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	return r.toEntities(models)
}

// Find 按分类+关键词查询
// SQL:
//
//	SELECT * FROM books
//	WHERE category = ?
//	  AND (CAST(id AS CHAR) LIKE ? OR LOWER(title) LIKE ? OR LOWER(author) LIKE ?)
//	  [AND sold > 0]
func (r *bookRepository) Find(ctx context.Context, q book.Query) ([]*book.Book, error) {
	query := dbFrom(ctx, r.db).Model(&BookModel{}).Where("category = ?", q.Category.Code())

	if q.Keyword != "" {
		keyword := "%" + escapeLike(strings.ToLower(q.Keyword)) + "%"
		query = query.Where("(CAST(id AS CHAR) LIKE ? OR LOWER(title) LIKE ? OR LOWER(author) LIKE ?)",
			keyword, keyword, keyword)
	}
	if q.SoldOnly {
		query = query.Where("sold > 0")
	}

	var models []BookModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "按分类和关键词查询图书失败")
	}
	return r.toEntities(models)
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toModel 领域实体 → GORM模型
func toModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Category:  b.Category.Code(),
		Price:     b.Price,
		Stock:     b.Stock,
		Sold:      b.Sold,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// toEntity GORM模型 → 领域实体
func (r *bookRepository) toEntity(model *BookModel) (*book.Book, error) {
	category, err := r.categories.FromCode(model.Category)
	if err != nil {
		return nil, apperrors.Wrapf(err, "图书%d的分类编码%d无法识别", model.ID, model.Category)
	}
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		Category:  category,
		Price:     model.Price,
		Stock:     model.Stock,
		Sold:      model.Sold,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func (r *bookRepository) toEntities(models []BookModel) ([]*book.Book, error) {
	books := make([]*book.Book, 0, len(models))
	for i := range models {
		b, err := r.toEntity(&models[i])
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}
