package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-inventory/internal/application/inventory"
	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
	"github.com/xiebiao/bookstore-inventory/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-inventory/pkg/errors"
	"github.com/xiebiao/bookstore-inventory/pkg/response"
)

// BookHandler 图书库存HTTP处理器
// 只负责参数解析、调用库存服务、组装响应,不包含业务规则
type BookHandler struct {
	svc        *inventory.Service
	categories *book.CategoryTable
	logger     *zap.Logger
}

// NewBookHandler 创建图书处理器
func NewBookHandler(svc *inventory.Service, logger *zap.Logger) *BookHandler {
	return &BookHandler{
		svc:        svc,
		categories: svc.Categories(),
		logger:     logger.Named("http"),
	}
}

// RegisterBook 登记新图书
// @Summary      登记新图书
// @Description  登记一本新书,ID由调用方指定;累计售出固定为0
// @Tags         图书库存
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "ID已存在"
// @Router       /api/add-new-book [post]
func (h *BookHandler) RegisterBook(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperrors.WithMessage(apperrors.ErrBindError, "参数错误: "+err.Error()))
		return
	}
	if req.ID == nil {
		response.Error(c, h.logger, apperrors.WithMessage(apperrors.ErrInvalidParams, "图书ID不能为空"))
		return
	}

	category, err := h.categories.Parse(req.Category)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	b, err := h.svc.Register(c.Request.Context(), dto.ToRegisterInput(&req, category))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Created(c, dto.ToBookResponse(b, h.categories))
}

// Restock 补货
// @Summary      补货
// @Description  库存增加quantityToAdd(可以为负,用于盘点修正,结果不能为负)
// @Tags         图书库存
// @Produce      json
// @Param        id            path int true "图书ID"
// @Param        quantityToAdd path int true "增加数量"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误或库存将为负"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/add-book/{id}/{quantityToAdd} [put]
func (h *BookHandler) Restock(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	delta, err := strconv.Atoi(c.Param("quantityToAdd"))
	if err != nil {
		response.Error(c, h.logger, apperrors.WithMessage(apperrors.ErrInvalidParams, "补货数量必须是整数"))
		return
	}

	b, err := h.svc.Restock(c.Request.Context(), id, delta)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Success(c, dto.ToBookResponse(b, h.categories))
}

// GetBook 查询图书
// @Summary      查询图书
// @Tags         图书库存
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/book/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	b, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Success(c, dto.ToBookResponse(b, h.categories))
}

// ListBooks 全部图书
// @Summary      全部图书
// @Tags         图书库存
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/book-list [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Success(c, dto.ToBookResponses(books, h.categories))
}

// GetStockCount 查询库存数量
// @Summary      查询库存数量
// @Description  图书不存在时返回0
// @Tags         图书库存
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=int}
// @Router       /api/number-of-books/{id} [get]
func (h *BookHandler) GetStockCount(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	n, err := h.svc.GetStockCount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Success(c, n)
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  整体替换书名、作者、分类、价格、库存;累计售出保持不变
// @Tags         图书库存
// @Accept       json
// @Produce      json
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息(id可省略,携带时必须与路径一致)"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误或ID不一致"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperrors.WithMessage(apperrors.ErrBindError, "参数错误: "+err.Error()))
		return
	}

	// ID不一致先于分类解析报告
	if req.ID != nil && *req.ID != id {
		response.Error(c, h.logger, book.ErrIDMismatch)
		return
	}

	category, err := h.categories.Parse(req.Category)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	b, err := h.svc.UpdateMetadata(c.Request.Context(), id, dto.ToUpdateInput(&req, category))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Success(c, dto.ToBookResponse(b, h.categories))
}

// SellBook 售出一本
// @Summary      售出一本
// @Tags         图书库存
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "库存不足"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/sell-book/{id} [put]
func (h *BookHandler) SellBook(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	b, err := h.svc.SellOne(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Success(c, dto.ToBookResponse(b, h.categories))
}

// SellBooks 批量售出
// @Summary      批量售出
// @Description  按顺序逐条售出,每条独立提交;某条失败时之前的条目保持已提交,之后的条目不执行
// @Tags         图书库存
// @Accept       json
// @Produce      json
// @Param        request body []dto.SellRequest true "售出列表"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "某条库存不足或数量为负"
// @Failure      404 {object} response.Response "某条图书不存在"
// @Router       /api/sell-books [put]
func (h *BookHandler) SellBooks(c *gin.Context) {
	var req []dto.SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperrors.WithMessage(apperrors.ErrBindError, "参数错误: "+err.Error()))
		return
	}

	err := h.svc.SellBatch(c.Request.Context(), dto.ToSellEntries(req))
	if err != nil {
		var batchErr *inventory.BatchError
		if errors.As(err, &batchErr) {
			cause := apperrors.GetAppError(batchErr.Err)
			err = apperrors.WithMessage(cause, fmt.Sprintf("第%d条(图书%d)售出失败: %s,之前的%d条已提交",
				batchErr.Index+1, batchErr.BookID, cause.Message, batchErr.Index))
		}
		response.Error(c, h.logger, err)
		return
	}

	response.Success(c, nil)
}

// SearchBooks 按分类+关键词查询
// @Summary      按分类和关键词查询
// @Description  关键词(不区分大小写)匹配ID、书名或作者的子串;关键词为空时返回该分类全部图书
// @Tags         图书库存
// @Produce      json
// @Param        keyword  query string false "关键词"
// @Param        category query string true  "分类" Enums(LITERATURE,NONFICTION,ACTION,THRILLER,TECHNOLOGY,DRAMA,POETRY,MEDIA,OTHERS)
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "分类无效"
// @Router       /api/books [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	req, category, ok := h.bindSearch(c)
	if !ok {
		return
	}

	books, err := h.svc.SearchByCategoryKeyword(c.Request.Context(), req.Keyword, category)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Success(c, dto.ToBookResponses(books, h.categories))
}

// CountSold 按分类+关键词统计售出
// @Summary      统计售出数量
// @Description  匹配条件与查询接口相同,返回累计售出之和;没有匹配时为0
// @Tags         图书库存
// @Produce      json
// @Param        keyword  query string false "关键词"
// @Param        category query string true  "分类" Enums(LITERATURE,NONFICTION,ACTION,THRILLER,TECHNOLOGY,DRAMA,POETRY,MEDIA,OTHERS)
// @Success      200 {object} response.Response{data=int}
// @Failure      400 {object} response.Response "分类无效"
// @Router       /api/number-of-books [get]
func (h *BookHandler) CountSold(c *gin.Context) {
	req, category, ok := h.bindSearch(c)
	if !ok {
		return
	}

	n, err := h.svc.CountSoldByCategoryKeyword(c.Request.Context(), req.Keyword, category)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Success(c, n)
}

// =========================================
// 辅助函数
// =========================================

// pathID 解析路径中的图书ID,失败时已写入响应
func (h *BookHandler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, h.logger, apperrors.WithMessage(apperrors.ErrInvalidParams, "图书ID必须是整数"))
		return 0, false
	}
	return id, true
}

// bindSearch 绑定查询参数并解析分类,失败时已写入响应
func (h *BookHandler) bindSearch(c *gin.Context) (*dto.SearchRequest, book.Category, bool) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, h.logger, apperrors.WithMessage(apperrors.ErrBindError, "参数错误: "+err.Error()))
		return nil, 0, false
	}

	category, err := h.categories.Parse(req.Category)
	if err != nil {
		response.Error(c, h.logger, err)
		return nil, 0, false
	}
	return &req, category, true
}
