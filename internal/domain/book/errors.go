package book

import (
	apperrors "github.com/xiebiao/bookstore-inventory/pkg/errors"
)

// 图书领域错误定义
// 设计说明:
// 1. 四类失败:NotFound、DuplicateId、BadRequest、InsufficientStock
// 2. 调用方使用errors.Is判断,HTTP层由错误码推导状态码
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrDuplicateID 图书ID已存在
	ErrDuplicateID = apperrors.New(apperrors.ErrCodeDuplicateID, "相同ID的图书已存在,请使用补货接口增加库存或使用更新接口修改图书")

	// ErrIDMismatch 请求体中的ID与路径ID不一致(ID不可修改)
	ErrIDMismatch = apperrors.New(apperrors.ErrCodeIDMismatch, "图书ID不可修改")

	// ErrNegativeRestock 补货数量会导致库存为负
	ErrNegativeRestock = apperrors.New(apperrors.ErrCodeNegativeStock, "补货后库存不能为负数")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足,无法售出")

	// ErrTitleRequired 书名必填
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeBadRequest, "书名不能为空")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeBadRequest, "价格不能为负数")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeBadRequest, "库存不能为负数")

	// ErrInvalidQuantity 无效的售出数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeBadRequest, "售出数量不能为负数")

	// ErrCountOverflow 库存或累计售出超出可表示范围
	ErrCountOverflow = apperrors.New(apperrors.ErrCodeBadRequest, "数量超出范围")

	// ErrUnknownCategory 未知的图书分类
	ErrUnknownCategory = apperrors.New(apperrors.ErrCodeBadRequest, "未知的图书分类")
)
