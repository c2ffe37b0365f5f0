package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookstore-inventory/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码，方便客户端区分同一HTTP状态下的不同原因
// 2. HTTP状态码由业务错误码推导（40401 → 404），网关和监控可以直接按状态码统计
// 3. Message是用户友好的提示信息
// 4. Data是业务数据，成功时返回，失败时省略
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（HTTP 201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	b, err := h.svc.GetByID(ctx, id)
//	if err != nil {
//	    response.Error(c, logger, err)
//	    return
//	}
//
// 5xx错误的内部原因只写日志，不返回给客户端
func Error(c *gin.Context, logger *zap.Logger, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	if logger != nil {
		fields := []zap.Field{
			zap.Int("code", appErr.Code),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("请求处理失败", fields...)
		} else {
			logger.Debug("请求被拒绝", fields...)
		}
	}

	c.JSON(status, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// Abort 中间件中终止请求并返回错误
func Abort(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus(), Response{
		Code:    err.Code,
		Message: err.Message,
	})
}
