package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInsufficientStock, http.StatusBadRequest},
		{ErrCodeBookNotFound, http.StatusNotFound},
		{ErrCodeDuplicateID, http.StatusConflict},
		{ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
		{1001, http.StatusInternalServerError}, // 不在4xx/5xx范围
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "x").HTTPStatus())
		})
	}
}

func TestWithMessage(t *testing.T) {
	base := New(ErrCodeInsufficientStock, "库存不足")
	err := WithMessage(base, "第2条：库存不足")

	assert.Equal(t, ErrCodeInsufficientStock, err.Code)
	assert.Equal(t, "第2条：库存不足", err.Message)
	assert.True(t, errors.Is(err, base))
}

func TestGetAppError(t *testing.T) {
	t.Run("包装链中的AppError", func(t *testing.T) {
		base := New(ErrCodeBookNotFound, "图书不存在")
		wrapped := fmt.Errorf("sell: %w", base)

		assert.Same(t, base, GetAppError(wrapped))
		assert.True(t, IsAppError(wrapped))
	})

	t.Run("普通错误转为内部错误", func(t *testing.T) {
		raw := errors.New("connection refused")
		appErr := GetAppError(raw)

		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus())
		assert.ErrorIs(t, appErr, raw)
		assert.False(t, IsAppError(raw))
	})
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[40401] 图书不存在", New(ErrCodeBookNotFound, "图书不存在").Error())
	assert.Equal(t, "[50000] 查询失败: boom", Wrap(errors.New("boom"), "查询失败").Error())
}
