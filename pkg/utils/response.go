package utils

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"issue-tracker/pkg/errors"
)

// Response 统一响应结构
type Response struct {
	Success    bool             `json:"success"`
	Data       interface{}      `json:"data,omitempty"`
	Error      *errors.AppError `json:"error,omitempty"`
	Message    string           `json:"message,omitempty"`
	Pagination *Pagination      `json:"pagination,omitempty"`
}

// Pagination 分页信息
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// Message 仅返回消息的成功响应 (如删除操作)
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
	})
}

// PageSuccess 分页成功响应
func PageSuccess(c *gin.Context, data interface{}, total, page, limit int) {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// Error 错误响应
// AppError 按其 Status/Code 返回; 其它错误一律 500, 不泄露内部细节
func Error(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		c.JSON(appErr.Status, Response{
			Success: false,
			Error:   appErr,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Error:   errors.ErrInternal,
	})
}

// ValidationError 请求参数错误响应, details 来自 binding 校验
func ValidationError(c *gin.Context, err error) {
	Error(c, errors.ErrValidation.WithDetails(FormatValidationError(err)))
}
