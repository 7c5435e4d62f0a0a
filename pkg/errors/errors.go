package errors

import (
	"fmt"
	"net/http"
)

// 客户端可见的稳定错误码
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_SERVER_ERROR"
)

// AppError 应用错误
// Status/Code 决定 HTTP 状态码与错误码; Err 仅用于日志, 不序列化到响应
type AppError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新错误
func New(status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails 返回携带详细信息的错误副本
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithMessage 返回携带具体消息的错误副本
func (e *AppError) WithMessage(message string) *AppError {
	clone := *e
	clone.Message = message
	return &clone
}

// 预定义错误
var (
	ErrUnauthorized       = New(http.StatusUnauthorized, CodeUnauthorized, "Authentication required")
	ErrForbidden          = New(http.StatusForbidden, CodeForbidden, "You do not have permission to perform this action")
	ErrNotFound           = New(http.StatusNotFound, CodeNotFound, "Resource not found")
	ErrValidation         = New(http.StatusBadRequest, CodeValidationError, "Invalid request")
	ErrDuplicateEmail     = New(http.StatusBadRequest, CodeDuplicateEmail, "Email already exists")
	ErrInvalidCredentials = New(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password")
	ErrInvalidToken       = New(http.StatusUnauthorized, CodeUnauthorized, "Invalid token")
	ErrTokenExpired       = New(http.StatusUnauthorized, CodeUnauthorized, "Token expired")
	ErrInternal           = New(http.StatusInternalServerError, CodeInternalError, "Something went wrong")

	// ErrRecordNotFound repository 层哨兵错误, service 层重新包装成具体实体的消息
	ErrRecordNotFound = New(http.StatusNotFound, CodeNotFound, "Record not found")
)

// InvalidTransition 构造 INVALID_TRANSITION 错误, 携带尝试的 from/to 状态
func InvalidTransition(from, to string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("Cannot change status from %s to %s", from, to),
		Details: map[string]interface{}{"from": from, "to": to},
	}
}
