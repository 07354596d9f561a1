package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是五位错误码，前三位即HTTP状态码（40400 → 404）
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，只记录日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，使预定义错误在Wrap之后仍可用errors.Is判断
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// HTTPStatus 由错误码推导HTTP状态码
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装底层错误（数据库、网络），对外只暴露通用提示
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WithCause 复制预定义错误并附加内部原因
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：前三位为HTTP状态码，后两位区分同一状态下的不同原因

const (
	// 服务端错误
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDataIntegrity = 50001 // 数据完整性被破坏（如ISBN重复出现）
	ErrCodeStorage       = 50002 // 存储层错误（连接、查询失败）

	// 认证授权
	ErrCodeUnauthorized = 40100 // 未携带Token
	ErrCodeInvalidToken = 40300 // Token无效、过期或已注销

	// 资源不存在
	ErrCodeNotFound = 40400

	// 客户端输入错误
	ErrCodeInvalidParams  = 40000 // 参数错误
	ErrCodeDuplicateEntry = 40009 // 唯一键冲突
	ErrCodeMismatch       = 40010 // 凭证不匹配
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal = New(ErrCodeInternal, "server error - contact support")
	ErrStorage  = New(ErrCodeStorage, "server error - contact support")

	ErrUnauthorized = New(ErrCodeUnauthorized, "Auth token is not supplied")
	ErrInvalidToken = New(ErrCodeInvalidToken, "Token is not valid")

	ErrMissingInfo = New(ErrCodeInvalidParams, "Missing required information")
)

// =========================================
// 辅助函数
// =========================================

// Storage 把底层错误归类为存储错误
func Storage(err error) *AppError {
	return ErrStorage.WithCause(err)
}

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsCode 判断错误链中是否包含指定错误码
func IsCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal.WithCause(err)
}
