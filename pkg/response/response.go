package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// Message 通用消息体
// 错误响应统一为 {"message": "..."}
type Message struct {
	Message string `json:"message"`
}

// AuthFailure 认证失败响应体（带success字段）
type AuthFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Pagination 分页信息
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// OK 200响应
func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Created 201响应
func Created(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

// Entry 返回 {"entry": ...}
func Entry(c *gin.Context, status int, entry interface{}) {
	c.JSON(status, gin.H{"entry": entry})
}

// Entries 返回 {"entries": [...]}
func Entries(c *gin.Context, entries interface{}) {
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	// 5xx错误记录内部原因，客户端只看到通用提示
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		loggerFrom(c).Error("request failed",
			zap.Int("code", appErr.Code),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(status, Message{Message: appErr.Message})
}

// ErrorWithStatus 自定义状态码和消息
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, Message{Message: message})
}

// AbortAuth 中止请求并返回认证失败
func AbortAuth(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus(), AuthFailure{
		Success: false,
		Message: appErr.Message,
	})
}

// =========================================
// 日志注入
// =========================================

const loggerKey = "logger"

// SetLogger 把请求级logger放入Context（由日志中间件调用）
func SetLogger(c *gin.Context, log *zap.Logger) {
	c.Set(loggerKey, log)
}

func loggerFrom(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*zap.Logger); ok {
			return log
		}
	}
	return zap.L()
}
