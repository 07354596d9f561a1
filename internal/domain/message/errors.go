package message

import (
	"fmt"

	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

var (
	// ErrMissingInfo name或message为空
	ErrMissingInfo = apperrors.New(apperrors.ErrCodeInvalidParams, "Missing required information - please refer to documentation")

	// ErrInvalidPriority 优先级缺失或不在1-3之间
	ErrInvalidPriority = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid or missing Priority - please refer to documentation")

	// ErrNameExists name唯一约束冲突
	ErrNameExists = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Name exists")

	// ErrNameNotFound name不存在
	ErrNameNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Name not found")
)

// ErrNoPriorityMessages 指定优先级下没有留言
func ErrNoPriorityMessages(priority int) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeNotFound, fmt.Sprintf("No Priority %d messages found", priority))
}
