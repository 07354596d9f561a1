package account

import (
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// 账号领域错误定义
var (
	ErrMissingInfo = apperrors.ErrMissingInfo

	// ErrUsernameExists 用户名唯一约束冲突
	ErrUsernameExists = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Username exists")

	// ErrEmailExists 邮箱唯一约束冲突
	ErrEmailExists = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Email exists")

	// ErrAccountInsert 插入账号的其他失败
	ErrAccountInsert = apperrors.New(apperrors.ErrCodeInvalidParams, "other error on insert account, see detail")

	// ErrCredentialInsert 插入凭证失败
	ErrCredentialInsert = apperrors.New(apperrors.ErrCodeInvalidParams, "other error on insert pwd, see detail")

	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeNotFound, "User not found")

	// ErrCredentialsMismatch 密码错误
	ErrCredentialsMismatch = apperrors.New(apperrors.ErrCodeMismatch, "Credentials did not match")

	// ErrNameNotFound 更新资料时id不存在
	ErrNameNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Name not found")

	// ErrIDMismatch 路径id与Token中的id不一致
	ErrIDMismatch = apperrors.New(apperrors.ErrCodeMismatch, "Credentials do not match for this user.")
)
