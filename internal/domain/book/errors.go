package book

import (
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// 图书领域错误定义
// Message沿用既有客户端依赖的英文提示
var (
	// ErrInvalidStar 星级不是1-5的整数
	ErrInvalidStar = apperrors.New(apperrors.ErrCodeInvalidParams, "starInserted must be a number from 1-5")

	// ErrBookNotFound ISBN不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Book not found")

	// ErrMultipleISBN 同一ISBN查到多行,唯一约束被破坏
	ErrMultipleISBN = apperrors.New(apperrors.ErrCodeDataIntegrity, "Server error - more than 1 ISBN found")

	// ErrNoBooksWithTitle 标题搜索无结果
	ErrNoBooksWithTitle = apperrors.New(apperrors.ErrCodeNotFound, "No books found with that title")

	// ErrNoBooks 书库为空
	ErrNoBooks = apperrors.New(apperrors.ErrCodeNotFound, "No books found in database")

	// ErrNameExists 新增图书时id或isbn13重复
	ErrNameExists = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Name exists")

	// ErrNameNotFound 按id删除时不存在
	ErrNameNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Name not found")

	// ErrInvalidISBN isbn13必须是13位数字
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "isbn13 must be a 13 digit number")

	// ErrMissingTitle 新增图书缺少标题
	ErrMissingTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "Missing required information")
)
