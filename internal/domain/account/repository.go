package account

import (
	"context"
)

// Repository 账号仓储接口
type Repository interface {
	// Create 插入账号并回填ID和CreatedAt
	// 用户名冲突返回ErrUsernameExists,邮箱冲突返回ErrEmailExists,其他失败返回ErrAccountInsert
	Create(ctx context.Context, account *Account) error

	// SaveCredential 插入凭证,失败返回ErrCredentialInsert
	SaveCredential(ctx context.Context, credential *Credential) error

	// FindByEmail 查询账号及其凭证,不存在返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*Account, *Credential, error)

	// FindByID 不存在返回ErrUserNotFound
	FindByID(ctx context.Context, id int64) (*Account, error)

	// List 全部账号
	List(ctx context.Context) ([]*Account, error)

	// UpdateDetails 更新资料并返回更新后的账号,不存在返回ErrNameNotFound
	UpdateDetails(ctx context.Context, id int64, details Details) (*Account, error)
}
