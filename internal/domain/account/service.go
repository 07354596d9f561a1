package account

import (
	"context"

	"github.com/xiebiao/booksapi/pkg/credential"
)

// Service 账号领域服务
// 注册的两次插入需要同一事务,由application层编排;这里只负责规则和凭证
type Service interface {
	// NewAccount 校验注册输入并分配角色
	NewAccount(reg Registration) (*Account, error)

	// NewCredential 生成盐并计算密码哈希
	NewCredential(accountID int64, password string) (*Credential, error)

	// Authenticate 按邮箱查找账号并校验密码
	Authenticate(ctx context.Context, email, password string) (*Account, error)

	// Get 按id查询
	Get(ctx context.Context, id int64) (*Account, error)

	// List 全部账号,为空返回ErrUserNotFound
	List(ctx context.Context) ([]*Account, error)

	// UpdateDetails 校验并更新资料
	UpdateDetails(ctx context.Context, id int64, details Details) (*Account, error)
}

type service struct {
	repo   Repository
	hasher credential.Hasher
	role   RolePolicy
}

// NewService 创建账号服务
func NewService(repo Repository, hasher credential.Hasher, role RolePolicy) Service {
	return &service{repo: repo, hasher: hasher, role: role}
}

func (s *service) NewAccount(reg Registration) (*Account, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	return &Account{
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Username:  reg.Username,
		Email:     reg.Email,
		Phone:     reg.Phone,
		Role:      s.role(),
	}, nil
}

func (s *service) NewCredential(accountID int64, password string) (*Credential, error) {
	saltedHash, salt, err := s.hasher.Hash(password)
	if err != nil {
		return nil, ErrCredentialInsert.WithCause(err)
	}
	return &Credential{AccountID: accountID, SaltedHash: saltedHash, Salt: salt}, nil
}

// Authenticate 用户登录
// 业务规则:
// 1. 邮箱必须存在(ErrUserNotFound)
// 2. 密码必须与凭证匹配(ErrCredentialsMismatch)
func (s *service) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	if anyBlank(email, password) {
		return nil, ErrMissingInfo
	}

	acc, cred, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(password, cred.SaltedHash, cred.Salt) {
		return nil, ErrCredentialsMismatch
	}
	return acc, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, ErrUserNotFound
	}
	return accounts, nil
}

func (s *service) UpdateDetails(ctx context.Context, id int64, details Details) (*Account, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateDetails(ctx, id, details)
}
