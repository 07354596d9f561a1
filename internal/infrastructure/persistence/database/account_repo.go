package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/booksapi/internal/domain/account"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// accountRepository 账号仓储实现(account + account_credential两张表)
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建账号仓储
func NewAccountRepository(db *gorm.DB) account.Repository {
	return &accountRepository{db: db}
}

// Create 插入账号并回填account_id
func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	model := &AccountModel{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Username:    a.Username,
		Email:       a.Email,
		Phone:       a.Phone,
		AccountRole: a.Role,
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return classifyAccountInsert(err)
	}

	a.ID = model.AccountID
	a.CreatedAt = model.CreateDate
	return nil
}

// classifyAccountInsert 用户名冲突 → Username exists,邮箱冲突 → Email exists
func classifyAccountInsert(err error) error {
	hint, dup := uniqueViolation(err)
	if dup {
		switch {
		case strings.Contains(hint, "username"):
			return account.ErrUsernameExists.WithCause(err)
		case strings.Contains(hint, "email"):
			return account.ErrEmailExists.WithCause(err)
		}
	}
	return account.ErrAccountInsert.WithCause(err)
}

// SaveCredential 插入凭证
func (r *accountRepository) SaveCredential(ctx context.Context, c *account.Credential) error {
	model := &CredentialModel{
		AccountID:  c.AccountID,
		SaltedHash: c.SaltedHash,
		Salt:       c.Salt,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return account.ErrCredentialInsert.WithCause(err)
	}
	return nil
}

// FindByEmail account JOIN account_credential WHERE email = ?
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, *account.Credential, error) {
	db := conn(ctx, r.db)

	var model AccountModel
	if err := db.Where("email = ?", email).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, account.ErrUserNotFound
		}
		return nil, nil, apperrors.Storage(err)
	}

	var cred CredentialModel
	if err := db.Where("account_id = ?", model.AccountID).Take(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 没有凭证的账号无法登录
			return nil, nil, account.ErrUserNotFound
		}
		return nil, nil, apperrors.Storage(err)
	}

	return toAccountEntity(&model), &account.Credential{
		AccountID:  cred.AccountID,
		SaltedHash: cred.SaltedHash,
		Salt:       cred.Salt,
	}, nil
}

// FindByID 按account_id查询
func (r *accountRepository) FindByID(ctx context.Context, id int64) (*account.Account, error) {
	var model AccountModel
	if err := conn(ctx, r.db).Where("account_id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrUserNotFound
		}
		return nil, apperrors.Storage(err)
	}
	return toAccountEntity(&model), nil
}

// List 全部账号
func (r *accountRepository) List(ctx context.Context) ([]*account.Account, error) {
	var models []AccountModel
	if err := conn(ctx, r.db).Order("account_id").Find(&models).Error; err != nil {
		return nil, apperrors.Storage(err)
	}

	accounts := make([]*account.Account, len(models))
	for i := range models {
		accounts[i] = toAccountEntity(&models[i])
	}
	return accounts, nil
}

// UpdateDetails UPDATE account SET firstname, lastname, username, phone WHERE account_id = ?
func (r *accountRepository) UpdateDetails(ctx context.Context, id int64, d account.Details) (*account.Account, error) {
	db := conn(ctx, r.db)

	result := db.Model(&AccountModel{}).
		Where("account_id = ?", id).
		Updates(map[string]interface{}{
			"firstname": d.FirstName,
			"lastname":  d.LastName,
			"username":  d.Username,
			"phone":     d.Phone,
		})
	if result.Error != nil {
		if hint, dup := uniqueViolation(result.Error); dup && strings.Contains(hint, "username") {
			return nil, account.ErrUsernameExists.WithCause(result.Error)
		}
		return nil, apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, account.ErrNameNotFound
	}

	var model AccountModel
	if err := db.Where("account_id = ?", id).Take(&model).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return toAccountEntity(&model), nil
}

func toAccountEntity(m *AccountModel) *account.Account {
	return &account.Account{
		ID:        m.AccountID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Username:  m.Username,
		Email:     m.Email,
		Phone:     m.Phone,
		Role:      m.AccountRole,
		CreatedAt: m.CreateDate,
	}
}
