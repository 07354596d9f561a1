package account

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/domain/account"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
	"github.com/xiebiao/booksapi/pkg/jwt"
	"github.com/xiebiao/booksapi/pkg/metrics"
)

// TxManager 事务执行器
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error, opts ...*sql.TxOptions) error
}

// RegisterUseCase 账号注册用例
// 账号和凭证在同一事务中插入,凭证失败时账号一并回滚
type RegisterUseCase struct {
	accountService account.Service
	repo           account.Repository
	tx             TxManager
	jwtManager     *jwt.Manager
	log            *zap.Logger
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(
	accountService account.Service,
	repo account.Repository,
	tx TxManager,
	jwtManager *jwt.Manager,
	log *zap.Logger,
) *RegisterUseCase {
	metrics.InitMetrics()
	return &RegisterUseCase{
		accountService: accountService,
		repo:           repo,
		tx:             tx,
		jwtManager:     jwtManager,
		log:            log.Named("register"),
	}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	// 1. 输入校验与角色分配
	acc, err := uc.accountService.NewAccount(account.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		return nil, err
	}

	// 2. 账号 + 凭证
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.repo.Create(txCtx, acc); err != nil {
			return err
		}
		cred, err := uc.accountService.NewCredential(acc.ID, req.Password)
		if err != nil {
			return err
		}
		return uc.repo.SaveCredential(txCtx, cred)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			err = apperrors.Storage(err)
		}
		uc.log.Warn("注册失败", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	// 3. 签发Token
	token, err := uc.jwtManager.Sign(acc.ID, acc.Role)
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.AccountsRegisteredTotal)
	uc.log.Info("账号已注册", zap.Int64("account_id", acc.ID), zap.Int("role", acc.Role))

	return &AuthResult{AccessToken: token, Account: acc}, nil
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Phone     string
	Password  string
}

// AuthResult 注册/登录结果
type AuthResult struct {
	AccessToken string
	Account     *account.Account
}
