package account

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/domain/account"
	"github.com/xiebiao/booksapi/pkg/jwt"
	"github.com/xiebiao/booksapi/pkg/metrics"
)

// SessionStore 会话记录与Token注销(Redis未启用时为空实现)
type SessionStore interface {
	SaveSession(ctx context.Context, accountID int64, data map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, accountID int64) error
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 账号登录用例
type LoginUseCase struct {
	accountService account.Service
	jwtManager     *jwt.Manager
	sessions       SessionStore
	log            *zap.Logger
	now            func() time.Time
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	accountService account.Service,
	jwtManager *jwt.Manager,
	sessions SessionStore,
	log *zap.Logger,
) *LoginUseCase {
	metrics.InitMetrics()
	return &LoginUseCase{
		accountService: accountService,
		jwtManager:     jwtManager,
		sessions:       sessions,
		log:            log.Named("login"),
		now:            time.Now,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	// 1. 校验邮箱密码
	acc, err := uc.accountService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		metrics.IncCounterVec(metrics.LoginsTotal, map[string]string{"result": "failure"})
		return nil, err
	}

	// 2. 签发Token
	token, err := uc.jwtManager.Sign(acc.ID, acc.Role)
	if err != nil {
		return nil, err
	}

	// 3. 会话记录,有效期与Token一致
	session := map[string]interface{}{
		"account_id": acc.ID,
		"email":      acc.Email,
		"role":       acc.Role,
		"login_at":   uc.now().Unix(),
		"ip":         req.ClientIP,
	}
	if err := uc.sessions.SaveSession(ctx, acc.ID, session, uc.jwtManager.Expire()); err != nil {
		// 会话记录失败不影响登录
		uc.log.Warn("保存会话失败", zap.Int64("account_id", acc.ID), zap.Error(err))
	}

	metrics.IncCounterVec(metrics.LoginsTotal, map[string]string{"result": "success"})
	return &AuthResult{AccessToken: token, Account: acc}, nil
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LogoutUseCase 登出用例
type LogoutUseCase struct {
	sessions SessionStore
	now      func() time.Time
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessions SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions, now: time.Now}
}

// Execute 删除会话,并把Token加入黑名单直到其过期
func (uc *LogoutUseCase) Execute(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	if err := uc.sessions.DeleteSession(ctx, accountID); err != nil {
		return err
	}
	return uc.sessions.Revoke(ctx, token, expiresAt.Sub(uc.now()))
}
