package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/domain/account"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
	"github.com/xiebiao/booksapi/pkg/jwt"
	"github.com/xiebiao/booksapi/pkg/response"
)

const (
	claimsKey = "claims"
	tokenKey  = "token"
)

// RevocationList 已注销Token查询(由Redis黑名单实现)
type RevocationList interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从x-access-token或Authorization提取Token,可带"Bearer "前缀
// 2. 校验签名与过期时间
// 3. 检查黑名单
// 4. 把Claims注入Context
type AuthMiddleware struct {
	jwtManager  *jwt.Manager
	revocations RevocationList
	log         *zap.Logger
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, revocations RevocationList, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:  jwtManager,
		revocations: revocations,
		log:         log.Named("auth"),
	}
}

// CheckToken 要求有效Token
// 缺失 → 401,无效/过期/已注销 → 403
func (m *AuthMiddleware) CheckToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.AbortAuth(c, apperrors.ErrUnauthorized)
			return
		}

		claims, err := m.jwtManager.Verify(token)
		if err != nil {
			response.AbortAuth(c, err)
			return
		}

		revoked, err := m.revocations.IsRevoked(c.Request.Context(), token)
		if err != nil {
			m.log.Error("查询Token黑名单失败", zap.Error(err))
			response.Error(c, err)
			c.Abort()
			return
		}
		if revoked {
			response.AbortAuth(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(claimsKey, claims)
		c.Set(tokenKey, token)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	token := c.GetHeader("x-access-token")
	if token == "" {
		token = c.GetHeader("Authorization")
	}
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

// CheckParamsIDToJWTID 路径中的:id必须等于Token中的id
// 必须放在CheckToken之后
func CheckParamsIDToJWTID() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if !ok || err != nil || id != claims.ID {
			response.Error(c, account.ErrIDMismatch)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaims 取出CheckToken注入的Claims
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// GetToken 取出当前请求使用的原始Token
func GetToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
