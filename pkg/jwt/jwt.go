package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// DefaultExpire Token默认有效期（14天）
const DefaultExpire = 14 * 24 * time.Hour

// Manager JWT签发与校验
type Manager struct {
	secret string
	expire time.Duration
	now    func() time.Time
}

// NewManager 创建JWT管理器，expire<=0时使用14天
func NewManager(secret string, expire time.Duration) *Manager {
	if expire <= 0 {
		expire = DefaultExpire
	}
	return &Manager{
		secret: secret,
		expire: expire,
		now:    time.Now,
	}
}

// Claims 自定义JWT Claims
// 只携带账号ID与角色，其他资料按需查库
type Claims struct {
	ID   int64 `json:"id"`
	Role int   `json:"role"`
	jwt.RegisteredClaims
}

// Sign 签发Access Token
func (m *Manager) Sign(id int64, role int) (string, error) {
	now := m.now()
	claims := Claims{
		ID:   id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "booksapi",
			Subject:   strconv.FormatInt(id, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", apperrors.Wrap(err, "sign token failed")
	}
	return signed, nil
}

// Verify 解析并校验Token
// 签名不符、算法不符、已过期统一返回ErrInvalidToken
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, apperrors.ErrInvalidToken.WithCause(err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.ErrInvalidToken
}

// Expire 返回Token有效期
func (m *Manager) Expire() time.Duration {
	return m.expire
}
