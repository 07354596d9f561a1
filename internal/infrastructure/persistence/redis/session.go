package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// SessionStore 会话存储
// Key设计:
//   - session:{account_id} 登录会话(Hash)
//   - blacklist:{sha256(token)} 已注销的Token,过期时间等于Token剩余有效期
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(accountID int64) string {
	return fmt.Sprintf("session:%d", accountID)
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "blacklist:" + hex.EncodeToString(sum[:])
}

// SaveSession 保存登录会话
func (s *SessionStore) SaveSession(ctx context.Context, accountID int64, data map[string]interface{}, ttl time.Duration) error {
	key := sessionKey(accountID)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, data)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// GetSession 获取会话
func (s *SessionStore) GetSession(ctx context.Context, accountID int64) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(accountID)).Result()
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if len(result) == 0 {
		return nil, apperrors.ErrInvalidToken
	}
	return result, nil
}

// DeleteSession 删除会话(登出)
func (s *SessionStore) DeleteSession(ctx context.Context, accountID int64) error {
	if err := s.client.Del(ctx, sessionKey(accountID)).Err(); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// Revoke 将Token加入黑名单
func (s *SessionStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// 已过期的Token无需拉黑
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// IsRevoked 检查Token是否在黑名单中
func (s *SessionStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.Storage(err)
	}
	return exists > 0, nil
}

// NopStore Redis未启用时使用:不记录会话,Token不可注销
type NopStore struct{}

func (NopStore) SaveSession(context.Context, int64, map[string]interface{}, time.Duration) error {
	return nil
}

func (NopStore) DeleteSession(context.Context, int64) error { return nil }

func (NopStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (NopStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
