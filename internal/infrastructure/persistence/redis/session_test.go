package redis

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/infrastructure/config"
)

func TestNewTokenStoreDisabled(t *testing.T) {
	store, cleanup, err := NewTokenStore(&config.Config{}, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	assert.IsType(t, NopStore{}, store)
	assert.NoError(t, store.Revoke(ctx, "token", time.Hour))

	revoked, err := store.IsRevoked(ctx, "token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBlacklistKeyHidesToken(t *testing.T) {
	key := blacklistKey("header.payload.signature")
	assert.NotContains(t, key, "payload")
	assert.Len(t, key, len("blacklist:")+64)
	assert.Equal(t, key, blacklistKey("header.payload.signature"))
}

// TestSessionStore 需要本地Redis:BOOKSAPI_TEST_REDIS_ADDR=localhost:6379
func TestSessionStore(t *testing.T) {
	addr := os.Getenv("BOOKSAPI_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BOOKSAPI_TEST_REDIS_ADDR未设置,跳过Redis集成测试")
	}

	cfg := &config.Config{Redis: config.RedisConfig{
		Enabled:     true,
		Host:        addr[:strings.LastIndex(addr, ":")],
		DialTimeout: 2 * time.Second,
	}}
	cfg.Redis.Port, _ = strconv.Atoi(addr[strings.LastIndex(addr, ":")+1:])

	store, cleanup, err := NewTokenStore(cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	token := "test-token-" + time.Now().Format(time.RFC3339Nano)

	revoked, err := store.IsRevoked(ctx, token)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, token, time.Minute))
	revoked, err = store.IsRevoked(ctx, token)
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, store.SaveSession(ctx, 42, map[string]interface{}{"email": "ada@example.com"}, time.Minute))
	session, err := store.(*SessionStore).GetSession(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", session["email"])
	require.NoError(t, store.DeleteSession(ctx, 42))
}
