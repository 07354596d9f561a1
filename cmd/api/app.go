package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appaccount "github.com/xiebiao/booksapi/internal/application/account"
	"github.com/xiebiao/booksapi/internal/domain/account"
	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/booksapi/internal/interface/http/middleware"
	"github.com/xiebiao/booksapi/pkg/credential"
	"github.com/xiebiao/booksapi/pkg/jwt"
)

// App 组装完成的服务
type App struct {
	server *http.Server
}

func newApp(server *http.Server) *App {
	return &App{server: server}
}

// provideServer 按server配置包装Gin引擎
func provideServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expire)
}

// provideHasher 按auth.hash_scheme选择密码哈希
func provideHasher(cfg *config.Config) (credential.Hasher, error) {
	return credential.NewHasher(cfg.Auth.HashScheme, cfg.Auth.SaltSize)
}

// provideRolePolicy 新账号的角色分配
func provideRolePolicy(cfg *config.Config) account.RolePolicy {
	if cfg.Auth.RandomRole {
		return account.RandomRole()
	}
	return account.FixedRole(cfg.Auth.DefaultRole)
}

func provideSessionStore(store redis.TokenStore) appaccount.SessionStore {
	return store
}

func provideRevocationList(store redis.TokenStore) middleware.RevocationList {
	return store
}
