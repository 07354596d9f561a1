//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后执行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	appaccount "github.com/xiebiao/booksapi/internal/application/account"
	appbook "github.com/xiebiao/booksapi/internal/application/book"
	appmessage "github.com/xiebiao/booksapi/internal/application/message"
	"github.com/xiebiao/booksapi/internal/domain/account"
	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/internal/domain/message"
	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	"github.com/xiebiao/booksapi/internal/infrastructure/events"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/database"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/booksapi/internal/interface/http/handler"
	"github.com/xiebiao/booksapi/internal/interface/http/middleware"
	"github.com/xiebiao/booksapi/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、消息通知
var infrastructureSet = wire.NewSet(
	database.NewDB,
	database.NewTxManager,
	wire.Bind(new(appbook.TxManager), new(*database.TxManager)),
	wire.Bind(new(appaccount.TxManager), new(*database.TxManager)),
	redis.NewTokenStore,
	provideSessionStore,
	provideRevocationList,
	events.NewNotifier,
	wire.Bind(new(appbook.RatingNotifier), new(events.Notifier)),
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	database.NewBookRepository,
	database.NewAccountRepository,
	database.NewMessageRepository,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	provideHasher,
	provideRolePolicy,
	book.NewService,
	account.NewService,
	message.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	provideJWTManager,
	appbook.NewListBooksUseCase,
	appbook.NewSearchBooksUseCase,
	appbook.NewListTitlesUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewAddBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewRateBookUseCase,
	appaccount.NewRegisterUseCase,
	appaccount.NewLoginUseCase,
	appaccount.NewLogoutUseCase,
	appaccount.NewListAccountsUseCase,
	appaccount.NewGetAccountUseCase,
	appaccount.NewUpdateDetailsUseCase,
	appmessage.NewPostMessageUseCase,
	appmessage.NewListMessagesUseCase,
	appmessage.NewGetMessageUseCase,
	appmessage.NewUpdateMessageUseCase,
	appmessage.NewDeleteMessagesUseCase,
)

// interfaceSet 处理器、中间件、路由
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewMessageHandler,
	wire.Struct(new(router.Handlers), "*"),
	middleware.NewAuthMiddleware,
	router.New,
	provideServer,
)

// InitializeApp 组装整个应用,cleanup按相反顺序关闭Broker、Redis、数据库
func InitializeApp(cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		newApp,
	)
	return nil, nil, nil
}
