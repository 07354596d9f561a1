package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	"github.com/xiebiao/booksapi/internal/interface/http/dto"
	"github.com/xiebiao/booksapi/internal/interface/http/handler"
	"github.com/xiebiao/booksapi/internal/interface/http/middleware"
	"github.com/xiebiao/booksapi/pkg/metrics"
)

// Handlers 路由需要的全部处理器
type Handlers struct {
	Book    *handler.BookHandler
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Message *handler.MessageHandler
}

// New 创建Gin引擎并注册路由
//
// 公开路由：/、/ping、/books/*、/register、/login、/hash_demo、/message/*
// 需要Token：/jwt_test、/logout、/users/*
func New(cfg *config.Config, h Handlers, auth *middleware.AuthMiddleware, log *zap.Logger) (*gin.Engine, error) {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.Logger(log),
		cors.New(corsConfig(cfg.Server.CORSOrigins)),
		middleware.NewIPRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst).Middleware(),
	)

	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	if cfg.Swagger.Enabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	register(r, h, auth)
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "x-access-token")
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func register(r *gin.Engine, h Handlers, auth *middleware.AuthMiddleware) {
	r.GET("/", handler.Hello)
	r.GET("/ping", handler.Ping)

	books := r.Group("/books")
	{
		books.PUT("/rating/:isbn13", h.Book.RateBook)
		books.GET("/all", h.Book.ListBooks)
		books.GET("/title", h.Book.ListTitles)
		books.GET("/title/:title", h.Book.SearchByTitle)
		books.GET("/:isbn13", h.Book.GetByISBN)
		books.POST("/new", h.Book.AddBook)
		books.DELETE("/del/:id", h.Book.DeleteBook)
	}

	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.GET("/hash_demo", h.Auth.HashDemo)

	messages := r.Group("/message")
	{
		messages.POST("", h.Message.Post)
		messages.GET("/all", h.Message.All)
		messages.GET("", h.Message.ByPriority)
		messages.GET("/helloworld", h.Message.HelloWorld)
		messages.GET("/:name", h.Message.Get)
		messages.PUT("", h.Message.Update)
		messages.DELETE("", h.Message.DeleteByPriority)
		messages.DELETE("/:name", h.Message.Delete)
	}

	closed := r.Group("", auth.CheckToken())
	{
		closed.GET("/jwt_test", h.Auth.TokenTest)
		closed.POST("/logout", h.Auth.Logout)
		closed.GET("/users", h.User.List)
		closed.GET("/users/:id", middleware.CheckParamsIDToJWTID(), h.User.Get)
		closed.PUT("/users/details/:id", middleware.CheckParamsIDToJWTID(), h.User.UpdateDetails)
	}
}
