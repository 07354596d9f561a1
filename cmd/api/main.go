package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/xiebiao/booksapi/docs"
	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/database"
	"github.com/xiebiao/booksapi/pkg/credential"
	"github.com/xiebiao/booksapi/pkg/logger"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

// @title           Books API
// @version         1.0
// @description     图书目录、评分、账号与留言接口
// @BasePath        /
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            x-access-token
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// runtime 命令共享的配置与日志
type runtime struct {
	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:           "booksapi",
		Short:         "Books API服务",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// .env 不存在时忽略
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Options{
				Level:        cfg.Log.Level,
				Format:       cfg.Log.Format,
				Output:       cfg.Log.Output,
				EnableCaller: cfg.Log.EnableCaller,
			})
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(log)

			rt.cfg, rt.log = cfg, log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if rt.log != nil {
				_ = rt.log.Sync()
			}
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "启动HTTP服务(默认命令)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.serve(cmd.Context())
		},
	}
	root.RunE = serve.RunE

	root.AddCommand(
		serve,
		&cobra.Command{
			Use:   "migrate",
			Short: "执行数据库表结构迁移",
			RunE: func(*cobra.Command, []string) error {
				return rt.migrate()
			},
		},
		&cobra.Command{
			Use:   "hash-demo [password]",
			Short: "打印加盐哈希演示",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				password := "password12345"
				if len(args) == 1 {
					password = args[0]
				}
				demo, err := credential.NewDemo(password)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(demo)
			},
		},
	)
	return root
}

func (rt *runtime) serve(parent context.Context) error {
	cfg, log := rt.cfg, rt.log
	if parent == nil {
		parent = context.Background()
	}

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
	}

	app, cleanup, err := InitializeApp(cfg, log)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP服务启动",
			zap.String("addr", app.server.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.String("database", cfg.Database.Driver),
			zap.String("rating_mode", cfg.Rating.Mode),
		)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("正在关闭HTTP服务")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return app.server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("服务异常退出", zap.Error(err))
		return err
	}
	log.Info("服务已停止")
	return nil
}

func (rt *runtime) migrate() error {
	cfg := *rt.cfg
	cfg.Database.AutoMigrate = false

	db, cleanup, err := database.NewDB(&cfg, rt.log)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	rt.log.Info("数据库迁移完成", zap.String("driver", cfg.Database.Driver))
	return nil
}
