package book

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
	"github.com/xiebiao/booksapi/pkg/metrics"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

// TxManager 事务执行器(由persistence/database.TxManager实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error, opts ...*sql.TxOptions) error
}

// RatingNotifier 评分成功后的事件通知
type RatingNotifier interface {
	BookRated(ctx context.Context, evt book.RatedEvent)
}

// RateBookUseCase 图书评分用例
// 读取五个星级计数 → 对应星级+1 → 重新计算总数和均值 → 单条UPDATE写回
//
// 并发策略由rating.mode决定:
//   - unguarded: 无保护的读改写,同一ISBN的并发评分可能丢失更新
//   - serializable: 读改写放在SERIALIZABLE事务中,冲突以StorageError返回,不自动重试
//   - row_lock: 事务内SELECT ... FOR UPDATE,同一ISBN的评分串行执行
//
// 执行Context脱离请求的取消信号,只保留rating.timeout(或更早的调用方截止时间),
// 客户端断开不会中断已发出的写;连接池耗尽时在超时后返回StorageError
type RateBookUseCase struct {
	repo     book.Repository
	tx       TxManager
	notifier RatingNotifier
	mode     string
	timeout  time.Duration
	log      *zap.Logger
	now      func() time.Time
}

// NewRateBookUseCase 创建评分用例
func NewRateBookUseCase(
	repo book.Repository,
	tx TxManager,
	notifier RatingNotifier,
	cfg *config.Config,
	log *zap.Logger,
) *RateBookUseCase {
	metrics.InitMetrics()

	mode := cfg.Rating.Mode
	if mode == "" {
		mode = config.RatingModeUnguarded
	}
	timeout := cfg.Rating.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &RateBookUseCase{
		repo:     repo,
		tx:       tx,
		notifier: notifier,
		mode:     mode,
		timeout:  timeout,
		log:      log.Named("rating"),
		now:      time.Now,
	}
}

// RateBookRequest 评分请求
type RateBookRequest struct {
	ISBN13 string
	Star   int
}

// Execute 执行评分,返回更新后的整行
func (uc *RateBookUseCase) Execute(ctx context.Context, req RateBookRequest) (*book.Book, error) {
	// 1. 星级校验,失败时不访问数据库
	if err := book.ValidateStar(req.Star); err != nil {
		uc.recordFailure("invalid_input")
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "booksapi/book", "RateBook")
	defer span.End()

	// 2. 脱离取消信号的执行Context
	execCtx, cancel := uc.executionContext(ctx)
	defer cancel()

	// 3. 按模式执行读改写
	start := time.Now()
	updated, err := uc.rate(execCtx, req)
	metrics.ObserveHistogramVec(metrics.RatingUpdateDuration,
		map[string]string{"mode": uc.mode}, time.Since(start).Seconds())

	if err != nil {
		err = uc.classify(err)
		tracing.RecordError(span, err)
		return nil, err
	}

	// 4. 指标与事件(事件发布失败不影响结果)
	metrics.IncCounterVec(metrics.RatingsAppliedTotal, map[string]string{"star": strconv.Itoa(req.Star)})
	uc.notifier.BookRated(ctx, book.NewRatedEvent(updated, req.Star, uc.now()))

	return updated, nil
}

func (uc *RateBookUseCase) rate(ctx context.Context, req RateBookRequest) (*book.Book, error) {
	switch uc.mode {
	case config.RatingModeSerializable:
		return uc.inTransaction(ctx, req, uc.repo.FindRatings, &sql.TxOptions{Isolation: sql.LevelSerializable})
	case config.RatingModeRowLock:
		return uc.inTransaction(ctx, req, uc.repo.LockRatings, nil)
	default:
		return uc.readModifyWrite(ctx, req, uc.repo.FindRatings)
	}
}

type ratingsReader func(ctx context.Context, isbn13 string) ([]book.RatingCounters, error)

func (uc *RateBookUseCase) inTransaction(ctx context.Context, req RateBookRequest, read ratingsReader, opts *sql.TxOptions) (*book.Book, error) {
	var updated *book.Book
	fn := func(txCtx context.Context) error {
		var err error
		updated, err = uc.readModifyWrite(txCtx, req, read)
		return err
	}

	var err error
	if opts != nil {
		err = uc.tx.Transaction(ctx, fn, opts)
	} else {
		err = uc.tx.Transaction(ctx, fn)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// readModifyWrite SELECT → 行数策略 → 计算 → UPDATE
func (uc *RateBookUseCase) readModifyWrite(ctx context.Context, req RateBookRequest, read ratingsReader) (*book.Book, error) {
	rows, err := read(ctx, req.ISBN13)
	if err != nil {
		return nil, err
	}

	counters, err := book.SingleRatings(rows)
	if err != nil {
		return nil, err
	}

	rating, err := book.ApplyStar(counters, req.Star)
	if err != nil {
		return nil, err
	}

	return uc.repo.UpdateRatings(ctx, req.ISBN13, rating)
}

func (uc *RateBookUseCase) executionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	deadline := time.Now().Add(uc.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	return context.WithDeadline(context.WithoutCancel(ctx), deadline)
}

// classify 统一错误类型并记录失败原因
// 事务提交失败、BeginTx超时等未经仓储包装的错误归为StorageError
func (uc *RateBookUseCase) classify(err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		err = apperrors.Storage(err)
		appErr = apperrors.GetAppError(err)
	}

	switch appErr.Code {
	case apperrors.ErrCodeNotFound:
		uc.recordFailure("not_found")
	case apperrors.ErrCodeDataIntegrity:
		uc.recordFailure("integrity")
		uc.log.Error("同一ISBN存在多行", zap.Error(err))
	case apperrors.ErrCodeInvalidParams:
		uc.recordFailure("invalid_input")
	default:
		uc.recordFailure("storage")
		uc.log.Error("评分写入失败", zap.String("mode", uc.mode), zap.Error(err))
	}
	return err
}

func (uc *RateBookUseCase) recordFailure(reason string) {
	metrics.IncCounterVec(metrics.RatingFailuresTotal, map[string]string{"reason": reason})
}
