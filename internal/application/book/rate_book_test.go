package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/database"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// =========================================
// 测试辅助
// =========================================

func ratingConfig(mode string, timeout time.Duration) *config.Config {
	return &config.Config{Rating: config.RatingConfig{Mode: mode, Timeout: timeout}}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []book.RatedEvent
}

func (n *recordingNotifier) BookRated(_ context.Context, evt book.RatedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, evt)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

type sqliteFixture struct {
	db   *gorm.DB
	repo book.Repository
	tx   *database.TxManager
}

// newSQLiteFixture 单连接SQLite内存库,连接池只有一个连接
func newSQLiteFixture(t *testing.T) *sqliteFixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		AutoMigrate:  true,
	}}

	db, cleanup, err := database.NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return &sqliteFixture{db: db, repo: database.NewBookRepository(db), tx: database.NewTxManager(db)}
}

// newSQLiteFilePool 多连接的SQLite文件库
// 事务以BEGIN IMMEDIATE开始,写锁由数据库持有,其他事务在busy_timeout内等待
func newSQLiteFilePool(t *testing.T, conns int) *sqliteFixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ratings.db")
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         "file:" + path + "?_busy_timeout=10000&_txlock=immediate",
		MaxOpenConns: conns,
		MaxIdleConns: conns,
		AutoMigrate:  true,
	}}

	db, cleanup, err := database.NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return &sqliteFixture{db: db, repo: database.NewBookRepository(db), tx: database.NewTxManager(db)}
}

// seed 插入一本书,counters为nil表示评分列全为NULL
func (f *sqliteFixture) seed(t *testing.T, isbn13 string, counters *book.RatingCounters) {
	t.Helper()

	model := database.BookModel{ISBN13: isbn13, Title: "Book " + isbn13, OriginalTitle: "Book " + isbn13}
	if counters != nil {
		c := *counters
		r := c.Aggregate()
		model.Rating1Star, model.Rating2Star, model.Rating3Star = &c[0], &c[1], &c[2]
		model.Rating4Star, model.Rating5Star = &c[3], &c[4]
		model.RatingCount = &r.Count
		model.RatingAvg = r.Avg
	}
	require.NoError(t, f.db.Create(&model).Error)
}

func (f *sqliteFixture) useCase(mode string, timeout time.Duration, n RatingNotifier) *RateBookUseCase {
	if n == nil {
		n = &recordingNotifier{}
	}
	return NewRateBookUseCase(f.repo, f.tx, n, ratingConfig(mode, timeout), zap.NewNop())
}

var allModes = []string{config.RatingModeUnguarded, config.RatingModeSerializable, config.RatingModeRowLock}

// =========================================
// 单次评分
// =========================================

func TestRateBook_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		initial   book.RatingCounters
		star      int
		want      book.RatingCounters
		wantCount int64
		wantAvg   float64
	}{
		{"五星再加五星", book.RatingCounters{0, 0, 0, 0, 1}, 5, book.RatingCounters{0, 0, 0, 0, 2}, 2, 5},
		{"一星五星再加一星", book.RatingCounters{1, 0, 0, 0, 1}, 1, book.RatingCounters{2, 0, 0, 0, 1}, 3, 7.0 / 3.0},
	}

	for _, mode := range allModes {
		for _, tt := range tests {
			t.Run(mode+"/"+tt.name, func(t *testing.T) {
				f := newSQLiteFixture(t)
				initial := tt.initial
				f.seed(t, "9780441172719", &initial)

				updated, err := f.useCase(mode, time.Second, nil).Execute(context.Background(),
					RateBookRequest{ISBN13: "9780441172719", Star: tt.star})
				require.NoError(t, err)

				assert.Equal(t, tt.want, updated.Rating.Counters)
				assert.Equal(t, tt.wantCount, updated.Rating.Count)
				require.NotNil(t, updated.Rating.Avg)
				assert.InDelta(t, tt.wantAvg, *updated.Rating.Avg, 1e-12)
				assert.Equal(t, "Book 9780441172719", updated.Title)
			})
		}
	}
}

func TestRateBook_NullCountersTreatedAsZero(t *testing.T) {
	f := newSQLiteFixture(t)
	uc := f.useCase(config.RatingModeUnguarded, time.Second, nil)

	for star := 1; star <= 5; star++ {
		isbn := fmt.Sprintf("978000000000%d", star)
		f.seed(t, isbn, nil)

		updated, err := uc.Execute(context.Background(), RateBookRequest{ISBN13: isbn, Star: star})
		require.NoError(t, err)

		assert.Equal(t, int64(1), updated.Rating.Count)
		assert.Equal(t, float64(star), updated.Rating.AverageValue())
		for k := 1; k <= 5; k++ {
			want := int64(0)
			if k == star {
				want = 1
			}
			assert.Equal(t, want, updated.Rating.Counters[k-1], "star=%d k=%d", star, k)
		}
	}
}

func TestRateBook_SameStarTwiceIncrementsTwice(t *testing.T) {
	f := newSQLiteFixture(t)
	f.seed(t, "9780441172719", nil)
	uc := f.useCase(config.RatingModeUnguarded, time.Second, nil)
	req := RateBookRequest{ISBN13: "9780441172719", Star: 3}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Rating.Counters[2])
	assert.Equal(t, int64(2), second.Rating.Counters[2])
	assert.Equal(t, int64(2), second.Rating.Count)
}

func TestRateBook_SerialAverage(t *testing.T) {
	f := newSQLiteFixture(t)
	f.seed(t, "9780441172719", nil)
	uc := f.useCase(config.RatingModeRowLock, time.Second, nil)

	stars := []int{5, 4, 4, 1, 2, 3, 5, 5, 1, 2, 4, 3, 3}
	var sum int
	var last *book.Book
	for _, s := range stars {
		var err error
		last, err = uc.Execute(context.Background(), RateBookRequest{ISBN13: "9780441172719", Star: s})
		require.NoError(t, err)
		sum += s
	}

	assert.Equal(t, int64(len(stars)), last.Rating.Count)
	assert.InDelta(t, float64(sum)/float64(len(stars)), last.Rating.AverageValue(), 1e-9)
}

func TestRateBook_NotFound(t *testing.T) {
	for _, mode := range allModes {
		t.Run(mode, func(t *testing.T) {
			f := newSQLiteFixture(t)
			notifier := &recordingNotifier{}

			_, err := f.useCase(mode, time.Second, notifier).Execute(context.Background(),
				RateBookRequest{ISBN13: "9780000000001", Star: 3})

			assert.ErrorIs(t, err, book.ErrBookNotFound)
			assert.Equal(t, "Book not found", apperrors.GetAppError(err).Message)
			assert.Zero(t, notifier.count())
		})
	}
}

func TestRateBook_InvalidStarNeverTouchesStorage(t *testing.T) {
	repo := new(mockBookRepository)
	uc := NewRateBookUseCase(repo, passthroughTx{}, &recordingNotifier{},
		ratingConfig(config.RatingModeRowLock, time.Second), zap.NewNop())

	for _, star := range []int{0, 6, -3} {
		_, err := uc.Execute(context.Background(), RateBookRequest{ISBN13: "9780441172719", Star: star})
		assert.ErrorIs(t, err, book.ErrInvalidStar)
	}
	repo.AssertNotCalled(t, "FindRatings", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "LockRatings", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateRatings", mock.Anything, mock.Anything, mock.Anything)
}

func TestRateBook_MultipleRowsIsIntegrityViolation(t *testing.T) {
	repo := new(mockBookRepository)
	repo.On("FindRatings", mock.Anything, "9780441172719").
		Return([]book.RatingCounters{{}, {0, 0, 0, 0, 1}}, nil)

	uc := NewRateBookUseCase(repo, passthroughTx{}, &recordingNotifier{},
		ratingConfig(config.RatingModeUnguarded, time.Second), zap.NewNop())

	_, err := uc.Execute(context.Background(), RateBookRequest{ISBN13: "9780441172719", Star: 2})
	assert.ErrorIs(t, err, book.ErrMultipleISBN)
	assert.Equal(t, 500, apperrors.GetAppError(err).HTTPStatus())
	repo.AssertNotCalled(t, "UpdateRatings", mock.Anything, mock.Anything, mock.Anything)
}

func TestRateBook_StorageErrors(t *testing.T) {
	t.Run("读取失败", func(t *testing.T) {
		repo := new(mockBookRepository)
		repo.On("FindRatings", mock.Anything, "9780441172719").
			Return(nil, apperrors.Storage(errors.New("connection reset")))

		uc := NewRateBookUseCase(repo, passthroughTx{}, &recordingNotifier{},
			ratingConfig(config.RatingModeUnguarded, time.Second), zap.NewNop())
		_, err := uc.Execute(context.Background(), RateBookRequest{ISBN13: "9780441172719", Star: 2})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStorage))
		repo.AssertNotCalled(t, "UpdateRatings", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("提交失败归为StorageError", func(t *testing.T) {
		repo := new(mockBookRepository)
		repo.On("FindRatings", mock.Anything, "9780441172719").Return([]book.RatingCounters{{}}, nil)
		repo.On("UpdateRatings", mock.Anything, "9780441172719", mock.Anything).
			Return(&book.Book{ISBN13: "9780441172719"}, nil)

		commitErr := errors.New("could not serialize access due to concurrent update")
		uc := NewRateBookUseCase(repo, failingCommitTx{err: commitErr}, &recordingNotifier{},
			ratingConfig(config.RatingModeSerializable, time.Second), zap.NewNop())

		_, err := uc.Execute(context.Background(), RateBookRequest{ISBN13: "9780441172719", Star: 2})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStorage))
		assert.ErrorIs(t, err, commitErr)
		assert.Equal(t, "server error - contact support", apperrors.GetAppError(err).Message)
	})
}

func TestRateBook_NotifiesOnSuccess(t *testing.T) {
	f := newSQLiteFixture(t)
	f.seed(t, "9780441172719", nil)
	notifier := &recordingNotifier{}

	_, err := f.useCase(config.RatingModeUnguarded, time.Second, notifier).Execute(context.Background(),
		RateBookRequest{ISBN13: "9780441172719", Star: 4})
	require.NoError(t, err)

	require.Equal(t, 1, notifier.count())
	evt := notifier.events[0]
	assert.Equal(t, "9780441172719", evt.ISBN13)
	assert.Equal(t, 4, evt.Star)
	assert.Equal(t, int64(1), evt.RatingCount)
	assert.Equal(t, 4.0, evt.RatingAvg)
}

// =========================================
// 取消、超时与连接池
// =========================================

func TestRateBook_ClientCancellationDoesNotAbortWrite(t *testing.T) {
	f := newSQLiteFixture(t)
	f.seed(t, "9780441172719", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	updated, err := f.useCase(config.RatingModeRowLock, time.Second, nil).Execute(ctx,
		RateBookRequest{ISBN13: "9780441172719", Star: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Rating.Count)

	rows, err := f.repo.FindRatings(context.Background(), "9780441172719")
	require.NoError(t, err)
	assert.Equal(t, book.RatingCounters{0, 0, 0, 0, 1}, rows[0])
}

func TestRateBook_PoolExhaustionIsStorageError(t *testing.T) {
	for _, mode := range allModes {
		t.Run(mode, func(t *testing.T) {
			f := newSQLiteFixture(t)
			f.seed(t, "9780441172719", nil)

			// 占住唯一的连接
			held := f.db.Begin()
			require.NoError(t, held.Error)
			defer held.Rollback()

			start := time.Now()
			_, err := f.useCase(mode, 50*time.Millisecond, nil).Execute(context.Background(),
				RateBookRequest{ISBN13: "9780441172719", Star: 1})

			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStorage), "got %v", err)
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

func TestRateBook_CallerDeadlineBoundsWait(t *testing.T) {
	f := newSQLiteFixture(t)
	f.seed(t, "9780441172719", nil)

	held := f.db.Begin()
	require.NoError(t, held.Error)
	defer held.Rollback()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := f.useCase(config.RatingModeUnguarded, time.Minute, nil).Execute(ctx,
		RateBookRequest{ISBN13: "9780441172719", Star: 1})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStorage))
	assert.Less(t, time.Since(start), 5*time.Second)
}

// =========================================
// 并发
// =========================================

// pausingRepository 读到评分后停顿,拉大读和写之间的窗口
type pausingRepository struct {
	book.Repository
	pause time.Duration
}

func (r pausingRepository) FindRatings(ctx context.Context, isbn13 string) ([]book.RatingCounters, error) {
	rows, err := r.Repository.FindRatings(ctx, isbn13)
	time.Sleep(r.pause)
	return rows, err
}

func (r pausingRepository) LockRatings(ctx context.Context, isbn13 string) ([]book.RatingCounters, error) {
	rows, err := r.Repository.LockRatings(ctx, isbn13)
	time.Sleep(r.pause)
	return rows, err
}

// rateConcurrently m个goroutine同时评分,返回最终计数
func rateConcurrently(t *testing.T, f *sqliteFixture, mode string, m int) book.RatingCounters {
	t.Helper()

	repo := pausingRepository{Repository: f.repo, pause: 10 * time.Millisecond}
	uc := NewRateBookUseCase(repo, f.tx, &recordingNotifier{}, ratingConfig(mode, 30*time.Second), zap.NewNop())

	var wg sync.WaitGroup
	errs := make(chan error, m)
	for i := 0; i < m; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(),
				RateBookRequest{ISBN13: "9780441172719", Star: i%5 + 1})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rows, err := f.repo.FindRatings(context.Background(), "9780441172719")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	return rows[0]
}

func TestRateBook_SafeModesLoseNoUpdates(t *testing.T) {
	const m = 25

	for _, mode := range []string{config.RatingModeSerializable, config.RatingModeRowLock} {
		t.Run(mode, func(t *testing.T) {
			f := newSQLiteFilePool(t, 8)
			sqlDB, err := f.db.DB()
			require.NoError(t, err)
			require.Greater(t, sqlDB.Stats().MaxOpenConnections, 1)

			initial := book.RatingCounters{0, 0, 0, 0, 1}
			f.seed(t, "9780441172719", &initial)

			final := rateConcurrently(t, f, mode, m)
			assert.Equal(t, int64(1+m), final.Aggregate().Count)
			assert.Equal(t, book.RatingCounters{5, 5, 5, 5, 6}, final)
		})
	}
}

// 同一个多连接库上,不加保护的读改写会丢失更新
func TestRateBook_UnguardedModeLosesUpdatesOnSharedPool(t *testing.T) {
	const m = 25

	f := newSQLiteFilePool(t, 8)
	initial := book.RatingCounters{0, 0, 0, 0, 1}
	f.seed(t, "9780441172719", &initial)

	final := rateConcurrently(t, f, config.RatingModeUnguarded, m)
	assert.Less(t, final.Aggregate().Count, int64(1+m))
}

// racyStore 读到快照后在屏障处等待,保证两个评分都在写之前完成读取
type racyStore struct {
	book.Repository

	mu       sync.Mutex
	counters book.RatingCounters
	barrier  sync.WaitGroup
}

func (s *racyStore) FindRatings(_ context.Context, _ string) ([]book.RatingCounters, error) {
	s.mu.Lock()
	snapshot := s.counters
	s.mu.Unlock()

	s.barrier.Done()
	s.barrier.Wait()
	return []book.RatingCounters{snapshot}, nil
}

func (s *racyStore) UpdateRatings(_ context.Context, isbn13 string, r book.Rating) (*book.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = r.Counters
	return &book.Book{ISBN13: isbn13, Rating: r}, nil
}

func TestRateBook_UnguardedModeLosesUpdates(t *testing.T) {
	store := &racyStore{}
	store.barrier.Add(2)
	uc := NewRateBookUseCase(store, passthroughTx{}, &recordingNotifier{},
		ratingConfig(config.RatingModeUnguarded, time.Second), zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), RateBookRequest{ISBN13: "9780441172719", Star: 5})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// 两次评分都成功返回,但第二次写覆盖了第一次
	assert.Equal(t, int64(1), store.counters.Sum())
}

// =========================================
// 模式与事务
// =========================================

func TestRateBook_ModeSelectsReaderAndTransaction(t *testing.T) {
	tests := []struct {
		mode       string
		reader     string
		other      string
		wantTx     bool
		wantTxOpts []*sql.TxOptions
	}{
		{config.RatingModeRowLock, "LockRatings", "FindRatings", true, nil},
		{config.RatingModeSerializable, "FindRatings", "LockRatings", true,
			[]*sql.TxOptions{{Isolation: sql.LevelSerializable}}},
		{config.RatingModeUnguarded, "FindRatings", "LockRatings", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			var readInTx, writeInTx bool
			repo := new(mockBookRepository)
			repo.On(tt.reader, mock.Anything, "9780441172719").
				Run(func(args mock.Arguments) {
					readInTx = inRecordedTx(args.Get(0).(context.Context))
				}).
				Return([]book.RatingCounters{{0, 0, 0, 0, 1}}, nil).Once()
			repo.On("UpdateRatings", mock.Anything, "9780441172719", mock.Anything).
				Run(func(args mock.Arguments) {
					writeInTx = inRecordedTx(args.Get(0).(context.Context))
				}).
				Return(&book.Book{ISBN13: "9780441172719", Rating: book.RatingCounters{0, 0, 0, 0, 2}.Aggregate()}, nil).Once()

			tx := &recordingTx{}
			uc := NewRateBookUseCase(repo, tx, &recordingNotifier{}, ratingConfig(tt.mode, time.Second), zap.NewNop())

			_, err := uc.Execute(context.Background(), RateBookRequest{ISBN13: "9780441172719", Star: 5})
			require.NoError(t, err)

			repo.AssertExpectations(t)
			repo.AssertNotCalled(t, tt.other, mock.Anything, mock.Anything)
			assert.Equal(t, tt.wantTx, readInTx)
			assert.Equal(t, tt.wantTx, writeInTx)
			if tt.wantTx {
				assert.Equal(t, 1, tx.calls)
			} else {
				assert.Zero(t, tx.calls)
			}
			assert.Equal(t, tt.wantTxOpts, tx.opts)
		})
	}
}

// =========================================
// 测试替身
// =========================================

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) FindRatings(ctx context.Context, isbn13 string) ([]book.RatingCounters, error) {
	args := m.Called(ctx, isbn13)
	rows, _ := args.Get(0).([]book.RatingCounters)
	return rows, args.Error(1)
}

func (m *mockBookRepository) LockRatings(ctx context.Context, isbn13 string) ([]book.RatingCounters, error) {
	args := m.Called(ctx, isbn13)
	rows, _ := args.Get(0).([]book.RatingCounters)
	return rows, args.Error(1)
}

func (m *mockBookRepository) UpdateRatings(ctx context.Context, isbn13 string, r book.Rating) (*book.Book, error) {
	args := m.Called(ctx, isbn13, r)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockBookRepository) FindByISBN(ctx context.Context, isbn13 string) ([]*book.Book, error) {
	args := m.Called(ctx, isbn13)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *mockBookRepository) ListTitles(ctx context.Context, page book.Page) ([]string, int64, error) {
	args := m.Called(ctx, page)
	titles, _ := args.Get(0).([]string)
	return titles, args.Get(1).(int64), args.Error(2)
}

func (m *mockBookRepository) SearchByTitle(ctx context.Context, fragment string) ([]*book.Book, error) {
	args := m.Called(ctx, fragment)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *mockBookRepository) AllTitles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	titles, _ := args.Get(0).([]string)
	return titles, args.Error(1)
}

func (m *mockBookRepository) Create(ctx context.Context, b *book.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBookRepository) DeleteByID(ctx context.Context, id int64) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

type recordedTxKey struct{}

func inRecordedTx(ctx context.Context) bool {
	return ctx.Value(recordedTxKey{}) != nil
}

// recordingTx 记录调用次数和TxOptions,fn在带标记的Context中执行
type recordingTx struct {
	mu    sync.Mutex
	calls int
	opts  []*sql.TxOptions
}

func (tx *recordingTx) Transaction(ctx context.Context, fn func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	tx.mu.Lock()
	tx.calls++
	tx.opts = append(tx.opts, opts...)
	tx.mu.Unlock()
	return fn(context.WithValue(ctx, recordedTxKey{}, true))
}

type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error, _ ...*sql.TxOptions) error {
	return fn(ctx)
}

// failingCommitTx fn成功但提交失败(如SERIALIZABLE冲突)
type failingCommitTx struct {
	err error
}

func (tx failingCommitTx) Transaction(ctx context.Context, fn func(ctx context.Context) error, _ ...*sql.TxOptions) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.err
}
