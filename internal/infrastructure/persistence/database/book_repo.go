package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/booksapi/internal/domain/book"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// bookRepository 图书仓储实现
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库错误统一转换为StorageError,重复键转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// ratingRow 评分查询的投影
type ratingRow struct {
	Rating1Star *int64 `gorm:"column:rating_1_star"`
	Rating2Star *int64 `gorm:"column:rating_2_star"`
	Rating3Star *int64 `gorm:"column:rating_3_star"`
	Rating4Star *int64 `gorm:"column:rating_4_star"`
	Rating5Star *int64 `gorm:"column:rating_5_star"`
}

func (r ratingRow) counters() book.RatingCounters {
	return book.RatingCounters{
		deref(r.Rating1Star), deref(r.Rating2Star), deref(r.Rating3Star),
		deref(r.Rating4Star), deref(r.Rating5Star),
	}
}

// FindRatings SELECT rating_1_star..rating_5_star FROM books WHERE isbn13 = ?
// 不使用LIMIT,调用方需要知道是否存在多行
func (r *bookRepository) FindRatings(ctx context.Context, isbn13 string) ([]book.RatingCounters, error) {
	return r.selectRatings(conn(ctx, r.db), isbn13)
}

// LockRatings 同FindRatings并追加FOR UPDATE
// 必须在TxManager.Transaction内调用,否则锁在语句结束时即释放
func (r *bookRepository) LockRatings(ctx context.Context, isbn13 string) ([]book.RatingCounters, error) {
	return r.selectRatings(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), isbn13)
}

func (r *bookRepository) selectRatings(db *gorm.DB, isbn13 string) ([]book.RatingCounters, error) {
	var rows []ratingRow
	err := db.Model(&BookModel{}).
		Select(ratingColumns).
		Where("isbn13 = ?", isbn13).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	counters := make([]book.RatingCounters, len(rows))
	for i, row := range rows {
		counters[i] = row.counters()
	}
	return counters, nil
}

// UpdateRatings 单条UPDATE写入五个计数、rating_count和rating_avg并返回更新后的整行
// postgres和sqlite使用UPDATE ... RETURNING *,mysql不支持RETURNING,在同一连接上读回
func (r *bookRepository) UpdateRatings(ctx context.Context, isbn13 string, rating book.Rating) (*book.Book, error) {
	db := conn(ctx, r.db)
	c := rating.Counters
	values := map[string]interface{}{
		"rating_1_star": c[0],
		"rating_2_star": c[1],
		"rating_3_star": c[2],
		"rating_4_star": c[3],
		"rating_5_star": c[4],
		"rating_count":  rating.Count,
		"rating_avg":    rating.Avg,
	}

	if supportsReturning(db) {
		var models []BookModel
		result := db.Model(&models).
			Clauses(clause.Returning{}).
			Where("isbn13 = ?", isbn13).
			Updates(values)
		if result.Error != nil {
			return nil, apperrors.Storage(result.Error)
		}
		if len(models) == 0 {
			// 读和写之间行被删除
			return nil, book.ErrBookNotFound
		}
		return toBookEntity(&models[0]), nil
	}

	result := db.Model(&BookModel{}).
		Where("isbn13 = ?", isbn13).
		Updates(values)
	if result.Error != nil {
		return nil, apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, book.ErrBookNotFound
	}

	var model BookModel
	if err := db.Where("isbn13 = ?", isbn13).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Storage(err)
	}
	return toBookEntity(&model), nil
}

// supportsReturning mysql之外的驱动都支持UPDATE ... RETURNING
func supportsReturning(db *gorm.DB) bool {
	return db.Dialector.Name() != "mysql"
}

// FindByISBN 按isbn13查询全部匹配行
func (r *bookRepository) FindByISBN(ctx context.Context, isbn13 string) ([]*book.Book, error) {
	var models []BookModel
	if err := conn(ctx, r.db).Where("isbn13 = ?", isbn13).Find(&models).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return toBookEntities(models), nil
}

// ListTitles SELECT title ... ORDER BY id LIMIT ? OFFSET ?,另查总数
func (r *bookRepository) ListTitles(ctx context.Context, page book.Page) ([]string, int64, error) {
	db := conn(ctx, r.db)

	var total int64
	if err := db.Model(&BookModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Storage(err)
	}

	var titles []string
	err := db.Model(&BookModel{}).
		Order("id").
		Limit(page.Limit).
		Offset(page.Offset()).
		Pluck("title", &titles).Error
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	return titles, total, nil
}

// SearchByTitle LOWER(title) LIKE %fragment%
func (r *bookRepository) SearchByTitle(ctx context.Context, fragment string) ([]*book.Book, error) {
	var models []BookModel
	err := conn(ctx, r.db).
		Select("title", "authors", "publication_year").
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(fragment)+"%").
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return toBookEntities(models), nil
}

// AllTitles 全部标题升序
func (r *bookRepository) AllTitles(ctx context.Context) ([]string, error) {
	var titles []string
	if err := conn(ctx, r.db).Model(&BookModel{}).Order("title ASC").Pluck("title", &titles).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return titles, nil
}

// Create 新增图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:              b.ID,
		ISBN13:          b.ISBN13,
		Authors:         b.Authors,
		PublicationYear: b.PublicationYear,
		OriginalTitle:   b.OriginalTitle,
		Title:           b.Title,
		ImageURL:        b.ImageURL,
		ImageSmallURL:   b.ImageSmallURL,
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if _, dup := uniqueViolation(err); dup {
			return book.ErrNameExists.WithCause(err)
		}
		return apperrors.Storage(err)
	}

	b.ID = model.ID
	return nil
}

// DeleteByID 先查后删,返回被删除的图书
func (r *bookRepository) DeleteByID(ctx context.Context, id int64) (*book.Book, error) {
	db := conn(ctx, r.db)

	var model BookModel
	if err := db.Take(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrNameNotFound
		}
		return nil, apperrors.Storage(err)
	}

	result := db.Delete(&BookModel{}, id)
	if result.Error != nil {
		return nil, apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, book.ErrNameNotFound
	}
	return toBookEntity(&model), nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	counters := ratingRow{
		Rating1Star: m.Rating1Star,
		Rating2Star: m.Rating2Star,
		Rating3Star: m.Rating3Star,
		Rating4Star: m.Rating4Star,
		Rating5Star: m.Rating5Star,
	}.counters()

	return &book.Book{
		ID:              m.ID,
		ISBN13:          m.ISBN13,
		Title:           m.Title,
		OriginalTitle:   m.OriginalTitle,
		Authors:         m.Authors,
		PublicationYear: m.PublicationYear,
		Rating: book.Rating{
			Counters: counters,
			Count:    deref(m.RatingCount),
			Avg:      m.RatingAvg,
		},
		ImageURL:      m.ImageURL,
		ImageSmallURL: m.ImageSmallURL,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}

func deref(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
