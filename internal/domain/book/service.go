package book

import (
	"context"
	"regexp"
	"strings"
)

// Service 图书目录领域服务
// 评分的读改写涉及事务策略,放在application层的RateBookUseCase
type Service interface {
	// ListTitles 分页查询标题
	ListTitles(ctx context.Context, page Page) ([]string, int64, error)

	// SearchByTitle 标题模糊搜索,无结果返回ErrNoBooksWithTitle
	SearchByTitle(ctx context.Context, fragment string) ([]*Book, error)

	// AllTitles 全部标题升序,书库为空返回ErrNoBooks
	AllTitles(ctx context.Context) ([]string, error)

	// GetByISBN 0行返回ErrBookNotFound,多行返回ErrMultipleISBN
	GetByISBN(ctx context.Context, isbn13 string) (*Book, error)

	// AddBook 新增图书
	// 业务规则:
	// - 标题不能为空
	// - isbn13必须是13位数字
	AddBook(ctx context.Context, book *Book) (*Book, error)

	// DeleteBook 按id删除
	DeleteBook(ctx context.Context, id int64) (*Book, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListTitles(ctx context.Context, page Page) ([]string, int64, error) {
	return s.repo.ListTitles(ctx, page)
}

func (s *service) SearchByTitle(ctx context.Context, fragment string) ([]*Book, error) {
	books, err := s.repo.SearchByTitle(ctx, fragment)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoBooksWithTitle
	}
	return books, nil
}

func (s *service) AllTitles(ctx context.Context) ([]string, error) {
	titles, err := s.repo.AllTitles(ctx)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, ErrNoBooks
	}
	return titles, nil
}

func (s *service) GetByISBN(ctx context.Context, isbn13 string) (*Book, error) {
	books, err := s.repo.FindByISBN(ctx, isbn13)
	if err != nil {
		return nil, err
	}
	return single(books)
}

func (s *service) AddBook(ctx context.Context, b *Book) (*Book, error) {
	// 1. 业务规则校验
	if strings.TrimSpace(b.Title) == "" {
		return nil, ErrMissingTitle
	}
	if !IsValidISBN13(b.ISBN13) {
		return nil, ErrInvalidISBN
	}
	if b.OriginalTitle == "" {
		b.OriginalTitle = b.Title
	}

	// 2. 持久化(重复由Repository转换为ErrNameExists)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) DeleteBook(ctx context.Context, id int64) (*Book, error) {
	return s.repo.DeleteByID(ctx, id)
}

// single 执行结果行数策略:0行→NotFound,多行→DataIntegrityViolation
func single[T any](rows []T) (T, error) {
	var zero T
	switch len(rows) {
	case 0:
		return zero, ErrBookNotFound
	case 1:
		return rows[0], nil
	default:
		return zero, ErrMultipleISBN
	}
}

// SingleRatings 对评分计数查询结果执行行数策略
func SingleRatings(rows []RatingCounters) (RatingCounters, error) {
	return single(rows)
}

var isbn13Pattern = regexp.MustCompile(`^[0-9]{13}$`)

// IsValidISBN13 13位数字
func IsValidISBN13(isbn string) bool {
	return isbn13Pattern.MatchString(isbn)
}
