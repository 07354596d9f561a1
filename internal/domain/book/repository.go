package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 查询方法返回切片而非单个实体,由调用方执行0行/多行策略
// 3. 存储层失败统一返回StorageError
type Repository interface {
	// FindRatings 按isbn13精确匹配读取评分计数(NULL归一为0)
	FindRatings(ctx context.Context, isbn13 string) ([]RatingCounters, error)

	// LockRatings 同FindRatings,但以SELECT ... FOR UPDATE锁定行,须在事务内调用
	LockRatings(ctx context.Context, isbn13 string) ([]RatingCounters, error)

	// UpdateRatings 一条UPDATE写入五个计数、总数和均值,返回更新后的整行
	UpdateRatings(ctx context.Context, isbn13 string, rating Rating) (*Book, error)

	// FindByISBN 按isbn13查询
	FindByISBN(ctx context.Context, isbn13 string) ([]*Book, error)

	// ListTitles 按id分页返回标题及总数
	ListTitles(ctx context.Context, page Page) ([]string, int64, error)

	// SearchByTitle 标题包含fragment(不区分大小写)
	SearchByTitle(ctx context.Context, fragment string) ([]*Book, error)

	// AllTitles 全部标题,按字母升序
	AllTitles(ctx context.Context) ([]string, error)

	// Create 新增图书,id或isbn13重复返回ErrNameExists
	Create(ctx context.Context, book *Book) error

	// DeleteByID 删除并返回被删除的图书,不存在返回ErrNameNotFound
	DeleteByID(ctx context.Context, id int64) (*Book, error)
}
