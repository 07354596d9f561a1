package dto

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/pkg/response"
)

// RegisterValidators 在gin的校验引擎上注册自定义tag
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return v.RegisterValidation("isbn13", func(fl validator.FieldLevel) bool {
		return book.IsValidISBN13(fl.Field().String())
	})
}

// RateBookRequest 评分请求体
// star保留原始JSON,由ParseStar判断是否为整数
type RateBookRequest struct {
	Star json.RawMessage `json:"star" swaggertype:"integer"`
}

// ParseStar 解析star,非整数返回false(范围由用例校验)
func (r RateBookRequest) ParseStar() (int, bool) {
	return integerValue(r.Star)
}

// NewBookRequest 新增图书请求体
type NewBookRequest struct {
	ID              int64  `json:"id"`
	Title           string `json:"title" binding:"required"`
	Authors         string `json:"authors"`
	PublicationYear int    `json:"publication_year"`
	ISBN13          string `json:"isbn13" binding:"required,isbn13"`
}

// BindError 把校验失败转换为领域错误
func (r NewBookRequest) BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "ISBN13" {
				return book.ErrInvalidISBN
			}
		}
	}
	return book.ErrMissingTitle
}

// PageQuery 分页查询参数
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// BookRow books表的一整行
type BookRow struct {
	ID              int64    `json:"id"`
	ISBN13          string   `json:"isbn13"`
	Authors         string   `json:"authors"`
	PublicationYear int      `json:"publication_year"`
	OriginalTitle   string   `json:"original_title"`
	Title           string   `json:"title"`
	RatingAvg       *float64 `json:"rating_avg"`
	RatingCount     int64    `json:"rating_count"`
	Rating1Star     int64    `json:"rating_1_star"`
	Rating2Star     int64    `json:"rating_2_star"`
	Rating3Star     int64    `json:"rating_3_star"`
	Rating4Star     int64    `json:"rating_4_star"`
	Rating5Star     int64    `json:"rating_5_star"`
	ImageURL        string   `json:"image_url"`
	ImageSmallURL   string   `json:"image_small_url"`
}

// NewBookRow 领域实体 → 行
func NewBookRow(b *book.Book) BookRow {
	c := b.Rating.Counters
	return BookRow{
		ID:              b.ID,
		ISBN13:          b.ISBN13,
		Authors:         b.Authors,
		PublicationYear: b.PublicationYear,
		OriginalTitle:   b.OriginalTitle,
		Title:           b.Title,
		RatingAvg:       b.Rating.Avg,
		RatingCount:     b.Rating.Count,
		Rating1Star:     c[0],
		Rating2Star:     c[1],
		Rating3Star:     c[2],
		Rating4Star:     c[3],
		Rating5Star:     c[4],
		ImageURL:        b.ImageURL,
		ImageSmallURL:   b.ImageSmallURL,
	}
}

// BookResponse PUT /books/rating 的响应
type BookResponse struct {
	Book BookRow `json:"book"`
}

// TitleEntry 只含标题
type TitleEntry struct {
	Title string `json:"title"`
}

// NewTitleEntries 标题列表
func NewTitleEntries(titles []string) []TitleEntry {
	return lo.Map(titles, func(t string, _ int) TitleEntry {
		return TitleEntry{Title: t}
	})
}

// SearchEntry 标题搜索结果
type SearchEntry struct {
	Title           string `json:"title"`
	Authors         string `json:"authors"`
	PublicationYear int    `json:"publication_year"`
}

// NewSearchEntries 搜索结果映射
func NewSearchEntries(books []*book.Book) []SearchEntry {
	return lo.Map(books, func(b *book.Book, _ int) SearchEntry {
		return SearchEntry{Title: b.Title, Authors: b.Authors, PublicationYear: b.PublicationYear}
	})
}

// BookListResponse GET /books/all 的响应
type BookListResponse struct {
	Books      []TitleEntry        `json:"books"`
	Pagination response.Pagination `json:"pagination"`
}
