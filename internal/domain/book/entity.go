package book

// Book 图书领域实体
// 设计说明:
// 1. isbn13是自然键,评分更新以它为WHERE条件
// 2. 评分聚合(五个星级计数+总数+均值)封装在Rating中
// 3. 不依赖GORM,由infrastructure层负责模型转换
type Book struct {
	ID              int64
	ISBN13          string
	Title           string
	OriginalTitle   string
	Authors         string
	PublicationYear int
	Rating          Rating
	ImageURL        string
	ImageSmallURL   string
}

// NewBook 创建图书实体(original_title与title相同,评分为空)
func NewBook(id int64, isbn13, title, authors string, publicationYear int) *Book {
	return &Book{
		ID:              id,
		ISBN13:          isbn13,
		Title:           title,
		OriginalTitle:   title,
		Authors:         authors,
		PublicationYear: publicationYear,
	}
}

// Page 分页参数
type Page struct {
	Page  int
	Limit int
}

// Offset 计算OFFSET
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages 总页数(向上取整)
func (p Page) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// NormalizePage 页码默认1,每页默认10条,最多100条
func NormalizePage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Page: page, Limit: limit}
}
