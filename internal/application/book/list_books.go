package book

import (
	"context"

	"github.com/xiebiao/booksapi/internal/domain/book"
)

// ListBooksUseCase 分页查询标题
// page默认1,limit默认10、最大100;totalPages向上取整
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Page  int
	Limit int
}

// ListBooksResponse 列表查询结果
type ListBooksResponse struct {
	Titles     []string
	Page       int
	Limit      int
	TotalPages int
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 1. 参数默认值与范围限制
	page := book.NormalizePage(req.Page, req.Limit)

	// 2. 查询
	titles, total, err := uc.bookService.ListTitles(ctx, page)
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{
		Titles:     titles,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}, nil
}
