package book

import (
	"context"

	"github.com/xiebiao/booksapi/internal/domain/book"
)

// SearchBooksUseCase 标题模糊搜索
type SearchBooksUseCase struct {
	bookService book.Service
}

func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

func (uc *SearchBooksUseCase) Execute(ctx context.Context, title string) ([]*book.Book, error) {
	return uc.bookService.SearchByTitle(ctx, title)
}

// ListTitlesUseCase 全部标题升序
type ListTitlesUseCase struct {
	bookService book.Service
}

func NewListTitlesUseCase(bookService book.Service) *ListTitlesUseCase {
	return &ListTitlesUseCase{bookService: bookService}
}

func (uc *ListTitlesUseCase) Execute(ctx context.Context) ([]string, error) {
	return uc.bookService.AllTitles(ctx)
}

// GetBookUseCase 按isbn13查询
type GetBookUseCase struct {
	bookService book.Service
}

func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

func (uc *GetBookUseCase) Execute(ctx context.Context, isbn13 string) (*book.Book, error) {
	return uc.bookService.GetByISBN(ctx, isbn13)
}

// AddBookRequest 新增图书请求
type AddBookRequest struct {
	ID              int64
	Title           string
	Authors         string
	PublicationYear int
	ISBN13          string
}

// AddBookUseCase 新增图书,original_title取title
type AddBookUseCase struct {
	bookService book.Service
}

func NewAddBookUseCase(bookService book.Service) *AddBookUseCase {
	return &AddBookUseCase{bookService: bookService}
}

func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*book.Book, error) {
	b := book.NewBook(req.ID, req.ISBN13, req.Title, req.Authors, req.PublicationYear)
	return uc.bookService.AddBook(ctx, b)
}

// DeleteBookUseCase 按id删除
type DeleteBookUseCase struct {
	bookService book.Service
}

func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id int64) (*book.Book, error) {
	return uc.bookService.DeleteBook(ctx, id)
}
