package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/booksapi/internal/application/book"
	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/internal/interface/http/dto"
	"github.com/xiebiao/booksapi/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooks   *appbook.ListBooksUseCase
	searchBooks *appbook.SearchBooksUseCase
	listTitles  *appbook.ListTitlesUseCase
	getBook     *appbook.GetBookUseCase
	addBook     *appbook.AddBookUseCase
	deleteBook  *appbook.DeleteBookUseCase
	rateBook    *appbook.RateBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	searchBooks *appbook.SearchBooksUseCase,
	listTitles *appbook.ListTitlesUseCase,
	getBook *appbook.GetBookUseCase,
	addBook *appbook.AddBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	rateBook *appbook.RateBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:   listBooks,
		searchBooks: searchBooks,
		listTitles:  listTitles,
		getBook:     getBook,
		addBook:     addBook,
		deleteBook:  deleteBook,
		rateBook:    rateBook,
	}
}

// RateBook 为图书评分
// @Summary      图书评分
// @Description  对指定ISBN的图书追加一个1-5星评分,返回更新后的整行
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        isbn13   path  string               true  "ISBN-13"
// @Param        request  body  dto.RateBookRequest  true  "评分"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.Message "starInserted must be a number from 1-5"
// @Failure      404 {object} response.Message "Book not found"
// @Failure      500 {object} response.Message
// @Router       /books/rating/{isbn13} [put]
func (h *BookHandler) RateBook(c *gin.Context) {
	// 1. star必须是整数,范围由用例校验
	var req dto.RateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, book.ErrInvalidStar)
		return
	}
	star, ok := req.ParseStar()
	if !ok {
		response.Error(c, book.ErrInvalidStar)
		return
	}

	// 2. 读改写
	updated, err := h.rateBook.Execute(c.Request.Context(), appbook.RateBookRequest{
		ISBN13: c.Param("isbn13"),
		Star:   star,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BookResponse{Book: dto.NewBookRow(updated)})
}

// ListBooks 分页列出标题
// @Summary      图书列表
// @Tags         图书
// @Produce      json
// @Param        page   query  int  false  "页码,默认1"
// @Param        limit  query  int  false  "每页条数,默认10,最大100"
// @Success      200 {object} dto.BookListResponse
// @Failure      500 {object} response.Message
// @Router       /books/all [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		// 非数字参数按默认值处理
		q = dto.PageQuery{}
	}

	result, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{Page: q.Page, Limit: q.Limit})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.BookListResponse{Books: dto.NewTitleEntries(result.Titles)}
	resp.Pagination = response.Pagination{Page: result.Page, Limit: result.Limit, TotalPages: result.TotalPages}
	response.OK(c, resp)
}

// SearchByTitle 标题模糊搜索(不区分大小写)
// @Summary      按标题搜索
// @Tags         图书
// @Produce      json
// @Param        title  path  string  true  "标题片段"
// @Success      200 {object} map[string][]dto.SearchEntry
// @Failure      404 {object} response.Message "No books found with that title"
// @Router       /books/title/{title} [get]
func (h *BookHandler) SearchByTitle(c *gin.Context) {
	books, err := h.searchBooks.Execute(c.Request.Context(), c.Param("title"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entries(c, dto.NewSearchEntries(books))
}

// ListTitles 全部标题升序
// @Summary      全部标题
// @Tags         图书
// @Produce      json
// @Success      200 {object} map[string][]dto.TitleEntry
// @Failure      404 {object} response.Message "No books found in database"
// @Router       /books/title [get]
func (h *BookHandler) ListTitles(c *gin.Context) {
	titles, err := h.listTitles.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entries(c, dto.NewTitleEntries(titles))
}

// GetByISBN 按isbn13查询标题
// @Summary      按ISBN查询
// @Tags         图书
// @Produce      json
// @Param        isbn13  path  string  true  "ISBN-13"
// @Success      200 {object} map[string]dto.TitleEntry
// @Failure      404 {object} response.Message "Book not found"
// @Failure      500 {object} response.Message "Server error - more than 1 ISBN found"
// @Router       /books/{isbn13} [get]
func (h *BookHandler) GetByISBN(c *gin.Context) {
	b, err := h.getBook.Execute(c.Request.Context(), c.Param("isbn13"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entry(c, http.StatusOK, dto.TitleEntry{Title: b.Title})
}

// AddBook 新增图书
// @Summary      新增图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request  body  dto.NewBookRequest  true  "图书"
// @Success      201 {object} map[string]dto.BookRow
// @Failure      400 {object} response.Message "Name exists"
// @Router       /books/new [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.NewBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, req.BindError(err))
		return
	}

	created, err := h.addBook.Execute(c.Request.Context(), appbook.AddBookRequest{
		ID:              req.ID,
		Title:           req.Title,
		Authors:         req.Authors,
		PublicationYear: req.PublicationYear,
		ISBN13:          req.ISBN13,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entry(c, http.StatusCreated, dto.NewBookRow(created))
}

// DeleteBook 按id删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Param        id  path  int  true  "图书id"
// @Success      200 {object} map[string]string
// @Failure      404 {object} response.Message "Name not found"
// @Router       /books/del/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, book.ErrNameNotFound)
		return
	}

	deleted, err := h.deleteBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entry(c, http.StatusOK, "Deleted: "+deleted.Title)
}
