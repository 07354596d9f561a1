package book

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FindRatings(ctx context.Context, isbn13 string) ([]RatingCounters, error) {
	args := m.Called(ctx, isbn13)
	rows, _ := args.Get(0).([]RatingCounters)
	return rows, args.Error(1)
}

func (m *mockRepository) LockRatings(ctx context.Context, isbn13 string) ([]RatingCounters, error) {
	args := m.Called(ctx, isbn13)
	rows, _ := args.Get(0).([]RatingCounters)
	return rows, args.Error(1)
}

func (m *mockRepository) UpdateRatings(ctx context.Context, isbn13 string, rating Rating) (*Book, error) {
	args := m.Called(ctx, isbn13, rating)
	b, _ := args.Get(0).(*Book)
	return b, args.Error(1)
}

func (m *mockRepository) FindByISBN(ctx context.Context, isbn13 string) ([]*Book, error) {
	args := m.Called(ctx, isbn13)
	books, _ := args.Get(0).([]*Book)
	return books, args.Error(1)
}

func (m *mockRepository) ListTitles(ctx context.Context, page Page) ([]string, int64, error) {
	args := m.Called(ctx, page)
	titles, _ := args.Get(0).([]string)
	return titles, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) SearchByTitle(ctx context.Context, fragment string) ([]*Book, error) {
	args := m.Called(ctx, fragment)
	books, _ := args.Get(0).([]*Book)
	return books, args.Error(1)
}

func (m *mockRepository) AllTitles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	titles, _ := args.Get(0).([]string)
	return titles, args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, b *Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepository) DeleteByID(ctx context.Context, id int64) (*Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*Book)
	return b, args.Error(1)
}

func TestGetByISBNRowCountPolicy(t *testing.T) {
	ctx := context.Background()
	dune := &Book{ID: 1, ISBN13: "9780441172719", Title: "Dune"}

	tests := []struct {
		name    string
		rows    []*Book
		wantErr error
	}{
		{"0行", nil, ErrBookNotFound},
		{"1行", []*Book{dune}, nil},
		{"多行", []*Book{dune, dune}, ErrMultipleISBN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			repo.On("FindByISBN", ctx, dune.ISBN13).Return(tt.rows, nil)

			got, err := NewService(repo).GetByISBN(ctx, dune.ISBN13)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, dune, got)
		})
	}
}

func TestGetByISBNStorageError(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("FindByISBN", ctx, "9780441172719").Return(nil, apperrors.Storage(errors.New("conn refused")))

	_, err := NewService(repo).GetByISBN(ctx, "9780441172719")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStorage))
}

func TestSingleRatings(t *testing.T) {
	_, err := SingleRatings(nil)
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = SingleRatings([]RatingCounters{{}, {}})
	assert.ErrorIs(t, err, ErrMultipleISBN)

	c, err := SingleRatings([]RatingCounters{{0, 0, 1, 0, 0}})
	require.NoError(t, err)
	assert.Equal(t, RatingCounters{0, 0, 1, 0, 0}, c)
}

func TestAddBook(t *testing.T) {
	ctx := context.Background()

	t.Run("原标题默认等于标题", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*book.Book")).Return(nil)

		b, err := NewService(repo).AddBook(ctx, &Book{ID: 7, ISBN13: "9780441172719", Title: "Dune"})
		require.NoError(t, err)
		assert.Equal(t, "Dune", b.OriginalTitle)
		repo.AssertExpectations(t)
	})

	t.Run("缺少标题", func(t *testing.T) {
		repo := new(mockRepository)
		_, err := NewService(repo).AddBook(ctx, &Book{ISBN13: "9780441172719"})
		assert.ErrorIs(t, err, ErrMissingTitle)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ISBN格式错误", func(t *testing.T) {
		repo := new(mockRepository)
		_, err := NewService(repo).AddBook(ctx, &Book{ISBN13: "978-0441", Title: "Dune"})
		assert.ErrorIs(t, err, ErrInvalidISBN)
	})

	t.Run("重复", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", ctx, mock.Anything).Return(ErrNameExists)
		_, err := NewService(repo).AddBook(ctx, &Book{ISBN13: "9780441172719", Title: "Dune"})
		assert.ErrorIs(t, err, ErrNameExists)
	})
}

func TestSearchAndAllTitlesEmpty(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("SearchByTitle", ctx, "zzz").Return([]*Book{}, nil)
	repo.On("AllTitles", ctx).Return([]string{}, nil)

	svc := NewService(repo)
	_, err := svc.SearchByTitle(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNoBooksWithTitle)

	_, err = svc.AllTitles(ctx)
	assert.ErrorIs(t, err, ErrNoBooks)
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, Page{Page: 1, Limit: 10}, NormalizePage(0, 0))
	assert.Equal(t, Page{Page: 3, Limit: 100}, NormalizePage(3, 1000))

	p := NormalizePage(2, 10)
	assert.Equal(t, 10, p.Offset())
	assert.Equal(t, 3, p.TotalPages(21))
	assert.Equal(t, 2, p.TotalPages(20))
	assert.Equal(t, 0, p.TotalPages(0))
}
