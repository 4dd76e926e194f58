package book

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// mockBookService 领域服务的Mock
type mockBookService struct {
	mock.Mock
}

func (m *mockBookService) CreateBook(ctx context.Context, attrs book.Attributes) (*book.Book, error) {
	args := m.Called(ctx, attrs)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockBookService) UpdateBook(ctx context.Context, existing *book.Book, changes book.Changes) (*book.Book, error) {
	args := m.Called(ctx, existing, changes)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockBookService) DeleteBook(ctx context.Context, existing *book.Book) error {
	return m.Called(ctx, existing).Error(0)
}

func (m *mockBookService) GetBook(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockBookService) ListBooks(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	args := m.Called(ctx, params)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Get(1).(int64), args.Error(2)
}

func (m *mockBookService) ISBNTaken(ctx context.Context, isbn string, exceptID uint) (bool, error) {
	args := m.Called(ctx, isbn, exceptID)
	return args.Bool(0), args.Error(1)
}

func makeBooks(n int) []*book.Book {
	books := make([]*book.Book, n)
	for i := range books {
		books[i] = &book.Book{ID: uint(n - i)}
	}
	return books
}

func TestListBooksUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("第一页", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("ListBooks", mock.Anything, book.ListParams{Page: 1, PageSize: 10}).
			Return(makeBooks(10), int64(23), nil).Once()

		resp, err := NewListBooksUseCase(svc).Execute(ctx, ListBooksRequest{Page: 1})
		require.NoError(t, err)

		assert.Len(t, resp.Books, 10)
		assert.Equal(t, Paginator{CurrentPage: 1, PerPage: 10, Total: 23, LastPage: 3, From: 1, To: 10}, resp.Paginator)
		assert.False(t, resp.Paginator.HasPrev())
		assert.True(t, resp.Paginator.HasNext())
		svc.AssertExpectations(t)
	})

	t.Run("页码小于1按第1页", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("ListBooks", mock.Anything, book.ListParams{Page: 1, PageSize: 10}).
			Return(makeBooks(0), int64(0), nil).Once()

		resp, err := NewListBooksUseCase(svc).Execute(ctx, ListBooksRequest{Page: -3})
		require.NoError(t, err)

		assert.Empty(t, resp.Books)
		assert.Equal(t, 1, resp.Paginator.CurrentPage)
		assert.Equal(t, 1, resp.Paginator.LastPage)
		assert.Zero(t, resp.Paginator.From)
		assert.Zero(t, resp.Paginator.To)
		svc.AssertExpectations(t)
	})

	t.Run("页码过大时只查总数", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("ListBooks", mock.Anything, book.ListParams{Page: 1, PageSize: 10}).
			Return(makeBooks(3), int64(3), nil).Once()

		resp, err := NewListBooksUseCase(svc).Execute(ctx, ListBooksRequest{Page: MaxPage + 1})
		require.NoError(t, err)

		assert.Empty(t, resp.Books)
		assert.Equal(t, Paginator{CurrentPage: MaxPage + 1, PerPage: 10, Total: 3, LastPage: 1}, resp.Paginator)
		svc.AssertExpectations(t)
	})

	t.Run("MaxPage仍然正常查询", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("ListBooks", mock.Anything, book.ListParams{Page: MaxPage, PageSize: 10}).
			Return(makeBooks(0), int64(3), nil).Once()

		resp, err := NewListBooksUseCase(svc).Execute(ctx, ListBooksRequest{Page: MaxPage})
		require.NoError(t, err)

		assert.Empty(t, resp.Books)
		assert.Zero(t, resp.Paginator.From)
		svc.AssertExpectations(t)
	})

	t.Run("错误原样返回", func(t *testing.T) {
		svc := new(mockBookService)
		dbErr := errors.New("db down")
		svc.On("ListBooks", mock.Anything, mock.Anything).Return(nil, int64(0), dbErr).Once()

		_, err := NewListBooksUseCase(svc).Execute(ctx, ListBooksRequest{Page: 2})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestNewPaginator(t *testing.T) {
	testCases := []struct {
		name  string
		page  int
		total int64
		count int
		want  Paginator
	}{
		{"最后一页不满", 3, 23, 3, Paginator{CurrentPage: 3, PerPage: 10, Total: 23, LastPage: 3, From: 21, To: 23}},
		{"正好整页", 2, 20, 10, Paginator{CurrentPage: 2, PerPage: 10, Total: 20, LastPage: 2, From: 11, To: 20}},
		{"超出范围", 9, 12, 0, Paginator{CurrentPage: 9, PerPage: 10, Total: 12, LastPage: 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewPaginator(tc.page, 10, tc.total, tc.count)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 1, ParsePage("-2"))
	assert.Equal(t, 1, ParsePage("1.5"))
	assert.Equal(t, 4, ParsePage("4"))

	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.OneOf(
			rapid.String(),
			rapid.Map(rapid.Int(), strconv.Itoa),
		).Draw(t, "raw")

		page := ParsePage(raw)
		if page < 1 {
			t.Fatalf("ParsePage(%q) = %d", raw, page)
		}
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && page != n {
			t.Fatalf("ParsePage(%q) = %d, want %d", raw, page, n)
		}
	})
}
