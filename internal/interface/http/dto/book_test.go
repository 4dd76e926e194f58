package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/validation"
)

func TestDecodeStoreBook(t *testing.T) {
	t.Run("合法请求", func(t *testing.T) {
		req, bag, err := DecodeStoreBook([]byte(`{"title":"Clean Code","author":"Robert C. Martin","published_year":2008,"isbn":"9780132350884"}`))
		require.NoError(t, err)
		assert.True(t, bag.Empty())

		attrs := req.Attributes()
		assert.Equal(t, "Clean Code", attrs.Title)
		assert.Equal(t, 2008, attrs.PublishedYear)
		assert.Nil(t, attrs.Description)
	})

	t.Run("出版年份太早", func(t *testing.T) {
		_, bag, err := DecodeStoreBook([]byte(`{"title":"Old","author":"A","published_year":1400,"isbn":"1"}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"The published year field must be at least 1500."}, bag.Fields()["published_year"])
		assert.Len(t, bag.Fields(), 1)
	})

	t.Run("空请求体报告全部必填字段", func(t *testing.T) {
		_, bag, err := DecodeStoreBook(nil)
		require.NoError(t, err)
		for _, field := range []string{"title", "author", "published_year", "isbn"} {
			assert.True(t, bag.Has(field), field)
		}
		assert.False(t, bag.Has("description"))
	})

	t.Run("类型错误", func(t *testing.T) {
		_, bag, err := DecodeStoreBook([]byte(`{"title":["x"],"author":"A","published_year":"2008a","isbn":"1"}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"The title field must be a string."}, bag.Fields()["title"])
		assert.Equal(t, []string{"The published year field must be an integer."}, bag.Fields()["published_year"])
	})

	t.Run("整数写法的出版年份", func(t *testing.T) {
		for _, year := range []string{`"2008"`, `2008.0`, `" 2008 "`} {
			req, bag, err := DecodeStoreBook([]byte(`{"title":"T","author":"A","published_year":` + year + `,"isbn":"1"}`))
			require.NoError(t, err)
			assert.True(t, bag.Empty(), year)
			assert.Equal(t, 2008, req.PublishedYear, year)
		}
	})

	t.Run("字符串去掉首尾空白", func(t *testing.T) {
		req, bag, err := DecodeStoreBook([]byte(`{"title":"  Clean Code ","author":"   ","published_year":2008,"isbn":" 978 ","description":"  "}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"The author field is required."}, bag.Fields()["author"])
		assert.Len(t, bag.Fields(), 1)

		attrs := req.Attributes()
		assert.Equal(t, "Clean Code", attrs.Title)
		assert.Equal(t, "978", attrs.ISBN)
		assert.Nil(t, attrs.Description)
	})

	t.Run("请求体不是JSON", func(t *testing.T) {
		_, _, err := DecodeStoreBook([]byte(`title=x`))
		assert.ErrorIs(t, err, validation.ErrMalformedBody)
	})
}

func TestDecodeUpdateBook(t *testing.T) {
	t.Run("只包含提供的字段", func(t *testing.T) {
		req, bag, err := DecodeUpdateBook([]byte(`{"title":"New"}`))
		require.NoError(t, err)
		assert.True(t, bag.Empty())

		changes := req.Changes()
		assert.True(t, changes.Title.Valid)
		assert.Equal(t, "New", changes.Title.Value)
		assert.False(t, changes.Author.Set)
		assert.False(t, changes.ISBN.Set)
		assert.False(t, changes.Description.Set)
	})

	t.Run("空对象", func(t *testing.T) {
		req, bag, err := DecodeUpdateBook([]byte(`{}`))
		require.NoError(t, err)
		assert.True(t, bag.Empty())
		assert.True(t, req.Changes().IsEmpty())
	})

	t.Run("description可以为null", func(t *testing.T) {
		req, bag, err := DecodeUpdateBook([]byte(`{"description":null}`))
		require.NoError(t, err)
		assert.True(t, bag.Empty())
		assert.True(t, req.Changes().Description.IsNull())
	})

	t.Run("空的description等同于null", func(t *testing.T) {
		req, bag, err := DecodeUpdateBook([]byte(`{"description":" "}`))
		require.NoError(t, err)
		assert.True(t, bag.Empty())
		assert.True(t, req.Changes().Description.IsNull())
	})

	t.Run("只有空白的title是缺失", func(t *testing.T) {
		_, bag, err := DecodeUpdateBook([]byte(`{"title":" \t "}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"The title field is required."}, bag.Fields()["title"])
	})

	t.Run("其他字段不能为null", func(t *testing.T) {
		_, bag, err := DecodeUpdateBook([]byte(`{"title":null,"published_year":null}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"The title field must be a string."}, bag.Fields()["title"])
		assert.Equal(t, []string{"The published year field must be an integer."}, bag.Fields()["published_year"])
	})

	t.Run("提供的字段按创建规则校验", func(t *testing.T) {
		_, bag, err := DecodeUpdateBook([]byte(`{"title":"","isbn":"123456789012345678901","published_year":3000}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"The title field is required."}, bag.Fields()["title"])
		assert.Equal(t, []string{"The isbn field must not be greater than 20 characters."}, bag.Fields()["isbn"])
		assert.True(t, bag.Has("published_year"))
	})
}

func TestNewBookResource(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.FixedZone("CST", 8*3600))
	b := &book.Book{ID: 1, Title: "T", Author: "A", PublishedYear: 2008, ISBN: "X", CreatedAt: ts}

	data, err := json.Marshal(NewBookResource(b))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 1, "title": "T", "author": "A", "published_year": 2008, "isbn": "X",
		"created_at": "2024-01-15T02:30:00.123456Z",
		"updated_at": null
	}`, string(data))
}

func TestNewBookCollection(t *testing.T) {
	t.Run("中间页", func(t *testing.T) {
		books := []*book.Book{{ID: 13}, {ID: 12}}
		p := appbook.NewPaginator(2, 10, 23, 10)

		c := NewBookCollection(books, p, "http://localhost/books")

		assert.Len(t, c.Data, 2)
		assert.Equal(t, "http://localhost/books?page=1", c.Links.First)
		assert.Equal(t, "http://localhost/books?page=3", c.Links.Last)
		require.NotNil(t, c.Links.Prev)
		assert.Equal(t, "http://localhost/books?page=1", *c.Links.Prev)
		require.NotNil(t, c.Links.Next)
		assert.Equal(t, "http://localhost/books?page=3", *c.Links.Next)
		assert.Equal(t, 11, *c.Meta.From)
		assert.Equal(t, 20, *c.Meta.To)
	})

	t.Run("空列表", func(t *testing.T) {
		c := NewBookCollection(nil, appbook.NewPaginator(1, 10, 0, 0), "/books")

		data, err := json.Marshal(c)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"data": [],
			"links": {"first": "/books?page=1", "last": "/books?page=1", "prev": null, "next": null},
			"meta": {"current_page": 1, "from": null, "last_page": 1, "path": "/books", "per_page": 10, "to": null, "total": 0}
		}`, string(data))
	})
}
