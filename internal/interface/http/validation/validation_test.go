package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xiebiao/bookcatalog/pkg/optional"
)

type sample struct {
	Name  string                 `json:"name" binding:"required,max=5"`
	Year  int                    `json:"year" binding:"required,gte=1500,not_future_year"`
	Note  *string                `json:"note"`
	Extra optional.Optional[int] `json:"extra"`
}

func TestDecodeObject(t *testing.T) {
	t.Run("空请求体等同于空对象", func(t *testing.T) {
		fields, err := DecodeObject([]byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("null等同于空对象", func(t *testing.T) {
		fields, err := DecodeObject([]byte("null"))
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("语法错误", func(t *testing.T) {
		_, err := DecodeObject([]byte(`{"name":`))
		assert.ErrorIs(t, err, ErrMalformedBody)
	})

	t.Run("顶层不是对象", func(t *testing.T) {
		_, err := DecodeObject([]byte(`[1,2]`))
		assert.ErrorIs(t, err, ErrMalformedBody)
	})
}

func TestDecodeFields(t *testing.T) {
	fields, err := DecodeObject([]byte(`{"name": 12, "year": "abc", "note": "hi", "extra": null, "unknown": true}`))
	require.NoError(t, err)

	var s sample
	bag := NewErrors()
	DecodeFields(fields, &s, bag)

	assert.Equal(t, []string{"The name field must be a string."}, bag.Fields()["name"])
	assert.Equal(t, []string{"The year field must be an integer."}, bag.Fields()["year"])
	require.NotNil(t, s.Note)
	assert.Equal(t, "hi", *s.Note)
	assert.True(t, s.Extra.IsNull())
	assert.False(t, bag.Has("unknown"))
}

func TestDecodeFields_Normalize(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr bool
		want    int
	}{
		{"整数", `{"year": 2008}`, false, 2008},
		{"小数部分为0", `{"year": 2008.0}`, false, 2008},
		{"科学计数法", `{"year": 2.008e3}`, false, 2008},
		{"整数字符串", `{"year": "2008"}`, false, 2008},
		{"带空白和符号的整数字符串", `{"year": " +2008 "}`, false, 2008},
		{"小数", `{"year": 2008.5}`, true, 0},
		{"小数字符串", `{"year": "2008.0"}`, true, 0},
		{"布尔值", `{"year": true}`, true, 0},
		{"超出范围", `{"year": 1e30}`, true, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fields, err := DecodeObject([]byte(tc.body))
			require.NoError(t, err)

			var s sample
			bag := NewErrors()
			DecodeFields(fields, &s, bag)

			if tc.wantErr {
				assert.Equal(t, []string{"The year field must be an integer."}, bag.Fields()["year"])
				return
			}
			assert.True(t, bag.Empty())
			assert.Equal(t, tc.want, s.Year)
		})
	}

	t.Run("字符串去掉首尾空白", func(t *testing.T) {
		fields, err := DecodeObject([]byte(`{"name": "  Bob\n", "note": " <b> "}`))
		require.NoError(t, err)

		var s sample
		bag := NewErrors()
		DecodeFields(fields, &s, bag)

		assert.True(t, bag.Empty())
		assert.Equal(t, "Bob", s.Name)
		require.NotNil(t, s.Note)
		assert.Equal(t, "<b>", *s.Note)
	})

	t.Run("null不受影响", func(t *testing.T) {
		fields, err := DecodeObject([]byte(`{"note": null, "extra": null}`))
		require.NoError(t, err)

		var s sample
		bag := NewErrors()
		DecodeFields(fields, &s, bag)

		assert.Nil(t, s.Note)
		assert.True(t, s.Extra.IsNull())
	})
}

func TestStruct(t *testing.T) {
	t.Run("收集所有字段的错误", func(t *testing.T) {
		bag := NewErrors()
		require.NoError(t, Struct(&sample{Name: "toolong", Year: 1400}, bag))

		assert.Equal(t, []string{"The name field must not be greater than 5 characters."}, bag.Fields()["name"])
		assert.Equal(t, []string{"The year field must be at least 1500."}, bag.Fields()["year"])
	})

	t.Run("缺少必填字段", func(t *testing.T) {
		bag := NewErrors()
		require.NoError(t, Struct(&sample{}, bag))

		assert.Equal(t, []string{"The name field is required."}, bag.Fields()["name"])
		assert.Equal(t, []string{"The year field is required."}, bag.Fields()["year"])
	})

	t.Run("年份不能是未来", func(t *testing.T) {
		bag := NewErrors()
		require.NoError(t, Struct(&sample{Name: "ok", Year: time.Now().Year() + 1}, bag))

		assert.Equal(t,
			[]string{fmt.Sprintf("The year field must not be greater than %d.", time.Now().Year())},
			bag.Fields()["year"])
	})

	t.Run("已有类型错误的字段不重复报告", func(t *testing.T) {
		bag := NewErrors()
		bag.Add("name", TypeMessage("name", reflect.String))
		require.NoError(t, Struct(&sample{Year: 2000}, bag))

		assert.Len(t, bag.Fields()["name"], 1)
	})

	t.Run("合法", func(t *testing.T) {
		bag := NewErrors()
		require.NoError(t, Struct(&sample{Name: "ok", Year: 2000}, bag))
		assert.True(t, bag.Empty())
	})
}

func TestVar(t *testing.T) {
	bag := NewErrors()
	require.NoError(t, Var("published_year", 1499, "gte=1500,not_future_year", bag))
	require.NoError(t, Var("title", "abc", "max=255", bag))

	assert.Equal(t, []string{"The published year field must be at least 1500."}, bag.Fields()["published_year"])
	assert.False(t, bag.Has("title"))
}

func TestErrors_Message(t *testing.T) {
	bag := NewErrors()
	assert.True(t, bag.Empty())

	bag.Add("title", "The title field is required.")
	assert.Equal(t, "The title field is required.", bag.Message())

	bag.Add("isbn", "The isbn has already been taken.")
	assert.Equal(t, "The title field is required. (and 1 more error)", bag.Message())

	bag.Add("isbn", "The isbn field must not be greater than 20 characters.")
	assert.Equal(t, "The title field is required. (and 2 more errors)", bag.Message())

	data, err := json.Marshal(bag)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": ["The title field is required."],
		"isbn": ["The isbn has already been taken.", "The isbn field must not be greater than 20 characters."]
	}`, string(data))
}

// TestYearRange 年份在[1500, 今年]之间当且仅当没有错误
func TestYearRange(t *testing.T) {
	current := time.Now().Year()
	rapid.Check(t, func(t *rapid.T) {
		year := rapid.IntRange(0, current+500).Draw(t, "year")

		bag := NewErrors()
		if err := Var("published_year", year, "gte=1500,not_future_year", bag); err != nil {
			t.Fatal(err)
		}

		valid := year >= 1500 && year <= current
		if valid == bag.Has("published_year") {
			t.Fatalf("year %d: valid=%v errors=%v", year, valid, bag.Fields())
		}
	})
}
