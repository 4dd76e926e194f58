package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
)

func TestIsbnCheckDigit(t *testing.T) {
	assert.Equal(t, 4, isbnCheckDigit("978013235088")) // Clean Code
	assert.Equal(t, 7, isbnCheckDigit("978020148567")) // Refactoring
	assert.Equal(t, 2, isbnCheckDigit("978186197271"))
}

func TestBookFactory(t *testing.T) {
	f := newBookFactory(rand.New(rand.NewPCG(1, 2)), 2024)
	isbnPattern := regexp.MustCompile(`^978\d{10}$`)
	seen := make(map[string]bool)

	for i := 0; i < 500; i++ {
		attrs := f.Next()

		assert.Len(t, regexp.MustCompile(`\s+`).Split(attrs.Title, -1), 3)
		assert.NotEmpty(t, attrs.Author)
		assert.GreaterOrEqual(t, attrs.PublishedYear, 1980)
		assert.LessOrEqual(t, attrs.PublishedYear, 2024)
		require.Regexp(t, isbnPattern, attrs.ISBN)
		assert.Equal(t, int(attrs.ISBN[12]-'0'), isbnCheckDigit(attrs.ISBN[:12]))
		assert.False(t, seen[attrs.ISBN], "ISBN重复: %s", attrs.ISBN)
		seen[attrs.ISBN] = true
	}
}

func TestSeed(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			DBName:      fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
			AutoMigrate: true,
		},
	}
	db, err := database.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	svc := book.NewService(database.NewBookRepository(db, database.NewTxManager(db)))
	ctx := context.Background()

	created, skipped, err := seed(ctx, svc, newBookFactory(rand.New(rand.NewPCG(7, 7)), 2024), 20)
	require.NoError(t, err)
	assert.Equal(t, 20, created)
	assert.Equal(t, 0, skipped)

	t.Run("相同种子再跑一次全部跳过", func(t *testing.T) {
		created, skipped, err := seed(ctx, svc, newBookFactory(rand.New(rand.NewPCG(7, 7)), 2024), 20)
		require.NoError(t, err)
		assert.Equal(t, 0, created)
		assert.Equal(t, 20, skipped)
	})

	_, total, err := svc.ListBooks(ctx, book.ListParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 20, total)
}
