package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fyerfyer/reading-formatter/internal/database"
	"github.com/fyerfyer/reading-formatter/internal/models"
	"github.com/fyerfyer/reading-formatter/internal/reading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	// 使用唯一的内存数据库标识符
	dbName := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	require.NoError(t, err, "Failed to open in-memory database")

	require.NoError(t, database.AutoMigrate(db), "Failed to run migrations")

	originalDB := database.DB
	database.DB = db

	cleanup := func() {
		database.DB = originalDB
	}
	return db, cleanup
}

func newTestReading(t *testing.T, id, method string, createdAt time.Time) *models.Reading {
	t.Helper()
	rd := &models.Reading{
		ID:        id,
		Method:    method,
		Title:     reading.MethodTitle(method),
		Profile:   string(reading.ProfileGeneric),
		Content:   "性格分析：你很坚强。",
		CreatedAt: createdAt,
	}
	require.NoError(t, rd.SetBlocks([]reading.Block{
		{Category: reading.CategoryPersonality, Label: "性格分析", Text: "你很坚强。", Order: 0},
	}))
	return rd
}

func TestReadingRepository_CreateAndGet(t *testing.T) {
	_, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewReadingRepository()
	rd := newTestReading(t, "reading-1", "bazi", time.Now())

	require.NoError(t, repo.Create(rd))

	saved, err := repo.GetByID("reading-1")
	require.NoError(t, err)
	assert.Equal(t, "bazi", saved.Method)
	assert.Equal(t, "八字命理解读", saved.Title)
	assert.Equal(t, 1, saved.BlockCount)
	assert.False(t, saved.UpdatedAt.IsZero())

	blocks, err := saved.DecodeBlocks()
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "你很坚强。", blocks[0].Text)
}

func TestReadingRepository_CreateWithoutID(t *testing.T) {
	_, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewReadingRepository()
	err := repo.Create(&models.Reading{Profile: "generic", Content: "x"})
	assert.ErrorIs(t, err, models.ErrEmptyReadingID)
}

func TestReadingRepository_GetNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewReadingRepositoryWithDB(db)
	_, err := repo.GetByID("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrReadingNotFound))
}

func TestReadingRepository_List(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewReadingRepositoryWithDB(db)
	base := time.Now().Add(-time.Hour)
	for i, method := range []string{"bazi", "tarot", "bazi", "ziwei", "bazi"} {
		rd := newTestReading(t, fmt.Sprintf("reading-%d", i), method, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(rd))
	}

	t.Run("all with paging", func(t *testing.T) {
		items, total, err := repo.List(0, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, items, 2)
		assert.Equal(t, "reading-4", items[0].ID, "最新的记录在前")
		assert.Empty(t, items[0].Content, "列表不加载原文")
	})

	t.Run("filter by method", func(t *testing.T) {
		items, total, err := repo.List(0, 10, map[string]interface{}{"method": "bazi"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		for _, item := range items {
			assert.Equal(t, "bazi", item.Method)
		}
	})

	t.Run("offset beyond total", func(t *testing.T) {
		items, total, err := repo.List(10, 10, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Empty(t, items)
	})
}

func TestReadingRepository_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewReadingRepositoryWithDB(db)
	require.NoError(t, repo.Create(newTestReading(t, "to-delete", "tarot", time.Now())))

	require.NoError(t, repo.Delete("to-delete"))
	_, err := repo.GetByID("to-delete")
	assert.ErrorIs(t, err, models.ErrReadingNotFound)

	err = repo.Delete("to-delete")
	assert.ErrorIs(t, err, models.ErrReadingNotFound)
}
