package repository

import (
	"errors"
	"fmt"

	"github.com/fyerfyer/reading-formatter/internal/database"
	"github.com/fyerfyer/reading-formatter/internal/models"
	"gorm.io/gorm"
)

// readingRepository 解读记录仓储实现
type readingRepository struct {
	db *gorm.DB
}

// NewReadingRepository 使用全局数据库连接创建仓储实例
func NewReadingRepository() ReadingRepository {
	return &readingRepository{db: database.MustDB()}
}

// NewReadingRepositoryWithDB 使用指定的数据库连接创建仓储实例
func NewReadingRepositoryWithDB(db *gorm.DB) ReadingRepository {
	if db == nil {
		db = database.MustDB()
	}
	return &readingRepository{db: db}
}

// Create 创建解读记录
func (r *readingRepository) Create(rd *models.Reading) error {
	if rd.ID == "" {
		return models.ErrEmptyReadingID
	}
	return r.db.Create(rd).Error
}

// GetByID 根据ID获取记录
func (r *readingRepository) GetByID(id string) (*models.Reading, error) {
	var rd models.Reading
	err := r.db.Where("id = ?", id).First(&rd).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrReadingNotFound, id)
		}
		return nil, err
	}
	return &rd, nil
}

// List 列出记录，按创建时间倒序
// 支持的筛选条件：method、profile
func (r *readingRepository) List(offset, limit int, filters map[string]interface{}) ([]*models.Reading, int64, error) {
	var readings []*models.Reading
	var total int64

	if err := r.filtered(filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 列表页不需要原文和内容块
	err := r.filtered(filters).
		Select("id", "method", "title", "profile", "block_count", "created_at", "updated_at").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&readings).Error
	if err != nil {
		return nil, 0, err
	}

	return readings, total, nil
}

// filtered 每次返回新的查询，计数和分页互不影响
func (r *readingRepository) filtered(filters map[string]interface{}) *gorm.DB {
	query := r.db.Model(&models.Reading{})
	if method, ok := filters["method"].(string); ok && method != "" {
		query = query.Where("method = ?", method)
	}
	if profile, ok := filters["profile"].(string); ok && profile != "" {
		query = query.Where("profile = ?", profile)
	}
	return query
}

// Delete 删除记录
func (r *readingRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Reading{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", models.ErrReadingNotFound, id)
	}
	return nil
}
