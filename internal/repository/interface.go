package repository

import "github.com/fyerfyer/reading-formatter/internal/models"

// ReadingRepository 解读记录仓储接口
// 负责格式化结果的存储和检索
type ReadingRepository interface {
	// Create 创建解读记录
	Create(r *models.Reading) error

	// GetByID 根据ID获取记录，不存在时返回models.ErrReadingNotFound
	GetByID(id string) (*models.Reading, error)

	// List 列出记录，支持分页和按测算方式筛选
	List(offset, limit int, filters map[string]interface{}) ([]*models.Reading, int64, error)

	// Delete 删除记录，不存在时返回models.ErrReadingNotFound
	Delete(id string) error
}
