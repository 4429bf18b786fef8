package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fyerfyer/reading-formatter/internal/reading"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reading 已格式化的解读记录
// 保存原文和格式化结果，供打印页面和历史查询使用
type Reading struct {
	ID         string         `gorm:"primaryKey;size:36"` // 记录ID，UUID
	Method     string         `gorm:"size:32;index"`      // 测算方式，如bazi、tarot
	Title      string         `gorm:"size:128"`           // 展示标题
	Profile    string         `gorm:"size:16;not null"`   // 使用的格式化配置
	Content    string         `gorm:"type:text;not null"` // 原始文本
	Blocks     datatypes.JSON `gorm:"type:json"`          // 格式化后的内容块
	BlockCount int            `gorm:"not null;default:0"` // 内容块数量
	CreatedAt  time.Time      `gorm:"not null;index"`     // 创建时间
	UpdatedAt  time.Time      `gorm:"not null"`           // 更新时间
}

// BeforeCreate GORM的钩子函数，创建记录前自动设置时间
func (r *Reading) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	return nil
}

// BeforeUpdate GORM的钩子函数，更新记录前自动设置更新时间
func (r *Reading) BeforeUpdate(tx *gorm.DB) (err error) {
	r.UpdatedAt = time.Now()
	return nil
}

// TableName 明确指定表名
func (Reading) TableName() string {
	return "readings"
}

// SetBlocks 写入内容块并同步数量
func (r *Reading) SetBlocks(blocks []reading.Block) error {
	data, err := json.Marshal(blocks)
	if err != nil {
		return fmt.Errorf("failed to encode blocks: %w", err)
	}
	r.Blocks = datatypes.JSON(data)
	r.BlockCount = len(blocks)
	return nil
}

// DecodeBlocks 解析保存的内容块
func (r *Reading) DecodeBlocks() ([]reading.Block, error) {
	blocks := []reading.Block{}
	if len(r.Blocks) == 0 {
		return blocks, nil
	}
	if err := json.Unmarshal(r.Blocks, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode blocks of reading %s: %w", r.ID, err)
	}
	return blocks, nil
}
