package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fyerfyer/reading-formatter/internal/cache"
	"github.com/fyerfyer/reading-formatter/internal/models"
	"github.com/fyerfyer/reading-formatter/internal/reading"
	"github.com/fyerfyer/reading-formatter/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// cacheKeyPrefix 格式化结果缓存键前缀
const cacheKeyPrefix = "reading"

// ErrEmptyContent 待格式化文本为空
var ErrEmptyContent = errors.New("content cannot be empty")

// ReadingService 解读格式化服务
// 负责调用格式化流程、缓存结果以及保存解读记录
type ReadingService struct {
	repo           repository.ReadingRepository // 解读记录仓储
	cache          cache.Cache                  // 格式化结果缓存，可为nil
	cacheTTL       time.Duration                // 缓存有效期
	defaultProfile reading.ProfileID            // 未指定配置时使用
	logger         *logrus.Logger               // 日志记录器
}

// ReadingOption 服务配置选项
type ReadingOption func(*ReadingService)

// CreateReadingInput 创建解读记录的参数
type CreateReadingInput struct {
	Method  string // 测算方式
	Profile string // 格式化配置，为空时使用默认配置
	Content string // 原始解读文本
}

// NewReadingService 创建解读格式化服务
func NewReadingService(repo repository.ReadingRepository, c cache.Cache, opts ...ReadingOption) *ReadingService {
	s := &ReadingService{
		repo:           repo,
		cache:          c,
		cacheTTL:       24 * time.Hour,
		defaultProfile: reading.ProfileGeneric,
		logger:         logrus.New(),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCacheTTL 设置缓存时间
func WithCacheTTL(ttl time.Duration) ReadingOption {
	return func(s *ReadingService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithDefaultProfile 设置默认格式化配置
func WithDefaultProfile(id string) ReadingOption {
	return func(s *ReadingService) {
		if reading.IsValidProfile(id) {
			s.defaultProfile = reading.ProfileID(id)
		}
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger *logrus.Logger) ReadingOption {
	return func(s *ReadingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// DefaultProfile 返回默认格式化配置
func (s *ReadingService) DefaultProfile() reading.ProfileID {
	return s.defaultProfile
}

// Preview 只格式化不保存，结果按配置和原文缓存
func (s *ReadingService) Preview(ctx context.Context, content, profile string) ([]reading.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	p, err := s.resolveProfile(profile)
	if err != nil {
		return nil, err
	}

	key := cache.ContentKey(cacheKeyPrefix, string(p.ID), content)
	if s.cache != nil {
		var cached []reading.Block
		found, err := cache.GetObject(s.cache, key, &cached)
		if err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Failed to read formatted blocks from cache")
		} else if found {
			s.logger.WithField("profile", p.ID).Debug("Formatted blocks served from cache")
			return cached, nil
		}
	}

	start := time.Now()
	blocks := p.Format(content)
	s.logger.WithFields(logrus.Fields{
		"profile":     p.ID,
		"content_len": len(content),
		"blocks":      len(blocks),
		"duration":    time.Since(start).String(),
	}).Debug("Content formatted")

	if s.cache != nil {
		if err := cache.SetObject(s.cache, key, blocks, s.cacheTTL); err != nil {
			// 缓存失败不影响主流程
			s.logger.WithError(err).Warn("Failed to cache formatted blocks")
		}
	}

	return blocks, nil
}

// Create 格式化并保存解读记录
func (s *ReadingService) Create(ctx context.Context, input CreateReadingInput) (*models.Reading, error) {
	p, err := s.resolveProfile(input.Profile)
	if err != nil {
		return nil, err
	}

	blocks, err := s.Preview(ctx, input.Content, string(p.ID))
	if err != nil {
		return nil, err
	}

	method := strings.ToLower(strings.TrimSpace(input.Method))
	rd := &models.Reading{
		ID:      uuid.New().String(),
		Method:  method,
		Title:   reading.MethodTitle(method),
		Profile: string(p.ID),
		Content: input.Content,
	}
	if err := rd.SetBlocks(blocks); err != nil {
		return nil, err
	}

	if err := s.repo.Create(rd); err != nil {
		s.logger.WithError(err).Error("Failed to save reading")
		return nil, fmt.Errorf("failed to save reading: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"reading_id": rd.ID,
		"method":     rd.Method,
		"profile":    rd.Profile,
		"blocks":     rd.BlockCount,
	}).Info("Reading created")

	return rd, nil
}

// Get 获取解读记录
func (s *ReadingService) Get(ctx context.Context, id string) (*models.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// List 分页列出解读记录，method为空时不筛选
func (s *ReadingService) List(ctx context.Context, offset, limit int, method string) ([]*models.Reading, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 10
	}

	filters := map[string]interface{}{}
	if method != "" {
		filters["method"] = strings.ToLower(method)
	}
	return s.repo.List(offset, limit, filters)
}

// Delete 删除解读记录
func (s *ReadingService) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.WithField("reading_id", id).Info("Reading deleted")
	return nil
}

func (s *ReadingService) resolveProfile(id string) (*reading.Profile, error) {
	if id == "" {
		id = string(s.defaultProfile)
	}
	return reading.LookupProfile(reading.ProfileID(id))
}
