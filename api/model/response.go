package model

import (
	"time"

	"github.com/fyerfyer/reading-formatter/internal/models"
	"github.com/fyerfyer/reading-formatter/internal/reading"
)

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`               // 响应状态码，0表示成功
	Message string      `json:"message"`            // 响应消息
	Data    interface{} `json:"data,omitempty"`     // 响应数据，可能为空
	TraceID string      `json:"trace_id,omitempty"` // 调用链追踪ID
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string) *Response {
	return &Response{
		Code:    code,
		Message: message,
	}
}

// FormatResponse 格式化预览响应
type FormatResponse struct {
	Profile string          `json:"profile"` // 实际使用的配置
	Count   int             `json:"count"`   // 内容块数量
	Blocks  []reading.Block `json:"blocks"`  // 内容块
}

// ReadingResponse 解读记录详情
type ReadingResponse struct {
	ID         string          `json:"id"`          // 记录ID
	Method     string          `json:"method"`      // 测算方式
	Title      string          `json:"title"`       // 展示标题
	Profile    string          `json:"profile"`     // 使用的配置
	BlockCount int             `json:"block_count"` // 内容块数量
	Blocks     []reading.Block `json:"blocks"`      // 内容块
	CreatedAt  time.Time       `json:"created_at"`  // 创建时间
}

// ReadingInfo 列表中的解读记录摘要
type ReadingInfo struct {
	ID         string    `json:"id"`          // 记录ID
	Method     string    `json:"method"`      // 测算方式
	Title      string    `json:"title"`       // 展示标题
	Profile    string    `json:"profile"`     // 使用的配置
	BlockCount int       `json:"block_count"` // 内容块数量
	CreatedAt  time.Time `json:"created_at"`  // 创建时间
}

// ReadingListResponse 解读记录列表响应
type ReadingListResponse struct {
	Total    int64         `json:"total"`     // 总数量
	Page     int           `json:"page"`      // 当前页码
	PageSize int           `json:"page_size"` // 每页大小
	Readings []ReadingInfo `json:"readings"`  // 记录列表
}

// ReadingDeleteResponse 删除解读记录响应
type ReadingDeleteResponse struct {
	Success bool   `json:"success"` // 是否成功
	ID      string `json:"id"`      // 记录ID
}

// CategoryInfo 分类及其展示名称
type CategoryInfo struct {
	Category reading.Category `json:"category"`
	Label    string           `json:"label"`
}

// ProfileInfo 配置摘要
type ProfileInfo struct {
	ID               reading.ProfileID `json:"id"`
	Name             string            `json:"name"`
	MinUnitLength    int               `json:"min_unit_length"`
	ResplitThreshold int               `json:"resplit_threshold"`
	Categories       []CategoryInfo    `json:"categories"` // 按规则顺序排列
}

// NewReadingInfo 转换为列表摘要
func NewReadingInfo(r *models.Reading) ReadingInfo {
	return ReadingInfo{
		ID:         r.ID,
		Method:     r.Method,
		Title:      r.Title,
		Profile:    r.Profile,
		BlockCount: r.BlockCount,
		CreatedAt:  r.CreatedAt,
	}
}

// NewProfileInfo 转换为配置摘要
func NewProfileInfo(p *reading.Profile) ProfileInfo {
	categories := make([]CategoryInfo, 0, len(p.Rules)+1)
	for _, rule := range p.Rules {
		categories = append(categories, CategoryInfo{Category: rule.Category, Label: p.Label(rule.Category)})
	}
	categories = append(categories, CategoryInfo{Category: p.DefaultCategory, Label: p.Label(p.DefaultCategory)})

	return ProfileInfo{
		ID:               p.ID,
		Name:             p.Name,
		MinUnitLength:    p.MinUnitLength,
		ResplitThreshold: p.ResplitThreshold,
		Categories:       categories,
	}
}
