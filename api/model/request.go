package model

// PaginationRequest 分页请求参数
type PaginationRequest struct {
	Page     int `form:"page" json:"page" binding:"omitempty,min=1"`           // 当前页码，从1开始
	PageSize int `form:"page_size" json:"page_size" binding:"omitempty,min=1"` // 每页记录数
}

// GetPage 获取页码，默认为1
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页记录数，默认为10，最大为100
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 10
	}
	if p.PageSize > 100 {
		return 100
	}
	return p.PageSize
}

// Offset 根据页码计算偏移量
func (p *PaginationRequest) Offset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// FormatRequest 格式化预览请求
type FormatRequest struct {
	Content string `json:"content" binding:"required"`          // 原始解读文本
	Profile string `json:"profile" binding:"omitempty,profile"` // 格式化配置，可选
}

// CreateReadingRequest 创建解读记录请求
type CreateReadingRequest struct {
	Method  string `json:"method" binding:"required,max=32"`    // 测算方式，如bazi、tarot
	Profile string `json:"profile" binding:"omitempty,profile"` // 格式化配置，可选
	Content string `json:"content" binding:"required"`          // 原始解读文本
}

// ReadingIDRequest 按ID访问解读记录
type ReadingIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"` // 记录ID
}

// ReadingListRequest 解读记录列表请求
type ReadingListRequest struct {
	PaginationRequest
	Method string `form:"method" json:"method" binding:"omitempty,max=32"` // 按测算方式筛选
}

// ProfileRequest 查看单个配置
type ProfileRequest struct {
	ID string `form:"id" binding:"omitempty,profile"` // 配置ID，为空时返回全部
}
