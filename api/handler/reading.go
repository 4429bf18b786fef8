package handler

import (
	"errors"
	"net/http"

	"github.com/fyerfyer/reading-formatter/api/middleware"
	"github.com/fyerfyer/reading-formatter/api/model"
	"github.com/fyerfyer/reading-formatter/internal/models"
	"github.com/fyerfyer/reading-formatter/internal/reading"
	"github.com/fyerfyer/reading-formatter/internal/render"
	"github.com/fyerfyer/reading-formatter/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// defaultMaxContentSize 单次请求文本上限（字节）
const defaultMaxContentSize = 1 << 20

// ReadingHandler 处理解读格式化相关的API请求
type ReadingHandler struct {
	readingService *services.ReadingService // 解读服务
	maxContentSize int                      // 文本上限
	logger         *logrus.Logger           // 日志记录器
}

// NewReadingHandler 创建新的解读处理器，maxContentSize不大于0时使用默认值
func NewReadingHandler(readingService *services.ReadingService, maxContentSize int) *ReadingHandler {
	if maxContentSize <= 0 {
		maxContentSize = defaultMaxContentSize
	}
	return &ReadingHandler{
		readingService: readingService,
		maxContentSize: maxContentSize,
		logger:         middleware.GetLogger(),
	}
}

// FormatContent 格式化预览，不保存
// POST /api/format
func (h *ReadingHandler) FormatContent(c *gin.Context) {
	var req model.FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, middleware.NewValidationError("无效的请求参数", err.Error()))
		return
	}
	if !h.checkSize(c, req.Content) {
		return
	}

	profile := req.Profile
	if profile == "" {
		profile = string(h.readingService.DefaultProfile())
	}

	blocks, err := h.readingService.Preview(c.Request.Context(), req.Content, profile)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.FormatResponse{
		Profile: profile,
		Count:   len(blocks),
		Blocks:  blocks,
	}))
}

// CreateReading 格式化并保存解读记录
// POST /api/readings
func (h *ReadingHandler) CreateReading(c *gin.Context) {
	var req model.CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, middleware.NewValidationError("无效的请求参数", err.Error()))
		return
	}
	if !h.checkSize(c, req.Content) {
		return
	}

	rd, err := h.readingService.Create(c.Request.Context(), services.CreateReadingInput{
		Method:  req.Method,
		Profile: req.Profile,
		Content: req.Content,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp, err := toReadingResponse(rd)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(resp))
}

// GetReading 获取解读记录详情
// GET /api/readings/:id
func (h *ReadingHandler) GetReading(c *gin.Context) {
	rd, ok := h.loadReading(c)
	if !ok {
		return
	}

	resp, err := toReadingResponse(rd)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(resp))
}

// PrintReading 返回可打印的HTML页面
// GET /api/readings/:id/print
func (h *ReadingHandler) PrintReading(c *gin.Context) {
	rd, ok := h.loadReading(c)
	if !ok {
		return
	}

	blocks, err := rd.DecodeBlocks()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	page := render.HTML(rd.Title, blocks)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// ListReadings 获取解读记录列表
// GET /api/readings
func (h *ReadingHandler) ListReadings(c *gin.Context) {
	var req model.ReadingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleError(c, middleware.NewValidationError("无效的查询参数", err.Error()))
		return
	}

	items, total, err := h.readingService.List(c.Request.Context(), req.Offset(), req.GetPageSize(), req.Method)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	infos := make([]model.ReadingInfo, 0, len(items))
	for _, item := range items {
		infos = append(infos, model.NewReadingInfo(item))
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.ReadingListResponse{
		Total:    total,
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
		Readings: infos,
	}))
}

// DeleteReading 删除解读记录
// DELETE /api/readings/:id
func (h *ReadingHandler) DeleteReading(c *gin.Context) {
	var req model.ReadingIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleError(c, middleware.NewValidationError("无效的记录ID", err.Error()))
		return
	}

	if err := h.readingService.Delete(c.Request.Context(), req.ID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.ReadingDeleteResponse{
		Success: true,
		ID:      req.ID,
	}))
}

// ListProfiles 列出可用的格式化配置
// GET /api/profiles
func (h *ReadingHandler) ListProfiles(c *gin.Context) {
	var req model.ProfileRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleError(c, middleware.NewValidationError("无效的配置ID", err.Error()))
		return
	}

	infos := []model.ProfileInfo{}
	for _, p := range reading.Profiles() {
		if req.ID != "" && string(p.ID) != req.ID {
			continue
		}
		infos = append(infos, model.NewProfileInfo(p))
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(infos))
}

func (h *ReadingHandler) loadReading(c *gin.Context) (*models.Reading, bool) {
	var req model.ReadingIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleError(c, middleware.NewValidationError("无效的记录ID", err.Error()))
		return nil, false
	}

	rd, err := h.readingService.Get(c.Request.Context(), req.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return nil, false
	}
	return rd, true
}

func (h *ReadingHandler) checkSize(c *gin.Context, content string) bool {
	if len(content) > h.maxContentSize {
		middleware.HandleError(c, middleware.NewBusinessError("文本内容过长"))
		return false
	}
	return true
}

// handleServiceError 将服务层错误转换为API错误
func (h *ReadingHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrReadingNotFound):
		middleware.HandleError(c, middleware.NewNotFoundError("解读记录不存在"))
	case errors.Is(err, reading.ErrUnknownProfile):
		middleware.HandleError(c, middleware.NewValidationError("未知的格式化配置", err.Error()))
	case errors.Is(err, services.ErrEmptyContent):
		middleware.HandleError(c, middleware.NewValidationError("文本内容不能为空"))
	default:
		h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Reading request failed")
		middleware.HandleError(c, middleware.NewInternalError("处理解读请求失败", err.Error()))
	}
}

func toReadingResponse(rd *models.Reading) (model.ReadingResponse, error) {
	blocks, err := rd.DecodeBlocks()
	if err != nil {
		return model.ReadingResponse{}, err
	}
	return model.ReadingResponse{
		ID:         rd.ID,
		Method:     rd.Method,
		Title:      rd.Title,
		Profile:    rd.Profile,
		BlockCount: rd.BlockCount,
		Blocks:     blocks,
		CreatedAt:  rd.CreatedAt,
	}, nil
}
