package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fyerfyer/reading-formatter/api/handler"
	"github.com/fyerfyer/reading-formatter/api/model"
	"github.com/fyerfyer/reading-formatter/internal/cache"
	"github.com/fyerfyer/reading-formatter/internal/database"
	"github.com/fyerfyer/reading-formatter/internal/reading"
	"github.com/fyerfyer/reading-formatter/internal/repository"
	"github.com/fyerfyer/reading-formatter/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContent = "性格分析：你很坚强。\n\n性格分析：你很坚强。\n\n事业发展：适合创业。"

// apiResponse 用于解析通用响应
type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	TraceID string          `json:"trace_id"`
}

// 创建测试路由，使用内存SQLite和内存缓存
func setupTestRouter(t *testing.T, maxContentSize int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dsn := fmt.Sprintf("file:api_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := database.Open(&database.Config{Type: "sqlite", DSN: dsn}, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	c, err := cache.NewMemoryCache(cache.DefaultConfig())
	require.NoError(t, err)

	svc := services.NewReadingService(
		repository.NewReadingRepositoryWithDB(db),
		c,
		services.WithLogger(logger),
	)
	return SetupRouter(handler.NewReadingHandler(svc, maxContentSize))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp apiResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func TestFormatEndpoint(t *testing.T) {
	router := setupTestRouter(t, 0)

	t.Run("default profile", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPost, "/api/format", gin.H{"content": sampleContent})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 0, resp.Code)

		var data model.FormatResponse
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "generic", data.Profile)
		assert.Equal(t, 2, data.Count)
		assert.Equal(t, reading.CategoryPersonality, data.Blocks[0].Category)
		assert.Equal(t, "适合创业。", data.Blocks[1].Text)
	})

	t.Run("guidance items", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPost, "/api/format", gin.H{
			"content": "建议：早睡早起。多喝水。",
			"profile": "generic",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var data model.FormatResponse
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.Len(t, data.Blocks, 2)
		assert.True(t, data.Blocks[0].Item)
	})

	t.Run("unknown profile", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPost, "/api/format", gin.H{
			"content": sampleContent,
			"profile": "astro",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.NotEmpty(t, resp.TraceID)
	})

	t.Run("missing content", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPost, "/api/format", gin.H{"profile": "plain"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("blank content", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPost, "/api/format", gin.H{"content": "   "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "文本内容不能为空", resp.Message)
	})
}

func TestFormatEndpointContentLimit(t *testing.T) {
	router := setupTestRouter(t, 16)

	w, resp := doJSON(t, router, http.MethodPost, "/api/format", gin.H{"content": sampleContent})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "文本内容过长", resp.Message)
}

func TestReadingLifecycle(t *testing.T) {
	router := setupTestRouter(t, 0)

	// 创建
	w, resp := doJSON(t, router, http.MethodPost, "/api/readings", gin.H{
		"method":  "bazi",
		"content": sampleContent,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created model.ReadingResponse
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "八字命理解读", created.Title)
	assert.Equal(t, 2, created.BlockCount)

	// 详情
	w, resp = doJSON(t, router, http.MethodGet, "/api/readings/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail model.ReadingResponse
	require.NoError(t, json.Unmarshal(resp.Data, &detail))
	assert.Equal(t, created.Blocks, detail.Blocks)

	// 打印页面
	req := httptest.NewRequest(http.MethodGet, "/api/readings/"+created.ID+"/print", nil)
	pw := httptest.NewRecorder()
	router.ServeHTTP(pw, req)
	require.Equal(t, http.StatusOK, pw.Code)
	assert.Contains(t, pw.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, pw.Body.String(), "<h2>性格分析</h2>")
	assert.Contains(t, pw.Body.String(), "<h2>事业发展</h2>")

	// 列表
	w, resp = doJSON(t, router, http.MethodGet, "/api/readings?method=bazi&page=1&page_size=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list model.ReadingListResponse
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, 5, list.PageSize)
	require.Len(t, list.Readings, 1)
	assert.Equal(t, created.ID, list.Readings[0].ID)

	w, resp = doJSON(t, router, http.MethodGet, "/api/readings?method=tarot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(0), list.Total)

	// 删除
	w, _ = doJSON(t, router, http.MethodDelete, "/api/readings/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, router, http.MethodGet, "/api/readings/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/api/readings/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReadingValidation(t *testing.T) {
	router := setupTestRouter(t, 0)

	w, _ := doJSON(t, router, http.MethodPost, "/api/readings", gin.H{"content": sampleContent})
	assert.Equal(t, http.StatusBadRequest, w.Code, "缺少测算方式")

	w, _ = doJSON(t, router, http.MethodPost, "/api/readings", gin.H{
		"method":  "tarot",
		"profile": "Tarot",
		"content": sampleContent,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "配置ID区分大小写")
}

func TestGetReadingInvalidID(t *testing.T) {
	router := setupTestRouter(t, 0)

	w, _ := doJSON(t, router, http.MethodGet, "/api/readings/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProfiles(t *testing.T) {
	router := setupTestRouter(t, 0)

	w, resp := doJSON(t, router, http.MethodGet, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []model.ProfileInfo
	require.NoError(t, json.Unmarshal(resp.Data, &all))
	require.Len(t, all, 3)
	assert.Equal(t, reading.ProfileGeneric, all[0].ID)

	w, resp = doJSON(t, router, http.MethodGet, "/api/profiles?id=tarot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var one []model.ProfileInfo
	require.NoError(t, json.Unmarshal(resp.Data, &one))
	require.Len(t, one, 1)
	assert.Equal(t, "塔罗牌解读", one[0].Name)

	w, _ = doJSON(t, router, http.MethodGet, "/api/profiles?id=unknown", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTraceIDHeader(t *testing.T) {
	router := setupTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trace-123", w.Header().Get("X-Trace-ID"))
}
