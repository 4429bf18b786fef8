package api

import (
	"net/http"

	"github.com/fyerfyer/reading-formatter/api/handler"
	"github.com/fyerfyer/reading-formatter/api/middleware"
	"github.com/fyerfyer/reading-formatter/api/model"
	"github.com/gin-gonic/gin"
)

// SetupRouter 设置API路由
// 配置所有的API端点并应用中间件
func SetupRouter(readingHandler *handler.ReadingHandler) *gin.Engine {
	if err := model.RegisterValidators(); err != nil {
		middleware.GetLogger().WithError(err).Fatal("Failed to register validators")
	}

	router := gin.New()

	// 应用全局中间件，ErrorHandler负责panic恢复
	router.Use(middleware.SetTraceID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(Cors())

	// 在调试模式下记录请求体
	if gin.Mode() == gin.DebugMode {
		router.Use(middleware.RequestLogger())
	}

	api := router.Group("/api")
	{
		// 格式化预览 - POST /api/format
		api.POST("/format", readingHandler.FormatContent)

		// 格式化配置 - GET /api/profiles
		api.GET("/profiles", readingHandler.ListProfiles)

		readingGroup := api.Group("/readings")
		{
			// 创建解读记录 - POST /api/readings
			readingGroup.POST("", readingHandler.CreateReading)

			// 获取记录列表 - GET /api/readings
			readingGroup.GET("", readingHandler.ListReadings)

			// 获取记录详情 - GET /api/readings/:id
			readingGroup.GET("/:id", readingHandler.GetReading)

			// 打印页面 - GET /api/readings/:id/print
			readingGroup.GET("/:id/print", readingHandler.PrintReading)

			// 删除记录 - DELETE /api/readings/:id
			readingGroup.DELETE("/:id", readingHandler.DeleteReading)
		}

		// 健康检查API
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	return router
}

// Cors 跨域资源共享中间件
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Trace-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
