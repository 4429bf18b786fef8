package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fyerfyer/reading-formatter/api"
	"github.com/fyerfyer/reading-formatter/api/handler"
	"github.com/fyerfyer/reading-formatter/api/middleware"
	appconfig "github.com/fyerfyer/reading-formatter/config"
	"github.com/fyerfyer/reading-formatter/internal/cache"
	"github.com/fyerfyer/reading-formatter/internal/database"
	"github.com/fyerfyer/reading-formatter/internal/reading"
	"github.com/fyerfyer/reading-formatter/internal/repository"
	"github.com/fyerfyer/reading-formatter/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 配置选项
type config struct {
	Port           int           // 服务端口
	Mode           string        // 运行模式 (debug/release)
	LogLevel       string        // 日志级别
	LogFile        string        // 日志文件
	ReadTimeout    time.Duration // 读取超时
	WriteTimeout   time.Duration // 写入超时
	DBPath         string        // SQLite数据库路径
	ConfigFile     string        // 配置文件路径
	CacheEnabled   bool          // 是否启用结果缓存
	CacheType      string        // 缓存类型
	RedisAddr      string        // Redis 地址
	RedisPassword  string        // Redis 密码
	RedisDB        int           // Redis 数据库编号
	CacheTTL       time.Duration // 格式化结果缓存时间
	DefaultProfile string        // 默认格式化配置
	MaxContentSize int           // 单次请求文本上限

	logOptions middleware.LogOptions
}

func main() {
	cfg := parseFlags()

	// 加载配置文件(如果指定)
	if cfg.ConfigFile != "" {
		appConfig, err := appconfig.Load(cfg.ConfigFile)
		if err != nil {
			log.Printf("Warning: Failed to load config file: %v, using command line args", err)
		} else {
			updateConfigFromFile(&cfg, appConfig)
		}
	}

	gin.SetMode(cfg.Mode)

	logger := setupLogger(cfg)
	logger.Info("Starting reading formatter...")

	if !reading.IsValidProfile(cfg.DefaultProfile) {
		logger.Fatalf("Unknown default profile: %s", cfg.DefaultProfile)
	}

	if err := setupDatabase(cfg, logger); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	cacheService, err := setupCache(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}

	readingService := services.NewReadingService(
		repository.NewReadingRepository(),
		cacheService,
		services.WithCacheTTL(cfg.CacheTTL),
		services.WithDefaultProfile(cfg.DefaultProfile),
		services.WithLogger(logger),
	)

	readingHandler := handler.NewReadingHandler(readingService, cfg.MaxContentSize)
	r := api.SetupRouter(readingHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// 优雅关闭
	go func() {
		logger.Infof("Server is running on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func parseFlags() config {
	cfg := config{}

	// 服务配置
	flag.IntVar(&cfg.Port, "port", 8080, "Server port")
	flag.StringVar(&cfg.Mode, "mode", "debug", "Run mode (debug/release)")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug/info/warn/error)")
	flag.StringVar(&cfg.LogFile, "log-file", "", "Log file path, rotated by size")
	flag.DurationVar(&cfg.ReadTimeout, "read-timeout", 30*time.Second, "Read timeout")
	flag.DurationVar(&cfg.WriteTimeout, "write-timeout", 30*time.Second, "Write timeout")

	// 数据库配置
	flag.StringVar(&cfg.DBPath, "db", "./data/readings.db", "SQLite database path")

	// 缓存配置
	flag.BoolVar(&cfg.CacheEnabled, "cache", true, "Enable result cache")
	flag.StringVar(&cfg.CacheType, "cache-type", "memory", "Cache type (memory/redis)")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", "localhost:6379", "Redis address for cache")
	flag.StringVar(&cfg.RedisPassword, "redis-password", "", "Redis password")
	flag.IntVar(&cfg.RedisDB, "redis-db", 0, "Redis database number")
	flag.DurationVar(&cfg.CacheTTL, "cache-ttl", 24*time.Hour, "Formatted result cache TTL")

	// 格式化配置
	flag.StringVar(&cfg.DefaultProfile, "profile", string(reading.ProfileGeneric), "Default formatting profile")
	flag.IntVar(&cfg.MaxContentSize, "max-content", 1<<20, "Maximum content size in bytes")

	// 配置文件
	flag.StringVar(&cfg.ConfigFile, "config", "", "Path to config file")

	// 从环境变量获取Redis配置
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cfg.RedisAddr = redisAddr
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.RedisPassword = redisPassword
	}

	flag.Parse()

	cfg.logOptions = middleware.LogOptions{Level: cfg.LogLevel, File: cfg.LogFile}
	return cfg
}

// updateConfigFromFile 从配置文件更新未在命令行上明确设置的参数
func updateConfigFromFile(cfg *config, appConfig *appconfig.Config) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["port"] && appConfig.Server.Port > 0 {
		cfg.Port = appConfig.Server.Port
	}
	if !set["log-level"] && appConfig.Log.Level != "" {
		cfg.LogLevel = appConfig.Log.Level
	}
	if !set["log-file"] {
		cfg.LogFile = appConfig.Log.File
	}
	if !set["db"] && appConfig.Database.DSN != "" {
		cfg.DBPath = appConfig.Database.DSN
	}
	if !set["cache"] {
		cfg.CacheEnabled = appConfig.Cache.Enable
	}
	if !set["cache-type"] && appConfig.Cache.Type != "" {
		cfg.CacheType = appConfig.Cache.Type
	}
	if !set["redis-addr"] && appConfig.Cache.Address != "" {
		cfg.RedisAddr = appConfig.Cache.Address
	}
	if !set["redis-password"] && appConfig.Cache.Password != "" {
		cfg.RedisPassword = appConfig.Cache.Password
	}
	if !set["redis-db"] {
		cfg.RedisDB = appConfig.Cache.DB
	}
	if !set["cache-ttl"] && appConfig.Formatter.CacheTTL > 0 {
		cfg.CacheTTL = appConfig.Formatter.CacheTTLDuration()
	}
	if !set["profile"] && appConfig.Formatter.DefaultProfile != "" {
		cfg.DefaultProfile = appConfig.Formatter.DefaultProfile
	}
	if !set["max-content"] && appConfig.Formatter.MaxContentSize > 0 {
		cfg.MaxContentSize = appConfig.Formatter.MaxContentSize
	}

	cfg.logOptions = middleware.LogOptions{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  appConfig.Log.MaxSizeMB,
		MaxBackups: appConfig.Log.MaxBackups,
		MaxAgeDays: appConfig.Log.MaxAgeDays,
	}
}

// setupLogger 设置日志系统
func setupLogger(cfg config) *logrus.Logger {
	middleware.ConfigureLogger(cfg.logOptions)
	return middleware.GetLogger()
}

// setupCache 设置缓存服务，未启用时返回nil
func setupCache(cfg config, logger *logrus.Logger) (cache.Cache, error) {
	if !cfg.CacheEnabled {
		logger.Info("Result cache disabled")
		return nil, nil
	}

	cacheConfig := cache.DefaultConfig()
	cacheConfig.Type = cfg.CacheType
	cacheConfig.DefaultTTL = cfg.CacheTTL

	if cfg.CacheType == "redis" {
		cacheConfig.RedisAddr = cfg.RedisAddr
		cacheConfig.RedisPassword = cfg.RedisPassword
		cacheConfig.RedisDB = cfg.RedisDB
	}

	return cache.NewCache(cacheConfig)
}

// setupDatabase 设置数据库
func setupDatabase(cfg config, logger *logrus.Logger) error {
	dbConfig := database.DefaultConfig()
	dbConfig.DSN = cfg.DBPath
	return database.Setup(dbConfig, logger)
}
