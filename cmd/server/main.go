package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"nesttask/backend/config"
	"nesttask/backend/internal/api/handler"
	"nesttask/backend/internal/api/router"
	"nesttask/backend/internal/connectivity"
	"nesttask/backend/internal/model"
	"nesttask/backend/internal/remote"
	"nesttask/backend/internal/repository"
	"nesttask/backend/internal/service"
	"nesttask/backend/pkg/database"
	applogger "nesttask/backend/pkg/logger"
	"nesttask/backend/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 初始化缓存存储后端
	var (
		store repository.CacheStore
		db    *gorm.DB
		rdb   *redis.Client
	)
	switch cfg.Cache.Backend {
	case "redis":
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Fatal("Redis 连接失败", zap.Error(err))
		}
		store = repository.NewRedisCache(rdb.Raw())
	default:
		db, err = database.NewDB(&cfg.Database, logger)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
		store = repository.NewPostgresCache(db)
	}

	// 4. 远端数据源与连通性信号
	source := remote.NewHTTPSource(&cfg.Remote, logger)
	connSignal := connectivity.NewSignal()

	// 5. 依赖注入: Store/Source → Service → Handler
	svc := service.NewService(store, source, connSignal, logger)
	h := handler.NewHandler(svc, connSignal)

	// 6. 后台被动预取：启动即预取一次，此后按周期机会性刷新
	prefetchCtx, stopPrefetch := context.WithCancel(context.Background())
	go runPrefetchLoop(prefetchCtx, svc.Sync, cfg.Sync.PrefetchInterval, logger)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	stopPrefetch()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭存储连接
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("应用已退出")
}

// runPrefetchLoop 周期性被动预取全部记录类型；interval <= 0 时仅启动预取一次
func runPrefetchLoop(ctx context.Context, syncSvc service.SyncService, interval time.Duration, logger *zap.Logger) {
	syncSvc.Prefetch(model.AllKinds()...)

	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("后台预取循环退出")
			return
		case <-ticker.C:
			syncSvc.Prefetch(model.AllKinds()...)
		}
	}
}
